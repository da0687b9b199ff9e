package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICE ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email string) (*dto.SignupResponse, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SignupResponse), args.Error(1)
}

func (m *MockAuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	args := m.Called(ctx, username, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

// --- SETUP ---

func noopLimiter() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}

func setupAuthRouter(mockService *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAuthHandler(mockService)
	h.RegisterRoutes(r.Group("/api/v1/auth"), noopLimiter())
	return r
}

// --- TESTS ---

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		expected := &dto.SignupResponse{Username: "alice", Email: "alice@example.com"}
		mockService.On("Signup", mock.Anything, "alice", "alice@example.com").Return(expected, nil).Once()

		body, _ := json.Marshal(dto.SignupRequest{Username: "alice", Email: "alice@example.com"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.SignupResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "alice", response.Username)
		assert.Equal(t, "alice@example.com", response.Email)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		body, _ := json.Marshal(map[string]string{"username": "alice", "email": "not-an-email"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ReservedUsername", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("Signup", mock.Anything, "me", "me@example.com").
			Return(nil, service.ErrReservedUsername).Once()

		body, _ := json.Marshal(dto.SignupRequest{Username: "me", Email: "me@example.com"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("Signup", mock.Anything, "alice", "taken@example.com").
			Return(nil, service.ErrEmailInUse).Once()

		body, _ := json.Marshal(dto.SignupRequest{Username: "alice", Email: "taken@example.com"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_IssueToken(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("IssueToken", mock.Anything, "alice", "code-123").
			Return("signed.jwt.token", nil).Once()

		body, _ := json.Marshal(dto.TokenRequest{Username: "alice", ConfirmationCode: "code-123"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.TokenResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "signed.jwt.token", response.Token)
		mockService.AssertExpectations(t)
	})

	t.Run("WrongCode", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("IssueToken", mock.Anything, "alice", "bad-code").
			Return("", service.ErrInvalidCode).Once()

		body, _ := json.Marshal(dto.TokenRequest{Username: "alice", ConfirmationCode: "bad-code"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("IssueToken", mock.Anything, "ghost", "code-123").
			Return("", service.ErrUserNotFound).Once()

		body, _ := json.Marshal(dto.TokenRequest{Username: "ghost", ConfirmationCode: "code-123"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MissingCode", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		body, _ := json.Marshal(map[string]string{"username": "alice"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "IssueToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TooManyAttempts", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("IssueToken", mock.Anything, "alice", "code-123").
			Return("", service.ErrTooManyAttempts).Once()

		body, _ := json.Marshal(dto.TokenRequest{Username: "alice", ConfirmationCode: "code-123"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
