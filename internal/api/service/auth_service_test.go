package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"reviewhub/internal/api/models"
	"reviewhub/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

// MockAttemptCounter mocks the AttemptCounter interface
type MockAttemptCounter struct {
	mock.Mock
}

func (m *MockAttemptCounter) RecordFailure(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptCounter) Failures(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptCounter) Reset(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// MockMailer mocks the Mailer interface
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret-at-least-32-characters!!",
		JWTExpiry:        time.Hour,
		CodeAttemptLimit: 5,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSignup_CreatesAccount(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockAttempts := new(MockAttemptCounter)
	mockMailer := new(MockMailer)
	authService := NewAuthService(mockUserRepo, mockAttempts, mockMailer, testLogger(), testConfig())

	mockUserRepo.On("FindByUsername", mock.Anything, "newuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "newuser" && u.Email == "new@example.com" && u.Role == models.RoleUser
	})).Return(nil)
	mockUserRepo.On("Save", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ConfirmationCode != ""
	})).Return(nil)
	mockMailer.On("Send", "new@example.com", mock.Anything, mock.Anything).Return(nil)

	resp, err := authService.Signup(context.Background(), "newuser", "new@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "newuser", resp.Username)
	assert.Equal(t, "new@example.com", resp.Email)
	mockUserRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestSignup_ReissuesCodeForExistingAccount(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockAttempts := new(MockAttemptCounter)
	mockMailer := new(MockMailer)
	authService := NewAuthService(mockUserRepo, mockAttempts, mockMailer, testLogger(), testConfig())

	existing := &models.User{Username: "olduser", Email: "old@example.com", Role: models.RoleUser}
	mockUserRepo.On("FindByUsername", mock.Anything, "olduser").Return(existing, nil)
	mockUserRepo.On("Save", mock.Anything, existing).Return(nil)
	mockMailer.On("Send", "old@example.com", mock.Anything, mock.Anything).Return(nil)

	resp, err := authService.Signup(context.Background(), "olduser", "old@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "olduser", resp.Username)
	assert.NotEmpty(t, existing.ConfirmationCode)
	mockUserRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestSignup_ReservedUsername(t *testing.T) {
	authService := NewAuthService(new(MockUserRepository), new(MockAttemptCounter), new(MockMailer), testLogger(), testConfig())

	resp, err := authService.Signup(context.Background(), "me", "me@example.com")

	assert.Nil(t, resp)
	assert.Equal(t, ErrReservedUsername, err)
}

func TestSignup_InvalidUsername(t *testing.T) {
	authService := NewAuthService(new(MockUserRepository), new(MockAttemptCounter), new(MockMailer), testLogger(), testConfig())

	resp, err := authService.Signup(context.Background(), "bad name!", "x@example.com")

	assert.Nil(t, resp)
	assert.Equal(t, ErrInvalidUsername, err)
}

func TestSignup_EmailBelongsToOtherUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, new(MockAttemptCounter), new(MockMailer), testLogger(), testConfig())

	mockUserRepo.On("FindByUsername", mock.Anything, "fresh").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&models.User{Username: "other", Email: "taken@example.com"}, nil)

	resp, err := authService.Signup(context.Background(), "fresh", "taken@example.com")

	assert.Nil(t, resp)
	assert.Equal(t, ErrEmailInUse, err)
	mockUserRepo.AssertExpectations(t)
}

func TestSignup_EmailMismatchForExistingUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, new(MockAttemptCounter), new(MockMailer), testLogger(), testConfig())

	existing := &models.User{Username: "olduser", Email: "real@example.com"}
	mockUserRepo.On("FindByUsername", mock.Anything, "olduser").Return(existing, nil)

	resp, err := authService.Signup(context.Background(), "olduser", "wrong@example.com")

	assert.Nil(t, resp)
	assert.Equal(t, ErrEmailInUse, err)
}

func TestIssueToken_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockAttempts := new(MockAttemptCounter)
	cfg := testConfig()
	authService := NewAuthService(mockUserRepo, mockAttempts, new(MockMailer), testLogger(), cfg)

	hash, _ := bcrypt.GenerateFromPassword([]byte("good-code"), bcrypt.DefaultCost)
	user := &models.User{
		ID:               "user-id",
		Username:         "testuser",
		Role:             models.RoleUser,
		ConfirmationCode: string(hash),
	}

	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(user, nil)
	mockAttempts.On("Failures", mock.Anything, "testuser").Return(int64(0), nil)
	mockUserRepo.On("Save", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ConfirmationCode == "" && u.IsActive
	})).Return(nil)
	mockAttempts.On("Reset", mock.Anything, "testuser").Return(nil)

	token, err := authService.IssueToken(context.Background(), "testuser", "good-code")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-id", claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, "user", claims.Role)
	mockUserRepo.AssertExpectations(t)
	mockAttempts.AssertExpectations(t)
}

func TestIssueToken_WrongCodeLeavesCodeStanding(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockAttempts := new(MockAttemptCounter)
	authService := NewAuthService(mockUserRepo, mockAttempts, new(MockMailer), testLogger(), testConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("good-code"), bcrypt.DefaultCost)
	user := &models.User{Username: "testuser", ConfirmationCode: string(hash)}

	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(user, nil)
	mockAttempts.On("Failures", mock.Anything, "testuser").Return(int64(1), nil)
	mockAttempts.On("RecordFailure", mock.Anything, "testuser").Return(int64(2), nil)

	token, err := authService.IssueToken(context.Background(), "testuser", "wrong-code")

	assert.Empty(t, token)
	assert.Equal(t, ErrInvalidCode, err)
	// The standing code must survive the failed attempt.
	assert.Equal(t, string(hash), user.ConfirmationCode)
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockAttempts.AssertExpectations(t)
}

func TestIssueToken_LocksAfterTooManyFailures(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockAttempts := new(MockAttemptCounter)
	authService := NewAuthService(mockUserRepo, mockAttempts, new(MockMailer), testLogger(), testConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("good-code"), bcrypt.DefaultCost)
	user := &models.User{Username: "testuser", ConfirmationCode: string(hash)}

	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(user, nil)
	mockAttempts.On("Failures", mock.Anything, "testuser").Return(int64(5), nil)

	// Even the correct code is refused while locked.
	token, err := authService.IssueToken(context.Background(), "testuser", "good-code")

	assert.Empty(t, token)
	assert.Equal(t, ErrTooManyAttempts, err)
}

func TestIssueToken_UserNotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, new(MockAttemptCounter), new(MockMailer), testLogger(), testConfig())

	mockUserRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	token, err := authService.IssueToken(context.Background(), "ghost", "whatever")

	assert.Empty(t, token)
	assert.Equal(t, ErrUserNotFound, err)
}

func TestIssueToken_NoStandingCode(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockAttempts := new(MockAttemptCounter)
	authService := NewAuthService(mockUserRepo, mockAttempts, new(MockMailer), testLogger(), testConfig())

	user := &models.User{Username: "testuser"}
	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(user, nil)
	mockAttempts.On("Failures", mock.Anything, "testuser").Return(int64(0), nil)
	mockAttempts.On("RecordFailure", mock.Anything, "testuser").Return(int64(1), nil)

	token, err := authService.IssueToken(context.Background(), "testuser", "anything")

	assert.Empty(t, token)
	assert.Equal(t, ErrInvalidCode, err)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testConfig()
	authService := NewAuthService(new(MockUserRepository), new(MockAttemptCounter), new(MockMailer), testLogger(), cfg)

	claims := Claims{
		UserID:   "user-id",
		Username: "testuser",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(cfg.JWTSecret))

	validated, err := authService.ValidateToken(tokenString)

	assert.Nil(t, validated)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	authService := NewAuthService(new(MockUserRepository), new(MockAttemptCounter), new(MockMailer), testLogger(), testConfig())

	validated, err := authService.ValidateToken("not.a.token")

	assert.Nil(t, validated)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	authService := NewAuthService(new(MockUserRepository), new(MockAttemptCounter), new(MockMailer), testLogger(), testConfig())

	claims := Claims{
		UserID: "user-id",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte("some-other-secret-32-characters!!"))

	validated, err := authService.ValidateToken(tokenString)

	assert.Nil(t, validated)
	assert.Equal(t, ErrInvalidToken, err)
}
