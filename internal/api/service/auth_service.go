package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailInUse       = errors.New("email already in use by another account")
	ErrUsernameInUse    = errors.New("username already in use by another account")
	ErrInvalidUsername  = errors.New("username contains invalid characters")
	ErrReservedUsername = errors.New("username is reserved")
	ErrInvalidCode      = errors.New("invalid confirmation code")
	ErrTooManyAttempts  = errors.New("too many failed confirmation attempts, try again later")
	ErrInvalidToken     = errors.New("invalid token")
)

// usernameRE mirrors the original username charset: letters, digits and @/./+/-/_
var usernameRE = regexp.MustCompile(`^[\w.@+-]+$`)

// Claims is the payload of an issued access token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(ctx context.Context, username, email string) (*dto.SignupResponse, error)
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo     repository.UserRepository
	attempts     repository.AttemptCounter
	mail         mailer.Mailer
	logger       *slog.Logger
	jwtSecret    string
	jwtExpiry    time.Duration
	attemptLimit int64
}

func NewAuthService(
	userRepo repository.UserRepository,
	attempts repository.AttemptCounter,
	mail mailer.Mailer,
	logger *slog.Logger,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		attempts:     attempts,
		mail:         mail,
		logger:       logger,
		jwtSecret:    cfg.JWTSecret,
		jwtExpiry:    cfg.JWTExpiry,
		attemptLimit: int64(cfg.CodeAttemptLimit),
	}
}

// Signup creates the account on first contact (role user, inactive) or
// reuses the existing one, then issues a fresh confirmation code by email.
// Requesting again simply overwrites the previous code.
func (s *authService) Signup(ctx context.Context, username, email string) (*dto.SignupResponse, error) {
	if username == "me" {
		return nil, ErrReservedUsername
	}
	if !usernameRE.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if user.Email != email {
			return nil, ErrEmailInUse
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// email taken by a different username?
		if _, emailErr := s.userRepo.FindByEmail(ctx, email); emailErr == nil {
			return nil, ErrEmailInUse
		} else if !errors.Is(emailErr, gorm.ErrRecordNotFound) {
			return nil, emailErr
		}
		user = &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
		}
		if createErr := s.userRepo.Create(ctx, user); createErr != nil {
			return nil, createErr
		}
	default:
		return nil, err
	}

	code := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.ConfirmationCode = string(hash)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	// Best effort: dispatch failures are logged, never surfaced to the caller.
	body := fmt.Sprintf("Confirmation code for %s: %s", user.Username, code)
	if err := s.mail.Send(user.Email, "Your confirmation code", body); err != nil {
		s.logger.Warn("failed to send confirmation code",
			"username", user.Username,
			"error", err,
		)
	}

	return &dto.SignupResponse{Username: user.Username, Email: user.Email}, nil
}

// IssueToken exchanges a confirmation code for a signed access token.
// A mismatch leaves the code valid for retry, but failed attempts are
// counted and the exchange locks once the limit is reached.
func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	failures, err := s.attempts.Failures(ctx, username)
	if err != nil {
		s.logger.Warn("attempt counter unavailable", "error", err)
	}
	if failures >= s.attemptLimit {
		return "", ErrTooManyAttempts
	}

	if user.ConfirmationCode == "" {
		return "", s.recordFailure(ctx, username)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.ConfirmationCode), []byte(code)) != nil {
		return "", s.recordFailure(ctx, username)
	}

	// Single use: the code dies with the exchange.
	user.ConfirmationCode = ""
	user.IsActive = true
	if err := s.userRepo.Save(ctx, user); err != nil {
		return "", err
	}
	if err := s.attempts.Reset(ctx, username); err != nil {
		s.logger.Warn("failed to reset attempt counter", "error", err)
	}

	return s.generateAccessToken(user)
}

func (s *authService) recordFailure(ctx context.Context, username string) error {
	if _, err := s.attempts.RecordFailure(ctx, username); err != nil {
		s.logger.Warn("failed to record confirmation attempt", "error", err)
	}
	return ErrInvalidCode
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
