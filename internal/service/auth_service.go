package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bimta/bimta-api/internal/models"
	appErrors "github.com/bimta/bimta-api/pkg/errors"
)

type authAccountRepository interface {
	FindByID(ctx context.Context, userID string) (*models.Account, error)
}

type loginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// AuthService provides authentication use cases.
type AuthService struct {
	repo      authAccountRepository
	limiter   loginLimiter
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance. A nil limiter disables
// login throttling.
func NewAuthService(repo authAccountRepository, limiter loginLimiter, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, limiter: limiter, metrics: metrics, validator: validate, logger: logger, config: config}
}

// Login authenticates an admin and issues an access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "User ID dan password harus diisi")
	}

	key := req.UserID + "|" + req.IP
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, key)
		if err != nil {
			s.logger.Warn("login throttle unavailable", zap.Error(err))
		} else if !allowed {
			s.metrics.RecordLogin(LoginThrottled)
			return nil, appErrors.ErrTooManyRequests
		}
	}

	account, err := s.repo.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.recordFailure(ctx, key)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Internal(err)
	}

	if account.Role != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Hanya admin yang dapat login ke web")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, key)
		return nil, appErrors.ErrInvalidCredentials
	}

	if account.Status != models.StatusActive {
		return nil, appErrors.ErrInactiveAccount
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, key); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	token, err := s.generateAccessToken(account)
	if err != nil {
		return nil, appErrors.Internal(err)
	}

	s.metrics.RecordLogin(LoginSucceeded)
	s.logger.Info("admin signed in", zap.String("user_id", account.UserID))
	return &models.LoginResponse{User: account.View(), Token: token}, nil
}

// Profile returns the account behind a token.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.AccountView, error) {
	account, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "User tidak ditemukan")
		}
		return nil, appErrors.Internal(err)
	}
	view := account.View()
	return &view, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "Token tidak valid")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "Token tidak valid")
	}

	return claims, nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	s.metrics.RecordLogin(LoginFailed)
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Fail(ctx, key); err != nil {
		s.logger.Warn("failed to record login attempt", zap.Error(err))
	}
}

func (s *AuthService) generateAccessToken(account *models.Account) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID: account.UserID,
		Nama:   account.Nama,
		Role:   account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   account.UserID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}
