package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/adapters/persistence/repositories"
	"carconnect/internal/config"
	"carconnect/internal/core/domain"
	"carconnect/internal/pkg/jwt"
	"carconnect/internal/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthService authenticates admins and customers
type AuthService struct {
	adminRepo    repositories.AdminRepository
	customerRepo repositories.CustomerRepository
	jwtCfg       config.JWTConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	adminRepo repositories.AdminRepository,
	customerRepo repositories.CustomerRepository,
	jwtCfg config.JWTConfig,
) *AuthService {
	return &AuthService{
		adminRepo:    adminRepo,
		customerRepo: customerRepo,
		jwtCfg:       jwtCfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse represents an issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// lookupError folds repository failures into ErrAuthentication so callers
// cannot tell unknown users from wrong passwords
func lookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrAuthentication
	}
	return fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
}

// AdminLogin authenticates an admin by username and password
func (s *AuthService) AdminLogin(ctx context.Context, username, pw string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, lookupError(err)
	}

	if !password.Verify(pw, admin.Password) {
		logrus.WithField("username", username).Warn("Admin login failed")
		return nil, domain.ErrAuthentication
	}

	logrus.WithField("admin_id", admin.ID).Info("Admin logged in")
	return admin, nil
}

// CustomerLogin authenticates a customer by username and password
func (s *AuthService) CustomerLogin(ctx context.Context, username, pw string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, lookupError(err)
	}

	if !password.Verify(pw, customer.Password) {
		logrus.WithField("username", username).Warn("Customer login failed")
		return nil, domain.ErrAuthentication
	}

	logrus.WithField("customer_id", customer.ID).Info("Customer logged in")
	return customer, nil
}

// IssueToken signs an access token for an authenticated principal
func (s *AuthService) IssueToken(userID uint, username string, role domain.Role) (*TokenResponse, error) {
	if s.jwtCfg.Secret == "" {
		return nil, errors.New("JWT secret is not configured")
	}

	token, err := jwt.GenerateAccessToken(userID, username, string(role), s.jwtCfg.Secret, s.jwtCfg.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.jwtCfg.AccessTokenMins * 60,
	}, nil
}

// ValidateToken validates an access token and returns its claims
func (s *AuthService) ValidateToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.jwtCfg.Secret)
}
