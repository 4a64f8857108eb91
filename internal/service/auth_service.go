package service

import (
	"context"
	"errors"
	"learning_path_backend/internal/config"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// TokenRevoker 注销令牌的存储，未启用 Redis 时为 nil
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Revoker  TokenRevoker
	Cfg      config.JWTConfig
}

func NewAuthService(userRepo *repository.UserRepository, revoker TokenRevoker, cfg config.JWTConfig) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Revoker:  revoker,
		Cfg:      cfg,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" || req.Password == "" {
		return nil, util.NewValidationError("Name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, util.NewValidationError("Invalid email")
	}
	if len(req.Password) < minPasswordLength {
		return nil, util.NewValidationError("Password must be at least 6 characters")
	}

	_, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, util.NewConflictError("Email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewStoreError("Failed to register", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, util.NewStoreError("Failed to register", err)
	}

	user := &model.User{Name: name, Email: email, Password: string(hashed)}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.NewConflictError("Email already registered")
		}
		return nil, util.NewStoreError("Failed to register", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, util.NewValidationError("Email and password are required")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewUnauthorizedError("Invalid credentials")
	}
	if err != nil {
		return nil, util.NewStoreError("Failed to login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.NewUnauthorizedError("Invalid credentials")
	}

	token, err := util.GenerateJWT(user, s.Cfg.Secret, s.Cfg.ExpireTime)
	if err != nil {
		return nil, util.NewStoreError("Failed to login", err)
	}
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, util.NewStoreError("Failed to fetch user", err)
	}
	return user, nil
}

// Logout 把令牌 id 拉黑到过期为止
func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	if s.Revoker == nil {
		return nil
	}
	if claims == nil || claims.ID == "" {
		return util.NewUnauthorizedError("Unauthorized")
	}

	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	if err := s.Revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return util.NewStoreError("Failed to logout", err)
	}
	return nil
}
