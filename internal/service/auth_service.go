package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"digitalshelf/internal/auth"
	"digitalshelf/internal/errors"
	"digitalshelf/internal/model"
	"digitalshelf/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a credential with a bcrypt-hashed password and issues a
// token for it. New registrations always get the USER role.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, string, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, "", errors.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.Username, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Login verifies a credential and issues a token. Unknown usernames and
// wrong passwords return the same ErrInvalidCredentials value; a store
// failure other than record-not-found is surfaced as such, not disguised
// as a credential mismatch.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", errors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.Username, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}
