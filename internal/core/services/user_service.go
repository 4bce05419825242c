package services

import (
	"context"
	"fmt"
	"time"

	"github.com/devfx/currency_converter_api/internal/core/domain"
	portsrepo "github.com/devfx/currency_converter_api/internal/core/ports/repositories"
	portssvc "github.com/devfx/currency_converter_api/internal/core/ports/services"
	"github.com/devfx/currency_converter_api/internal/dto"
	"github.com/devfx/currency_converter_api/internal/utils"
	"github.com/google/uuid"
)

// UserService provides business logic for user registration and lookup.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

// Ensure UserService implements the service facade
var _ portssvc.UserSvcFacade = (*UserService)(nil)

// CreateUser registers a new user with a bcrypt-hashed password.
// Duplicate usernames surface as apperrors.ErrDuplicate from the repository.
func (s *UserService) CreateUser(ctx context.Context, req dto.SignupRequest) (*domain.User, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Username:      req.Username,
		PasswordHash:  passwordHash,
		Role:          domain.RoleUser,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by their unique username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username in service: %w", err)
	}
	return user, nil
}
