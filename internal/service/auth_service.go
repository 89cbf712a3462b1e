package service

import (
	"context"
	"errors"
	"fmt"

	"hypefeed/internal/models"
	"hypefeed/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (models.Identity, error)
	Login(ctx context.Context, username, password string) (models.Identity, error)
}

type authService struct {
	userRepo    repository.UserRepository
	credentials Credentials
}

func NewAuthService(userRepo repository.UserRepository, credentials Credentials) AuthService {
	return &authService{
		userRepo:    userRepo,
		credentials: credentials,
	}
}

// Register creates an account. Usernames are unique and case sensitive.
func (s *authService) Register(ctx context.Context, username, password string) (models.Identity, error) {
	if username == "" || password == "" {
		return models.Identity{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	stored, err := s.credentials.Hash(password)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	user := &models.User{
		Username: username,
		Password: stored,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Identity{}, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
		}
		return models.Identity{}, fmt.Errorf("%w: create user: %w", ErrInternal, err)
	}

	return user.Identity(), nil
}

// Login does not say whether the username or the password was wrong.
func (s *authService) Login(ctx context.Context, username, password string) (models.Identity, error) {
	if username == "" || password == "" {
		return models.Identity{}, ErrAuth
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Identity{}, ErrAuth
		}
		return models.Identity{}, fmt.Errorf("%w: lookup user: %w", ErrInternal, err)
	}

	if !s.credentials.Compare(user.Password, password) {
		return models.Identity{}, ErrAuth
	}

	return user.Identity(), nil
}
