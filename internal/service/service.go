package service

import (
	"fmt"

	"hypefeed/internal/config"
	"hypefeed/internal/repository"
)

type Service struct {
	Auth AuthService
	Post PostService
	Hype HypeService
}

func NewService(rep *repository.Repository, cfg *config.Config) (*Service, error) {
	credentials, err := NewCredentials(cfg.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("failed to init credentials: %w", err)
	}

	return &Service{
		Auth: NewAuthService(rep.User, credentials),
		Post: NewPostService(rep.Post),
		Hype: NewHypeService(rep.Hype),
	}, nil
}
