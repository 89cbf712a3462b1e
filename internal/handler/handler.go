package handlers

import (
	"github.com/go-playground/validator/v10"

	"hypefeed/internal/config"
	"hypefeed/internal/service"
)

// HealthChecker is the part of the database the health endpoint needs.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	HypeService service.HypeService
	DB          HealthChecker
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(services *service.Service, db HealthChecker, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		PostService: services.Post,
		HypeService: services.Hype,
		DB:          db,
		Cfg:         cfg,
		Validate:    validator.New(),
	}
}
