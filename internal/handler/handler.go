package handler

import (
	"context"

	"github.com/bagdasarian/vrm-monitor/internal/service"
)

// HealthChecker - то, что нужно /health от контекста хранения
type HealthChecker interface {
	Ping(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)
}

type Handler struct {
	health       HealthChecker
	userService  service.UserService
	roleService  service.RoleService
	statsService service.StatsService
}

func NewHandler(
	health HealthChecker,
	userService service.UserService,
	roleService service.RoleService,
	statsService service.StatsService,
) *Handler {
	return &Handler{
		health:       health,
		userService:  userService,
		roleService:  roleService,
		statsService: statsService,
	}
}
