package server

import (
	"net/http"

	"github.com/bagdasarian/vrm-monitor/internal/handler"
)

func SetupRoutes(mux *http.ServeMux, h *handler.Handler) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /stats", h.GetStats)
	mux.HandleFunc("GET /users/get", h.GetUser)
	mux.HandleFunc("GET /users/lockout", h.GetLockout)
	mux.HandleFunc("GET /roles/list", h.ListRoles)
}
