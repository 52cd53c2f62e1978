package handler

import (
	"net/http"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userName := r.URL.Query().Get("user_name")
	if userName == "" {
		h.handleError(w, domain.NewValidationError("user_name parameter is required"))
		return
	}

	user, err := h.userService.FindByName(r.Context(), userName)
	if err != nil {
		h.handleError(w, err)
		return
	}

	roles, err := h.roleService.GetRoles(r.Context(), user.ID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GetUserResponse{
		User: domainUserToHTTP(user, roles),
	})
}

// GetLockout отвечает 200, если пользователь может входить, и 403 LOCKED_OUT
// при активной блокировке
func (h *Handler) GetLockout(w http.ResponseWriter, r *http.Request) {
	userName := r.URL.Query().Get("user_name")
	if userName == "" {
		h.handleError(w, domain.NewValidationError("user_name parameter is required"))
		return
	}

	user, err := h.userService.FindByName(r.Context(), userName)
	if err != nil {
		h.handleError(w, err)
		return
	}

	user, err = h.userService.CheckLockout(r.Context(), user.ID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LockoutResponse{
		UserID:            user.ID,
		LockoutEnabled:    user.LockoutEnabled,
		AccessFailedCount: user.AccessFailedCount,
	})
}
