package handler

import "net/http"

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.ListRoles(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListRolesResponse{
		Roles: domainRolesToHTTP(roles),
	})
}
