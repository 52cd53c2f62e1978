package handler

import (
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

func domainUserToHTTP(user *domain.ApplicationUser, roles []string) UserResponse {
	var lockoutEnd *string
	if user.LockoutEnd != nil {
		lockoutEndStr := user.LockoutEnd.UTC().Format(time.RFC3339)
		lockoutEnd = &lockoutEndStr
	}
	if roles == nil {
		roles = []string{}
	}

	return UserResponse{
		UserID:               user.ID,
		UserName:             user.UserName,
		Email:                user.Email,
		EmailConfirmed:       user.EmailConfirmed,
		PhoneNumber:          user.PhoneNumber,
		PhoneNumberConfirmed: user.PhoneNumberConfirmed,
		TwoFactorEnabled:     user.TwoFactorEnabled,
		LockoutEnabled:       user.LockoutEnabled,
		LockoutEnd:           lockoutEnd,
		AccessFailedCount:    user.AccessFailedCount,
		Roles:                roles,
		CreatedAt:            user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func domainRolesToHTTP(roles []*domain.Role) []RoleResponse {
	result := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		result = append(result, RoleResponse{
			RoleID: role.ID,
			Name:   role.Name,
		})
	}
	return result
}

func domainStatsToHTTP(stats *domain.Stats) StatsResponse {
	response := StatsResponse{
		TotalUsers:     stats.TotalUsers,
		ConfirmedUsers: stats.ConfirmedUsers,
		LockedOutUsers: stats.LockedOutUsers,
		Roles:          make([]RoleStatResponse, len(stats.Roles)),
	}

	for i, stat := range stats.Roles {
		response.Roles[i] = RoleStatResponse{
			RoleName:  stat.RoleName,
			UserCount: stat.UserCount,
		}
	}
	return response
}
