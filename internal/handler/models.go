package handler

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	SchemaVersion int    `json:"schema_version"`
	Error         string `json:"error,omitempty"`
}

// UserResponse намеренно не содержит PasswordHash и штампов
type UserResponse struct {
	UserID               string   `json:"user_id"`
	UserName             string   `json:"user_name"`
	Email                string   `json:"email,omitempty"`
	EmailConfirmed       bool     `json:"email_confirmed"`
	PhoneNumber          string   `json:"phone_number,omitempty"`
	PhoneNumberConfirmed bool     `json:"phone_number_confirmed"`
	TwoFactorEnabled     bool     `json:"two_factor_enabled"`
	LockoutEnabled       bool     `json:"lockout_enabled"`
	LockoutEnd           *string  `json:"lockout_end,omitempty"`
	AccessFailedCount    int      `json:"access_failed_count"`
	Roles                []string `json:"roles"`
	CreatedAt            string   `json:"created_at"`
}

type GetUserResponse struct {
	User UserResponse `json:"user"`
}

type RoleResponse struct {
	RoleID string `json:"role_id"`
	Name   string `json:"name"`
}

type ListRolesResponse struct {
	Roles []RoleResponse `json:"roles"`
}

type RoleStatResponse struct {
	RoleName  string `json:"role_name"`
	UserCount int    `json:"user_count"`
}

type StatsResponse struct {
	TotalUsers     int                `json:"total_users"`
	ConfirmedUsers int                `json:"confirmed_users"`
	LockedOutUsers int                `json:"locked_out_users"`
	Roles          []RoleStatResponse `json:"roles"`
}

type LockoutResponse struct {
	UserID            string `json:"user_id"`
	LockoutEnabled    bool   `json:"lockout_enabled"`
	AccessFailedCount int    `json:"access_failed_count"`
}
