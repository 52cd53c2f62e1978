package domain

import "time"

// ApplicationUser - пользователь приложения. Полностью совпадает с базовым
// пользователем identity-схемы, дополнительных полей нет.
type ApplicationUser struct {
	ID                   string
	UserName             string
	NormalizedUserName   string
	Email                string
	NormalizedEmail      string
	EmailConfirmed       bool
	PasswordHash         string
	SecurityStamp        string
	ConcurrencyStamp     string
	PhoneNumber          string
	PhoneNumberConfirmed bool
	TwoFactorEnabled     bool
	LockoutEnd           *time.Time
	LockoutEnabled       bool
	AccessFailedCount    int
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}

// IsLockedOut сообщает, заблокирован ли пользователь на момент now
func (u *ApplicationUser) IsLockedOut(now time.Time) bool {
	if !u.LockoutEnabled || u.LockoutEnd == nil {
		return false
	}
	return u.LockoutEnd.After(now)
}
