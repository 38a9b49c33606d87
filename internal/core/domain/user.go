package domain

import "time"

// Role is the closed set of admin-panel roles.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
	RoleStaff      Role = "staff"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEditor, RoleStaff:
		return true
	}
	return false
}

// FullyPrivileged reports whether r bypasses every permission check.
// There is no role hierarchy beyond this: super_admin and admin always
// pass, everyone else goes through the permission map.
func (r Role) FullyPrivileged() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// AdminUser models an admin-panel account.
//
// TokenVersion is a monotonically increasing counter embedded in every
// issued token. Bumping it invalidates all outstanding tokens for the
// user at once; there is no token blacklist.
type AdminUser struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	Permissions  map[Permission]bool
	TokenVersion int
	LastLoginAt  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward-facing representation of an AdminUser.
// The password hash never leaves the service layer.
type PublicUser struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Role        Role                `json:"role"`
	IsActive    bool                `json:"is_active"`
	Permissions map[Permission]bool `json:"permissions,omitempty"`
	LastLoginAt string              `json:"last_login_at,omitempty"`
	CreatedAt   string              `json:"created_at,omitempty"`
	UpdatedAt   string              `json:"update_at,omitempty"`
}

// Public strips the credential fields from u.
func (u *AdminUser) Public() *PublicUser {
	if u == nil {
		return nil
	}
	p := &PublicUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		Permissions: u.Permissions,
		CreatedAt:   isoOrEmpty(u.CreatedAt),
		UpdatedAt:   isoOrEmpty(u.UpdatedAt),
	}
	p.LastLoginAt = isoOrEmpty(u.LastLoginAt)
	return p
}

func isoOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
