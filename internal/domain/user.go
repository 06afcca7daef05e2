package domain

import (
	"strings"
	"time"
)

const (
	RoleGuest = "guest"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

// StatusRequested marks a guest who has asked to become a host.
const StatusRequested = "Requested"

// ValidRole reports whether role is one of the three recognized roles.
// Anything else is rejected by the role gate, never passed through.
func ValidRole(role string) bool {
	switch role {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photo"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"timestamp"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserUpsertReq is the PUT /user payload. Role and status are optional;
// a brand-new record defaults to the guest role.
type UserUpsertReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func (r *UserUpsertReq) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	if !IsValidEmail(r.Email) {
		return ErrInvalidInput
	}
	if r.Role == "" {
		r.Role = RoleGuest
	}
	if !ValidRole(r.Role) {
		return ErrInvalidInput
	}
	return nil
}

// UserUpdateReq is the PATCH /users/update/{email} payload used for role
// promotion and status changes.
type UserUpdateReq struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

func (r *UserUpdateReq) Validate() error {
	if r.Role == "" || !ValidRole(r.Role) {
		return ErrInvalidInput
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail performs basic shape validation.
func IsValidEmail(email string) bool {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return false
	}

	parts := strings.Split(normalized, "@")
	if len(parts) != 2 {
		return false
	}

	local, dom := parts[0], parts[1]
	return len(local) > 0 && len(dom) > 2 && strings.Contains(dom, ".")
}
