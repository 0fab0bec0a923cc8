package domain

import "time"

const DefaultRole = "user"

// User is an identity record keyed by email.
//
// Password holds a bcrypt hash and UID the external auth provider's identifier.
// Neither may leave the system; use Sanitize before rendering.
type User struct {
	ID            string     `json:"_id"`
	Email         string     `json:"email"`
	Name          string     `json:"name,omitempty"`
	PhotoURL      string     `json:"photoURL,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Address       string     `json:"address,omitempty"`
	Role          string     `json:"role,omitempty"`
	IsAdmin       bool       `json:"isAdmin"`
	EmailVerified bool       `json:"emailVerified"`
	Password      string     `json:"-"`
	UID           string     `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
}

// PublicUser is the sanitized view of a User.
type PublicUser struct {
	ID            string     `json:"_id"`
	Email         string     `json:"email"`
	Name          string     `json:"name,omitempty"`
	PhotoURL      string     `json:"photoURL,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Address       string     `json:"address,omitempty"`
	Role          string     `json:"role,omitempty"`
	IsAdmin       bool       `json:"isAdmin"`
	EmailVerified bool       `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
}

// Sanitize strips the credential fields from u. It never fails.
func Sanitize(u *User) PublicUser {
	if u == nil {
		return PublicUser{}
	}
	return PublicUser{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		PhotoURL:      u.PhotoURL,
		Phone:         u.Phone,
		Address:       u.Address,
		Role:          u.Role,
		IsAdmin:       u.IsAdmin,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
		LastLogin:     u.LastLogin,
	}
}

// SanitizeAll applies Sanitize to every user.
func SanitizeAll(users []*User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, Sanitize(u))
	}
	return out
}

// UserPatch is the sparse set of fields the generic update path may change.
// Email and IsAdmin are only present so the update path can detect and reject them.
type UserPatch struct {
	Name          *string
	PhotoURL      *string
	Phone         *string
	Address       *string
	Role          *string
	EmailVerified *bool
	LastLogin     *time.Time
	Password      *string
	UID           *string

	Email   *string
	IsAdmin *bool
}

// TouchesImmutable reports whether the patch tries to change email or isAdmin.
func (p UserPatch) TouchesImmutable() bool {
	return p.Email != nil || p.IsAdmin != nil
}

// RoleSummary is the response of the role-check lookup.
type RoleSummary struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Role    string `json:"role"`
}
