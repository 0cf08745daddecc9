package model

import "time"

// Role enumerates the access levels a user can hold.  The same type is
// consumed everywhere authorization is checked so the set of valid roles
// is defined exactly once.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleManager Role = "manager"
)

// ParseRole maps a raw string onto a Role.  The second return value is
// false when the input is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleManager:
		return Role(s), true
	}
	return "", false
}

// User mirrors the 'users' table.  PasswordHash is never serialized.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserBrief is the subset of user fields embedded in order details and
// token responses.
type UserBrief struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Brief strips a User down to its public fields.
func (u *User) Brief() UserBrief {
	return UserBrief{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
