package entity

import (
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field and never leave
// the service layer.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
}

// Identity returns the non-secret view of the user carried in session tokens.
func (u *User) Identity() Identity {
	return Identity{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
