package entity

import (
	"time"
)

// User is a library account, either an administrator or a reader.
// Passwords are stored as bcrypt hashes in Password field
//
// Users are created outside the loan and dashboard flows and only referenced there.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
}
