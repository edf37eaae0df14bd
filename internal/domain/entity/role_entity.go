package entity

// Role represents an authorization role.
// A user holds exactly one role.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleReader Role = "READER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleReader
}

func (r Role) String() string { return string(r) }
