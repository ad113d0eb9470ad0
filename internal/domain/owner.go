package domain

import "github.com/google/uuid"

// Role gates access to privileged operations (testcase management,
// submission administration)
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Users struct {
	ID           uuid.UUID `db:"id"`
	UserName     string    `db:"user_name"`
	PasswordHash *string   `db:"password_hash"`
	Email        *string   `db:"email"`
	Role         Role      `db:"role"`
	AuthProvider string    `db:"auth_provider"`
	GoogleID     *string   `db:"google_id"`
}

// NewUser creates an account record for the given auth provider
func NewUser(userName string, role Role, provider string) *Users {
	return &Users{
		ID:           uuid.New(),
		UserName:     userName,
		Role:         role,
		AuthProvider: provider,
	}
}

// IsAdmin reports whether the user may perform privileged operations
func (u *Users) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type UsersTable struct {
	ID           string
	UserName     string
	PasswordHash string
	Email        string
	Role         string
	AuthProvider string
	GoogleID     string
}

func GetUserTable() UsersTable {
	return UsersTable{
		ID:           "id",
		UserName:     "user_name",
		PasswordHash: "password_hash",
		Email:        "email",
		Role:         "role",
		AuthProvider: "auth_provider",
		GoogleID:     "google_id",
	}
}

func (t UsersTable) GetTableName() string {
	return "users"
}
