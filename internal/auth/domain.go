// internal/auth/domain.go
package auth

// User is a staff account for the application shell. Admin accounts may
// manage users, memberships, the catalog, and circulation; regular accounts
// only read availability.
type User struct {
	UserID       string `db:"user_id" json:"user_id"`
	Name         string `db:"name" json:"name"`
	PasswordHash string `db:"password_hash" json:"-"`
	PasswordSalt string `db:"password_salt" json:"-"`
	IsAdmin      bool   `db:"is_admin" json:"is_admin"`
	IsActive     bool   `db:"is_active" json:"is_active"`
}
