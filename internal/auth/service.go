// internal/auth/service.go
package auth

import "context"

// Service defines the interface for staff account management.
type Service interface {
	Authenticate(ctx context.Context, userID, password string) (*User, error)
	CreateUser(ctx context.Context, userID, name, password string, isAdmin, isActive bool) (*User, error)
	EnsureDefaultAccounts(ctx context.Context) error
}
