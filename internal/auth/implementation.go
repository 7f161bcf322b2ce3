// internal/auth/implementation.go
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/time/rate"

	"libdesk/internal/fault"
	"libdesk/internal/idgen"
)

// service implements the Service interface.
type service struct {
	db          *sqlx.DB
	rateLimiter *rate.Limiter
}

// NewService creates a new auth service instance.
func NewService(db *sqlx.DB) Service {
	return &service{
		db:          db,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 10), // 10 login attempts per second
	}
}

// Authenticate verifies a staff account's credentials. Inactive accounts
// are rejected the same way as wrong passwords.
func (s *service) Authenticate(ctx context.Context, userID, password string) (*User, error) {
	if !s.rateLimiter.Allow() {
		return nil, fmt.Errorf("rate limit exceeded")
	}
	if userID == "" || password == "" {
		return nil, fault.New(fault.Validation, "user id and password are mandatory")
	}

	user := &User{}
	query := `
		SELECT user_id, name, password_hash, password_salt, is_admin, is_active
		FROM users
		WHERE user_id = $1 AND is_active = TRUE
	`
	err := s.db.GetContext(ctx, user, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.New(fault.NotFound, "invalid credentials or user inactive")
	}
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not load user", err)
	}

	ok, err := verifyPassword(password, user.PasswordSalt, user.PasswordHash)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not verify password", err)
	}
	if !ok {
		return nil, fault.New(fault.NotFound, "invalid credentials or user inactive")
	}

	return user, nil
}

// CreateUser registers a new staff account. A duplicate user id is reported
// as a conflict via the primary key rather than a racy pre-check.
func (s *service) CreateUser(ctx context.Context, userID, name, password string, isAdmin, isActive bool) (*User, error) {
	if userID == "" || name == "" || password == "" {
		return nil, fault.New(fault.Validation, "user id, name, and password are mandatory")
	}

	hash, salt, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		UserID:       userID,
		Name:         name,
		PasswordHash: hash,
		PasswordSalt: salt,
		IsAdmin:      isAdmin,
		IsActive:     isActive,
	}

	query := `
		INSERT INTO users (user_id, name, password_hash, password_salt, is_admin, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query, user.UserID, user.Name, user.PasswordHash, user.PasswordSalt, user.IsAdmin, user.IsActive)
	if idgen.IsUniqueViolation(err) {
		return nil, fault.Newf(fault.Conflict, "user id %q already exists", userID)
	}
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "could not add user", err)
	}

	return user, nil
}

// EnsureDefaultAccounts seeds the adm/adm and user/user accounts on first
// run. Re-running is a no-op.
func (s *service) EnsureDefaultAccounts(ctx context.Context) error {
	defaults := []struct {
		userID   string
		name     string
		password string
		isAdmin  bool
	}{
		{"adm", "Admin User", "adm", true},
		{"user", "Normal User", "user", false},
	}

	query := `
		INSERT INTO users (user_id, name, password_hash, password_salt, is_admin, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (user_id) DO NOTHING
	`
	for _, d := range defaults {
		hash, salt, err := hashPassword(d.password)
		if err != nil {
			return fmt.Errorf("failed to hash default password: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, query, d.userID, d.name, hash, salt, d.isAdmin); err != nil {
			return fault.Wrap(fault.Storage, "could not seed default accounts", err)
		}
	}
	return nil
}
