package auth

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a portal account repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	a := &Account{}
	var vendorID uuid.NullUUID
	query := `
		SELECT id, email, password_hash, role, vendor_id, created_at, updated_at
		FROM portal_accounts
		WHERE email = $1
	`
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&vendorID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	if vendorID.Valid {
		a.VendorID = &vendorID.UUID
	}
	return a, nil
}
