package vendors

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
)

const vendorColumns = `
	id, name, contact_name, email, phone, status,
	deposit_balance, deposit_total, minimum_deposit, last_deposit_at,
	bank_info, notification_preferences,
	warehouse_address, warehouse_ward, warehouse_district, warehouse_city, warehouse_phone,
	created_at, updated_at`

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL vendor repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context, q ListQuery) ([]*Vendor, int, error) {
	var (
		where []string
		args  []interface{}
	)
	if q.Status != "" {
		args = append(args, q.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vendors"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vendors: %w", err)
	}

	args = append(args, q.Limit, (q.Page-1)*q.Limit)
	query := "SELECT" + vendorColumns + " FROM vendors" + clause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	list := []*Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, v)
	}
	return list, total, rows.Err()
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Vendor, error) {
	return scanVendor(r.db.QueryRowContext(ctx, `
		UPDATE vendors SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING`+vendorColumns, status, id))
}

func (r *postgresRepository) GetProfile(ctx context.Context, scope tenant.Vendor) (*Vendor, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	return scanVendor(r.db.QueryRowContext(ctx, "SELECT"+vendorColumns+" FROM vendors WHERE id = $1", vendorID))
}

func (r *postgresRepository) UpdateSettings(ctx context.Context, scope tenant.Vendor, req UpdateSettingsRequest) (*Vendor, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}

	var bankInfo, prefs interface{}
	if req.BankInfo != nil {
		b, err := json.Marshal(req.BankInfo)
		if err != nil {
			return nil, err
		}
		bankInfo = b
	}
	if req.NotificationPreferences != nil {
		b, err := json.Marshal(req.NotificationPreferences)
		if err != nil {
			return nil, err
		}
		prefs = b
	}
	var address, ward, district, city, phone interface{}
	if w := req.Warehouse; w != nil {
		address, ward, district, city, phone = w.Address, w.Ward, w.District, w.City, w.Phone
	}

	return scanVendor(r.db.QueryRowContext(ctx, `
		UPDATE vendors SET
		  bank_info                = COALESCE($1::jsonb, bank_info),
		  notification_preferences = notification_preferences || COALESCE($2::jsonb, '{}'::jsonb),
		  warehouse_address        = COALESCE($3, warehouse_address),
		  warehouse_ward           = COALESCE($4, warehouse_ward),
		  warehouse_district       = COALESCE($5, warehouse_district),
		  warehouse_city           = COALESCE($6, warehouse_city),
		  warehouse_phone          = COALESCE($7, warehouse_phone),
		  updated_at               = NOW()
		WHERE id = $8
		RETURNING`+vendorColumns,
		bankInfo, prefs, address, ward, district, city, phone, vendorID))
}

// ── Scanners ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanVendor(row rowScanner) (*Vendor, error) {
	v := &Vendor{}
	var lastDepositAt sql.NullTime
	var bankInfo, prefs []byte
	err := row.Scan(&v.ID, &v.Name, &v.ContactName, &v.Email, &v.Phone, &v.Status,
		&v.DepositBalance, &v.DepositTotal, &v.MinimumDeposit, &lastDepositAt,
		&bankInfo, &prefs,
		&v.Warehouse.Address, &v.Warehouse.Ward, &v.Warehouse.District, &v.Warehouse.City, &v.Warehouse.Phone,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastDepositAt.Valid {
		v.LastDepositAt = &lastDepositAt.Time
	}
	if len(bankInfo) > 0 {
		if err := json.Unmarshal(bankInfo, &v.BankInfo); err != nil {
			return nil, fmt.Errorf("decode bank_info: %w", err)
		}
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &v.NotificationPreferences); err != nil {
			return nil, fmt.Errorf("decode notification_preferences: %w", err)
		}
	}
	if v.NotificationPreferences == nil {
		v.NotificationPreferences = map[string]bool{}
	}
	return v, nil
}
