package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Columns is the vendor_products select list, aliased as vp.
const Columns = `
	vp.id, vp.vendor_id, vp.product_id, vp.consignment_price, vp.discount_percent,
	vp.quantity_consigned, vp.quantity_sold, vp.quantity_returned, vp.commission_per_unit,
	vp.status, vp.created_at, vp.updated_at`

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL-backed inventory repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListProducts(ctx context.Context, scope tenant.Vendor) ([]*VendorProduct, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+Columns+`, p.name, p.sku, p.image_url
		FROM vendor_products vp
		JOIN products p ON p.id = vp.product_id
		WHERE vp.vendor_id = $1
		ORDER BY vp.created_at DESC`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list vendor products: %w", err)
	}
	defer rows.Close()

	products := []*VendorProduct{}
	for rows.Next() {
		vp := &VendorProduct{Product: &ProductSummary{}}
		if err := rows.Scan(append(ScanDest(vp), &vp.Product.Name, &vp.Product.SKU, &vp.Product.ImageURL)...); err != nil {
			return nil, err
		}
		vp.Derive()
		products = append(products, vp)
	}
	return products, rows.Err()
}

func (r *postgresRepo) GetProduct(ctx context.Context, scope tenant.Vendor, id uuid.UUID) (*VendorProduct, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	vp := &VendorProduct{Product: &ProductSummary{}}
	var (
		description, status string
		price               decimal.Decimal
		stock               int
	)
	err = r.db.QueryRowContext(ctx, `
		SELECT`+Columns+`, p.name, p.sku, p.image_url, p.description, p.price, p.stock, p.status
		FROM vendor_products vp
		JOIN products p ON p.id = vp.product_id
		WHERE vp.id = $1 AND vp.vendor_id = $2`, id, vendorID).
		Scan(append(ScanDest(vp),
			&vp.Product.Name, &vp.Product.SKU, &vp.Product.ImageURL,
			&description, &price, &stock, &status)...)
	if err != nil {
		return nil, err
	}
	vp.Product.Description = &description
	vp.Product.Price = &price
	vp.Product.Stock = &stock
	vp.Product.Status = &status
	vp.Derive()
	return vp, nil
}

// IncreaseQuantity adds delta in a single UPDATE; there is no read-then-write.
func (r *postgresRepo) IncreaseQuantity(ctx context.Context, scope tenant.Vendor, id uuid.UUID, delta int) (*VendorProduct, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	vp := &VendorProduct{}
	err = r.db.QueryRowContext(ctx, `
		UPDATE vendor_products vp
		SET quantity_consigned = vp.quantity_consigned + $1, updated_at = NOW()
		WHERE vp.id = $2 AND vp.vendor_id = $3
		RETURNING`+Columns, delta, id, vendorID).
		Scan(ScanDest(vp)...)
	if err != nil {
		return nil, err
	}
	vp.Derive()
	return vp, nil
}

// ScanDest returns scan targets matching Columns.
func ScanDest(vp *VendorProduct) []interface{} {
	return []interface{}{
		&vp.ID, &vp.VendorID, &vp.ProductID, &vp.ConsignmentPrice, &vp.DiscountPercent,
		&vp.QuantityConsigned, &vp.QuantitySold, &vp.QuantityReturned, &vp.CommissionPerUnit,
		&vp.Status, &vp.CreatedAt, &vp.UpdatedAt,
	}
}
