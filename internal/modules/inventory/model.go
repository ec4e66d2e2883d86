package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinQuantityIncrease = 1
	MaxQuantityIncrease = 10000
)

// VendorProduct is a catalog product a vendor holds on consignment.
// CurrentStock and TotalEarnings are derived on read and never stored.
type VendorProduct struct {
	ID                uuid.UUID       `json:"id"`
	VendorID          uuid.UUID       `json:"vendorId"`
	ProductID         uuid.UUID       `json:"productId"`
	ConsignmentPrice  decimal.Decimal `json:"consignmentPrice"`
	DiscountPercent   decimal.Decimal `json:"discountPercent"`
	QuantityConsigned int             `json:"quantityConsigned"`
	QuantitySold      int             `json:"quantitySold"`
	QuantityReturned  int             `json:"quantityReturned"`
	CommissionPerUnit decimal.Decimal `json:"commissionPerUnit"`
	Status            string          `json:"status"`
	CurrentStock      int             `json:"currentStock"`
	TotalEarnings     decimal.Decimal `json:"totalEarnings"`
	Product           *ProductSummary `json:"product,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ProductSummary is the joined catalog view. Detail fields are only filled by GetProduct.
type ProductSummary struct {
	Name        string           `json:"name"`
	SKU         string           `json:"sku"`
	ImageURL    string           `json:"imageUrl"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Status      *string          `json:"status,omitempty"`
}

// Derive fills the computed fields. A negative stock is reported as is.
func (p *VendorProduct) Derive() {
	p.CurrentStock = p.QuantityConsigned - p.QuantitySold - p.QuantityReturned
	p.TotalEarnings = p.CommissionPerUnit.Mul(decimal.NewFromInt(int64(p.QuantitySold)))
}

type IncreaseQuantityRequest struct {
	AdditionalQuantity int `json:"additionalQuantity" validate:"required,gte=1,lte=10000"`
}
