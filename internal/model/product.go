package model

import (
	"time"

	"github.com/google/uuid"
)

// DiscountType distinguishes the two supported discount shapes.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Product is a sellable item. CostPrice is set at creation and never
// changed through the update endpoint (business rule: margins are
// anchored to the purchase batch).
type Product struct {
	BaseModel
	Name             string         `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description      string         `gorm:"type:text" json:"description"`
	Category         string         `gorm:"type:varchar(100);index" json:"category" validate:"required"`
	CostPrice        int64          `gorm:"not null;default:0" json:"cost_price" validate:"gte=0"`
	SellingPrice     int64          `gorm:"not null;default:0" json:"selling_price" validate:"gte=0"`
	Quantity         int            `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	VisibleOnWebsite bool           `gorm:"default:false" json:"visible_on_website"`
	Media            []ProductMedia `gorm:"foreignKey:ProductID" json:"media,omitempty"`

	// Optional discount descriptor. Value is a percentage point count
	// for percentage discounts and a Naira amount for fixed ones. An
	// absent start/end bound means the window is open on that side.
	DiscountType    *DiscountType `gorm:"type:varchar(20)" json:"discount_type,omitempty" validate:"omitempty,discount_type"`
	DiscountValue   int64         `gorm:"default:0" json:"discount_value" validate:"gte=0"`
	DiscountStartAt *time.Time    `json:"discount_start_at,omitempty"`
	DiscountEndAt   *time.Time    `json:"discount_end_at,omitempty"`

	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
}

// ProductMedia is an image or video attached to a product. Rows are
// deleted independently of the parent product.
type ProductMedia struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Kind      string    `gorm:"type:varchar(10);not null" json:"kind" validate:"required,oneof=image video"`
	URL       string    `gorm:"type:text;not null" json:"url" validate:"required,url"`
}

// LowStockThreshold is the quantity at or below which a product is
// surfaced as a dashboard alert.
const LowStockThreshold = 5

// LowStock reports whether the product should appear in low-stock alerts.
func (p *Product) LowStock() bool {
	return p.Quantity <= LowStockThreshold
}

// Profit per unit. May be negative: a loss-leader is valid.
func (p *Product) UnitProfit() int64 {
	return p.SellingPrice - p.CostPrice
}
