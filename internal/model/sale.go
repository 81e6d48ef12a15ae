package model

import "github.com/google/uuid"

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

type SaleSource string

const (
	SourceWalkIn  SaleSource = "walk_in"
	SourceWebsite SaleSource = "website"
)

// Sale is a completed transaction, either walk-in or fulfilling a
// website order. Immutable once created; total and profit are computed
// server-side from the line items at sale time.
type Sale struct {
	BaseModel
	ReceiptNo     string        `gorm:"type:varchar(30);uniqueIndex;not null" json:"receipt_no"`
	Items         []SaleItem    `gorm:"foreignKey:SaleID" json:"items" validate:"required,min=1,dive"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method" validate:"required,payment_method"`
	Source        SaleSource    `gorm:"type:varchar(20);not null;default:'walk_in'" json:"source" validate:"omitempty,sale_source"`
	TotalAmount   int64         `gorm:"not null" json:"total_amount"`
	Profit        int64         `gorm:"not null" json:"profit"`

	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
}

// SaleItem is one line of a sale. UnitPrice and UnitCost are snapshots
// of the product's prices at sale time.
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product   Product   `json:"product,omitempty" validate:"-"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	UnitCost  int64     `gorm:"not null" json:"unit_cost"`
}

// ComputeTotals recalculates TotalAmount and Profit from the line
// items. Called before persisting; client-sent totals are ignored.
func (s *Sale) ComputeTotals() {
	var total, profit int64
	for _, item := range s.Items {
		total += int64(item.Quantity) * item.UnitPrice
		profit += int64(item.Quantity) * (item.UnitPrice - item.UnitCost)
	}
	s.TotalAmount = total
	s.Profit = profit
}
