package model

import (
	"strings"

	"github.com/google/uuid"
)

// OrderStatus is the storage vocabulary for order states. The API and
// the admin UI speak the compact labels (pending, paid, completed,
// cancelled); translation lives here and nowhere else.
type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderPaid           OrderStatus = "PAID"
	OrderCompleted      OrderStatus = "COMPLETED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

var statusLabels = map[OrderStatus]string{
	OrderPendingPayment: "pending",
	OrderPaid:           "paid",
	OrderCompleted:      "completed",
	OrderCancelled:      "cancelled",
}

var statusByLabel = map[string]OrderStatus{
	"pending":   OrderPendingPayment,
	"paid":      OrderPaid,
	"completed": OrderCompleted,
	"cancelled": OrderCancelled,
}

// Label returns the compact API label for a status. Unknown values
// fall back to "pending" rather than surfacing raw storage codes.
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "pending"
}

// OrderStatusFromLabel resolves a compact label to its storage code.
func OrderStatusFromLabel(label string) (OrderStatus, bool) {
	s, ok := statusByLabel[strings.ToLower(strings.TrimSpace(label))]
	return s, ok
}

// NormalizeStatus maps any raw status string, storage code or label,
// case-insensitively to a storage code. Unknown or empty input
// normalizes to PENDING_PAYMENT; callers log the fallback but must
// never fail on an unexpected value.
func NormalizeStatus(raw string) (OrderStatus, bool) {
	trimmed := strings.TrimSpace(raw)
	if s, ok := statusByLabel[strings.ToLower(trimmed)]; ok {
		return s, true
	}
	if _, ok := statusLabels[OrderStatus(strings.ToUpper(trimmed))]; ok {
		return OrderStatus(strings.ToUpper(trimmed)), true
	}
	return OrderPendingPayment, false
}

// Terminal reports whether no transition may leave this status.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// CanTransition reports whether the move from s to target is legal.
// With the paid stage enabled the lifecycle is
// pending -> paid -> completed, with cancellation possible from
// pending and paid; without it, pending -> completed | cancelled.
func (s OrderStatus) CanTransition(target OrderStatus, paidStage bool) bool {
	if s.Terminal() || s == target {
		return false
	}
	switch s {
	case OrderPendingPayment:
		if target == OrderCancelled {
			return true
		}
		if paidStage {
			return target == OrderPaid
		}
		return target == OrderCompleted
	case OrderPaid:
		return paidStage && (target == OrderCompleted || target == OrderCancelled)
	}
	return false
}

// Fulfilling reports whether entering this status commits the order's
// stock: the paid hop when that stage is enabled, otherwise completion.
func (s OrderStatus) Fulfilling(paidStage bool) bool {
	if paidStage {
		return s == OrderPaid
	}
	return s == OrderCompleted
}

// Order is a website-originated purchase awaiting fulfillment.
type Order struct {
	BaseModel
	OrderNo       string      `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_no"`
	CustomerName  string      `gorm:"type:varchar(255);not null" json:"customer_name" validate:"required"`
	CustomerPhone string      `gorm:"type:varchar(30)" json:"customer_phone"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items" validate:"required,min=1,dive"`
	TotalAmount   int64       `gorm:"not null" json:"total_amount"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING_PAYMENT'" json:"status"`
}

// OrderItem is one line of an order. Name and UnitPrice are snapshots
// taken at order intake so the order survives product edits.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
}

// ComputeTotal recalculates TotalAmount from the line items.
func (o *Order) ComputeTotal() {
	var total int64
	for _, item := range o.Items {
		total += int64(item.Quantity) * item.UnitPrice
	}
	o.TotalAmount = total
}
