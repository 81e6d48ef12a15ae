// Package pricing holds the pure money arithmetic shared by the
// catalog, sales and reporting layers: discount resolution and the
// sales aggregation folds. No I/O happens here.
package pricing

import (
	"time"

	"go-jossydiva-api/internal/model"
)

// Discount describes an active or scheduled price reduction. Value is
// percentage points for percentage discounts and a Naira amount for
// fixed ones. A nil bound leaves the window open on that side.
type Discount struct {
	Type    model.DiscountType
	Value   int64
	StartAt *time.Time
	EndAt   *time.Time
}

// FromProduct extracts the discount descriptor from a product, or nil
// when the product has none.
func FromProduct(p *model.Product) *Discount {
	if p == nil || p.DiscountType == nil {
		return nil
	}
	return &Discount{
		Type:    *p.DiscountType,
		Value:   p.DiscountValue,
		StartAt: p.DiscountStartAt,
		EndAt:   p.DiscountEndAt,
	}
}

// Active reports whether the discount window contains now.
func (d *Discount) Active(now time.Time) bool {
	if d.StartAt != nil && now.Before(*d.StartAt) {
		return false
	}
	if d.EndAt != nil && !now.Before(*d.EndAt) {
		return false
	}
	return true
}

// ResolvePrice computes the effective customer-facing price in whole
// Naira. ok is false when no discount applies (nil descriptor, inert
// window, or unknown type); callers then display the base price.
//
// Percentage values are clamped to [0,100] even though the form layer
// already enforces the range, so a bad stored value can never produce
// a price above base or below zero. Fixed discounts floor at zero.
// Rounding is half-up to the nearest whole unit; Naira carries no
// subunits in this domain.
func ResolvePrice(base int64, d *Discount, now time.Time) (int64, bool) {
	if d == nil || !d.Active(now) {
		return 0, false
	}

	switch d.Type {
	case model.DiscountPercentage:
		v := d.Value
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		return (base*(100-v) + 50) / 100, true
	case model.DiscountFixed:
		v := d.Value
		if v < 0 {
			v = 0
		}
		price := base - v
		if price < 0 {
			price = 0
		}
		return price, true
	}
	return 0, false
}
