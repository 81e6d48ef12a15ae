package pricing

import (
	"sort"
	"strings"
	"time"

	"go-jossydiva-api/internal/model"

	"github.com/google/uuid"
)

// Window is a half-open time interval [Start, End). A nil bound leaves
// that side unbounded, so the zero Window matches every sale.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && !t.Before(*w.End) {
		return false
	}
	return true
}

// DayWindow covers the calendar day containing t, in t's location.
func DayWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1)
	return Window{Start: &start, End: &end}
}

// LastDaysWindow covers [now-days, now).
func LastDaysWindow(now time.Time, days int) Window {
	start := now.AddDate(0, 0, -days)
	return Window{Start: &start, End: &now}
}

// RangeWindow covers [start, end).
func RangeWindow(start, end time.Time) Window {
	return Window{Start: &start, End: &end}
}

// Bucket accumulates revenue and profit for one breakdown key.
type Bucket struct {
	Revenue int64 `json:"revenue"`
	Profit  int64 `json:"profit"`
}

// CategoryTotal is one row of the sorted category breakdown.
type CategoryTotal struct {
	Category string `json:"category"`
	Revenue  int64  `json:"revenue"`
	Profit   int64  `json:"profit"`
}

// Summary holds the figures the dashboard and report screens display.
type Summary struct {
	Revenue          int64                         `json:"revenue"`
	Profit           int64                         `json:"profit"`
	TransactionCount int                           `json:"transaction_count"`
	ByCategory       map[string]Bucket             `json:"by_category"`
	ByPaymentMethod  map[model.PaymentMethod]int64 `json:"by_payment_method"`
	BySource         map[model.SaleSource]int64    `json:"by_source"`

	categoryOrder []string
}

// MarginPercent returns profit as a percentage of revenue. ok is false
// when revenue is zero; callers must omit the margin rather than
// render a division artifact.
func (s *Summary) MarginPercent() (float64, bool) {
	if s.Revenue == 0 {
		return 0, false
	}
	return float64(s.Profit) / float64(s.Revenue) * 100, true
}

// TopCategories returns the category breakdown sorted descending by
// revenue. Ties keep first-appearance order.
func (s *Summary) TopCategories() []CategoryTotal {
	rows := make([]CategoryTotal, 0, len(s.categoryOrder))
	for _, cat := range s.categoryOrder {
		b := s.ByCategory[cat]
		rows = append(rows, CategoryTotal{Category: cat, Revenue: b.Revenue, Profit: b.Profit})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue > rows[j].Revenue
	})
	return rows
}

// Aggregate folds sales inside the window into summary figures in a
// single pass. Category buckets are keyed per line item through
// categoryOf (looked up by product id at aggregation time); categories
// compare case-insensitively and an empty result buckets under
// "uncategorized".
func Aggregate(sales []model.Sale, w Window, categoryOf func(uuid.UUID) string) *Summary {
	summary := &Summary{
		ByCategory:      make(map[string]Bucket),
		ByPaymentMethod: make(map[model.PaymentMethod]int64),
		BySource:        make(map[model.SaleSource]int64),
	}

	for i := range sales {
		sale := &sales[i]
		if !w.Contains(sale.CreatedAt) {
			continue
		}

		summary.Revenue += sale.TotalAmount
		summary.Profit += sale.Profit
		summary.TransactionCount++
		summary.ByPaymentMethod[sale.PaymentMethod] += sale.TotalAmount
		summary.BySource[sale.Source] += sale.TotalAmount

		for _, item := range sale.Items {
			cat := ""
			if categoryOf != nil {
				cat = categoryOf(item.ProductID)
			}
			cat = strings.ToLower(strings.TrimSpace(cat))
			if cat == "" {
				cat = "uncategorized"
			}

			bucket, seen := summary.ByCategory[cat]
			if !seen {
				summary.categoryOrder = append(summary.categoryOrder, cat)
			}
			bucket.Revenue += int64(item.Quantity) * item.UnitPrice
			bucket.Profit += int64(item.Quantity) * (item.UnitPrice - item.UnitCost)
			summary.ByCategory[cat] = bucket
		}
	}

	return summary
}
