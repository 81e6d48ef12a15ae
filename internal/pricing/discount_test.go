package pricing

import (
	"testing"
	"time"

	"go-jossydiva-api/internal/model"
)

func percentage(v int64) *Discount {
	return &Discount{Type: model.DiscountPercentage, Value: v}
}

func fixed(v int64) *Discount {
	return &Discount{Type: model.DiscountFixed, Value: v}
}

func TestResolvePriceNoDiscount(t *testing.T) {
	now := time.Now()
	for _, base := range []int64{0, 1, 999, 15000, 1_000_000} {
		if _, ok := ResolvePrice(base, nil, now); ok {
			t.Errorf("ResolvePrice(%d, nil) resolved, want no discount", base)
		}
	}
}

func TestResolvePricePercentage(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		base  int64
		value int64
		want  int64
	}{
		{"ten percent off 15000", 15000, 10, 13500},
		{"zero percent", 15000, 0, 15000},
		{"full discount", 15000, 100, 0},
		{"rounds half up", 10, 25, 8},   // 7.5 -> 8
		{"rounds down", 999, 5, 949},    // 949.05 -> 949
		{"value above 100 clamps", 5000, 150, 0},
		{"negative value clamps", 5000, -10, 5000},
		{"zero base", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolvePrice(tt.base, percentage(tt.value), now)
			if !ok {
				t.Fatal("expected discount to resolve")
			}
			if got != tt.want {
				t.Errorf("ResolvePrice(%d, %d%%) = %d, want %d", tt.base, tt.value, got, tt.want)
			}
		})
	}
}

func TestResolvePricePercentageNeverExceedsBase(t *testing.T) {
	now := time.Now()
	for base := int64(0); base <= 2000; base += 37 {
		for v := int64(0); v <= 100; v += 7 {
			got, ok := ResolvePrice(base, percentage(v), now)
			if !ok {
				t.Fatalf("ResolvePrice(%d, %d%%) did not resolve", base, v)
			}
			if got > base {
				t.Fatalf("ResolvePrice(%d, %d%%) = %d exceeds base", base, v, got)
			}
			if got < 0 {
				t.Fatalf("ResolvePrice(%d, %d%%) = %d is negative", base, v, got)
			}
		}
	}
}

func TestResolvePriceFixed(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		base  int64
		value int64
		want  int64
	}{
		{"simple deduction", 5000, 1000, 4000},
		{"zero deduction", 5000, 0, 5000},
		{"exact base", 5000, 5000, 0},
		{"over base floors at zero", 5000, 9000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolvePrice(tt.base, fixed(tt.value), now)
			if !ok {
				t.Fatal("expected discount to resolve")
			}
			if got != tt.want {
				t.Errorf("ResolvePrice(%d, fixed %d) = %d, want %d", tt.base, tt.value, got, tt.want)
			}
		})
	}
}

func TestResolvePriceWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name    string
		startAt *time.Time
		endAt   *time.Time
		wantOK  bool
	}{
		{"no bounds always on", nil, nil, true},
		{"inside window", &before, &after, true},
		{"not yet started", &after, nil, false},
		{"already ended", nil, &before, false},
		{"end bound exclusive", &before, &now, false},
		{"start bound inclusive", &now, &after, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := percentage(10)
			d.StartAt = tt.startAt
			d.EndAt = tt.endAt

			_, ok := ResolvePrice(15000, d, now)
			if ok != tt.wantOK {
				t.Errorf("resolved = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestFromProduct(t *testing.T) {
	if FromProduct(nil) != nil {
		t.Error("FromProduct(nil) should be nil")
	}
	if FromProduct(&model.Product{}) != nil {
		t.Error("product without discount should yield nil")
	}

	pct := model.DiscountPercentage
	p := &model.Product{DiscountType: &pct, DiscountValue: 10}
	d := FromProduct(p)
	if d == nil || d.Type != model.DiscountPercentage || d.Value != 10 {
		t.Errorf("FromProduct = %+v, want percentage/10", d)
	}
}
