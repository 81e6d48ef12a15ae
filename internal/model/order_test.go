package model

import "testing"

func TestStatusLabelRoundTrip(t *testing.T) {
	statuses := []OrderStatus{OrderPendingPayment, OrderPaid, OrderCompleted, OrderCancelled}
	for _, s := range statuses {
		got, known := OrderStatusFromLabel(s.Label())
		if !known || got != s {
			t.Errorf("round trip for %s: got %s (known=%v)", s, got, known)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw       string
		want      OrderStatus
		wantKnown bool
	}{
		{"pending", OrderPendingPayment, true},
		{"Completed", OrderCompleted, true},
		{"COMPLETED", OrderCompleted, true},
		{"PENDING_PAYMENT", OrderPendingPayment, true},
		{"cancelled", OrderCancelled, true},
		{"paid", OrderPaid, true},
		{"  paid  ", OrderPaid, true},
		{"BOGUS", OrderPendingPayment, false},
		{"", OrderPendingPayment, false},
	}

	for _, tt := range tests {
		got, known := NormalizeStatus(tt.raw)
		if got != tt.want || known != tt.wantKnown {
			t.Errorf("NormalizeStatus(%q) = %s/%v, want %s/%v", tt.raw, got, known, tt.want, tt.wantKnown)
		}
	}
}

func TestTerminal(t *testing.T) {
	if !OrderCompleted.Terminal() || !OrderCancelled.Terminal() {
		t.Error("completed and cancelled must be terminal")
	}
	if OrderPendingPayment.Terminal() || OrderPaid.Terminal() {
		t.Error("pending and paid must not be terminal")
	}
}

func TestCanTransitionWithoutPaidStage(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPendingPayment, OrderCompleted, true},
		{OrderPendingPayment, OrderCancelled, true},
		{OrderPendingPayment, OrderPaid, false},
		{OrderPendingPayment, OrderPendingPayment, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderCompleted, OrderPendingPayment, false},
		{OrderCancelled, OrderCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to, false); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionWithPaidStage(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPendingPayment, OrderPaid, true},
		{OrderPendingPayment, OrderCancelled, true},
		{OrderPendingPayment, OrderCompleted, false},
		{OrderPaid, OrderCompleted, true},
		{OrderPaid, OrderCancelled, true},
		{OrderPaid, OrderPendingPayment, false},
		{OrderCompleted, OrderPaid, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to, true); got != tt.want {
			t.Errorf("%s -> %s (paid stage) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestFulfilling(t *testing.T) {
	if !OrderCompleted.Fulfilling(false) || OrderPaid.Fulfilling(false) {
		t.Error("without the paid stage, completion commits stock")
	}
	if !OrderPaid.Fulfilling(true) || OrderCompleted.Fulfilling(true) {
		t.Error("with the paid stage, the paid hop commits stock")
	}
	if OrderCancelled.Fulfilling(true) || OrderCancelled.Fulfilling(false) {
		t.Error("cancellation never commits stock")
	}
}

func TestOrderComputeTotal(t *testing.T) {
	order := Order{Items: []OrderItem{
		{Quantity: 2, UnitPrice: 15000},
		{Quantity: 1, UnitPrice: 8000},
	}}
	order.ComputeTotal()
	if order.TotalAmount != 38000 {
		t.Errorf("total = %d, want 38000", order.TotalAmount)
	}
}

func TestSaleComputeTotals(t *testing.T) {
	sale := Sale{Items: []SaleItem{
		{Quantity: 2, UnitPrice: 15000, UnitCost: 9000},
		{Quantity: 1, UnitPrice: 8000, UnitCost: 10000}, // loss-leader line
	}}
	sale.ComputeTotals()
	if sale.TotalAmount != 38000 {
		t.Errorf("total = %d, want 38000", sale.TotalAmount)
	}
	if sale.Profit != 10000 {
		t.Errorf("profit = %d, want 10000", sale.Profit)
	}
}

func TestUnknownStatusLabelFallsBack(t *testing.T) {
	if got := OrderStatus("SHIPPED").Label(); got != "pending" {
		t.Errorf("unknown status label = %q, want pending fallback", got)
	}
}
