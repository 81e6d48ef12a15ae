package validator

import (
	"testing"
	"time"

	"go-jossydiva-api/internal/model"

	"github.com/google/uuid"
)

func discountType(t model.DiscountType) *model.DiscountType {
	return &t
}

func validProduct() model.Product {
	return model.Product{
		Name:         "Ankara Gown",
		Category:     "Clothes",
		CostPrice:    8000,
		SellingPrice: 15000,
		Quantity:     4,
	}
}

func TestValidateProductDiscount(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	tests := []struct {
		name    string
		mutate  func(p *model.Product)
		wantErr bool
	}{
		{
			name:   "no discount",
			mutate: func(p *model.Product) {},
		},
		{
			name: "percentage within bounds",
			mutate: func(p *model.Product) {
				p.DiscountType = discountType(model.DiscountPercentage)
				p.DiscountValue = 10
			},
		},
		{
			name: "fixed amount above 100 is fine",
			mutate: func(p *model.Product) {
				p.DiscountType = discountType(model.DiscountFixed)
				p.DiscountValue = 2000
			},
		},
		{
			name: "bounded window",
			mutate: func(p *model.Product) {
				p.DiscountType = discountType(model.DiscountPercentage)
				p.DiscountValue = 10
				p.DiscountStartAt = &start
				p.DiscountEndAt = &end
			},
		},
		{
			name: "unknown discount type",
			mutate: func(p *model.Product) {
				p.DiscountType = discountType("bogof")
			},
			wantErr: true,
		},
		{
			name: "percentage above 100",
			mutate: func(p *model.Product) {
				p.DiscountType = discountType(model.DiscountPercentage)
				p.DiscountValue = 150
			},
			wantErr: true,
		},
		{
			name: "window ends before it starts",
			mutate: func(p *model.Product) {
				p.DiscountType = discountType(model.DiscountPercentage)
				p.DiscountValue = 10
				p.DiscountStartAt = &end
				p.DiscountEndAt = &start
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)
			errs := ValidateStruct(&p)
			if tt.wantErr && len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			if !tt.wantErr && len(errs) > 0 {
				t.Fatalf("unexpected validation error: %s on tag %s", errs[0].FailedField, errs[0].Tag)
			}
		})
	}
}

func TestValidateSalePaymentMethod(t *testing.T) {
	sale := model.Sale{
		PaymentMethod: "barter",
		Items: []model.SaleItem{
			{ProductID: uuid.New(), Quantity: 1},
		},
	}
	errs := ValidateStruct(&sale)
	if len(errs) == 0 {
		t.Fatal("expected a validation error for unknown payment method")
	}
	if errs[0].Tag != "payment_method" {
		t.Fatalf("expected payment_method tag, got %q", errs[0].Tag)
	}

	sale.PaymentMethod = model.PaymentCash
	if errs := ValidateStruct(&sale); len(errs) > 0 {
		t.Fatalf("unexpected validation error: %s on tag %s", errs[0].FailedField, errs[0].Tag)
	}

	sale.Source = "carrier_pigeon"
	if errs := ValidateStruct(&sale); len(errs) == 0 {
		t.Fatal("expected a validation error for unknown sale source")
	}
}

func TestValidateUUIDRequired(t *testing.T) {
	sale := model.Sale{
		PaymentMethod: model.PaymentTransfer,
		Items: []model.SaleItem{
			{Quantity: 2},
		},
	}
	errs := ValidateStruct(&sale)
	if len(errs) == 0 {
		t.Fatal("expected a validation error for the zero product id")
	}
	if errs[0].Tag != "uuid_required" {
		t.Fatalf("expected uuid_required tag, got %q", errs[0].Tag)
	}
}
