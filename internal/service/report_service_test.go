package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jossydiva-api/internal/model"
	"go-jossydiva-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeSaleRepo struct {
	sales []model.Sale
}

func (f *fakeSaleRepo) FindAll() ([]model.Sale, error) { return f.sales, nil }

func (f *fakeSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSaleRepo) FindInRange(start, end *time.Time) ([]model.Sale, error) {
	return f.sales, nil
}

type fakeProductRepo struct {
	categories map[uuid.UUID]string
}

func (f *fakeProductRepo) Create(product *model.Product) error { return nil }

func (f *fakeProductRepo) FindAll(filter repository.ProductFilter) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) Update(product *model.Product) error { return nil }

func (f *fakeProductRepo) Delete(id uuid.UUID) error { return nil }

func (f *fakeProductRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error {
	return nil
}

func (f *fakeProductRepo) FindLowStock(threshold int) ([]model.Product, error) { return nil, nil }

func (f *fakeProductRepo) Count() (int64, error) { return 0, nil }

func (f *fakeProductRepo) CategoryIndex() (map[uuid.UUID]string, error) {
	return f.categories, nil
}

func (f *fakeProductRepo) DeleteMedia(productID, mediaID uuid.UUID) error { return nil }

type fakeOrderRepo struct{}

func (f *fakeOrderRepo) Create(order *model.Order) error { return nil }

func (f *fakeOrderRepo) FindAll(status *model.OrderStatus) ([]model.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) CountByStatus(status model.OrderStatus) (int64, error) { return 0, nil }

func (f *fakeOrderRepo) FindRecentByStatus(status model.OrderStatus, limit int) ([]model.Order, error) {
	return nil, nil
}

type fakeReportCache struct {
	store map[string][]byte
}

func (f *fakeReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, ok := f.store[key]
	return payload, ok, nil
}

func (f *fakeReportCache) Set(ctx context.Context, key string, payload []byte) error {
	f.store[key] = payload
	return nil
}

func (f *fakeReportCache) InvalidateAll(ctx context.Context) error {
	f.store = map[string][]byte{}
	return nil
}

func reportFixture(sales []model.Sale, now time.Time) *reportService {
	return &reportService{
		saleRepo:    &fakeSaleRepo{sales: sales},
		productRepo: &fakeProductRepo{categories: map[uuid.UUID]string{}},
		orderRepo:   &fakeOrderRepo{},
		reportCache: &fakeReportCache{store: map[string][]byte{}},
		now:         func() time.Time { return now },
	}
}

func recordedSale(at time.Time, total, profit int64) model.Sale {
	return model.Sale{
		BaseModel:     model.BaseModel{ID: uuid.New(), CreatedAt: at},
		PaymentMethod: model.PaymentCash,
		Source:        model.SourceWalkIn,
		TotalAmount:   total,
		Profit:        profit,
	}
}

func TestCustomReportEndDateInclusive(t *testing.T) {
	onLastDay := recordedSale(time.Date(2026, 1, 12, 20, 0, 0, 0, time.UTC), 5000, 2000)
	dayAfter := recordedSale(time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC), 3000, 1000)
	svc := reportFixture([]model.Sale{onLastDay, dayAfter}, time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC))

	report, err := svc.Custom("2026-01-10", "2026-01-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.StartDate != "2026-01-10" {
		t.Errorf("StartDate = %q, want 2026-01-10", report.StartDate)
	}
	if report.EndDate != "2026-01-12" {
		t.Errorf("EndDate = %q, want the requested inclusive end 2026-01-12", report.EndDate)
	}
	if report.Revenue != 5000 {
		t.Errorf("Revenue = %d, want 5000 (end-day sale in, next-day sale out)", report.Revenue)
	}
	if report.TransactionCount != 1 {
		t.Errorf("TransactionCount = %d, want 1", report.TransactionCount)
	}
}

func TestCustomReportRejectsInvertedRange(t *testing.T) {
	svc := reportFixture(nil, time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC))

	if _, err := svc.Custom("2026-01-12", "2026-01-10"); !errors.Is(err, ErrBadDateFormat) {
		t.Fatalf("expected ErrBadDateFormat, got %v", err)
	}
}

func TestDailyReportDefaultsToToday(t *testing.T) {
	today := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	sale := recordedSale(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), 8000, 3000)
	yesterday := recordedSale(time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), 9000, 4000)
	svc := reportFixture([]model.Sale{sale, yesterday}, today)

	report, err := svc.Daily("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.StartDate != "2026-03-05" || report.EndDate != "2026-03-05" {
		t.Errorf("dates = %q..%q, want 2026-03-05 on both sides", report.StartDate, report.EndDate)
	}
	if report.Revenue != 8000 {
		t.Errorf("Revenue = %d, want 8000", report.Revenue)
	}
}

func TestDailyReportBadDate(t *testing.T) {
	svc := reportFixture(nil, time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC))

	if _, err := svc.Daily("05-03-2026"); !errors.Is(err, ErrBadDateFormat) {
		t.Fatalf("expected ErrBadDateFormat, got %v", err)
	}
}
