package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-jossydiva-api/internal/cache"
	"go-jossydiva-api/internal/model"
	"go-jossydiva-api/internal/pricing"
	"go-jossydiva-api/internal/repository"
	"go-jossydiva-api/pkg/logger"

	"github.com/google/uuid"
)

var ErrBadDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

const dateLayout = "2006-01-02"

// ReportData is the display-ready shape of one reporting window.
// MarginPercent is omitted entirely when revenue is zero.
type ReportData struct {
	Kind             string                        `json:"kind"`
	StartDate        string                        `json:"start_date,omitempty"`
	EndDate          string                        `json:"end_date,omitempty"`
	Revenue          int64                         `json:"revenue"`
	Profit           int64                         `json:"profit"`
	MarginPercent    *float64                      `json:"margin_percent,omitempty"`
	TransactionCount int                           `json:"transaction_count"`
	Categories       []pricing.CategoryTotal       `json:"categories"`
	ByPaymentMethod  map[model.PaymentMethod]int64 `json:"by_payment_method"`
	BySource         map[model.SaleSource]int64    `json:"by_source"`
	GeneratedAt      time.Time                     `json:"generated_at"`
}

// DashboardData is the landing-screen aggregate.
type DashboardData struct {
	Today              *ReportData     `json:"today"`
	TotalProducts      int64           `json:"total_products"`
	LowStock           []model.Product `json:"low_stock"`
	PendingOrdersCount int64           `json:"pending_orders_count"`
	PendingOrders      []OrderView     `json:"pending_orders"`
}

type ReportService interface {
	Daily(date string) (*ReportData, error)
	Weekly() (*ReportData, error)
	Monthly() (*ReportData, error)
	Custom(startDate, endDate string) (*ReportData, error)
	Dashboard() (*DashboardData, error)
}

type reportService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	reportCache cache.ReportCache
	now         func() time.Time
}

func NewReportService(sRepo repository.SaleRepository, pRepo repository.ProductRepository, oRepo repository.OrderRepository, reportCache cache.ReportCache) ReportService {
	return &reportService{
		saleRepo:    sRepo,
		productRepo: pRepo,
		orderRepo:   oRepo,
		reportCache: reportCache,
		now:         time.Now,
	}
}

// build folds the sales inside the window into a ReportData, going
// through the cache when a payload for the same key is fresh.
// startDate and endDate are the display labels; for windows with an
// inclusive end the label differs from the exclusive bound in w.
func (s *reportService) build(kind, cacheKey string, w pricing.Window, startDate, endDate string) (*ReportData, error) {
	ctx := context.Background()

	if payload, hit, err := s.reportCache.Get(ctx, cacheKey); err != nil {
		logger.Log.Warn().Err(err).Str("key", cacheKey).Msg("report cache read failed")
	} else if hit {
		var cached ReportData
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	sales, err := s.saleRepo.FindInRange(w.Start, w.End)
	if err != nil {
		return nil, err
	}

	categories, err := s.productRepo.CategoryIndex()
	if err != nil {
		return nil, err
	}

	summary := pricing.Aggregate(sales, w, func(id uuid.UUID) string {
		return categories[id]
	})

	report := &ReportData{
		Kind:             kind,
		StartDate:        startDate,
		EndDate:          endDate,
		Revenue:          summary.Revenue,
		Profit:           summary.Profit,
		TransactionCount: summary.TransactionCount,
		Categories:       summary.TopCategories(),
		ByPaymentMethod:  summary.ByPaymentMethod,
		BySource:         summary.BySource,
		GeneratedAt:      s.now(),
	}
	if margin, ok := summary.MarginPercent(); ok {
		report.MarginPercent = &margin
	}

	if payload, err := json.Marshal(report); err == nil {
		if err := s.reportCache.Set(ctx, cacheKey, payload); err != nil {
			logger.Log.Warn().Err(err).Str("key", cacheKey).Msg("report cache write failed")
		}
	}

	return report, nil
}

// Daily covers one calendar day; an empty date means today.
func (s *reportService) Daily(date string) (*ReportData, error) {
	if date == "" {
		date = s.now().Format(dateLayout)
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrBadDateFormat
	}
	return s.build("daily", "daily:"+date, pricing.DayWindow(day), date, date)
}

func (s *reportService) Weekly() (*ReportData, error) {
	now := s.now()
	w := pricing.LastDaysWindow(now, 7)
	return s.build("weekly", "weekly:"+now.Format(dateLayout), w,
		w.Start.Format(dateLayout), now.Format(dateLayout))
}

// Monthly is unrestricted: the simplified report screen shows all
// recorded sales. Explicit bounds belong to the custom report.
func (s *reportService) Monthly() (*ReportData, error) {
	return s.build("monthly", "monthly", pricing.Window{}, "", "")
}

func (s *reportService) Custom(startDate, endDate string) (*ReportData, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, ErrBadDateFormat
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, ErrBadDateFormat
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date precedes start date", ErrBadDateFormat)
	}

	// End date is inclusive on the form, so the half-open window ends
	// the following midnight. The labels echo the dates as requested.
	return s.build("custom",
		fmt.Sprintf("custom:%s:%s", startDate, endDate),
		pricing.RangeWindow(start, end.AddDate(0, 0, 1)),
		startDate, endDate)
}

func (s *reportService) Dashboard() (*DashboardData, error) {
	date := s.now().Format(dateLayout)
	today, err := s.build("today", "today:"+date, pricing.DayWindow(s.now()), date, date)
	if err != nil {
		return nil, err
	}

	totalProducts, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock(model.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	pendingCount, err := s.orderRepo.CountByStatus(model.OrderPendingPayment)
	if err != nil {
		return nil, err
	}

	pending, err := s.orderRepo.FindRecentByStatus(model.OrderPendingPayment, 5)
	if err != nil {
		return nil, err
	}
	pendingViews := make([]OrderView, 0, len(pending))
	for _, o := range pending {
		pendingViews = append(pendingViews, orderView(o))
	}

	return &DashboardData{
		Today:              today,
		TotalProducts:      totalProducts,
		LowStock:           lowStock,
		PendingOrdersCount: pendingCount,
		PendingOrders:      pendingViews,
	}, nil
}
