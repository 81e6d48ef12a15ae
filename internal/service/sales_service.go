package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jossydiva-api/internal/cache"
	"go-jossydiva-api/internal/model"
	"go-jossydiva-api/internal/pricing"
	"go-jossydiva-api/internal/repository"
	"go-jossydiva-api/internal/ws"
	"go-jossydiva-api/pkg/logger"
	"go-jossydiva-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ReceiptView is the payload the console renders as a receipt. PDF
// generation is out of scope; the client gets structured data.
type ReceiptView struct {
	ReceiptNo     string              `json:"receipt_no"`
	Business      string              `json:"business"`
	CreatedAt     time.Time           `json:"created_at"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	Source        model.SaleSource    `json:"source"`
	Lines         []ReceiptLine       `json:"lines"`
	TotalAmount   int64               `json:"total_amount"`
}

type ReceiptLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

type SalesService interface {
	RecordSale(req *model.Sale, userID string) (*model.Sale, error)
	GetSales() ([]model.Sale, error)
	GetSale(id uuid.UUID) (*model.Sale, error)
	GetReceipt(id uuid.UUID) (*ReceiptView, error)
}

type salesService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	reportCache cache.ReportCache
	now         func() time.Time
}

func NewSalesService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, db *gorm.DB, hub *ws.Hub, reportCache cache.ReportCache) SalesService {
	return &salesService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		db:          db,
		wsHub:       hub,
		reportCache: reportCache,
		now:         time.Now,
	}
}

// newReceiptNo builds a short unique receipt identifier.
func newReceiptNo() string {
	return "JD-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
}

// RecordSale creates a sale and decrements stock for every line item
// in one transaction. Unit prices are snapshots of the product's
// effective price (resolved discount, else selling price); unit costs
// snapshot the cost price. Client-sent amounts are ignored.
func (s *salesService) RecordSale(req *model.Sale, userID string) (*model.Sale, error) {
	if req.Source == "" {
		req.Source = model.SourceWalkIn
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	now := s.now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range req.Items {
			item := &req.Items[i]

			var product model.Product
			if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", item.ProductID).Error; err != nil {
				return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}

			if product.Quantity < item.Quantity {
				return fmt.Errorf("%w for '%s': %d requested, %d available",
					ErrInsufficientStock, product.Name, item.Quantity, product.Quantity)
			}

			unitPrice := product.SellingPrice
			if resolved, ok := pricing.ResolvePrice(product.SellingPrice, pricing.FromProduct(&product), now); ok {
				unitPrice = resolved
			}
			item.UnitPrice = unitPrice
			item.UnitCost = product.CostPrice

			if err := s.productRepo.UpdateStock(tx, product.ID, product.Quantity-item.Quantity, userID); err != nil {
				return err
			}
		}

		req.ReceiptNo = newReceiptNo()
		req.ComputeTotals()
		req.CreatedBy = userID
		req.UpdatedBy = userID
		req.CreatedByUserID = &userID

		return tx.Create(req).Error
	})

	if err != nil {
		return nil, err
	}

	if err := s.reportCache.InvalidateAll(context.Background()); err != nil {
		logger.Log.Warn().Err(err).Msg("failed to invalidate report cache after sale")
	}

	s.wsHub.BroadcastEvent(ws.EventSaleRecorded, map[string]interface{}{
		"sale": map[string]interface{}{
			"id":             req.ID,
			"receipt_no":     req.ReceiptNo,
			"total_amount":   req.TotalAmount,
			"payment_method": req.PaymentMethod,
			"source":         req.Source,
		},
	})

	return req, nil
}

func (s *salesService) GetSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *salesService) GetSale(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

func (s *salesService) GetReceipt(id uuid.UUID) (*ReceiptView, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, ErrSaleNotFound
	}

	receipt := &ReceiptView{
		ReceiptNo:     sale.ReceiptNo,
		Business:      "Jossy-Diva Collections",
		CreatedAt:     sale.CreatedAt,
		PaymentMethod: sale.PaymentMethod,
		Source:        sale.Source,
		TotalAmount:   sale.TotalAmount,
	}
	for _, item := range sale.Items {
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: int64(item.Quantity) * item.UnitPrice,
		})
	}
	return receipt, nil
}
