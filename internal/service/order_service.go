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
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrUnknownStatus     = errors.New("unknown order status")
)

// OrderView is an order with its compact status label for the console.
type OrderView struct {
	model.Order
	StatusLabel string `json:"status_label"`
}

type OrderService interface {
	CreateOrder(req *model.Order) (*OrderView, error)
	GetOrders(statusLabel string) ([]OrderView, error)
	GetOrder(id uuid.UUID) (*OrderView, error)
	UpdateStatus(id uuid.UUID, rawStatus string, paymentMethod model.PaymentMethod, userID string) (*OrderView, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	reportCache cache.ReportCache
	// paidStage enables the intermediate paid hop in the lifecycle.
	// Revision-dependent behavior is a flag, never duplicated logic.
	paidStage bool
	now       func() time.Time
}

func NewOrderService(oRepo repository.OrderRepository, pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub, reportCache cache.ReportCache, paidStage bool) OrderService {
	return &orderService{
		orderRepo:   oRepo,
		productRepo: pRepo,
		db:          db,
		wsHub:       hub,
		reportCache: reportCache,
		paidStage:   paidStage,
		now:         time.Now,
	}
}

func newOrderNo() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
}

func orderView(o model.Order) OrderView {
	return OrderView{Order: o, StatusLabel: o.Status.Label()}
}

// CreateOrder takes a website-originated order. Item names and unit
// prices are snapshotted from the catalog (resolved discount price
// when one is active); the order starts pending and holds no stock.
func (s *orderService) CreateOrder(req *model.Order) (*OrderView, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	now := s.now()
	for i := range req.Items {
		item := &req.Items[i]
		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		item.Name = product.Name
		item.UnitPrice = product.SellingPrice
		if resolved, ok := pricing.ResolvePrice(product.SellingPrice, pricing.FromProduct(product), now); ok {
			item.UnitPrice = resolved
		}
	}

	req.OrderNo = newOrderNo()
	req.Status = model.OrderPendingPayment
	req.ComputeTotal()

	if err := s.orderRepo.Create(req); err != nil {
		return nil, err
	}

	s.wsHub.BroadcastEvent(ws.EventOrderStatus, map[string]interface{}{
		"action": "order_created",
		"order": map[string]interface{}{
			"id":       req.ID,
			"order_no": req.OrderNo,
			"status":   req.Status.Label(),
			"total":    req.TotalAmount,
		},
	})

	view := orderView(*req)
	return &view, nil
}

func (s *orderService) GetOrders(statusLabel string) ([]OrderView, error) {
	var filter *model.OrderStatus
	if statusLabel != "" {
		status, known := model.NormalizeStatus(statusLabel)
		if !known {
			logger.Log.Warn().Str("status", statusLabel).Msg("unknown status filter, defaulting to pending")
		}
		filter = &status
	}

	orders, err := s.orderRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView(o))
	}
	return views, nil
}

func (s *orderService) GetOrder(id uuid.UUID) (*OrderView, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	view := orderView(*order)
	return &view, nil
}

// UpdateStatus applies a lifecycle transition. Entering the fulfilling
// state (paid with the stage enabled, completed otherwise) decrements
// stock for every line item and fails whole if any line exceeds the
// available quantity, leaving the status untouched. Completion records
// the matching website sale; cancelling a paid order restores stock.
func (s *orderService) UpdateStatus(id uuid.UUID, rawStatus string, paymentMethod model.PaymentMethod, userID string) (*OrderView, error) {
	target, known := model.NormalizeStatus(rawStatus)
	if !known {
		// Never crash on an unexpected enum; surface it instead.
		logger.Log.Warn().Str("status", rawStatus).Msg("unrecognized order status in update request")
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, rawStatus)
	}
	if paymentMethod == "" {
		paymentMethod = model.PaymentTransfer
	}

	var updated model.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Set("gorm:query_option", "FOR UPDATE").Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			return ErrOrderNotFound
		}

		if !order.Status.CanTransition(target, s.paidStage) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status.Label(), target.Label())
		}

		if target.Fulfilling(s.paidStage) {
			if err := s.adjustStock(tx, order.Items, -1, userID); err != nil {
				return err
			}
		}

		if target == model.OrderCancelled && order.Status == model.OrderPaid {
			// Stock was committed at the paid hop; hand it back.
			if err := s.adjustStock(tx, order.Items, +1, userID); err != nil {
				return err
			}
		}

		if target == model.OrderCompleted {
			if err := s.recordFulfillmentSale(tx, &order, paymentMethod, userID); err != nil {
				return err
			}
		}

		order.Status = target
		order.UpdatedBy = userID
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		updated = order
		return nil
	})

	if err != nil {
		return nil, err
	}

	if err := s.reportCache.InvalidateAll(context.Background()); err != nil {
		logger.Log.Warn().Err(err).Msg("failed to invalidate report cache after order update")
	}

	s.wsHub.BroadcastEvent(ws.EventOrderStatus, map[string]interface{}{
		"action": "order_status_changed",
		"order": map[string]interface{}{
			"id":       updated.ID,
			"order_no": updated.OrderNo,
			"status":   updated.Status.Label(),
		},
	})

	view := orderView(updated)
	return &view, nil
}

// stockChange is one product's quantity after an order-driven
// adjustment.
type stockChange struct {
	productID   uuid.UUID
	newQuantity int
}

// planStockChanges computes the post-adjustment quantity for every
// line (sign -1 commits stock, +1 restores it) without touching the
// database. A commit fails whole when any line exceeds the available
// quantity, so nothing is applied and the order keeps its status.
func planStockChanges(items []model.OrderItem, sign int, lookup func(uuid.UUID) (*model.Product, error)) ([]stockChange, error) {
	changes := make([]stockChange, 0, len(items))
	for _, item := range items {
		product, err := lookup(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}

		newQuantity := product.Quantity + sign*item.Quantity
		if newQuantity < 0 {
			return nil, fmt.Errorf("%w for '%s': %d requested, %d available",
				ErrInsufficientStock, product.Name, item.Quantity, product.Quantity)
		}
		changes = append(changes, stockChange{productID: product.ID, newQuantity: newQuantity})
	}
	return changes, nil
}

// adjustStock plans the quantity moves under FOR UPDATE locks and
// applies them.
func (s *orderService) adjustStock(tx *gorm.DB, items []model.OrderItem, sign int, userID string) error {
	changes, err := planStockChanges(items, sign, func(id uuid.UUID) (*model.Product, error) {
		var product model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &product, nil
	})
	if err != nil {
		return err
	}

	for _, change := range changes {
		if err := s.productRepo.UpdateStock(tx, change.productID, change.newQuantity, userID); err != nil {
			return err
		}
	}
	return nil
}

// recordFulfillmentSale writes the sale record a completed website
// order becomes. Unit costs snapshot the current cost price.
func (s *orderService) recordFulfillmentSale(tx *gorm.DB, order *model.Order, paymentMethod model.PaymentMethod, userID string) error {
	sale := model.Sale{
		ReceiptNo:       newReceiptNo(),
		PaymentMethod:   paymentMethod,
		Source:          model.SourceWebsite,
		CreatedByUserID: &userID,
	}
	sale.CreatedBy = userID
	sale.UpdatedBy = userID

	for _, item := range order.Items {
		var product model.Product
		if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
			return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		sale.Items = append(sale.Items, model.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			UnitCost:  product.CostPrice,
		})
	}

	sale.ComputeTotals()
	return tx.Create(&sale).Error
}
