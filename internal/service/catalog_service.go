package service

import (
	"errors"
	"fmt"
	"time"

	"go-jossydiva-api/internal/model"
	"go-jossydiva-api/internal/pricing"
	"go-jossydiva-api/internal/repository"
	"go-jossydiva-api/internal/ws"
	"go-jossydiva-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrMediaNotFound   = errors.New("media not found")
)

// ProductView is a product plus its resolved customer-facing price.
// WebsitePrice is nil when no discount is currently active.
type ProductView struct {
	model.Product
	WebsitePrice *int64 `json:"website_price,omitempty"`
}

type CatalogService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*ProductView, error)
	DeleteProduct(id uuid.UUID, userID string) error
	DeleteMedia(productID, mediaID uuid.UUID) error
	GetProducts(filter repository.ProductFilter) ([]ProductView, error)
	GetProduct(id uuid.UUID) (*ProductView, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	now         func() time.Time
}

func NewCatalogService(pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		db:          db,
		wsHub:       hub,
		now:         time.Now,
	}
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

func (s *catalogService) view(p model.Product) ProductView {
	v := ProductView{Product: p}
	if price, ok := pricing.ResolvePrice(p.SellingPrice, pricing.FromProduct(&p), s.now()); ok {
		v.WebsitePrice = &price
	}
	return v
}

func (s *catalogService) CreateProduct(req *model.Product, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.wsHub.BroadcastEvent(ws.EventStockUpdate, map[string]interface{}{
		"action": "product_created",
		"product": map[string]interface{}{
			"id":       req.ID,
			"name":     req.Name,
			"category": req.Category,
			"quantity": req.Quantity,
		},
	})

	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*ProductView, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var updated model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&existing, "id = ?", id).Error; err != nil {
			return ErrProductNotFound
		}

		oldQuantity := existing.Quantity

		existing.Name = req.Name
		existing.Description = req.Description
		existing.Category = req.Category
		// CostPrice is intentionally not copied: immutable post-creation.
		existing.SellingPrice = req.SellingPrice
		existing.Quantity = req.Quantity
		existing.VisibleOnWebsite = req.VisibleOnWebsite
		existing.DiscountType = req.DiscountType
		existing.DiscountValue = req.DiscountValue
		existing.DiscountStartAt = req.DiscountStartAt
		existing.DiscountEndAt = req.DiscountEndAt
		existing.UpdatedBy = userID
		existing.UpdatedByUserID = &userID

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		updated = existing

		if oldQuantity != existing.Quantity {
			s.wsHub.BroadcastEvent(ws.EventStockUpdate, map[string]interface{}{
				"action": "product_updated",
				"product": map[string]interface{}{
					"id":           existing.ID,
					"name":         existing.Name,
					"old_quantity": oldQuantity,
					"new_quantity": existing.Quantity,
				},
			})
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	v := s.view(updated)
	return &v, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, userID string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *catalogService) DeleteMedia(productID, mediaID uuid.UUID) error {
	if err := s.productRepo.DeleteMedia(productID, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) GetProducts(filter repository.ProductFilter) ([]ProductView, error) {
	products, err := s.productRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, s.view(p))
	}
	return views, nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*ProductView, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	v := s.view(*product)
	return &v, nil
}
