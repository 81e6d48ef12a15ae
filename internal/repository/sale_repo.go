package repository

import (
	"time"

	"go-jossydiva-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindInRange(start, end *time.Time) ([]model.Sale, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items").Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").Preload("Items.Product").First(&sale, "id = ?", id).Error
	return &sale, err
}

// FindInRange loads sales with created_at in [start, end). Nil bounds
// are unbounded, matching the reporting window semantics.
func (r *saleRepo) FindInRange(start, end *time.Time) ([]model.Sale, error) {
	query := r.db.Preload("Items")
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at < ?", *end)
	}

	var sales []model.Sale
	err := query.Order("created_at ASC").Find(&sales).Error
	return sales, err
}
