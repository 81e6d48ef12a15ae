package repository

import (
	"go-jossydiva-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindAll(status *model.OrderStatus) ([]model.Order, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	CountByStatus(status model.OrderStatus) (int64, error)
	FindRecentByStatus(status model.OrderStatus, limit int) ([]model.Order, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepo) FindAll(status *model.OrderStatus) ([]model.Order, error) {
	query := r.db.Preload("Items")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var orders []model.Order
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").First(&order, "id = ?", id).Error
	return &order, err
}

func (r *orderRepo) CountByStatus(status model.OrderStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *orderRepo) FindRecentByStatus(status model.OrderStatus, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
