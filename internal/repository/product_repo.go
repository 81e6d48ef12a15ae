package repository

import (
	"strings"

	"go-jossydiva-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilter narrows FindAll. Zero value matches everything.
type ProductFilter struct {
	Category string // case-insensitive exact match
	Search   string // case-insensitive substring on name
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	UpdateStock(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error
	FindLowStock(threshold int) ([]model.Product, error)
	Count() (int64, error)
	CategoryIndex() (map[uuid.UUID]string, error)
	DeleteMedia(productID, mediaID uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, error) {
	query := r.db.Preload("Media")
	if filter.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var products []model.Product
	err := query.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Media").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// UpdateStock takes *gorm.DB (tx) so it can run inside a transaction
func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   newQuantity,
			"updated_by": updatedBy,
		}).Error
}

func (r *productRepo) FindLowStock(threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("quantity <= ?", threshold).Order("quantity ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

// CategoryIndex maps product ids to categories for the reporting folds.
func (r *productRepo) CategoryIndex() (map[uuid.UUID]string, error) {
	type row struct {
		ID       uuid.UUID
		Category string
	}
	var rows []row
	if err := r.db.Model(&model.Product{}).Unscoped().Select("id", "category").Scan(&rows).Error; err != nil {
		return nil, err
	}

	index := make(map[uuid.UUID]string, len(rows))
	for _, r := range rows {
		index[r.ID] = r.Category
	}
	return index, nil
}

func (r *productRepo) DeleteMedia(productID, mediaID uuid.UUID) error {
	result := r.db.Delete(&model.ProductMedia{}, "id = ? AND product_id = ?", mediaID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
