package service

import (
	"errors"
	"testing"

	"go-jossydiva-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func catalogLookup(products ...*model.Product) func(uuid.UUID) (*model.Product, error) {
	byID := make(map[uuid.UUID]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return func(id uuid.UUID) (*model.Product, error) {
		p, ok := byID[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		return p, nil
	}
}

func stockedProduct(name string, quantity int) *model.Product {
	return &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Name:      name,
		Quantity:  quantity,
	}
}

func TestPlanStockChangesFulfillment(t *testing.T) {
	gown := stockedProduct("Ankara Gown", 5)
	items := []model.OrderItem{{ProductID: gown.ID, Quantity: 5}}

	changes, err := planStockChanges(items, -1, catalogLookup(gown))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].productID != gown.ID {
		t.Errorf("change targets product %s, want %s", changes[0].productID, gown.ID)
	}
	if changes[0].newQuantity != 0 {
		t.Errorf("newQuantity = %d, want 0", changes[0].newQuantity)
	}
}

func TestPlanStockChangesInsufficient(t *testing.T) {
	gown := stockedProduct("Ankara Gown", 3)
	items := []model.OrderItem{{ProductID: gown.ID, Quantity: 5}}

	changes, err := planStockChanges(items, -1, catalogLookup(gown))
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if changes != nil {
		t.Fatalf("expected no changes on failure, got %v", changes)
	}
	if gown.Quantity != 3 {
		t.Errorf("quantity mutated to %d, want 3", gown.Quantity)
	}
}

func TestPlanStockChangesRestore(t *testing.T) {
	gown := stockedProduct("Ankara Gown", 3)
	items := []model.OrderItem{{ProductID: gown.ID, Quantity: 5}}

	changes, err := planStockChanges(items, +1, catalogLookup(gown))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changes[0].newQuantity != 8 {
		t.Errorf("newQuantity = %d, want 8", changes[0].newQuantity)
	}
}

func TestPlanStockChangesUnknownProduct(t *testing.T) {
	items := []model.OrderItem{{ProductID: uuid.New(), Quantity: 1}}

	_, err := planStockChanges(items, -1, catalogLookup())
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestPlanStockChangesFailsWhole(t *testing.T) {
	gown := stockedProduct("Ankara Gown", 10)
	scarf := stockedProduct("Silk Scarf", 1)
	items := []model.OrderItem{
		{ProductID: gown.ID, Quantity: 2},
		{ProductID: scarf.ID, Quantity: 3},
	}

	changes, err := planStockChanges(items, -1, catalogLookup(gown, scarf))
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if changes != nil {
		t.Fatalf("expected no partial plan, got %v", changes)
	}
}
