// internal/application/cart_service.go
package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
)

// CartService owns the cart rows in the local store. Nothing is pushed
// upstream until checkout. A row never exists with quantity below one;
// setting a non-positive quantity deletes the row.
type CartService struct {
	store ports.CartStorePort
	log   *zap.Logger
}

func NewCartService(store ports.CartStorePort, log *zap.Logger) *CartService {
	return &CartService{store: store, log: log}
}

func (s *CartService) Items(ctx context.Context) (<-chan []domain.CartItem, func(), error) {
	return s.store.WatchItems(ctx)
}

// Add merges into an existing row for the same medicine, otherwise inserts
// a new row with the medicine's display fields captured at add time.
func (s *CartService) Add(ctx context.Context, medicine domain.Medicine, quantity int) error {
	if quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	existing, err := s.store.Item(ctx, medicine.ID)
	if err != nil {
		return err
	}
	newQuantity := quantity
	if existing != nil {
		newQuantity = existing.Quantity + quantity
	}
	return s.store.Put(ctx, domain.CartItem{
		MedicineID: medicine.ID,
		Name:       medicine.Name,
		Price:      medicine.Price,
		ImageURL:   medicine.ImageURL,
		Quantity:   newQuantity,
	})
}

// UpdateQuantity overwrites the stored quantity of an existing row, or
// deletes the row when newQuantity drops to zero or below. Unknown ids are
// a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, medicineID string, newQuantity int) error {
	existing, err := s.store.Item(ctx, medicineID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if newQuantity > 0 {
		updated := *existing
		updated.Quantity = newQuantity
		return s.store.Put(ctx, updated)
	}
	return s.store.Remove(ctx, medicineID)
}

func (s *CartService) Remove(ctx context.Context, medicineID string) error {
	return s.store.Remove(ctx, medicineID)
}

func (s *CartService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}
