// internal/viewstate/cart.go
package viewstate

import (
	"context"
	"sync"

	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
)

type CartState struct {
	Items           []domain.CartItem
	TotalPrice      float64
	PrescriptionURI string
}

// Cart is the cart screen holder: the live item list, the running total,
// and the prescription image picked for checkout.
type Cart struct {
	repo ports.CartRepositoryPort

	mu    sync.Mutex
	state CartState

	changes chan struct{}
	stop    func()
	done    chan struct{}
}

func NewCart(repo ports.CartRepositoryPort) *Cart {
	return &Cart{
		repo:    repo,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (c *Cart) Start(ctx context.Context) error {
	updates, stop, err := c.repo.Items(ctx)
	if err != nil {
		close(c.done)
		return err
	}
	c.stop = stop
	go func() {
		defer close(c.done)
		for items := range updates {
			c.apply(items)
		}
	}()
	return nil
}

func (c *Cart) Stop() {
	if c.stop == nil {
		return
	}
	c.stop()
	<-c.done
}

func (c *Cart) apply(items []domain.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Items = items
	c.state.TotalPrice = cartTotal(items)
	notify(c.changes)
}

func (c *Cart) UpdateQuantity(ctx context.Context, item domain.CartItem, newQuantity int) error {
	return c.repo.UpdateQuantity(ctx, item.MedicineID, newQuantity)
}

func (c *Cart) RemoveItem(ctx context.Context, item domain.CartItem) error {
	return c.repo.Remove(ctx, item.MedicineID)
}

func (c *Cart) SetPrescriptionURI(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PrescriptionURI = uri
	notify(c.changes)
}

func (c *Cart) State() CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Cart) Changes() <-chan struct{} { return c.changes }

func cartTotal(items []domain.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
