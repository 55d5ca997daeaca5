// internal/viewstate/checkout.go
package viewstate

import (
	"context"
	"errors"
	"sync"

	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
)

const placeOrderFallbackMessage = "Failed to place order"

type CheckoutState struct {
	Items      []domain.CartItem
	TotalPrice float64
	Address    domain.Address
	OrderPhase Phase
	OrderError string
}

// Checkout is the checkout screen holder. It snapshots the cart for
// display, places the order, and clears the cart only after the order is
// safely persisted. Placement and clearing are two independent steps; a
// crash in between leaves the cart intact.
type Checkout struct {
	cartRepo  ports.CartRepositoryPort
	orderRepo ports.OrderRepositoryPort
	auth      ports.AuthPort

	mu    sync.Mutex
	state CheckoutState

	changes chan struct{}
	stop    func()
	done    chan struct{}
}

func NewCheckout(cartRepo ports.CartRepositoryPort, orderRepo ports.OrderRepositoryPort, auth ports.AuthPort) *Checkout {
	return &Checkout{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		auth:      auth,
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

func (c *Checkout) Start(ctx context.Context) error {
	updates, stop, err := c.cartRepo.Items(ctx)
	if err != nil {
		close(c.done)
		return err
	}
	c.stop = stop
	go func() {
		defer close(c.done)
		for items := range updates {
			c.mu.Lock()
			c.state.Items = items
			c.state.TotalPrice = cartTotal(items)
			notify(c.changes)
			c.mu.Unlock()
		}
	}()
	return nil
}

func (c *Checkout) Stop() {
	if c.stop == nil {
		return
	}
	c.stop()
	<-c.done
}

func (c *Checkout) SetAddress(street, city, postcode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Address = domain.Address{Street: street, City: city, Postcode: postcode}
	notify(c.changes)
}

// PlaceOrder freezes the current cart into an order document. On success
// the cart is cleared; on failure the items stay where they are.
func (c *Checkout) PlaceOrder(ctx context.Context, prescriptionURI string) error {
	user, err := c.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not logged in")
	}

	c.mu.Lock()
	order := domain.Order{
		UserID:          user.UID,
		Items:           append([]domain.CartItem(nil), c.state.Items...),
		Address:         c.state.Address,
		TotalPrice:      c.state.TotalPrice,
		PrescriptionURI: prescriptionURI,
	}
	c.state.OrderPhase = PhaseLoading
	c.state.OrderError = ""
	notify(c.changes)
	c.mu.Unlock()

	if _, err := c.orderRepo.PlaceOrder(ctx, order); err != nil {
		c.mu.Lock()
		c.state.OrderPhase = PhaseError
		c.state.OrderError = errMessage(err)
		notify(c.changes)
		c.mu.Unlock()
		return err
	}

	// best effort: a failed clear leaves items for manual removal, the
	// order itself is already placed
	_ = c.cartRepo.Clear(ctx)

	c.mu.Lock()
	c.state.OrderPhase = PhaseSuccess
	notify(c.changes)
	c.mu.Unlock()
	return nil
}

func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Checkout) Changes() <-chan struct{} { return c.changes }

func errMessage(err error) string {
	if err == nil || err.Error() == "" {
		return placeOrderFallbackMessage
	}
	return err.Error()
}
