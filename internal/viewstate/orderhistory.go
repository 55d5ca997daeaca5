// internal/viewstate/orderhistory.go
package viewstate

import (
	"context"
	"sync"

	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
)

type OrderHistoryState struct {
	Phase       Phase
	Orders      []domain.Order
	Error       string
	LogoutPhase Phase
	LogoutError string
}

// OrderHistory is the order history screen holder; it also hosts the
// logout action, matching where the button lives on screen.
type OrderHistory struct {
	orderRepo ports.OrderRepositoryPort
	auth      ports.AuthPort

	mu    sync.Mutex
	state OrderHistoryState

	changes chan struct{}
}

func NewOrderHistory(orderRepo ports.OrderRepositoryPort, auth ports.AuthPort) *OrderHistory {
	return &OrderHistory{
		orderRepo: orderRepo,
		auth:      auth,
		changes:   make(chan struct{}, 1),
	}
}

func (o *OrderHistory) Load(ctx context.Context) {
	o.mu.Lock()
	o.state.Phase = PhaseLoading
	o.state.Error = ""
	notify(o.changes)
	o.mu.Unlock()

	orders, err := o.orderRepo.Orders(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state.Phase = PhaseError
		o.state.Error = err.Error()
	} else {
		o.state.Phase = PhaseSuccess
		o.state.Orders = orders
	}
	notify(o.changes)
}

func (o *OrderHistory) Logout(ctx context.Context) {
	o.mu.Lock()
	o.state.LogoutPhase = PhaseLoading
	o.state.LogoutError = ""
	notify(o.changes)
	o.mu.Unlock()

	err := o.auth.Logout(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state.LogoutPhase = PhaseError
		o.state.LogoutError = err.Error()
	} else {
		o.state.LogoutPhase = PhaseSuccess
	}
	notify(o.changes)
}

func (o *OrderHistory) State() OrderHistoryState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *OrderHistory) Changes() <-chan struct{} { return o.changes }
