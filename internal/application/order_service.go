// internal/application/order_service.go
package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
)

type OrderService struct {
	remote ports.RemoteStorePort
	auth   ports.AuthPort
	log    *zap.Logger
}

func NewOrderService(remote ports.RemoteStorePort, auth ports.AuthPort, log *zap.Logger) *OrderService {
	return &OrderService{remote: remote, auth: auth, log: log}
}

// PlaceOrder persists the order with a server-assigned id and returns the
// final document. The item list is copied so later cart mutations cannot
// reach into the placed order. Clearing the cart is the caller's business;
// the two steps are deliberately not atomic.
func (s *OrderService) PlaceOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.UserID == "" {
		return domain.Order{}, errors.New("user not logged in")
	}
	if len(order.Items) == 0 {
		return domain.Order{}, errors.New("cannot place an order with an empty cart")
	}

	order.Items = append([]domain.CartItem(nil), order.Items...)
	if order.Status == "" {
		order.Status = domain.StatusPending
	}
	if order.Timestamp.IsZero() {
		order.Timestamp = time.Now()
	}

	// total is derived at placement, never re-derived later
	var total float64
	for _, item := range order.Items {
		total += item.Price * float64(item.Quantity)
	}
	order.TotalPrice = total

	id, err := s.remote.CreateOrder(ctx, order)
	if err != nil {
		s.log.Error("order placement failed", zap.Error(err))
		return domain.Order{}, fmt.Errorf("failed to place order: %w", err)
	}
	order.ID = id

	s.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.TotalPrice),
	)
	return order, nil
}

// Orders returns the current user's order history, newest first. The sort
// happens client side; no server index is assumed.
func (s *OrderService) Orders(ctx context.Context) ([]domain.Order, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not logged in")
	}
	orders, err := s.remote.OrdersByUser(ctx, user.UID)
	if err != nil {
		s.log.Error("order history fetch failed", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].Timestamp.After(orders[j].Timestamp) })
	return orders, nil
}
