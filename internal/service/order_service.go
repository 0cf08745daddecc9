package service

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/model"
	"storefront/internal/queue"
	"storefront/internal/repository"
)

// EventPublisher is the broker contract the order workflow consumes.
// Publishing is fire-and-forget relative to the request: failures are
// logged, never surfaced to the caller.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, ev queue.OrderCreatedEvent) error
	PublishOrderCancelled(ctx context.Context, ev queue.OrderCancelledEvent) error
}

// UpdateOrderInput carries the optional fields of an order update.
type UpdateOrderInput struct {
	ProductID *uint64 `json:"productId,omitempty"`
	Quantity  *int64  `json:"quantity,omitempty"`
}

// OrderService implements order placement and lifecycle.  Stock
// consistency lives in the store: each mutation is one transaction with
// a conditional stock update, so two concurrent purchases can never both
// pass the stock check.
type OrderService struct {
	orders    repository.OrderStore
	users     repository.UserStore
	publisher EventPublisher
}

func NewOrderService(orders repository.OrderStore, users repository.UserStore, publisher EventPublisher) *OrderService {
	return &OrderService{orders: orders, users: users, publisher: publisher}
}

// Create places an order for the given user and product.  The store
// computes the total from the product's current price and decrements
// stock in the same transaction; nothing is persisted on failure.
func (s *OrderService) Create(ctx context.Context, userID, productID uint64, quantity int64) (*model.Order, *model.OrderItem, error) {
	if quantity <= 0 {
		return nil, nil, apperr.New(apperr.Validation, "Quantity must be greater than zero")
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, nil, apperr.Wrap(apperr.Internal, "user lookup failed", err)
	}

	order, item, err := s.orders.Create(ctx, userID, productID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, nil, apperr.New(apperr.NotFound, "Product not found")
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, nil, apperr.New(apperr.InsufficientStock, "Insufficient stock for product")
		}
		return nil, nil, apperr.Wrap(apperr.Internal, "create order failed", err)
	}

	if s.publisher != nil {
		ev := queue.OrderCreatedEvent{
			OrderID:    order.ID,
			UserID:     order.UserID,
			ProductID:  order.ProductID,
			Quantity:   order.Quantity,
			TotalPrice: order.TotalPrice,
			CreatedAt:  order.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() {
			if err := s.publisher.PublishOrderCreated(context.Background(), ev); err != nil {
				log.Printf("order: publish order.created for %d failed: %v", ev.OrderID, err)
			}
		}()
	}
	return order, item, nil
}

// GetByID returns the order joined with its product and user snapshots
// and its line items.
func (s *OrderService) GetByID(ctx context.Context, orderID uint64) (*model.OrderDetail, error) {
	det, err := s.orders.DetailByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Order not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "order lookup failed", err)
	}
	return det, nil
}

// GetByUserID returns all orders for a user; a user without orders gets
// an empty list, never an error.
func (s *OrderService) GetByUserID(ctx context.Context, userID uint64) ([]model.OrderDetail, error) {
	out, err := s.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "order list failed", err)
	}
	return out, nil
}

// Update changes an order's product and/or quantity.  The total is
// recomputed against the (possibly new) product's current price, and
// stock is adjusted by the quantity delta under the same conditional
// guard as Create.
func (s *OrderService) Update(ctx context.Context, orderID uint64, in UpdateOrderInput) (*model.Order, error) {
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, apperr.New(apperr.Validation, "Quantity must be greater than zero")
	}
	order, err := s.orders.Update(ctx, orderID, repository.OrderUpdate{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.New(apperr.NotFound, "Order not found")
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, apperr.New(apperr.InsufficientStock, "Insufficient stock for product")
		}
		return nil, apperr.Wrap(apperr.Internal, "update order failed", err)
	}
	return order, nil
}

// Cancel deletes an order, restoring the product's stock by the order's
// quantity, and returns the deleted record.
func (s *OrderService) Cancel(ctx context.Context, orderID uint64) (*model.Order, error) {
	order, err := s.orders.Cancel(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Order not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "cancel order failed", err)
	}

	if s.publisher != nil {
		ev := queue.OrderCancelledEvent{
			OrderID:     order.ID,
			UserID:      order.UserID,
			ProductID:   order.ProductID,
			Quantity:    order.Quantity,
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			if err := s.publisher.PublishOrderCancelled(context.Background(), ev); err != nil {
				log.Printf("order: publish order.cancelled for %d failed: %v", ev.OrderID, err)
			}
		}()
	}
	return order, nil
}
