package repository

import (
	"context"

	"storefront/internal/model"
)

// OrderUpdate carries the optional fields of an order mutation.  The
// order's total price is recomputed against the (possibly new) product's
// current price, and the product's stock is adjusted by the quantity
// delta.
type OrderUpdate struct {
	ProductID *uint64
	Quantity  *int64
}

// OrderStore persists orders and their line items.  Create, Update and
// Cancel each run as a single transaction so an order row can never be
// written without its matching stock adjustment.
type OrderStore interface {
	// Create checks and decrements stock with one conditional UPDATE,
	// then inserts the order and its line item.  It returns ErrNotFound
	// when the product is absent and ErrInsufficientStock when stock is
	// lower than the requested quantity; in both cases nothing is
	// persisted.
	Create(ctx context.Context, userID, productID uint64, quantity int64) (*model.Order, *model.OrderItem, error)
	// DetailByID left-joins the order with its product and user; absent
	// rows yield nil snapshots rather than excluding the order.
	DetailByID(ctx context.Context, id uint64) (*model.OrderDetail, error)
	// ListByUserID returns all orders for a user with product snapshots.
	// A user without orders yields an empty slice, never an error.
	ListByUserID(ctx context.Context, userID uint64) ([]model.OrderDetail, error)
	Update(ctx context.Context, id uint64, upd OrderUpdate) (*model.Order, error)
	// Cancel restores stock by the order's quantity, deletes the line
	// items and the order row, and returns the deleted record.
	Cancel(ctx context.Context, id uint64) (*model.Order, error)
}
