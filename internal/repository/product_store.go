package repository

import (
	"context"

	"storefront/internal/model"
)

// SearchQuery defines filters and pagination for product search.  Unset
// filters are omitted from the generated WHERE clause; set filters
// combine with AND.
type SearchQuery struct {
	Query      string
	CategoryID *uint64
	MinPrice   *int64
	MaxPrice   *int64
	Page       int
	Limit      int
}

// ProductUpdate carries the optional fields of a partial product update.
type ProductUpdate struct {
	Name        *string
	Description *string
	CategoryID  *uint64
	Price       *int64
	Stock       *int64
}

// ProductStore persists products.  Delete returns the removed record so
// callers can echo it back.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uint64) (*model.Product, error)
	Update(ctx context.Context, id uint64, upd ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id uint64) (*model.Product, error)
	Search(ctx context.Context, q SearchQuery) ([]model.Product, error)
}
