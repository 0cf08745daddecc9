package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const (
	productCachePrefix = "product"
	productCacheTTL    = time.Hour
)

// Cache is the memoization contract the product workflow consumes.
// Implementations must never propagate failures; a broken cache behaves
// like an empty one.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, val any, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	DeletePrefix(ctx context.Context, prefix string)
}

// CreateProductInput is the payload of a product creation request.
type CreateProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	CategoryID  *uint64 `json:"categoryId,omitempty"`
	Price       int64   `json:"price"`
	Stock       int64   `json:"stock"`
}

// UpdateProductInput carries the optional fields of a partial update.
type UpdateProductInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CategoryID  *uint64 `json:"categoryId,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	Stock       *int64  `json:"stock,omitempty"`
}

// SearchInput mirrors the catalog search filters.  Filters combine with
// AND; pagination is offset-based.
type SearchInput struct {
	Query      string
	CategoryID *uint64
	MinPrice   *int64
	MaxPrice   *int64
	Page       int
	Limit      int
}

// ProductService implements catalog CRUD with cache-aside reads.  The
// cache is consulted before the store and explicitly invalidated on
// every mutation; it is never a write path.
type ProductService struct {
	products repository.ProductStore
	cache    Cache
}

func NewProductService(products repository.ProductStore, cache Cache) *ProductService {
	return &ProductService{products: products, cache: cache}
}

func productCacheKey(id uint64) string { return fmt.Sprintf("%s:%d", productCachePrefix, id) }

// Create validates and persists a new product, then drops any cached
// catalog entries.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*model.Product, error) {
	if err := validateProductFields(in.Name, in.Description, in.Price, in.Stock); err != nil {
		return nil, err
	}
	p := &model.Product{
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Stock:       in.Stock,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "create product failed", err)
	}
	s.cache.DeletePrefix(ctx, productCachePrefix)
	return p, nil
}

// GetByID is a cache-aside read: serve from cache on a hit, otherwise
// read the store and populate the cache.
func (s *ProductService) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	key := productCacheKey(id)
	var cached model.Product
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Product not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "product lookup failed", err)
	}
	s.cache.Set(ctx, key, p, productCacheTTL)
	return p, nil
}

// Update applies a partial update.  The cache entry is dropped no matter
// how the store call turns out; invalidation is best-effort and must
// never mask or outrank the primary result.
func (s *ProductService) Update(ctx context.Context, id uint64, in UpdateProductInput) (*model.Product, error) {
	if in.Stock != nil && *in.Stock < 0 {
		return nil, apperr.New(apperr.Validation, "Stock cannot be negative")
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, apperr.New(apperr.Validation, "Price cannot be negative")
	}
	if in.Name != nil && (*in.Name == "" || len(*in.Name) > 100) {
		return nil, apperr.New(apperr.Validation, "Name is required and must be at most 100 characters")
	}
	if in.Description != nil && len(*in.Description) > 500 {
		return nil, apperr.New(apperr.Validation, "Description must be at most 500 characters")
	}

	defer s.cache.Delete(ctx, productCacheKey(id))

	p, err := s.products.Update(ctx, id, repository.ProductUpdate{
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Stock:       in.Stock,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Product not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "update product failed", err)
	}
	return p, nil
}

// Delete removes a product, returning the deleted record, and drops its
// cache entry.
func (s *ProductService) Delete(ctx context.Context, id uint64) (*model.Product, error) {
	defer s.cache.Delete(ctx, productCacheKey(id))

	p, err := s.products.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Product not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "delete product failed", err)
	}
	return p, nil
}

// Search runs a filtered catalog query with normalized pagination.
func (s *ProductService) Search(ctx context.Context, in SearchInput) ([]model.Product, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit <= 0 {
		in.Limit = 10
	}
	if in.Limit > 100 {
		in.Limit = 100
	}
	out, err := s.products.Search(ctx, repository.SearchQuery{
		Query:      in.Query,
		CategoryID: in.CategoryID,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		Page:       in.Page,
		Limit:      in.Limit,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "product search failed", err)
	}
	return out, nil
}

func validateProductFields(name, description string, price, stock int64) error {
	if name == "" || len(name) > 100 {
		return apperr.New(apperr.Validation, "Name is required and must be at most 100 characters")
	}
	if len(description) > 500 {
		return apperr.New(apperr.Validation, "Description must be at most 500 characters")
	}
	if price < 0 {
		return apperr.New(apperr.Validation, "Price cannot be negative")
	}
	if stock < 0 {
		return apperr.New(apperr.Validation, "Stock cannot be negative")
	}
	return nil
}
