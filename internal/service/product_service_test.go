package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/apperr"
	"storefront/internal/mocks"
	"storefront/internal/model"
	"storefront/internal/repository"
)

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates the catalog namespace", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)
		store.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).
			Return(nil).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Product).ID = 1
			})
		cch.On("DeletePrefix", mock.Anything, "product").Return()

		svc := NewProductService(store, cch)
		p, err := svc.Create(ctx, CreateProductInput{Name: "Widget", Price: 1299, Stock: 50})

		assert.NoError(t, err)
		assert.Equal(t, uint64(1), p.ID)
		cch.AssertExpectations(t)
	})

	t.Run("negative stock fails validation and persists nothing", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)

		svc := NewProductService(store, cch)
		_, err := svc.Create(ctx, CreateProductInput{Name: "Widget", Price: 1299, Stock: -1})

		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProductServiceGetByID(t *testing.T) {
	ctx := context.Background()
	stored := &model.Product{ID: 5, Name: "Widget", Price: 1299, Stock: 50}

	t.Run("miss reads the store and populates the cache", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)
		cch.On("Get", mock.Anything, "product:5", mock.Anything).Return(false)
		store.On("FindByID", mock.Anything, uint64(5)).Return(stored, nil)
		cch.On("Set", mock.Anything, "product:5", stored, productCacheTTL).Return()

		svc := NewProductService(store, cch)
		p, err := svc.GetByID(ctx, 5)

		assert.NoError(t, err)
		assert.Equal(t, stored, p)
		cch.AssertExpectations(t)
	})

	t.Run("hit serves from cache without touching the store", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)
		cch.On("Get", mock.Anything, "product:5", mock.Anything).
			Return(true).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*model.Product) = *stored
			})

		svc := NewProductService(store, cch)
		p, err := svc.GetByID(ctx, 5)

		assert.NoError(t, err)
		assert.Equal(t, stored.Name, p.Name)
		store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("absent product is NotFound", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)
		cch.On("Get", mock.Anything, "product:404", mock.Anything).Return(false)
		store.On("FindByID", mock.Anything, uint64(404)).Return(nil, repository.ErrNotFound)

		svc := NewProductService(store, cch)
		_, err := svc.GetByID(ctx, 404)

		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
		cch.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidates the cache entry on success", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)
		updated := &model.Product{ID: 5, Name: "Widget", Price: 999, Stock: 40}
		store.On("Update", mock.Anything, uint64(5), mock.Anything).Return(updated, nil)
		cch.On("Delete", mock.Anything, []string{"product:5"}).Return()

		svc := NewProductService(store, cch)
		price := int64(999)
		p, err := svc.Update(ctx, 5, UpdateProductInput{Price: &price})

		assert.NoError(t, err)
		assert.Equal(t, int64(999), p.Price)
		cch.AssertExpectations(t)
	})

	t.Run("invalidates even when the store call fails", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)
		store.On("Update", mock.Anything, uint64(5), mock.Anything).
			Return(nil, errors.New("connection reset"))
		cch.On("Delete", mock.Anything, []string{"product:5"}).Return()

		svc := NewProductService(store, cch)
		price := int64(999)
		_, err := svc.Update(ctx, 5, UpdateProductInput{Price: &price})

		assert.Equal(t, apperr.Internal, apperr.KindOf(err))
		cch.AssertExpectations(t)
	})

	t.Run("negative resulting stock fails validation", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)

		svc := NewProductService(store, cch)
		stock := int64(-3)
		_, err := svc.Update(ctx, 5, UpdateProductInput{Stock: &stock})

		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the deleted record and drops its cache entry", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)
		deleted := &model.Product{ID: 5, Name: "Widget"}
		store.On("Delete", mock.Anything, uint64(5)).Return(deleted, nil)
		cch.On("Delete", mock.Anything, []string{"product:5"}).Return()

		svc := NewProductService(store, cch)
		p, err := svc.Delete(ctx, 5)

		assert.NoError(t, err)
		assert.Equal(t, deleted, p)
		cch.AssertExpectations(t)
	})

	t.Run("absent product is NotFound", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)
		store.On("Delete", mock.Anything, uint64(404)).Return(nil, repository.ErrNotFound)
		cch.On("Delete", mock.Anything, []string{"product:404"}).Return()

		svc := NewProductService(store, cch)
		_, err := svc.Delete(ctx, 404)

		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}

func TestProductServiceSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes pagination", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)
		store.On("Search", mock.Anything, repository.SearchQuery{Query: "widget", Page: 1, Limit: 10}).
			Return([]model.Product{}, nil)

		svc := NewProductService(store, cch)
		out, err := svc.Search(ctx, SearchInput{Query: "widget", Page: 0, Limit: 0})

		assert.NoError(t, err)
		assert.Empty(t, out)
		store.AssertExpectations(t)
	})

	t.Run("caps the page size", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		cch := new(mocks.MockCache)
		store.On("Search", mock.Anything, mock.MatchedBy(func(q repository.SearchQuery) bool {
			return q.Limit == 100
		})).Return([]model.Product{}, nil)

		svc := NewProductService(store, cch)
		_, err := svc.Search(ctx, SearchInput{Page: 2, Limit: 5000})

		assert.NoError(t, err)
		store.AssertExpectations(t)
	})
}
