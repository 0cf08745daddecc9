package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

// ProductHandler bundles dependencies for catalog endpoints.
type ProductHandler struct {
	Products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{Products: products}
}

func paramID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// Create adds a product to the catalog.
func (h *ProductHandler) Create(c echo.Context) error {
	var req service.CreateProductInput
	if err := c.Bind(&req); err != nil {
		return failValidation(c, "Invalid request body")
	}
	p, err := h.Products.Create(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, p)
}

// GetByID returns a single product, served from cache when possible.
func (h *ProductHandler) GetByID(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return failValidation(c, "Invalid product id")
	}
	p, err := h.Products.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, p)
}

// Update applies a partial product update.
func (h *ProductHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return failValidation(c, "Invalid product id")
	}
	var req service.UpdateProductInput
	if err := c.Bind(&req); err != nil {
		return failValidation(c, "Invalid request body")
	}
	p, err := h.Products.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, p)
}

// Delete removes a product and echoes back the deleted record.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return failValidation(c, "Invalid product id")
	}
	p, err := h.Products.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, p)
}

// Search lists products matching the query-string filters.  Filters
// combine with AND; pagination is offset-based.
func (h *ProductHandler) Search(c echo.Context) error {
	in := service.SearchInput{Query: c.QueryParam("query")}

	if v := c.QueryParam("categoryId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return failValidation(c, "Invalid categoryId")
		}
		in.CategoryID = &id
	}
	if v := c.QueryParam("minPrice"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return failValidation(c, "Invalid minPrice")
		}
		in.MinPrice = &p
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return failValidation(c, "Invalid maxPrice")
		}
		in.MaxPrice = &p
	}
	if v := c.QueryParam("page"); v != "" {
		in.Page, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("limit"); v != "" {
		in.Limit, _ = strconv.Atoi(v)
	}

	out, err := h.Products.Search(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, out)
}
