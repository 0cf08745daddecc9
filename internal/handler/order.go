package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/middleware"
	"storefront/internal/service"
)

// OrderHandler bundles dependencies for order endpoints.
type OrderHandler struct {
	Orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

type createOrderReq struct {
	ProductID uint64 `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// Create places an order for the authenticated user.
func (h *OrderHandler) Create(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return failValidation(c, "Invalid request body")
	}
	order, item, err := h.Orders.Create(c.Request().Context(), claims.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, echo.Map{"order": order, "orderItem": item})
}

// GetByID returns one order with its product and user snapshots and its
// line items.
func (h *OrderHandler) GetByID(c echo.Context) error {
	id, ok := paramID(c, "orderId")
	if !ok {
		return failValidation(c, "Invalid order id")
	}
	det, err := h.Orders.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, det)
}

// GetByUserID lists all orders of a user.
func (h *OrderHandler) GetByUserID(c echo.Context) error {
	id, ok := paramID(c, "userId")
	if !ok {
		return failValidation(c, "Invalid user id")
	}
	out, err := h.Orders.GetByUserID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, out)
}

// Update changes an order's product and/or quantity, adjusting stock by
// the delta.
func (h *OrderHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "orderId")
	if !ok {
		return failValidation(c, "Invalid order id")
	}
	var req service.UpdateOrderInput
	if err := c.Bind(&req); err != nil {
		return failValidation(c, "Invalid request body")
	}
	order, err := h.Orders.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, order)
}

// Cancel deletes an order, restoring its stock, and returns the deleted
// record.
func (h *OrderHandler) Cancel(c echo.Context) error {
	id, ok := paramID(c, "orderId")
	if !ok {
		return failValidation(c, "Invalid order id")
	}
	order, err := h.Orders.Cancel(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, order)
}
