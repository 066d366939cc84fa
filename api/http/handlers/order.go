package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dwatsonpk/storefront/api/http/presenter"
	"github.com/dwatsonpk/storefront/pkg/order"
)

// OrderHandler serves customer checkout/history and admin order management.
type OrderHandler struct {
	useCase order.UseCase
	dev     bool
}

func NewOrderHandler(useCase order.UseCase, dev bool) *OrderHandler {
	return &OrderHandler{useCase: useCase, dev: dev}
}

type checkoutRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Notes   string `json:"notes"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func orderResponse(o order.Order) fiber.Map {
	items := make([]fiber.Map, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, fiber.Map{
			"productId": it.ProductID.String(),
			"name":      it.Name,
			"unitPrice": it.UnitPrice,
			"quantity":  it.Quantity,
		})
	}
	return fiber.Map{
		"id":        o.ID.String(),
		"userId":    o.UserID.String(),
		"items":     items,
		"subtotal":  o.Subtotal,
		"status":    string(o.Status),
		"name":      o.Name,
		"phone":     o.Phone,
		"address":   o.Address,
		"city":      o.City,
		"notes":     o.Notes,
		"createdAt": o.CreatedAt,
		"updatedAt": o.UpdatedAt,
	}
}

func (h *OrderHandler) fail(c *fiber.Ctx, err error) error {
	var ve order.ErrValidation
	switch {
	case errors.As(err, &ve):
		return presenter.Error(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, order.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "not found")
	default:
		return presenter.Internal(c, "order operation failed", err, h.dev)
	}
}

// Checkout turns the user's cart into a pending order.
// @Summary Checkout
// @Tags    orders
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /orders [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token subject")
	}
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	o, err := h.useCase.Checkout(c.Context(), userID, order.CheckoutInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Notes:   req.Notes,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, orderResponse(o))
}

func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token subject")
	}
	limit, offset := parseLimitOffset(c, 50)
	list, err := h.useCase.ListMine(c.Context(), userID, limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, o := range list {
		out = append(out, orderResponse(o))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

func (h *OrderHandler) GetMine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token subject")
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid order id")
	}
	o, err := h.useCase.GetMine(c.Context(), userID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, orderResponse(o))
}

// AdminList lists all orders, optionally filtered by ?status=.
func (h *OrderHandler) AdminList(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	var f order.Filter
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		st := order.Status(v)
		if !st.Valid() {
			return presenter.Error(c, http.StatusBadRequest, "unknown order status")
		}
		f.Status = &st
	}
	list, err := h.useCase.ListAll(c.Context(), f, limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, o := range list {
		out = append(out, orderResponse(o))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

func (h *OrderHandler) AdminGet(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid order id")
	}
	o, err := h.useCase.GetAny(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, orderResponse(o))
}

func (h *OrderHandler) AdminUpdateStatus(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid order id")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.useCase.UpdateStatus(c.Context(), id, order.Status(req.Status)); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "order status updated"})
}
