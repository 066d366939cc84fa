package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dwatsonpk/storefront/api/http/presenter"
	"github.com/dwatsonpk/storefront/pkg/cart"
)

// CartHandler serves the authenticated user's cart.
type CartHandler struct {
	useCase cart.UseCase
	dev     bool
}

func NewCartHandler(useCase cart.UseCase, dev bool) *CartHandler {
	return &CartHandler{useCase: useCase, dev: dev}
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func cartResponse(c cart.Cart) fiber.Map {
	items := make([]fiber.Map, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, fiber.Map{
			"productId": it.ProductID.String(),
			"name":      it.Name,
			"unitPrice": it.UnitPrice,
			"quantity":  it.Quantity,
		})
	}
	return fiber.Map{"items": items, "total": c.Total()}
}

func (h *CartHandler) fail(c *fiber.Ctx, err error) error {
	var ve cart.ErrValidation
	switch {
	case errors.As(err, &ve):
		return presenter.Error(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, cart.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "not found")
	default:
		return presenter.Internal(c, "cart operation failed", err, h.dev)
	}
}

// Get returns the user's cart with the computed total.
// @Summary Get cart
// @Tags    cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router  /cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token subject")
	}
	crt, err := h.useCase.Get(c.Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, cartResponse(crt))
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token subject")
	}
	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	productID, ok := parseUUID(req.ProductID)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	crt, err := h.useCase.AddItem(c.Context(), userID, productID, req.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, cartResponse(crt))
}

func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token subject")
	}
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	crt, err := h.useCase.SetQuantity(c.Context(), userID, productID, req.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, cartResponse(crt))
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token subject")
	}
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	crt, err := h.useCase.RemoveItem(c.Context(), userID, productID)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, cartResponse(crt))
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token subject")
	}
	if err := h.useCase.Clear(c.Context(), userID); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "cart cleared"})
}
