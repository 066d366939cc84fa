package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dwatsonpk/storefront/api/http/presenter"
	"github.com/dwatsonpk/storefront/pkg/contact"
)

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	useCase contact.UseCase
	dev     bool
}

func NewContactHandler(useCase contact.UseCase, dev bool) *ContactHandler {
	return &ContactHandler{useCase: useCase, dev: dev}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	m, err := h.useCase.Submit(c.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		var ve contact.ErrValidation
		if errors.As(err, &ve) {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		return presenter.Internal(c, "failed to submit message", err, h.dev)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"id":      m.ID.String(),
		"message": "Thank you for contacting us",
	})
}

func (h *ContactHandler) AdminList(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	list, err := h.useCase.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Internal(c, "failed to list messages", err, h.dev)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, m := range list {
		out = append(out, fiber.Map{
			"id":        m.ID.String(),
			"name":      m.Name,
			"email":     m.Email,
			"message":   m.Body,
			"createdAt": m.CreatedAt,
		})
	}
	return presenter.JSON(c, http.StatusOK, out)
}
