package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dwatsonpk/storefront/api/http/presenter"
	"github.com/dwatsonpk/storefront/pkg/cms"
)

// CMSHandler serves sections, sliders, and banners. Public reads see only
// published/active content, admin sees everything.
type CMSHandler struct {
	useCase cms.UseCase
	dev     bool
}

func NewCMSHandler(useCase cms.UseCase, dev bool) *CMSHandler {
	return &CMSHandler{useCase: useCase, dev: dev}
}

func (h *CMSHandler) fail(c *fiber.Ctx, err error) error {
	var ve cms.ErrValidation
	switch {
	case errors.As(err, &ve):
		return presenter.Error(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, cms.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "not found")
	default:
		return presenter.Internal(c, "content operation failed", err, h.dev)
	}
}

type sectionRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

func sectionResponse(s cms.Section) fiber.Map {
	return fiber.Map{
		"key":       s.Key,
		"title":     s.Title,
		"body":      s.Body,
		"published": s.Published,
		"updatedAt": s.UpdatedAt,
	}
}

func (h *CMSHandler) GetSection(c *fiber.Ctx) error {
	return h.getSection(c, true)
}

func (h *CMSHandler) AdminGetSection(c *fiber.Ctx) error {
	return h.getSection(c, false)
}

func (h *CMSHandler) getSection(c *fiber.Ctx, publishedOnly bool) error {
	s, err := h.useCase.GetSection(c.Context(), c.Params("key"), publishedOnly)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, sectionResponse(s))
}

func (h *CMSHandler) ListSections(c *fiber.Ctx) error {
	return h.listSections(c, true)
}

func (h *CMSHandler) AdminListSections(c *fiber.Ctx) error {
	return h.listSections(c, false)
}

func (h *CMSHandler) listSections(c *fiber.Ctx, publishedOnly bool) error {
	list, err := h.useCase.ListSections(c.Context(), publishedOnly)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, s := range list {
		out = append(out, sectionResponse(s))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// UpsertSection creates or replaces the section at :key.
func (h *CMSHandler) UpsertSection(c *fiber.Ctx) error {
	var req sectionRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	s, err := h.useCase.UpsertSection(c.Context(), cms.Section{
		Key:       c.Params("key"),
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, sectionResponse(s))
}

func (h *CMSHandler) DeleteSection(c *fiber.Ctx) error {
	if err := h.useCase.DeleteSection(c.Context(), c.Params("key")); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "section deleted"})
}

type sliderRequest struct {
	Image     string `json:"image"`
	Caption   string `json:"caption"`
	LinkURL   string `json:"linkUrl"`
	SortOrder int    `json:"sortOrder"`
	Active    *bool  `json:"active"`
}

func sliderResponse(s cms.Slider) fiber.Map {
	return fiber.Map{
		"id":        s.ID.String(),
		"image":     s.Image,
		"caption":   s.Caption,
		"linkUrl":   s.LinkURL,
		"sortOrder": s.SortOrder,
		"active":    s.Active,
	}
}

func (h *CMSHandler) ListSliders(c *fiber.Ctx) error {
	return h.listSliders(c, true)
}

func (h *CMSHandler) AdminListSliders(c *fiber.Ctx) error {
	return h.listSliders(c, false)
}

func (h *CMSHandler) listSliders(c *fiber.Ctx, activeOnly bool) error {
	list, err := h.useCase.ListSliders(c.Context(), activeOnly)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, s := range list {
		out = append(out, sliderResponse(s))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

func (h *CMSHandler) CreateSlider(c *fiber.Ctx) error {
	var req sliderRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	s, err := h.useCase.CreateSlider(c.Context(), cms.Slider{
		Image:     req.Image,
		Caption:   req.Caption,
		LinkURL:   req.LinkURL,
		SortOrder: req.SortOrder,
		Active:    req.Active == nil || *req.Active,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, sliderResponse(s))
}

func (h *CMSHandler) UpdateSlider(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid slider id")
	}
	var req sliderRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	s := cms.Slider{
		ID:        id,
		Image:     req.Image,
		Caption:   req.Caption,
		LinkURL:   req.LinkURL,
		SortOrder: req.SortOrder,
		Active:    req.Active == nil || *req.Active,
	}
	if err := h.useCase.UpdateSlider(c.Context(), s); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, sliderResponse(s))
}

func (h *CMSHandler) DeleteSlider(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid slider id")
	}
	if err := h.useCase.DeleteSlider(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "slider deleted"})
}

type bannerRequest struct {
	Image     string `json:"image"`
	LinkURL   string `json:"linkUrl"`
	Placement string `json:"placement"`
	Active    *bool  `json:"active"`
}

func bannerResponse(b cms.Banner) fiber.Map {
	return fiber.Map{
		"id":        b.ID.String(),
		"image":     b.Image,
		"linkUrl":   b.LinkURL,
		"placement": b.Placement,
		"active":    b.Active,
	}
}

func (h *CMSHandler) ListBanners(c *fiber.Ctx) error {
	return h.listBanners(c, true)
}

func (h *CMSHandler) AdminListBanners(c *fiber.Ctx) error {
	return h.listBanners(c, false)
}

func (h *CMSHandler) listBanners(c *fiber.Ctx, activeOnly bool) error {
	list, err := h.useCase.ListBanners(c.Context(), c.Query("placement"), activeOnly)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, b := range list {
		out = append(out, bannerResponse(b))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

func (h *CMSHandler) CreateBanner(c *fiber.Ctx) error {
	var req bannerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	b, err := h.useCase.CreateBanner(c.Context(), cms.Banner{
		Image:     req.Image,
		LinkURL:   req.LinkURL,
		Placement: req.Placement,
		Active:    req.Active == nil || *req.Active,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, bannerResponse(b))
}

func (h *CMSHandler) UpdateBanner(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid banner id")
	}
	var req bannerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	b := cms.Banner{
		ID:        id,
		Image:     req.Image,
		LinkURL:   req.LinkURL,
		Placement: req.Placement,
		Active:    req.Active == nil || *req.Active,
	}
	if err := h.useCase.UpdateBanner(c.Context(), b); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, bannerResponse(b))
}

func (h *CMSHandler) DeleteBanner(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid banner id")
	}
	if err := h.useCase.DeleteBanner(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "banner deleted"})
}
