package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dwatsonpk/storefront/api/http/presenter"
	"github.com/dwatsonpk/storefront/pkg/catalog"
)

// CatalogHandler serves the public catalog reads and the admin CRUD for
// departments, categories, and products.
type CatalogHandler struct {
	useCase catalog.UseCase
	dev     bool
}

func NewCatalogHandler(useCase catalog.UseCase, dev bool) *CatalogHandler {
	return &CatalogHandler{useCase: useCase, dev: dev}
}

func (h *CatalogHandler) fail(c *fiber.Ctx, err error) error {
	var ve catalog.ErrValidation
	switch {
	case errors.As(err, &ve):
		return presenter.Error(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, catalog.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "not found")
	default:
		return presenter.Internal(c, "catalog operation failed", err, h.dev)
	}
}

type departmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Active      *bool  `json:"active"`
	SortOrder   int    `json:"sortOrder"`
}

func departmentResponse(d catalog.Department) fiber.Map {
	return fiber.Map{
		"id":          d.ID.String(),
		"name":        d.Name,
		"description": d.Description,
		"image":       d.Image,
		"active":      d.Active,
		"sortOrder":   d.SortOrder,
		"createdAt":   d.CreatedAt,
	}
}

// ListDepartments serves the public department listing (active only).
func (h *CatalogHandler) ListDepartments(c *fiber.Ctx) error {
	return h.listDepartments(c, true)
}

// AdminListDepartments includes inactive departments.
func (h *CatalogHandler) AdminListDepartments(c *fiber.Ctx) error {
	return h.listDepartments(c, false)
}

func (h *CatalogHandler) listDepartments(c *fiber.Ctx, activeOnly bool) error {
	list, err := h.useCase.ListDepartments(c.Context(), activeOnly)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, d := range list {
		out = append(out, departmentResponse(d))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

func (h *CatalogHandler) CreateDepartment(c *fiber.Ctx) error {
	var req departmentRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	d := catalog.Department{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Active:      req.Active == nil || *req.Active,
		SortOrder:   req.SortOrder,
	}
	created, err := h.useCase.CreateDepartment(c.Context(), d)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, departmentResponse(created))
}

func (h *CatalogHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid department id")
	}
	var req departmentRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	d := catalog.Department{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Active:      req.Active == nil || *req.Active,
		SortOrder:   req.SortOrder,
	}
	if err := h.useCase.UpdateDepartment(c.Context(), d); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, departmentResponse(d))
}

func (h *CatalogHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid department id")
	}
	if err := h.useCase.DeleteDepartment(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "department deleted"})
}

type categoryRequest struct {
	DepartmentID string `json:"departmentId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Active       *bool  `json:"active"`
}

func categoryResponse(cat catalog.Category) fiber.Map {
	return fiber.Map{
		"id":           cat.ID.String(),
		"departmentId": cat.DepartmentID.String(),
		"name":         cat.Name,
		"description":  cat.Description,
		"image":        cat.Image,
		"active":       cat.Active,
		"createdAt":    cat.CreatedAt,
	}
}

// ListCategories serves the public category listing, optionally filtered by
// ?department=<id>.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	return h.listCategories(c, true)
}

func (h *CatalogHandler) AdminListCategories(c *fiber.Ctx) error {
	return h.listCategories(c, false)
}

func (h *CatalogHandler) listCategories(c *fiber.Ctx, activeOnly bool) error {
	list, err := h.useCase.ListCategories(c.Context(), parseUUIDQuery(c, "department"), activeOnly)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, cat := range list {
		out = append(out, categoryResponse(cat))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	depID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid department id")
	}
	cat := catalog.Category{
		DepartmentID: depID,
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Active:       req.Active == nil || *req.Active,
	}
	created, err := h.useCase.CreateCategory(c.Context(), cat)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, categoryResponse(created))
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid category id")
	}
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	depID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid department id")
	}
	cat := catalog.Category{
		ID:           id,
		DepartmentID: depID,
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Active:       req.Active == nil || *req.Active,
	}
	if err := h.useCase.UpdateCategory(c.Context(), cat); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, categoryResponse(cat))
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid category id")
	}
	if err := h.useCase.DeleteCategory(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "category deleted"})
}

type productRequest struct {
	DepartmentID string   `json:"departmentId"`
	CategoryID   string   `json:"categoryId"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        int64    `json:"price"`
	ComparePrice int64    `json:"comparePrice"`
	Images       []string `json:"images"`
	Stock        int      `json:"stock"`
	Featured     bool     `json:"featured"`
	Active       *bool    `json:"active"`
}

func productResponse(p catalog.Product) fiber.Map {
	m := fiber.Map{
		"id":           p.ID.String(),
		"departmentId": p.DepartmentID.String(),
		"name":         p.Name,
		"description":  p.Description,
		"price":        p.Price,
		"comparePrice": p.ComparePrice,
		"images":       p.Images,
		"stock":        p.Stock,
		"featured":     p.Featured,
		"active":       p.Active,
		"createdAt":    p.CreatedAt,
	}
	if p.CategoryID != nil {
		m["categoryId"] = p.CategoryID.String()
	}
	return m
}

func (h *CatalogHandler) productFromRequest(req productRequest) (catalog.Product, error) {
	depID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return catalog.Product{}, errors.New("invalid department id")
	}
	p := catalog.Product{
		DepartmentID: depID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		Images:       req.Images,
		Stock:        req.Stock,
		Featured:     req.Featured,
		Active:       req.Active == nil || *req.Active,
	}
	if req.CategoryID != "" {
		catID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return catalog.Product{}, errors.New("invalid category id")
		}
		p.CategoryID = &catID
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return p, nil
}

// ListProducts serves the public product listing with optional filters:
// ?department=<id>&category=<id>&featured=true&search=<text>&limit&offset.
// @Summary List products
// @Tags    catalog
// @Produce json
// @Success 200 {array} map[string]any
// @Router  /public/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	return h.listProducts(c, true)
}

func (h *CatalogHandler) AdminListProducts(c *fiber.Ctx) error {
	return h.listProducts(c, false)
}

func (h *CatalogHandler) listProducts(c *fiber.Ctx, activeOnly bool) error {
	limit, offset := parseLimitOffset(c, 50)
	f := catalog.ProductFilter{
		DepartmentID: parseUUIDQuery(c, "department"),
		CategoryID:   parseUUIDQuery(c, "category"),
		FeaturedOnly: c.QueryBool("featured"),
		Search:       c.Query("search"),
		ActiveOnly:   activeOnly,
	}
	list, err := h.useCase.ListProducts(c.Context(), f, limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, p := range list {
		out = append(out, productResponse(p))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// GetProduct serves the public product detail page data.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	p, err := h.useCase.GetProduct(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	if !p.Active {
		return presenter.Error(c, http.StatusNotFound, "not found")
	}
	return presenter.JSON(c, http.StatusOK, productResponse(p))
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := h.productFromRequest(req)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	created, err := h.useCase.CreateProduct(c.Context(), p)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, productResponse(created))
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := h.productFromRequest(req)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.useCase.UpdateProduct(c.Context(), p); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, productResponse(p))
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	if err := h.useCase.DeleteProduct(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "product deleted"})
}
