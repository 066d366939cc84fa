package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PagesHandler serves the static storefront HTML. Routes are only mounted
// when a frontend directory is configured; API-only deployments skip it.
type PagesHandler struct {
	dir string
}

func NewPagesHandler(dir string) *PagesHandler { return &PagesHandler{dir: dir} }

func (h *PagesHandler) Enabled() bool { return h.dir != "" }

func (h *PagesHandler) Dir() string { return h.dir }

// Page returns a handler that always serves the named HTML file.
func (h *PagesHandler) Page(name string) fiber.Handler {
	path := filepath.Join(h.dir, name)
	return func(c *fiber.Ctx) error {
		return c.SendFile(path)
	}
}

// DetailPage serves an HTML file for routes like /product/:id, rejecting
// parameter values that look like file requests.
func (h *PagesHandler) DetailPage(name string) fiber.Handler {
	path := filepath.Join(h.dir, name)
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if strings.ContainsAny(id, "./") {
			return c.Status(http.StatusNotFound).SendString("Not found")
		}
		return c.SendFile(path)
	}
}

// Index is the non-API catch-all.
func (h *PagesHandler) Index(c *fiber.Ctx) error {
	return c.SendFile(filepath.Join(h.dir, "index.html"))
}
