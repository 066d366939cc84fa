package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dwatsonpk/storefront/api/http/presenter"
	"github.com/dwatsonpk/storefront/pkg/report"
)

// ReportHandler serves admin sales reporting.
type ReportHandler struct {
	useCase report.UseCase
	dev     bool
}

func NewReportHandler(useCase report.UseCase, dev bool) *ReportHandler {
	return &ReportHandler{useCase: useCase, dev: dev}
}

// parseDateRange reads ?from and ?to as RFC 3339 dates (2006-01-02). Zero
// values defer to the use case defaults.
func parseDateRange(c *fiber.Ctx) (from, to time.Time) {
	if v := strings.TrimSpace(c.Query("from")); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = t
		}
	}
	if v := strings.TrimSpace(c.Query("to")); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			// Inclusive end date.
			to = t.AddDate(0, 0, 1)
		}
	}
	return from, to
}

func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, to := parseDateRange(c)
	s, err := h.useCase.Sales(c.Context(), from, to)
	if err != nil {
		return presenter.Internal(c, "report failed", err, h.dev)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"from":     s.From,
		"to":       s.To,
		"orders":   s.Orders,
		"revenue":  s.Revenue,
		"byStatus": s.ByStatus,
	})
}

func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	from, to := parseDateRange(c)
	limit, _ := parseLimitOffset(c, 10)
	list, err := h.useCase.TopProducts(c.Context(), from, to, limit)
	if err != nil {
		return presenter.Internal(c, "report failed", err, h.dev)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, tp := range list {
		out = append(out, fiber.Map{
			"productId": tp.ProductID.String(),
			"name":      tp.Name,
			"quantity":  tp.Quantity,
			"revenue":   tp.Revenue,
		})
	}
	return presenter.JSON(c, http.StatusOK, out)
}

func (h *ReportHandler) Customers(c *fiber.Ctx) error {
	n, err := h.useCase.CustomerCount(c.Context())
	if err != nil {
		return presenter.Internal(c, "report failed", err, h.dev)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"customers": n})
}
