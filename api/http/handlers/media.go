package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dwatsonpk/storefront/api/http/presenter"
	"github.com/dwatsonpk/storefront/pkg/media"
)

// MediaHandler serves admin uploads and public URL resolution. Object bytes
// live in the bucket; clients only ever see presigned URLs.
type MediaHandler struct {
	useCase media.UseCase
	dev     bool
}

func NewMediaHandler(useCase media.UseCase, dev bool) *MediaHandler {
	return &MediaHandler{useCase: useCase, dev: dev}
}

func mediaResponse(m media.Media) fiber.Map {
	return fiber.Map{
		"id":          m.ID.String(),
		"filename":    m.Filename,
		"contentType": m.ContentType,
		"size":        m.Size,
		"createdAt":   m.CreatedAt,
	}
}

func (h *MediaHandler) fail(c *fiber.Ctx, err error) error {
	var ve media.ErrValidation
	switch {
	case errors.As(err, &ve):
		return presenter.Error(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, media.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "not found")
	default:
		return presenter.Internal(c, "media operation failed", err, h.dev)
	}
}

// Upload accepts a multipart image and stores it in the bucket.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token subject")
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, media.MaxUploadBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	m, err := h.useCase.Upload(c.Context(), userID, fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, mediaResponse(m))
}

func (h *MediaHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	list, err := h.useCase.List(c.Context(), limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, m := range list {
		out = append(out, mediaResponse(m))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// ResolveURL returns a short-lived presigned URL for the object.
func (h *MediaHandler) ResolveURL(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid media id")
	}
	url, err := h.useCase.ResolveURL(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"url": url})
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid media id")
	}
	if err := h.useCase.Delete(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "media deleted"})
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
