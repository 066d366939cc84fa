package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parseUUID(v string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(v))
	return id, err == nil
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	return id, err == nil
}

func parseUUIDQuery(c *fiber.Ctx, name string) *uuid.UUID {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}
