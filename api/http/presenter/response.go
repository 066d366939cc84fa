package presenter

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Message string `json:"message"`
	// Error carries internal detail and is only populated in development mode.
	Error string `json:"error,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Internal reports a server-side failure. The underlying error is echoed to
// the client only when dev is set.
func Internal(c *fiber.Ctx, message string, err error, dev bool) error {
	resp := ErrorResponse{Message: message}
	if dev && err != nil {
		resp.Error = err.Error()
	}
	return JSON(c, fiber.StatusInternalServerError, resp)
}
