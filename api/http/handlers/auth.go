package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dwatsonpk/storefront/api/http/presenter"
	"github.com/dwatsonpk/storefront/pkg/auth"
	securityjwt "github.com/dwatsonpk/storefront/pkg/security/jwt"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
	dev     bool
}

func NewAuthHandler(useCase auth.AuthUseCase, dev bool) *AuthHandler {
	return &AuthHandler{useCase: useCase, dev: dev}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userResponse(u auth.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID.String(),
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  string(u.Role),
	}
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Register(c.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		var ve auth.ErrValidation
		switch {
		case errors.Is(err, auth.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusBadRequest, "user with this email already exists")
		case errors.As(err, &ve):
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		default:
			return presenter.Internal(c, "server error during registration", err, h.dev)
		}
	}

	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"token":   result.Token,
		"message": "Registration successful",
		"user":    userResponse(result.User),
	})
}

// Login handles user login. Unknown email and wrong password produce the
// same response, so callers cannot probe which emails are registered.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	token, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		var ve auth.ErrValidation
		switch {
		case errors.Is(err, auth.ErrStoreUnavailable):
			return presenter.Error(c, http.StatusServiceUnavailable, "database connection error, please try again later")
		case errors.As(err, &ve):
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			return presenter.Error(c, http.StatusBadRequest, "invalid credentials")
		case errors.Is(err, auth.ErrAccountDeactivated):
			return presenter.Error(c, http.StatusForbidden, "account is deactivated")
		default:
			return presenter.Internal(c, "server error during login", err, h.dev)
		}
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{"token": token})
}

// Me returns the authenticated user without the password hash.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token subject")
	}
	user, err := h.useCase.CurrentUser(c.Context(), userID)
	if err != nil {
		return presenter.Internal(c, "server error", err, h.dev)
	}
	resp := userResponse(user)
	resp["active"] = user.Active
	resp["createdAt"] = user.CreatedAt
	return presenter.JSON(c, http.StatusOK, resp)
}

// currentUserID reads the subject set by the JWT middleware.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	sub, _ := c.Locals(securityjwt.LocalUserID).(string)
	return uuid.Parse(sub)
}
