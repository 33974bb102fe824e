package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/repository"
	"github.com/SenoussiAl/movie-catalog/internal/validation"
)

// UserStore is the slice of UserRepo the admin user endpoints need.
type UserStore interface {
	List(ctx context.Context, q repository.PageQuery) ([]model.User, int64, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, fields repository.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

// UserHandler bundles dependencies for the admin-only user endpoints.
// Creation goes through /v1/auth/register.
type UserHandler struct {
	Users UserStore
}

func NewUserHandler(users UserStore) *UserHandler { return &UserHandler{Users: users} }

type profileReq struct {
	Bio       string `json:"bio" validate:"max=5000"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

type userUpdateReq struct {
	Email    string      `json:"email" validate:"required,email"`
	Username string      `json:"username" validate:"required,min=3,max=100"`
	Role     string      `json:"role" validate:"required,oneof=USER CRITIC ADMIN"`
	Profile  *profileReq `json:"profile"`
}

// List handles GET /v1/users with pagination. Password hashes never
// leave the server; the model hides them from serialization.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	page := parsePage(c)
	users, total, err := h.Users.List(ctx, page)
	if err != nil {
		return respondError(c, err, "user", "failed to fetch users")
	}
	return c.JSON(http.StatusOK, repository.NewPage(users, total, page))
}

// Get handles GET /v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "user", "failed to fetch user")
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /v1/users/:id, replacing scalar fields and the
// optional profile wholesale.
func (h *UserHandler) Update(c echo.Context) error {
	var req userUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	fields := repository.UserUpdate{Email: req.Email, Username: req.Username, Role: req.Role}
	if req.Profile != nil {
		fields.Profile = &model.Profile{Bio: req.Profile.Bio, AvatarURL: req.Profile.AvatarURL}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.Update(ctx, c.Param("id"), fields)
	if err != nil {
		return respondError(c, err, "user", "failed to update user")
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "user", "failed to delete user")
	}
	return c.NoContent(http.StatusNoContent)
}
