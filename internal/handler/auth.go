package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SenoussiAl/movie-catalog/internal/config"
	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/utils"
	"github.com/SenoussiAl/movie-catalog/internal/validation"
)

// AuthStore is the slice of UserRepo the auth endpoints need.
type AuthStore interface {
	Create(ctx context.Context, email, username, password, role string, cost int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users AuthStore
}

func NewAuthHandler(cfg config.Config, users AuthStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=USER CRITIC"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	User   *model.User `json:"user"`
	Access tokenPart   `json:"access"`
}

// Register creates a user and returns an access token immediately.
// Admin accounts are seeded out of band, never self-registered.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleUser
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.Create(ctx, req.Email, req.Username, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		return respondError(c, err, "user", "failed to create user")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return respondError(c, err, "user", "failed to issue token")
	}
	return c.JSON(http.StatusCreated, authResp{
		User:   user,
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Login verifies credentials and returns a fresh access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil || !utils.VerifyPassword(user.Password, req.Password) {
		// Same response for unknown email and wrong password.
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return respondError(c, err, "user", "failed to issue token")
	}
	return c.JSON(http.StatusOK, authResp{
		User:   user,
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Me returns the authenticated user's record including the profile.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err, "user", "failed to fetch user")
	}
	return c.JSON(http.StatusOK, user)
}
