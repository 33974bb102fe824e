package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/repository"
	"github.com/SenoussiAl/movie-catalog/internal/validation"
)

// ActorStore is the slice of ActorRepo the handlers need.
type ActorStore interface {
	List(ctx context.Context, q repository.PageQuery) ([]model.Actor, int64, error)
	GetByID(ctx context.Context, id string) (*model.Actor, error)
	Create(ctx context.Context, actor *model.Actor) error
	Update(ctx context.Context, id string, fields *model.Actor) (*model.Actor, error)
	Delete(ctx context.Context, id string) error
}

// ActorHandler bundles dependencies for the actor endpoints.
type ActorHandler struct {
	Actors ActorStore
}

func NewActorHandler(actors ActorStore) *ActorHandler { return &ActorHandler{Actors: actors} }

type personReq struct {
	Name        string `json:"name" validate:"required,max=255"`
	Bio         string `json:"bio" validate:"max=5000"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
}

func (r personReq) birthday() time.Time {
	t, _ := time.Parse("2006-01-02", r.DateOfBirth) // format checked by validation
	return t
}

// List handles GET /v1/actors with pagination; each actor carries
// their filmography.
func (h *ActorHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	page := parsePage(c)
	actors, total, err := h.Actors.List(ctx, page)
	if err != nil {
		return respondError(c, err, "actor", "failed to fetch actors")
	}
	return c.JSON(http.StatusOK, repository.NewPage(actors, total, page))
}

// Get handles GET /v1/actors/:id.
func (h *ActorHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	actor, err := h.Actors.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "actor", "failed to fetch actor")
	}
	return c.JSON(http.StatusOK, actor)
}

// Create handles POST /v1/actors.
func (h *ActorHandler) Create(c echo.Context) error {
	var req personReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	actor := model.Actor{Name: req.Name, Bio: req.Bio, DateOfBirth: req.birthday()}
	if err := h.Actors.Create(ctx, &actor); err != nil {
		return respondError(c, err, "actor", "failed to create actor")
	}
	return c.JSON(http.StatusCreated, actor)
}

// Update handles PUT /v1/actors/:id, replacing all scalar fields.
func (h *ActorHandler) Update(c echo.Context) error {
	var req personReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	fields := model.Actor{Name: req.Name, Bio: req.Bio, DateOfBirth: req.birthday()}
	actor, err := h.Actors.Update(ctx, c.Param("id"), &fields)
	if err != nil {
		return respondError(c, err, "actor", "failed to update actor")
	}
	return c.JSON(http.StatusOK, actor)
}

// Delete handles DELETE /v1/actors/:id.
func (h *ActorHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Actors.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "actor", "failed to delete actor")
	}
	return c.NoContent(http.StatusNoContent)
}
