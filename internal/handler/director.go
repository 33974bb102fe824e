package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/repository"
	"github.com/SenoussiAl/movie-catalog/internal/validation"
)

// DirectorStore is the slice of DirectorRepo the handlers need.
type DirectorStore interface {
	List(ctx context.Context, q repository.PageQuery) ([]model.Director, int64, error)
	GetByID(ctx context.Context, id string) (*model.Director, error)
	Create(ctx context.Context, director *model.Director) error
	Update(ctx context.Context, id string, fields *model.Director) (*model.Director, error)
	Delete(ctx context.Context, id string) error
}

// DirectorHandler bundles dependencies for the director endpoints.
// Directors share the personReq DTO with actors.
type DirectorHandler struct {
	Directors DirectorStore
}

func NewDirectorHandler(directors DirectorStore) *DirectorHandler {
	return &DirectorHandler{Directors: directors}
}

// List handles GET /v1/directors with pagination.
func (h *DirectorHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	page := parsePage(c)
	directors, total, err := h.Directors.List(ctx, page)
	if err != nil {
		return respondError(c, err, "director", "failed to fetch directors")
	}
	return c.JSON(http.StatusOK, repository.NewPage(directors, total, page))
}

// Get handles GET /v1/directors/:id.
func (h *DirectorHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	director, err := h.Directors.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "director", "failed to fetch director")
	}
	return c.JSON(http.StatusOK, director)
}

// Create handles POST /v1/directors.
func (h *DirectorHandler) Create(c echo.Context) error {
	var req personReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	director := model.Director{Name: req.Name, Bio: req.Bio, DateOfBirth: req.birthday()}
	if err := h.Directors.Create(ctx, &director); err != nil {
		return respondError(c, err, "director", "failed to create director")
	}
	return c.JSON(http.StatusCreated, director)
}

// Update handles PUT /v1/directors/:id, replacing all scalar fields.
func (h *DirectorHandler) Update(c echo.Context) error {
	var req personReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	fields := model.Director{Name: req.Name, Bio: req.Bio, DateOfBirth: req.birthday()}
	director, err := h.Directors.Update(ctx, c.Param("id"), &fields)
	if err != nil {
		return respondError(c, err, "director", "failed to update director")
	}
	return c.JSON(http.StatusOK, director)
}

// Delete handles DELETE /v1/directors/:id.
func (h *DirectorHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Directors.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "director", "failed to delete director")
	}
	return c.NoContent(http.StatusNoContent)
}
