package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/validation"
)

// GenreStore is the slice of GenreRepo the handlers need.
type GenreStore interface {
	List(ctx context.Context) ([]model.Genre, error)
	GetByID(ctx context.Context, id int) (*model.Genre, error)
	Create(ctx context.Context, genre *model.Genre) error
	Update(ctx context.Context, id int, name string) (*model.Genre, error)
	Delete(ctx context.Context, id int) error
}

// GenreHandler bundles dependencies for the genre endpoints.
type GenreHandler struct {
	Genres GenreStore
}

func NewGenreHandler(genres GenreStore) *GenreHandler { return &GenreHandler{Genres: genres} }

type genreReq struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// List handles GET /v1/genres, sorted by name.
func (h *GenreHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	genres, err := h.Genres.List(ctx)
	if err != nil {
		return respondError(c, err, "genre", "failed to fetch genres")
	}
	return c.JSON(http.StatusOK, genres)
}

// Get handles GET /v1/genres/:id.
func (h *GenreHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	genre, err := h.Genres.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err, "genre", "failed to fetch genre")
	}
	return c.JSON(http.StatusOK, genre)
}

// Create handles POST /v1/genres. A duplicate name yields 409.
func (h *GenreHandler) Create(c echo.Context) error {
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	genre := model.Genre{Name: req.Name}
	if err := h.Genres.Create(ctx, &genre); err != nil {
		return respondError(c, err, "genre", "failed to create genre")
	}
	return c.JSON(http.StatusCreated, genre)
}

// Update handles PUT /v1/genres/:id.
func (h *GenreHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	genre, err := h.Genres.Update(ctx, id, req.Name)
	if err != nil {
		return respondError(c, err, "genre", "failed to update genre")
	}
	return c.JSON(http.StatusOK, genre)
}

// Delete handles DELETE /v1/genres/:id. While any movie references
// the genre the delete is refused with 400 and the row stays.
func (h *GenreHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Genres.Delete(ctx, id); err != nil {
		return respondError(c, err, "genre", "failed to delete genre")
	}
	return c.NoContent(http.StatusNoContent)
}
