package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/queue"
	"github.com/SenoussiAl/movie-catalog/internal/repository"
	"github.com/SenoussiAl/movie-catalog/internal/validation"
)

// RatingStore is the slice of RatingRepo the handlers need.
type RatingStore interface {
	Upsert(ctx context.Context, movieID, userID string, score float64) (*model.Rating, error)
	GetOwn(ctx context.Context, movieID, userID string) (*model.Rating, error)
	ListByMovie(ctx context.Context, movieID string, q repository.PageQuery) ([]model.Rating, int64, error)
}

// RatingHandler bundles dependencies for the rating endpoints.
type RatingHandler struct {
	Ratings RatingStore
	Publish ActivityPublisher
}

func NewRatingHandler(ratings RatingStore, publish ActivityPublisher) *RatingHandler {
	return &RatingHandler{Ratings: ratings, Publish: publish}
}

type ratingReq struct {
	Score   float64 `json:"score" validate:"required,min=0.5,max=5,halfstep"`
	MovieID string  `json:"movieId" validate:"required,uuid4"`
}

// Upsert handles POST /v1/ratings. A second submission for the same
// movie by the same caller moves the score instead of adding a row.
func (h *RatingHandler) Upsert(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req ratingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rating, err := h.Ratings.Upsert(ctx, req.MovieID, userID, req.Score)
	if err != nil {
		return respondError(c, err, "rating", "failed to update rating")
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.ActivityEvent{
			Type:       queue.TypeRatingUpserted,
			MovieID:    rating.MovieID,
			UserID:     userID,
			Score:      rating.Score,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, rating)
}

// GetOwn handles GET /v1/ratings/:movieId and returns the caller's
// rating for the movie, or {"score": null} when they have none.
func (h *RatingHandler) GetOwn(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rating, err := h.Ratings.GetOwn(ctx, c.Param("movieId"), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"score": nil})
		}
		return respondError(c, err, "rating", "failed to fetch rating")
	}
	return c.JSON(http.StatusOK, rating)
}

// ListByMovie handles GET /v1/ratings/movie/:movieId, newest first,
// each with the rater.
func (h *RatingHandler) ListByMovie(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	page := parsePage(c)
	ratings, total, err := h.Ratings.ListByMovie(ctx, c.Param("movieId"), page)
	if err != nil {
		return respondError(c, err, "rating", "failed to fetch ratings")
	}
	return c.JSON(http.StatusOK, repository.NewPage(ratings, total, page))
}
