package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/repository"
	"github.com/SenoussiAl/movie-catalog/internal/validation"
)

// MovieStore is the slice of MovieRepo the handlers need.
type MovieStore interface {
	List(ctx context.Context, q repository.PageQuery, sortBy, sortOrder string) ([]model.Movie, int64, error)
	Search(ctx context.Context, q repository.MovieSearchQuery) ([]model.Movie, int64, error)
	GetByID(ctx context.Context, id string) (*model.Movie, error)
	Create(ctx context.Context, movie *model.Movie, rel repository.MovieRelations) error
	Update(ctx context.Context, id string, movie *model.Movie, rel repository.MovieRelations) (*model.Movie, error)
	Delete(ctx context.Context, id string) error
}

// MovieRatings is the slice of RatingRepo the movie endpoints need
// for the derived averages.
type MovieRatings interface {
	AverageForMovie(ctx context.Context, movieID string) (float64, error)
	AverageByRole(ctx context.Context, movieID, role string) (*float64, error)
	AveragesForMovies(ctx context.Context, movieIDs []string) (map[string]float64, error)
}

// MovieHandler bundles dependencies for the movie endpoints.
type MovieHandler struct {
	Movies  MovieStore
	Ratings MovieRatings
}

func NewMovieHandler(movies MovieStore, ratings MovieRatings) *MovieHandler {
	return &MovieHandler{Movies: movies, Ratings: ratings}
}

// ----- DTOs -----

type actorCreditReq struct {
	ActorID string `json:"actorId" validate:"required,uuid4"`
	Role    string `json:"role" validate:"max=255"`
}

type movieReq struct {
	Title       string           `json:"title" validate:"required,max=255"`
	Description string           `json:"description" validate:"max=5000"`
	ReleaseDate string           `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Duration    int              `json:"duration" validate:"required,gt=0"`
	PosterURL   string           `json:"posterUrl" validate:"omitempty,url"`
	TrailerURL  string           `json:"trailerUrl" validate:"omitempty,url"`
	Genres      []int            `json:"genres" validate:"dive,gt=0"`
	Actors      []actorCreditReq `json:"actors" validate:"dive"`
	Directors   []string         `json:"directors" validate:"dive,uuid4"`
}

func (r movieReq) toModel() *model.Movie {
	release, _ := time.Parse("2006-01-02", r.ReleaseDate) // format checked by validation
	return &model.Movie{
		Title:       r.Title,
		Description: r.Description,
		ReleaseDate: release,
		Duration:    r.Duration,
		PosterURL:   r.PosterURL,
		TrailerURL:  r.TrailerURL,
	}
}

func (r movieReq) toRelations() repository.MovieRelations {
	rel := repository.MovieRelations{GenreIDs: r.Genres, Directors: r.Directors}
	for _, credit := range r.Actors {
		rel.Actors = append(rel.Actors, repository.ActorCredit{ActorID: credit.ActorID, Role: credit.Role})
	}
	return rel
}

// movieDetail decorates the movie with its derived rating averages.
// The plain average is 0 for an unrated movie while the per-role
// averages stay null until a rating from that role exists.
type movieDetail struct {
	*model.Movie
	AvgRating       float64  `json:"avgRating"`
	AvgUserRating   *float64 `json:"avgUserRating"`
	AvgCriticRating *float64 `json:"avgCriticRating"`
}

// ----- handlers -----

// List handles GET /v1/movies with pagination and optional sorting by
// title or releaseDate.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	page := parsePage(c)
	movies, total, err := h.Movies.List(ctx, page, c.QueryParam("sortBy"), c.QueryParam("sortOrder"))
	if err != nil {
		return respondError(c, err, "movie", "failed to fetch movies")
	}
	return c.JSON(http.StatusOK, repository.NewPage(movies, total, page))
}

// Search handles GET /v1/movies/search. All present filters AND
// together; minRating is applied after pagination so meta.total keeps
// the pre-filter match count while data may come back shorter.
func (h *MovieHandler) Search(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	q := repository.MovieSearchQuery{
		Title:    c.QueryParam("title"),
		Genre:    c.QueryParam("genre"),
		Actor:    c.QueryParam("actor"),
		Director: c.QueryParam("director"),
		Page:     parsePage(c),
	}
	if year := c.QueryParam("year"); year != "" {
		if n, err := strconv.Atoi(year); err == nil {
			q.Year = n
		}
	}
	if min := c.QueryParam("minRating"); min != "" {
		if f, err := strconv.ParseFloat(min, 64); err == nil {
			q.MinRating = f
		}
	}

	movies, total, err := h.Movies.Search(ctx, q)
	if err != nil {
		return respondError(c, err, "movie", "failed to search movies")
	}

	ids := make([]string, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
	}
	avgs, err := h.Ratings.AveragesForMovies(ctx, ids)
	if err != nil {
		return respondError(c, err, "movie", "failed to search movies")
	}

	rated := repository.FilterMinRating(repository.AttachAverages(movies, avgs), q.MinRating)
	return c.JSON(http.StatusOK, repository.NewPage(rated, total, q.Page))
}

// Get handles GET /v1/movies/:id and returns the full detail:
// relations, comments with authors, and the three rating averages.
func (h *MovieHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	id := c.Param("id")
	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err, "movie", "failed to fetch movie")
	}

	avg, err := h.Ratings.AverageForMovie(ctx, id)
	if err != nil {
		return respondError(c, err, "movie", "failed to fetch movie")
	}
	avgUser, err := h.Ratings.AverageByRole(ctx, id, model.RoleUser)
	if err != nil {
		return respondError(c, err, "movie", "failed to fetch movie")
	}
	avgCritic, err := h.Ratings.AverageByRole(ctx, id, model.RoleCritic)
	if err != nil {
		return respondError(c, err, "movie", "failed to fetch movie")
	}

	return c.JSON(http.StatusOK, movieDetail{
		Movie:           movie,
		AvgRating:       avg,
		AvgUserRating:   avgUser,
		AvgCriticRating: avgCritic,
	})
}

// Create handles POST /v1/movies.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	movie := req.toModel()
	if err := h.Movies.Create(ctx, movie, req.toRelations()); err != nil {
		return respondError(c, err, "movie", "failed to create movie")
	}
	created, err := h.Movies.GetByID(ctx, movie.ID)
	if err != nil {
		return respondError(c, err, "movie", "failed to create movie")
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/movies/:id. Scalar fields are fully replaced
// and all three relation sets are swapped wholesale.
func (h *MovieHandler) Update(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return validation.BadRequest(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	updated, err := h.Movies.Update(ctx, c.Param("id"), req.toModel(), req.toRelations())
	if err != nil {
		return respondError(c, err, "movie", "failed to update movie")
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/movies/:id.
func (h *MovieHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Movies.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "movie", "failed to delete movie")
	}
	return c.NoContent(http.StatusNoContent)
}
