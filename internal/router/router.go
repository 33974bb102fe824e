// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/SenoussiAl/movie-catalog/internal/config"
	"github.com/SenoussiAl/movie-catalog/internal/handler"
	"github.com/SenoussiAl/movie-catalog/internal/middleware"
	"github.com/SenoussiAl/movie-catalog/internal/model"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Movies    *handler.MovieHandler
	Genres    *handler.GenreHandler
	Actors    *handler.ActorHandler
	Directors *handler.DirectorHandler
	Users     *handler.UserHandler
	Comments  *handler.CommentHandler
	Ratings   *handler.RatingHandler
}

// Register mounts the whole API under /v1. The token-bucket rate
// limiter covers the group; the Redis response cache only wraps the
// public GET endpoints. Write endpoints sit behind JWT auth, and the
// catalog management surface additionally requires the ADMIN role.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	ratelimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	jwtAuth := middleware.JWTAuth(jwtSecret)
	anyRole := middleware.RequireRole(model.RoleUser, model.RoleCritic, model.RoleAdmin)
	admin := middleware.RequireRole(model.RoleAdmin)

	v1 := e.Group("/v1", ratelimit)

	// Health check for load balancers and monitoring.
	v1.GET("/healthz", handler.Health)

	// Session-less auth operations.
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)
	v1.GET("/me", h.Auth.Me, jwtAuth, anyRole)

	// Public browse endpoints, cached.
	v1.GET("/movies", h.Movies.List, cache)
	v1.GET("/movies/search", h.Movies.Search, cache)
	v1.GET("/movies/:id", h.Movies.Get, cache)
	v1.GET("/genres", h.Genres.List, cache)
	v1.GET("/genres/:id", h.Genres.Get, cache)
	v1.GET("/actors", h.Actors.List, cache)
	v1.GET("/actors/:id", h.Actors.Get, cache)
	v1.GET("/directors", h.Directors.List, cache)
	v1.GET("/directors/:id", h.Directors.Get, cache)
	v1.GET("/comments/movie/:movieId", h.Comments.ListByMovie)
	v1.GET("/ratings/movie/:movieId", h.Ratings.ListByMovie)

	// Catalog management, ADMIN only.
	v1.POST("/movies", h.Movies.Create, jwtAuth, admin)
	v1.PUT("/movies/:id", h.Movies.Update, jwtAuth, admin)
	v1.DELETE("/movies/:id", h.Movies.Delete, jwtAuth, admin)
	v1.POST("/genres", h.Genres.Create, jwtAuth, admin)
	v1.PUT("/genres/:id", h.Genres.Update, jwtAuth, admin)
	v1.DELETE("/genres/:id", h.Genres.Delete, jwtAuth, admin)
	v1.POST("/actors", h.Actors.Create, jwtAuth, admin)
	v1.PUT("/actors/:id", h.Actors.Update, jwtAuth, admin)
	v1.DELETE("/actors/:id", h.Actors.Delete, jwtAuth, admin)
	v1.POST("/directors", h.Directors.Create, jwtAuth, admin)
	v1.PUT("/directors/:id", h.Directors.Update, jwtAuth, admin)
	v1.DELETE("/directors/:id", h.Directors.Delete, jwtAuth, admin)

	// User administration.
	v1.GET("/users", h.Users.List, jwtAuth, admin)
	v1.GET("/users/:id", h.Users.Get, jwtAuth, admin)
	v1.PUT("/users/:id", h.Users.Update, jwtAuth, admin)
	v1.DELETE("/users/:id", h.Users.Delete, jwtAuth, admin)

	// Comments and ratings, any authenticated role.
	v1.POST("/comments", h.Comments.Create, jwtAuth, anyRole)
	v1.PUT("/comments/:id", h.Comments.Update, jwtAuth, anyRole)
	v1.DELETE("/comments/:id", h.Comments.Delete, jwtAuth, anyRole)
	v1.POST("/ratings", h.Ratings.Upsert, jwtAuth, anyRole)
	v1.GET("/ratings/:movieId", h.Ratings.GetOwn, jwtAuth, anyRole)
}
