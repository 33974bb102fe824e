package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/SenoussiAl/movie-catalog/internal/config"
	"github.com/SenoussiAl/movie-catalog/internal/database"
	"github.com/SenoussiAl/movie-catalog/internal/handler"
	"github.com/SenoussiAl/movie-catalog/internal/queue"
	"github.com/SenoussiAl/movie-catalog/internal/repository"
	"github.com/SenoussiAl/movie-catalog/internal/router"
	queue_publisher "github.com/SenoussiAl/movie-catalog/internal/service"
	"github.com/SenoussiAl/movie-catalog/internal/validation"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis is optional: with no client, caching and rate limiting
	// degrade to pass-through middleware.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	// Background consumer writing the activity log; it reconnects on
	// its own and never takes the API down.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	movies := repository.NewMovieRepo(db)
	genres := repository.NewGenreRepo(db)
	actors := repository.NewActorRepo(db)
	directors := repository.NewDirectorRepo(db)
	users := repository.NewUserRepo(db)
	comments := repository.NewCommentRepo(db)
	ratings := repository.NewRatingRepo(db)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users),
		Movies:    handler.NewMovieHandler(movies, ratings),
		Genres:    handler.NewGenreHandler(genres),
		Actors:    handler.NewActorHandler(actors),
		Directors: handler.NewDirectorHandler(directors),
		Users:     handler.NewUserHandler(users),
		Comments:  handler.NewCommentHandler(comments, queue_publisher.PublishActivity),
		Ratings:   handler.NewRatingHandler(ratings, queue_publisher.PublishActivity),
	}

	e := echo.New()
	e.Validator = validation.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	router.Register(e, h, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
