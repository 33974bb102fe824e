package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SenoussiAl/movie-catalog/internal/model"
)

// MovieRepo wraps all movie table access including the join tables to
// genres, actors and directors.
type MovieRepo struct{ db *gorm.DB }

func NewMovieRepo(db *gorm.DB) *MovieRepo { return &MovieRepo{db: db} }

// MovieRelations carries the id sets a create or update wants linked
// to the movie. On update the existing join rows are dropped and
// recreated wholesale; partial relation updates are not supported.
type MovieRelations struct {
	GenreIDs  []int
	Actors    []ActorCredit
	Directors []string
}

// ActorCredit pairs an actor id with the role played in the movie.
type ActorCredit struct {
	ActorID string
	Role    string
}

// Sortable columns for the movie list. Anything else falls back to title.
var movieSortColumns = map[string]string{
	"title":       "title",
	"releaseDate": "release_date",
}

// List returns one page of movies with their relation graphs preloaded.
func (r *MovieRepo) List(ctx context.Context, q PageQuery, sortBy, sortOrder string) ([]model.Movie, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Movie{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	col, ok := movieSortColumns[sortBy]
	if !ok {
		col = "title"
	}
	dir := "ASC"
	if sortOrder == "desc" {
		dir = "DESC"
	}

	var movies []model.Movie
	err := r.preloadGraph(r.db.WithContext(ctx)).
		Order(col + " " + dir).
		Offset(q.Offset()).Limit(q.Limit).
		Find(&movies).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return movies, total, nil
}

// GetByID returns one movie with relations and its comments (newest
// first, each with the author). The derived rating averages are
// computed by RatingRepo, not here.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	var movie model.Movie
	err := r.preloadGraph(r.db.WithContext(ctx)).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Comments.User").
		First(&movie, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &movie, nil
}

// Create inserts the movie and its join rows in one transaction.
func (r *MovieRepo) Create(ctx context.Context, movie *model.Movie, rel MovieRelations) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(movie).Error; err != nil {
			return err
		}
		return r.linkRelations(tx, movie.ID, rel)
	})
	if err != nil {
		return translate(err)
	}
	return nil
}

// Update replaces the movie's scalar fields and swaps out all three
// join tables for the given relation sets, atomically. The old join
// rows are not diffed against the new ones, only replaced.
func (r *MovieRepo) Update(ctx context.Context, id string, movie *model.Movie, rel MovieRelations) (*model.Movie, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Movie
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"title":        movie.Title,
			"description":  movie.Description,
			"release_date": movie.ReleaseDate,
			"duration":     movie.Duration,
			"poster_url":   movie.PosterURL,
			"trailer_url":  movie.TrailerURL,
		}
		if err := tx.Model(&model.Movie{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := r.unlinkRelations(tx, id); err != nil {
			return err
		}
		return r.linkRelations(tx, id, rel)
	})
	if err != nil {
		return nil, translate(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes the movie together with its join rows, comments and
// ratings so no dependent rows are left orphaned.
func (r *MovieRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Movie
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}
		if err := r.unlinkRelations(tx, id); err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Movie{}, "id = ?", id).Error
	})
	return translate(err)
}

// preloadGraph attaches the genre/actor/director includes used by
// every movie read path.
func (r *MovieRepo) preloadGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Genres.Genre").
		Preload("Actors.Actor").
		Preload("Directors.Director")
}

func (r *MovieRepo) linkRelations(tx *gorm.DB, movieID string, rel MovieRelations) error {
	for _, genreID := range rel.GenreIDs {
		row := model.GenreOnMovie{MovieID: movieID, GenreID: genreID}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	for _, credit := range rel.Actors {
		row := model.ActorOnMovie{MovieID: movieID, ActorID: credit.ActorID, Role: credit.Role}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	for _, directorID := range rel.Directors {
		row := model.DirectorOnMovie{MovieID: movieID, DirectorID: directorID}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *MovieRepo) unlinkRelations(tx *gorm.DB, movieID string) error {
	if err := tx.Where("movie_id = ?", movieID).Delete(&model.GenreOnMovie{}).Error; err != nil {
		return err
	}
	if err := tx.Where("movie_id = ?", movieID).Delete(&model.ActorOnMovie{}).Error; err != nil {
		return err
	}
	return tx.Where("movie_id = ?", movieID).Delete(&model.DirectorOnMovie{}).Error
}
