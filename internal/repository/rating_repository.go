package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SenoussiAl/movie-catalog/internal/model"
)

// RatingRepo wraps access to the ratings table and owns the rating
// aggregations used by the movie detail and search responses.
type RatingRepo struct{ db *gorm.DB }

func NewRatingRepo(db *gorm.DB) *RatingRepo { return &RatingRepo{db: db} }

// Upsert inserts or updates the caller's rating for a movie. The
// unique (movie_id, user_id) index guarantees the pair never holds
// more than one row; a second submission only moves the score.
func (r *RatingRepo) Upsert(ctx context.Context, movieID, userID string, score float64) (*model.Rating, error) {
	rating := model.Rating{MovieID: movieID, UserID: userID, Score: score}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "movie_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(upsertAssignments(score)),
		}).
		Create(&rating).Error
	if err != nil {
		return nil, translate(err)
	}
	return r.GetOwn(ctx, movieID, userID)
}

// upsertAssignments is the column set applied when the (movie, user)
// pair already holds a row. updated_at must be set by hand: the
// conflict path bypasses gorm's autoUpdateTime hook.
func upsertAssignments(score float64) map[string]any {
	return map[string]any{
		"score":      score,
		"updated_at": time.Now().UTC(),
	}
}

// GetOwn fetches the caller's rating for a movie.
func (r *RatingRepo) GetOwn(ctx context.Context, movieID, userID string) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).
		First(&rating, "movie_id = ? AND user_id = ?", movieID, userID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rating, nil
}

// ListByMovie returns one page of a movie's ratings, newest first,
// each with the rater.
func (r *RatingRepo) ListByMovie(ctx context.Context, movieID string, q PageQuery) ([]model.Rating, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("movie_id = ?", movieID).
		Count(&total).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	var ratings []model.Rating
	err = r.db.WithContext(ctx).
		Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return ratings, total, nil
}

// AverageForMovie returns the mean score over all of a movie's
// ratings, 0 when it has none.
func (r *RatingRepo) AverageForMovie(ctx context.Context, movieID string) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("COALESCE(AVG(score), 0)").
		Where("movie_id = ?", movieID).
		Scan(&avg).Error
	if err != nil {
		return 0, translate(err)
	}
	return avg, nil
}

// AverageByRole returns the mean score over ratings whose author
// holds the given role. Unlike AverageForMovie it yields nil, not 0,
// when no qualifying rating exists.
func (r *RatingRepo) AverageByRole(ctx context.Context, movieID, role string) (*float64, error) {
	var row struct{ Avg *float64 }
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("AVG(ratings.score) AS avg").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.movie_id = ? AND users.role = ?", movieID, role).
		Scan(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return row.Avg, nil
}

// AveragesForMovies returns the mean score per movie for a batch of
// ids. Movies without ratings are simply absent from the map.
func (r *RatingRepo) AveragesForMovies(ctx context.Context, movieIDs []string) (map[string]float64, error) {
	if len(movieIDs) == 0 {
		return map[string]float64{}, nil
	}
	var rows []struct {
		MovieID string
		Avg     float64
	}
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("movie_id, AVG(score) AS avg").
		Where("movie_id IN ?", movieIDs).
		Group("movie_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.MovieID] = row.Avg
	}
	return out, nil
}
