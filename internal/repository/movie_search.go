package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SenoussiAl/movie-catalog/internal/model"
)

// MovieSearchQuery defines filters & pagination for searching movies.
// Empty fields are omitted from the query entirely; present filters
// AND together. MinRating is not part of the SQL query — see Search.
type MovieSearchQuery struct {
	Title     string
	Genre     string
	Actor     string
	Director  string
	Year      int
	MinRating float64
	Page      PageQuery
}

// Search returns one page of movies matching the conjunctive filters,
// plus the pre-pagination match count. MinRating is deliberately NOT
// applied here: it is a post-filter over the already-paginated rows
// (see FilterMinRating), so meta.total always describes the count
// before the rating cut.
func (r *MovieRepo) Search(ctx context.Context, q MovieSearchQuery) ([]model.Movie, int64, error) {
	var total int64
	err := r.searchScope(r.db.WithContext(ctx).Model(&model.Movie{}), q).
		Distinct("movies.id").
		Count(&total).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	// Page of matching ids first; the relation graph is loaded in a
	// second query so the joins cannot multiply rows.
	var idRows []struct{ ID string }
	err = r.searchScope(r.db.WithContext(ctx).Model(&model.Movie{}), q).
		Select("DISTINCT movies.id, movies.title").
		Order("movies.title ASC").
		Offset(q.Page.Offset()).Limit(q.Page.Limit).
		Scan(&idRows).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	if len(idRows) == 0 {
		return []model.Movie{}, total, nil
	}

	ids := make([]string, 0, len(idRows))
	for _, row := range idRows {
		ids = append(ids, row.ID)
	}

	var movies []model.Movie
	err = r.preloadGraph(r.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Order("title ASC").
		Find(&movies).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return movies, total, nil
}

// searchScope applies the present filters to the given query. Joins
// are only added for the filters that need them.
func (r *MovieRepo) searchScope(db *gorm.DB, q MovieSearchQuery) *gorm.DB {
	if q.Title != "" {
		db = db.Where("LOWER(movies.title) LIKE ?", "%"+strings.ToLower(q.Title)+"%")
	}
	if q.Genre != "" {
		db = db.
			Joins("JOIN genre_on_movies gm ON gm.movie_id = movies.id").
			Joins("JOIN genres g ON g.id = gm.genre_id").
			Where("LOWER(g.name) = ?", strings.ToLower(q.Genre))
	}
	if q.Actor != "" {
		db = db.
			Joins("JOIN actor_on_movies am ON am.movie_id = movies.id").
			Joins("JOIN actors a ON a.id = am.actor_id").
			Where("LOWER(a.name) LIKE ?", "%"+strings.ToLower(q.Actor)+"%")
	}
	if q.Director != "" {
		db = db.
			Joins("JOIN director_on_movies dm ON dm.movie_id = movies.id").
			Joins("JOIN directors d ON d.id = dm.director_id").
			Where("LOWER(d.name) LIKE ?", "%"+strings.ToLower(q.Director)+"%")
	}
	if q.Year != 0 {
		db = db.Where("movies.release_date BETWEEN ? AND ?",
			fmt.Sprintf("%04d-01-01", q.Year), fmt.Sprintf("%04d-12-31", q.Year))
	}
	return db
}
