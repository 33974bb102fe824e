package repository

import "github.com/SenoussiAl/movie-catalog/internal/model"

// RatedMovie is a movie row decorated with its average rating for
// search responses.
type RatedMovie struct {
	model.Movie
	AvgRating float64 `json:"avgRating"`
}

// AttachAverages pairs each movie with its average rating. Movies
// without any rating get 0.
func AttachAverages(movies []model.Movie, avgs map[string]float64) []RatedMovie {
	out := make([]RatedMovie, 0, len(movies))
	for _, m := range movies {
		out = append(out, RatedMovie{Movie: m, AvgRating: avgs[m.ID]})
	}
	return out
}

// FilterMinRating trims rows below the threshold. It runs after
// pagination, so a page can come back shorter than meta.limit while
// meta.total keeps the pre-filter count.
func FilterMinRating(rows []RatedMovie, min float64) []RatedMovie {
	if min <= 0 {
		return rows
	}
	out := make([]RatedMovie, 0, len(rows))
	for _, row := range rows {
		if row.AvgRating >= min {
			out = append(out, row)
		}
	}
	return out
}
