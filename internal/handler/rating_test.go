package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SenoussiAl/movie-catalog/internal/middleware"
	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/queue"
	"github.com/SenoussiAl/movie-catalog/internal/repository"
)

const (
	testMovieID = "20dddede-13d9-4963-b6ad-acffb41d86b7"
	testUserID  = "7f6dfbc4-74c3-4f0a-9e81-0f37a2c9b9d1"
)

// ratingStoreStub keeps one rating per (movie, user) pair, mirroring
// the unique index the real repository relies on.
type ratingStoreStub struct {
	scores map[string]float64
}

func newRatingStoreStub() *ratingStoreStub {
	return &ratingStoreStub{scores: map[string]float64{}}
}

func (s *ratingStoreStub) key(movieID, userID string) string { return movieID + "|" + userID }

func (s *ratingStoreStub) Upsert(ctx context.Context, movieID, userID string, score float64) (*model.Rating, error) {
	s.scores[s.key(movieID, userID)] = score
	return &model.Rating{MovieID: movieID, UserID: userID, Score: score}, nil
}

func (s *ratingStoreStub) GetOwn(ctx context.Context, movieID, userID string) (*model.Rating, error) {
	score, ok := s.scores[s.key(movieID, userID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &model.Rating{MovieID: movieID, UserID: userID, Score: score}, nil
}

func (s *ratingStoreStub) ListByMovie(ctx context.Context, movieID string, q repository.PageQuery) ([]model.Rating, int64, error) {
	return nil, 0, nil
}

func TestRatingUpsertMovesScore(t *testing.T) {
	store := newRatingStoreStub()
	var published []queue.ActivityEvent
	h := NewRatingHandler(store, func(ctx context.Context, ev queue.ActivityEvent) error {
		published = append(published, ev)
		return nil
	})

	post := func(score string) *model.Rating {
		c, rec := newTestContext(t, http.MethodPost, "/v1/ratings",
			`{"movieId":"`+testMovieID+`","score":`+score+`}`)
		c.Set(middleware.ContextUserID, testUserID)
		require.NoError(t, h.Upsert(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var rating model.Rating
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rating))
		return &rating
	}

	first := post("3.5")
	assert.Equal(t, 3.5, first.Score)

	second := post("5")
	assert.Equal(t, 5.0, second.Score)

	// Same pair again: the score moved, no second row appeared.
	require.Len(t, store.scores, 1)
	assert.Equal(t, 5.0, store.scores[store.key(testMovieID, testUserID)])

	require.Len(t, published, 2)
	assert.Equal(t, queue.TypeRatingUpserted, published[0].Type)
	assert.Equal(t, testMovieID, published[1].MovieID)
}

func TestRatingUpsertValidation(t *testing.T) {
	h := NewRatingHandler(newRatingStoreStub(), nil)

	tests := []struct {
		name string
		body string
	}{
		{"score off the half-point grid", `{"movieId":"` + testMovieID + `","score":4.3}`},
		{"score below minimum", `{"movieId":"` + testMovieID + `","score":0.25}`},
		{"score above maximum", `{"movieId":"` + testMovieID + `","score":5.5}`},
		{"movie id not a uuid", `{"movieId":"42","score":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPost, "/v1/ratings", tt.body)
			c.Set(middleware.ContextUserID, testUserID)
			require.NoError(t, h.Upsert(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRatingUpsertRequiresAuth(t *testing.T) {
	h := NewRatingHandler(newRatingStoreStub(), nil)

	c, rec := newTestContext(t, http.MethodPost, "/v1/ratings",
		`{"movieId":"`+testMovieID+`","score":4}`)
	require.NoError(t, h.Upsert(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRatingGetOwn(t *testing.T) {
	store := newRatingStoreStub()
	store.scores[store.key(testMovieID, testUserID)] = 4.5
	h := NewRatingHandler(store, nil)

	t.Run("returns the caller's rating", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodGet, "/v1/ratings/"+testMovieID, "")
		c.SetParamNames("movieId")
		c.SetParamValues(testMovieID)
		c.Set(middleware.ContextUserID, testUserID)
		require.NoError(t, h.GetOwn(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var rating model.Rating
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rating))
		assert.Equal(t, 4.5, rating.Score)
		// The rater is not preloaded here; no zero user object leaks.
		assert.NotContains(t, rec.Body.String(), `"user"`)
	})

	t.Run("null score when the caller has none", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodGet, "/v1/ratings/"+testMovieID, "")
		c.SetParamNames("movieId")
		c.SetParamValues(testMovieID)
		c.Set(middleware.ContextUserID, "someone-else")
		require.NoError(t, h.GetOwn(c))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"score":null}`, rec.Body.String())
	})
}
