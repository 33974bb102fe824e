package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/repository"
)

// genreStoreStub keeps genres in memory and lets tests script the next
// error a method returns.
type genreStoreStub struct {
	genres    map[int]model.Genre
	nextID    int
	createErr error
	deleteErr error
}

func newGenreStoreStub() *genreStoreStub {
	return &genreStoreStub{genres: map[int]model.Genre{}}
}

func (s *genreStoreStub) List(ctx context.Context) ([]model.Genre, error) {
	out := make([]model.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		out = append(out, g)
	}
	return out, nil
}

func (s *genreStoreStub) GetByID(ctx context.Context, id int) (*model.Genre, error) {
	g, ok := s.genres[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (s *genreStoreStub) Create(ctx context.Context, genre *model.Genre) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	genre.ID = s.nextID
	s.genres[genre.ID] = *genre
	return nil
}

func (s *genreStoreStub) Update(ctx context.Context, id int, name string) (*model.Genre, error) {
	g, ok := s.genres[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	g.Name = name
	s.genres[id] = g
	return &g, nil
}

func (s *genreStoreStub) Delete(ctx context.Context, id int) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.genres[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.genres, id)
	return nil
}

func TestGenreLifecycle(t *testing.T) {
	store := newGenreStoreStub()
	h := NewGenreHandler(store)

	// Create succeeds with 201 and an assigned id.
	c, rec := newTestContext(t, http.MethodPost, "/v1/genres", `{"name":"Drama"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Genre
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Drama", created.Name)

	// A duplicate name is a conflict.
	store.createErr = repository.ErrDuplicate
	c, rec = newTestContext(t, http.MethodPost, "/v1/genres", `{"name":"Drama"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	store.createErr = nil

	// Deleting a genre still assigned to movies is refused.
	store.deleteErr = repository.ErrGenreInUse
	c, rec = newTestContext(t, http.MethodDelete, "/v1/genres/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	store.deleteErr = nil

	// Once unreferenced the delete goes through.
	c, rec = newTestContext(t, http.MethodDelete, "/v1/genres/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// And the genre is gone.
	c, rec = newTestContext(t, http.MethodGet, "/v1/genres/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenreCreateValidation(t *testing.T) {
	h := NewGenreHandler(newGenreStoreStub())

	c, rec := newTestContext(t, http.MethodPost, "/v1/genres", `{"name":""}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name")
}

func TestGenreGetRejectsNonNumericID(t *testing.T) {
	h := NewGenreHandler(newGenreStoreStub())

	c, rec := newTestContext(t, http.MethodGet, "/v1/genres/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
