package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SenoussiAl/movie-catalog/internal/model"
)

// GenreRepo wraps access to the genres table.
type GenreRepo struct{ db *gorm.DB }

func NewGenreRepo(db *gorm.DB) *GenreRepo { return &GenreRepo{db: db} }

// List returns all genres sorted by name.
func (r *GenreRepo) List(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, translate(err)
	}
	return genres, nil
}

// GetByID fetches a genre by id.
func (r *GenreRepo) GetByID(ctx context.Context, id int) (*model.Genre, error) {
	var genre model.Genre
	if err := r.db.WithContext(ctx).First(&genre, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &genre, nil
}

// Create inserts a genre; a duplicate name yields ErrDuplicate.
func (r *GenreRepo) Create(ctx context.Context, genre *model.Genre) error {
	return translate(r.db.WithContext(ctx).Create(genre).Error)
}

// Update renames a genre; a duplicate name yields ErrDuplicate.
func (r *GenreRepo) Update(ctx context.Context, id int, name string) (*model.Genre, error) {
	var genre model.Genre
	if err := r.db.WithContext(ctx).First(&genre, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	genre.Name = name
	if err := r.db.WithContext(ctx).Save(&genre).Error; err != nil {
		return nil, translate(err)
	}
	return &genre, nil
}

// Delete removes an unreferenced genre. While any movie still links
// to it the delete is refused with ErrGenreInUse and the row is left
// intact.
func (r *GenreRepo) Delete(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre model.Genre
		if err := tx.First(&genre, "id = ?", id).Error; err != nil {
			return err
		}
		var refs int64
		if err := tx.Model(&model.GenreOnMovie{}).Where("genre_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrGenreInUse
		}
		return tx.Delete(&model.Genre{}, "id = ?", id).Error
	})
	return translate(err)
}
