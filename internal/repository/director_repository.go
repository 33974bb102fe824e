package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SenoussiAl/movie-catalog/internal/model"
)

// DirectorRepo wraps access to the directors table.
type DirectorRepo struct{ db *gorm.DB }

func NewDirectorRepo(db *gorm.DB) *DirectorRepo { return &DirectorRepo{db: db} }

// List returns one page of directors with their filmographies.
func (r *DirectorRepo) List(ctx context.Context, q PageQuery) ([]model.Director, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Director{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var directors []model.Director
	err := r.db.WithContext(ctx).
		Preload("Movies.Movie").
		Order("name ASC").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&directors).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return directors, total, nil
}

// GetByID fetches a director with their filmography.
func (r *DirectorRepo) GetByID(ctx context.Context, id string) (*model.Director, error) {
	var director model.Director
	err := r.db.WithContext(ctx).
		Preload("Movies.Movie").
		First(&director, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &director, nil
}

// Create inserts a director.
func (r *DirectorRepo) Create(ctx context.Context, director *model.Director) error {
	return translate(r.db.WithContext(ctx).Create(director).Error)
}

// Update replaces the director's scalar fields.
func (r *DirectorRepo) Update(ctx context.Context, id string, fields *model.Director) (*model.Director, error) {
	var director model.Director
	if err := r.db.WithContext(ctx).First(&director, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	director.Name = fields.Name
	director.Bio = fields.Bio
	director.DateOfBirth = fields.DateOfBirth
	if err := r.db.WithContext(ctx).Save(&director).Error; err != nil {
		return nil, translate(err)
	}
	return &director, nil
}

// Delete removes the director and their movie links.
func (r *DirectorRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var director model.Director
		if err := tx.First(&director, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("director_id = ?", id).Delete(&model.DirectorOnMovie{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Director{}, "id = ?", id).Error
	})
	return translate(err)
}
