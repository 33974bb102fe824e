package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SenoussiAl/movie-catalog/internal/model"
)

// ActorRepo wraps access to the actors table.
type ActorRepo struct{ db *gorm.DB }

func NewActorRepo(db *gorm.DB) *ActorRepo { return &ActorRepo{db: db} }

// List returns one page of actors with their filmographies.
func (r *ActorRepo) List(ctx context.Context, q PageQuery) ([]model.Actor, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Actor{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var actors []model.Actor
	err := r.db.WithContext(ctx).
		Preload("Movies.Movie").
		Order("name ASC").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&actors).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return actors, total, nil
}

// GetByID fetches an actor with their filmography.
func (r *ActorRepo) GetByID(ctx context.Context, id string) (*model.Actor, error) {
	var actor model.Actor
	err := r.db.WithContext(ctx).
		Preload("Movies.Movie").
		First(&actor, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &actor, nil
}

// Create inserts an actor.
func (r *ActorRepo) Create(ctx context.Context, actor *model.Actor) error {
	return translate(r.db.WithContext(ctx).Create(actor).Error)
}

// Update replaces the actor's scalar fields.
func (r *ActorRepo) Update(ctx context.Context, id string, fields *model.Actor) (*model.Actor, error) {
	var actor model.Actor
	if err := r.db.WithContext(ctx).First(&actor, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	actor.Name = fields.Name
	actor.Bio = fields.Bio
	actor.DateOfBirth = fields.DateOfBirth
	if err := r.db.WithContext(ctx).Save(&actor).Error; err != nil {
		return nil, translate(err)
	}
	return &actor, nil
}

// Delete removes the actor and their movie links.
func (r *ActorRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var actor model.Actor
		if err := tx.First(&actor, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("actor_id = ?", id).Delete(&model.ActorOnMovie{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Actor{}, "id = ?", id).Error
	})
	return translate(err)
}
