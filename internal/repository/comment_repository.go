package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SenoussiAl/movie-catalog/internal/model"
)

// CommentRepo wraps access to the comments table.
type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

// Create inserts a comment and returns it with the author loaded.
func (r *CommentRepo) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, translate(err)
	}
	return r.getWithUser(ctx, comment.ID)
}

// Update replaces the comment body. Only the author may edit; anyone
// else gets ErrForbidden.
func (r *CommentRepo) Update(ctx context.Context, id, userID, content string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}
	comment.Content = content
	if err := r.db.WithContext(ctx).Save(&comment).Error; err != nil {
		return nil, translate(err)
	}
	return r.getWithUser(ctx, id)
}

// Delete removes a comment. The author and admins may delete; anyone
// else gets ErrForbidden.
func (r *CommentRepo) Delete(ctx context.Context, id, userID, role string) error {
	var comment model.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return translate(err)
	}
	if comment.UserID != userID && role != model.RoleAdmin {
		return ErrForbidden
	}
	return translate(r.db.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id).Error)
}

// ListByMovie returns one page of a movie's comments, newest first,
// each with the author.
func (r *CommentRepo) ListByMovie(ctx context.Context, movieID string, q PageQuery) ([]model.Comment, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("movie_id = ?", movieID).
		Count(&total).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	var comments []model.Comment
	err = r.db.WithContext(ctx).
		Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return comments, total, nil
}

func (r *CommentRepo) getWithUser(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Preload("User").First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}
