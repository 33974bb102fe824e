package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/utils"
)

// UserRepo wraps access to the users and profiles tables.
type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user with a bcrypt-hashed password. The email is
// normalized to lower case; duplicate email or username yields
// ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, email, username, password, role string, cost int) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	user := model.User{Email: email, Username: strings.TrimSpace(username), Password: hash, Role: role}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByID fetches a user with their profile.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Profile").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// List returns one page of users with their profiles. The password
// column never leaves the model's json:"-" tag, so no field selection
// is needed here.
func (r *UserRepo) List(ctx context.Context, q PageQuery) ([]model.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Order("username ASC").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return users, total, nil
}

// UserUpdate carries the replaceable user fields. Profile, when
// present, is created or fully replaced.
type UserUpdate struct {
	Email    string
	Username string
	Role     string
	Profile  *model.Profile
}

// Update replaces the user's scalar fields and, when given, upserts
// the one-to-one profile in the same transaction.
func (r *UserRepo) Update(ctx context.Context, id string, fields UserUpdate) (*model.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		user.Email = strings.ToLower(strings.TrimSpace(fields.Email))
		user.Username = strings.TrimSpace(fields.Username)
		user.Role = fields.Role
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if fields.Profile == nil {
			return nil
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Profile{}).Error; err != nil {
			return err
		}
		fields.Profile.ID = ""
		fields.Profile.UserID = id
		return tx.Create(fields.Profile).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes the user along with their profile, comments and
// ratings so no dependent rows are left orphaned.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, "id = ?", id).Error
	})
	return translate(err)
}
