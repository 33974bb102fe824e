package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating represents a row in the `ratings` table. The composite
// unique index on (movie_id, user_id) backs the upsert semantics: a
// user can hold at most one rating per movie. Scores run from 0.5 to
// 5.0 in half-point steps; the check constraint mirrors what the
// validation layer enforces on input.
type Rating struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Score     float64   `gorm:"not null;type:decimal(2,1);check:score >= 0.5 AND score <= 5.0 AND MOD(score * 10, 5) = 0" json:"score"`
	MovieID   string    `gorm:"not null;size:36;uniqueIndex:uq_rating_movie_user;index" json:"movieId"`
	UserID    string    `gorm:"not null;size:36;uniqueIndex:uq_rating_movie_user" json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Pointer so responses that never preload the rater omit the key
	// instead of embedding a zero user.
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides the table name
func (Rating) TableName() string { return "ratings" }

// BeforeCreate assigns a UUID when the caller did not provide one.
func (r *Rating) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
