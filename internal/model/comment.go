package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a row in the `comments` table. A comment belongs
// to exactly one movie and one user; responses embed the author.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Content   string    `gorm:"not null;size:2000" json:"content"`
	MovieID   string    `gorm:"not null;size:36;index" json:"movieId"`
	UserID    string    `gorm:"not null;size:36;index" json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}

// TableName overrides the table name
func (Comment) TableName() string { return "comments" }

// BeforeCreate assigns a UUID when the caller did not provide one.
func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
