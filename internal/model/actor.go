package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor represents a row in the `actors` table.
type Actor struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Bio         string    `gorm:"type:text" json:"bio"`
	DateOfBirth time.Time `gorm:"type:date" json:"dateOfBirth"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Movies []ActorOnMovie `gorm:"foreignKey:ActorID" json:"movies,omitempty"`
}

// TableName overrides the table name
func (Actor) TableName() string { return "actors" }

// BeforeCreate assigns a UUID when the caller did not provide one.
func (a *Actor) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
