package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Director represents a row in the `directors` table.
type Director struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Bio         string    `gorm:"type:text" json:"bio"`
	DateOfBirth time.Time `gorm:"type:date" json:"dateOfBirth"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Movies []DirectorOnMovie `gorm:"foreignKey:DirectorID" json:"movies,omitempty"`
}

// TableName overrides the table name
func (Director) TableName() string { return "directors" }

// BeforeCreate assigns a UUID when the caller did not provide one.
func (d *Director) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
