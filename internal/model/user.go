package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user account can hold. CRITIC ratings feed the segmented
// rating averages on the movie detail endpoint; ADMIN unlocks the
// management routes.
const (
	RoleUser   = "USER"
	RoleCritic = "CRITIC"
	RoleAdmin  = "ADMIN"
)

// User represents a row in the `users` table. Email and username are
// unique. The password column holds a bcrypt hash and is never
// serialized into responses.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Username  string    `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Password  string    `gorm:"not null;size:100" json:"-"`
	Role      string    `gorm:"not null;size:20;default:USER" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// TableName overrides the table name
func (User) TableName() string { return "users" }

// BeforeCreate assigns a UUID when the caller did not provide one.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Profile is the optional one-to-one extension of a user.
type Profile struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	UserID    string `gorm:"uniqueIndex;not null;size:36" json:"userId"`
	Bio       string `gorm:"type:text" json:"bio"`
	AvatarURL string `gorm:"size:512" json:"avatarUrl"`
}

// TableName overrides the table name
func (Profile) TableName() string { return "profiles" }

// BeforeCreate assigns a UUID when the caller did not provide one.
func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
