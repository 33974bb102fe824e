package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movie represents a row in the `movies` table. Relations to genres,
// actors and directors go through explicit join entities so that the
// actor link can carry a per-pairing role. Ratings and comments hang
// off the movie directly.
type Movie struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ReleaseDate time.Time `gorm:"not null;type:date" json:"releaseDate"`
	Duration    int       `gorm:"not null" json:"duration"`
	PosterURL   string    `gorm:"size:512" json:"posterUrl"`
	TrailerURL  string    `gorm:"size:512" json:"trailerUrl"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Genres    []GenreOnMovie    `gorm:"foreignKey:MovieID" json:"genres,omitempty"`
	Actors    []ActorOnMovie    `gorm:"foreignKey:MovieID" json:"actors,omitempty"`
	Directors []DirectorOnMovie `gorm:"foreignKey:MovieID" json:"directors,omitempty"`
	Ratings   []Rating          `gorm:"foreignKey:MovieID" json:"ratings,omitempty"`
	Comments  []Comment         `gorm:"foreignKey:MovieID" json:"comments,omitempty"`
}

// TableName overrides the table name
func (Movie) TableName() string { return "movies" }

// BeforeCreate assigns a UUID when the caller did not provide one.
func (m *Movie) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// GenreOnMovie links a movie to a genre. The pair of foreign keys is
// the primary key; the row carries no extra fields.
type GenreOnMovie struct {
	MovieID string `gorm:"primaryKey;size:36" json:"movieId"`
	GenreID int    `gorm:"primaryKey" json:"genreId"`
	Genre   Genre  `gorm:"foreignKey:GenreID" json:"genre"`
}

// TableName overrides the table name
func (GenreOnMovie) TableName() string { return "genre_on_movies" }

// ActorOnMovie links a movie to an actor together with the role the
// actor played in that movie.
type ActorOnMovie struct {
	MovieID string `gorm:"primaryKey;size:36" json:"movieId"`
	ActorID string `gorm:"primaryKey;size:36" json:"actorId"`
	Role    string `gorm:"size:255" json:"role"`
	Actor   Actor  `gorm:"foreignKey:ActorID" json:"actor"`
}

// TableName overrides the table name
func (ActorOnMovie) TableName() string { return "actor_on_movies" }

// DirectorOnMovie links a movie to a director. No extra fields.
type DirectorOnMovie struct {
	MovieID    string   `gorm:"primaryKey;size:36" json:"movieId"`
	DirectorID string   `gorm:"primaryKey;size:36" json:"directorId"`
	Director   Director `gorm:"foreignKey:DirectorID" json:"director"`
}

// TableName overrides the table name
func (DirectorOnMovie) TableName() string { return "director_on_movies" }
