package model

// Genre represents a row in the `genres` table. Unlike the other
// entities it keeps an auto-increment integer key; the name must be
// unique. A genre cannot be deleted while any movie references it —
// that guard lives in the repository, not the schema.
type Genre struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null;size:50" json:"name"`
}

// TableName overrides the table name
func (Genre) TableName() string { return "genres" }
