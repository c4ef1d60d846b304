package models

import (
	"time"
)

// Movie is a single movie liked by a user.
// Optional columns are pointers so that NULL survives a round trip.
type Movie struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Director  *string   `gorm:"size:100" json:"director"`
	Year      *int      `json:"year"`
	Rating    *float64  `json:"rating"`
	IMDbID    *string   `gorm:"column:imdb_id;size:16;index" json:"imdbID,omitempty"`
	Poster    *string   `gorm:"size:512" json:"poster,omitempty"`
	Metadata  JSON      `json:"metadata"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Movie
func (Movie) TableName() string {
	return "movies"
}
