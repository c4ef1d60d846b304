package models

import (
	"time"
)

// MaxNameLength bounds user names, movie names and director names.
const MaxNameLength = 100

// User is a person who keeps a list of liked movies
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Movies    []Movie   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"movies,omitempty"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
