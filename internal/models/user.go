package models

import "time"

// User mirrors an identity owned by the external session provider.
// Rows are kept in sync from the session so listings can join on author name.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:128"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UserCompact is the author block embedded in plan projections
type UserCompact struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (u User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name}
}
