package model

import "time"

// User is stored with its password as given; the service never hashes it.
type User struct {
	Username  string    `gorm:"primaryKey;size:64" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"password"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
