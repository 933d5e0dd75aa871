package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account identified by its unique username. The password
// hash is bcrypt; it never leaves the backend.
type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Username     string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Reviews      []Review       `gorm:"foreignKey:Username;references:Username" json:"reviews,omitempty"`
	Favourites   []Favourite    `gorm:"foreignKey:Username;references:Username" json:"favourites,omitempty"`
}

// BeforeCreate assigns the user id when the caller has not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
