package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resume is an uploaded CV owned by a user. At most one resume per user may
// have IsDefault=true at any time; every write path that sets it must clear
// the flag on the user's other resumes in the same transaction.
type Resume struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	FileURL   string    `gorm:"not null" json:"file_url"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Resume) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
