package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleJobSeeker = "jobSeeker"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

// ValidRole reports whether s is one of the recognised account roles.
func ValidRole(s string) bool {
	return s == RoleJobSeeker || s == RoleEmployer || s == RoleAdmin
}

// User models an authenticated actor in the system.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Profile      *Profile        `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Resumes      []Resume        `gorm:"foreignKey:UserID" json:"resumes,omitempty"`
	Applications []Application   `gorm:"foreignKey:UserID" json:"applications,omitempty"`
	Companies    []CompanyMember `gorm:"foreignKey:UserID" json:"companies,omitempty"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile is the 1:1 extension of a User, created lazily on first write.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `gorm:"not null" json:"last_name"`
	Phone        string    `json:"phone,omitempty"`
	Bio          string    `gorm:"type:text" json:"bio,omitempty"`
	Address      string    `json:"address,omitempty"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
