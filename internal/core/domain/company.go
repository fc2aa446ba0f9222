package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberRoleOwner is the membership role assigned to a company's creator.
const MemberRoleOwner = "owner"

// Company groups jobs under one employer organisation.
type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Website     *string   `json:"website,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Logo        *string   `json:"logo,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Members []CompanyMember `gorm:"foreignKey:CompanyID" json:"members,omitempty"`
	Jobs    []Job           `gorm:"foreignKey:CompanyID" json:"jobs,omitempty"`
}

func (c *Company) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CompanyMember is the join entity granting a user rights over a company's
// resources. At most one row exists per (user, company) pair; its presence is
// the sole authorisation primitive for acting on the company's jobs.
type CompanyMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_company" json:"user_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_company" json:"company_id"`
	Role      string    `gorm:"not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (m *CompanyMember) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
