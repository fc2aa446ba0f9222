package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus is the lifecycle state of a job application.
//
// The lifecycle is deliberately open: any authorised caller may move an
// application between any two statuses. No transition table is enforced.
type ApplicationStatus string

const (
	StatusPending      ApplicationStatus = "PENDING"
	StatusReviewed     ApplicationStatus = "REVIEWED"
	StatusInterviewing ApplicationStatus = "INTERVIEWING"
	StatusOffered      ApplicationStatus = "OFFERED"
	StatusRejected     ApplicationStatus = "REJECTED"
	StatusHired        ApplicationStatus = "HIRED"
)

// ValidStatus reports whether s names a known application status.
func ValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusInterviewing, StatusOffered, StatusRejected, StatusHired:
		return true
	}
	return false
}

// NormalizeStatusFilter maps legacy status aliases used by older API
// consumers onto current values. "ACCEPTED" predates the HIRED rename.
func NormalizeStatusFilter(s string) ApplicationStatus {
	if s == "ACCEPTED" {
		return StatusHired
	}
	return ApplicationStatus(s)
}

// Application links a job seeker, a job, and a resume. A user may apply to a
// given job at most once.
type Application struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	JobID       uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_user_job" json:"job_id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_user_job" json:"user_id"`
	ResumeID    uuid.UUID         `gorm:"type:uuid;not null" json:"resume_id"`
	CoverLetter *string           `gorm:"type:text" json:"cover_letter,omitempty"`
	Status      ApplicationStatus `gorm:"not null;default:'PENDING'" json:"status"`
	AppliedAt   time.Time         `gorm:"index" json:"applied_at"`

	Job    *Job    `gorm:"foreignKey:JobID" json:"job,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Resume *Resume `gorm:"foreignKey:ResumeID" json:"resume,omitempty"`
}

func (a *Application) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
