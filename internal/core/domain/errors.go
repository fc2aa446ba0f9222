package domain

import "errors"

// Sentinel errors for every domain-known failure. The HTTP error handler
// maps each of these to a deterministic status code; anything else is
// rewritten into a generic 500 before reaching the client.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrProfileNotFound   = errors.New("profile not found")
	ErrProfileExists     = errors.New("profile already exists")
	ErrProfileIncomplete = errors.New("firstName and lastName are required to create a profile")

	ErrCompanyNotFound  = errors.New("company not found")
	ErrNotCompanyMember = errors.New("not a member of this company")

	ErrJobNotFound = errors.New("job not found or no longer active")

	ErrResumeNotFound = errors.New("resume not found")
	ErrResumeNotOwned = errors.New("resume does not belong to you")

	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("already applied for this job")
	ErrInvalidStatus        = errors.New("unknown application status")

	ErrForbidden = errors.New("access forbidden")
)
