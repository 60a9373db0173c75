package storage

import (
	"context"
	"errors"

	"github.com/careercompass/backend/models"
)

// ErrProfileNotFound is returned when no profile matches the lookup.
var ErrProfileNotFound = errors.New("profile not found")

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned when a username is already taken.
var ErrUserExists = errors.New("user already exists")

// CreateProfileParams carries everything needed to create a profile.
// Derived-data slots always start empty.
type CreateProfileParams struct {
	UserID         int
	ResumeText     string
	LinkedinURL    string
	GithubUsername string
	SessionID      string
	Skills         []string
	Experience     []models.ExperienceEntry
	Education      []models.EducationEntry
}

// ProfileUpdate is a partial update; nil fields are left untouched.
// Slots are replaced whole, never merged. Only the slots some endpoint
// writes are updatable; analyzedSkills/targetRoles stay as created.
type ProfileUpdate struct {
	Recommendations *models.RoleRecommendations
	InterviewPrep   *models.InterviewPrep
}

// ProfileStore persists career profiles. Implementations must enforce the
// one-live-profile-per-user rule: CreateProfile deletes any prior profiles
// for the owner before inserting.
type ProfileStore interface {
	CreateProfile(ctx context.Context, params CreateProfileParams) (*models.CareerProfile, error)
	GetProfileByOwner(ctx context.Context, userID int) (*models.CareerProfile, error)
	UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (*models.CareerProfile, error)
	DeleteProfilesForOwner(ctx context.Context, userID int) (int, error)
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Store combines both stores; both backends implement it.
type Store interface {
	ProfileStore
	UserStore
}
