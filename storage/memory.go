package storage

import (
	"context"
	"log"
	"sync"

	"github.com/careercompass/backend/models"
)

// MemoryStore keeps all state in process memory. It is the default backend;
// everything is lost on restart. Counters only ever increase, so ids are
// never reused even after the owning profile is deleted.
type MemoryStore struct {
	mu            sync.Mutex
	profiles      map[int]models.CareerProfile
	users         map[int]models.User
	nextProfileID int
	nextUserID    int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:      make(map[int]models.CareerProfile),
		users:         make(map[int]models.User),
		nextProfileID: 1,
		nextUserID:    1,
	}
}

// CreateProfile replaces any existing profiles for the owner with a fresh
// record whose derived-data slots are empty
func (s *MemoryStore) CreateProfile(ctx context.Context, params CreateProfileParams) (*models.CareerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := s.deleteProfilesForOwnerLocked(params.UserID)
	if cleared > 0 {
		log.Printf("[MemoryStore] Cleared %d career profiles for user %d", cleared, params.UserID)
	}

	id := s.nextProfileID
	s.nextProfileID++

	profile := models.CareerProfile{
		ID:             id,
		UserID:         params.UserID,
		ResumeText:     params.ResumeText,
		LinkedinURL:    params.LinkedinURL,
		GithubUsername: params.GithubUsername,
		SessionID:      params.SessionID,
		Skills:         params.Skills,
		Experience:     params.Experience,
		Education:      params.Education,
		AnalyzedSkills: map[string]any{},
		TargetRoles:    map[string]any{},
	}

	s.profiles[id] = profile

	out := profile
	return &out, nil
}

// GetProfileByOwner returns the single live profile for the owner
func (s *MemoryStore) GetProfileByOwner(ctx context.Context, userID int) (*models.CareerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, profile := range s.profiles {
		if profile.UserID == userID {
			out := profile
			return &out, nil
		}
	}
	return nil, ErrProfileNotFound
}

// UpdateProfile merges non-nil fields into the stored record. Unknown id is
// a hard error, never a silent no-op.
func (s *MemoryStore) UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (*models.CareerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}

	if update.Recommendations != nil {
		profile.Recommendations = update.Recommendations
	}
	if update.InterviewPrep != nil {
		profile.InterviewPrep = update.InterviewPrep
	}

	s.profiles[id] = profile

	out := profile
	return &out, nil
}

// DeleteProfilesForOwner removes all profiles for the owner and returns the count
func (s *MemoryStore) DeleteProfilesForOwner(ctx context.Context, userID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteProfilesForOwnerLocked(userID), nil
}

func (s *MemoryStore) deleteProfilesForOwnerLocked(userID int) int {
	count := 0
	for id, profile := range s.profiles {
		if profile.UserID == userID {
			delete(s.profiles, id)
			count++
		}
	}
	return count
}

// CreateUser stores a new account; the username must be unique
func (s *MemoryStore) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			return nil, ErrUserExists
		}
	}

	id := s.nextUserID
	s.nextUserID++

	user := models.User{
		ID:       id,
		Username: username,
		Password: passwordHash,
	}
	s.users[id] = user

	out := user
	return &out, nil
}

// GetUserByUsername looks up an account by username
func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			out := user
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}
