package storage

import (
	"context"
	"fmt"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/careercompass/backend/config"
	"github.com/careercompass/backend/models"
)

const (
	profilesCollection = "careerProfiles"
	usersCollection    = "users"
	countersCollection = "counters"
)

// FirestoreStore is the durable Store backend. It preserves the in-memory
// semantics: destructive-replace creates and a never-reset id counter.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store
func NewFirestoreStore(ctx context.Context, cfg *config.Config) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreStore{client: client}, nil
}

// Close closes the underlying Firestore client
func (f *FirestoreStore) Close() error {
	return f.client.Close()
}

// nextID atomically increments the named counter and returns the new value.
// Counters are never decremented, so ids are never reused.
func (f *FirestoreStore) nextID(ctx context.Context, name string) (int, error) {
	ref := f.client.Collection(countersCollection).Doc(name)

	var next int
	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		current := 0
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
		} else {
			value, err := doc.DataAt("value")
			if err != nil {
				return err
			}
			if v, ok := value.(int64); ok {
				current = int(v)
			}
		}

		next = current + 1
		return tx.Set(ref, map[string]interface{}{"value": next})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", name, err)
	}

	return next, nil
}

// CreateProfile replaces any existing profiles for the owner
func (f *FirestoreStore) CreateProfile(ctx context.Context, params CreateProfileParams) (*models.CareerProfile, error) {
	if _, err := f.DeleteProfilesForOwner(ctx, params.UserID); err != nil {
		return nil, err
	}

	id, err := f.nextID(ctx, profilesCollection)
	if err != nil {
		return nil, err
	}

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

	docRef := f.client.Collection(profilesCollection).Doc(strconv.Itoa(id))
	if _, err := docRef.Set(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &profile, nil
}

// GetProfileByOwner returns the single live profile for the owner
func (f *FirestoreStore) GetProfileByOwner(ctx context.Context, userID int) (*models.CareerProfile, error) {
	iter := f.client.Collection(profilesCollection).Where("userId", "==", userID).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	var profile models.CareerProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile data: %w", err)
	}

	return &profile, nil
}

// UpdateProfile merges non-nil fields into the stored record. Update (not
// Set) so a vanished document fails with NotFound instead of materializing a
// phantom profile holding only the slot fields.
func (f *FirestoreStore) UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (*models.CareerProfile, error) {
	docRef := f.client.Collection(profilesCollection).Doc(strconv.Itoa(id))

	var updates []firestore.Update
	if update.Recommendations != nil {
		updates = append(updates, firestore.Update{Path: "recommendations", Value: update.Recommendations})
	}
	if update.InterviewPrep != nil {
		updates = append(updates, firestore.Update{Path: "interviewPrep", Value: update.InterviewPrep})
	}

	if len(updates) > 0 {
		if _, err := docRef.Update(ctx, updates); err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, ErrProfileNotFound
			}
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to read updated profile: %w", err)
	}

	var profile models.CareerProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile data: %w", err)
	}

	return &profile, nil
}

// DeleteProfilesForOwner removes all profiles for the owner and returns the count
func (f *FirestoreStore) DeleteProfilesForOwner(ctx context.Context, userID int) (int, error) {
	iter := f.client.Collection(profilesCollection).Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to query profiles: %w", err)
		}

		if _, err := doc.Ref.Delete(ctx); err != nil {
			return count, fmt.Errorf("failed to delete profile %s: %w", doc.Ref.ID, err)
		}
		count++
	}

	return count, nil
}

// CreateUser creates a new account; usernames are unique
func (f *FirestoreStore) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	// Use the username as document ID for uniqueness
	docRef := f.client.Collection(usersCollection).Doc(username)

	_, err := docRef.Get(ctx)
	if err == nil {
		return nil, ErrUserExists
	}
	if status.Code(err) != codes.NotFound {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	id, err := f.nextID(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       id,
		Username: username,
		Password: passwordHash,
	}

	if _, err := docRef.Set(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves an account by username
func (f *FirestoreStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	doc, err := f.client.Collection(usersCollection).Doc(username).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user data: %w", err)
	}

	return &user, nil
}
