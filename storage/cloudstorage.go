package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/careercompass/backend/config"
)

// ResumeArchive keeps the raw uploaded resume files in Cloud Storage.
// Archival is best effort; the profile pipeline works entirely off the
// extracted text.
type ResumeArchive struct {
	client     *storage.Client
	bucketName string
}

// NewResumeArchive creates a new Cloud Storage archive client
func NewResumeArchive(ctx context.Context, cfg *config.Config) (*ResumeArchive, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}

	return &ResumeArchive{
		client:     client,
		bucketName: cfg.ResumeBucketName,
	}, nil
}

// Close closes the Cloud Storage client
func (a *ResumeArchive) Close() error {
	return a.client.Close()
}

// StoreResume uploads the raw resume bytes and returns the object URL
func (a *ResumeArchive) StoreResume(ctx context.Context, userID int, content []byte, filename string) (string, error) {
	ext := filepath.Ext(filename)
	timestamp := time.Now().Unix()

	objectName := fmt.Sprintf("resumes/user-%d/%d%s", userID, timestamp, ext)

	bucket := a.client.Bucket(a.bucketName)
	obj := bucket.Object(objectName)

	wc := obj.NewWriter(ctx)
	wc.ContentType = contentTypeForExt(ext)

	if _, err := wc.Write(content); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to write resume: %w", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", a.bucketName, objectName)
	return url, nil
}

// DeleteResumesForUser removes every archived resume for the owner and
// returns the count. Called when a new upload replaces the owner's profile,
// so the archive holds at most one live resume per user.
func (a *ResumeArchive) DeleteResumesForUser(ctx context.Context, userID int) (int, error) {
	prefix := fmt.Sprintf("resumes/user-%d/", userID)
	bucket := a.client.Bucket(a.bucketName)

	it := bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	count := 0
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to list resumes: %w", err)
		}

		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil {
			return count, fmt.Errorf("failed to delete resume %s: %w", attrs.Name, err)
		}
		count++
	}

	return count, nil
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
