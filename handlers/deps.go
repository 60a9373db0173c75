package handlers

import (
	"context"

	"github.com/careercompass/backend/models"
)

// Enricher produces AI-derived career data. *gemini.Client satisfies it.
type Enricher interface {
	AnalyzeResume(ctx context.Context, resumeText string) (*models.ResumeAnalysis, error)
	RecommendRoles(ctx context.Context, profile *models.CareerProfile) (*models.RoleRecommendations, error)
	GenerateInterviewPrep(ctx context.Context, profile *models.CareerProfile) (*models.InterviewPrep, error)
	ReviewResume(ctx context.Context, profile *models.CareerProfile) (*models.ResumeFeedback, error)
	SuggestNetworking(ctx context.Context, profile *models.CareerProfile) (*models.NetworkingInsights, error)
	SuggestPortfolio(ctx context.Context, profile *models.CareerProfile) (*models.PortfolioSuggestions, error)
}

// JobSearcher finds live postings for a set of roles. *jobsearch.Client satisfies it.
type JobSearcher interface {
	SearchPostings(ctx context.Context, roles []string, skills []string) ([]models.JobPosting, error)
}

// ResumeArchiver keeps raw resume files, at most one live per user.
// *storage.ResumeArchive satisfies it.
type ResumeArchiver interface {
	StoreResume(ctx context.Context, userID int, content []byte, filename string) (string, error)
	DeleteResumesForUser(ctx context.Context, userID int) (int, error)
}
