package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careercompass/backend/auth"
	"github.com/careercompass/backend/config"
	"github.com/careercompass/backend/models"
	"github.com/careercompass/backend/storage"
)

// fakeEnricher returns canned derived data and counts calls per method
type fakeEnricher struct {
	mu              sync.Mutex
	analyzeCalls    int
	recommendCalls  int
	prepCalls       int
	reviewCalls     int
	networkingCalls int
	portfolioCalls  int

	analyzeErr   error
	recommendErr error
}

func (f *fakeEnricher) AnalyzeResume(_ context.Context, resumeText string) (*models.ResumeAnalysis, error) {
	f.mu.Lock()
	f.analyzeCalls++
	f.mu.Unlock()
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &models.ResumeAnalysis{
		Skills: []string{"Go", "PostgreSQL"},
		Experience: []models.ExperienceEntry{
			{Title: "Backend Engineer", Company: "Acme", Duration: "2020-2023"},
		},
		Education: []models.EducationEntry{
			{Degree: "BSc Computer Science", Institution: "State University", Year: "2020"},
		},
	}, nil
}

func (f *fakeEnricher) RecommendRoles(_ context.Context, _ *models.CareerProfile) (*models.RoleRecommendations, error) {
	f.mu.Lock()
	f.recommendCalls++
	f.mu.Unlock()
	if f.recommendErr != nil {
		return nil, f.recommendErr
	}
	return &models.RoleRecommendations{
		RecommendedRoles: []models.RecommendedRole{
			{Title: "Backend Engineer", Industry: "Technology", MatchPercentage: 85},
			{Title: "Platform Engineer", Industry: "Technology", MatchPercentage: 70},
		},
	}, nil
}

func (f *fakeEnricher) GenerateInterviewPrep(_ context.Context, _ *models.CareerProfile) (*models.InterviewPrep, error) {
	f.mu.Lock()
	f.prepCalls++
	f.mu.Unlock()
	return &models.InterviewPrep{
		Categories: []models.InterviewCategory{
			{
				Name:        "Technical",
				Description: "Language and systems questions",
				Questions: []models.InterviewQuestion{
					{Question: "Explain goroutine scheduling", SampleAnswer: "..."},
				},
			},
		},
	}, nil
}

func (f *fakeEnricher) ReviewResume(_ context.Context, _ *models.CareerProfile) (*models.ResumeFeedback, error) {
	f.mu.Lock()
	f.reviewCalls++
	f.mu.Unlock()
	return &models.ResumeFeedback{
		Overview:    models.FeedbackOverview{Strengths: []string{"Clear impact statements"}},
		ImpactScore: 75,
	}, nil
}

func (f *fakeEnricher) SuggestNetworking(_ context.Context, _ *models.CareerProfile) (*models.NetworkingInsights, error) {
	f.mu.Lock()
	f.networkingCalls++
	f.mu.Unlock()
	return &models.NetworkingInsights{
		Upcoming:       []models.NetworkingEvent{{Title: "GopherCon"}},
		TrendingTopics: []string{"platform engineering"},
	}, nil
}

func (f *fakeEnricher) SuggestPortfolio(_ context.Context, _ *models.CareerProfile) (*models.PortfolioSuggestions, error) {
	f.mu.Lock()
	f.portfolioCalls++
	f.mu.Unlock()
	return &models.PortfolioSuggestions{
		SuggestedProjects: []models.PortfolioProject{{Title: "Job board scraper"}},
		SkillGaps:         []models.SkillGap{{Skill: "Kubernetes", Importance: "high"}},
	}, nil
}

// fakeArchiver records stored resumes and per-owner deletions
type fakeArchiver struct {
	mu      sync.Mutex
	stored  []string
	deletes []int
}

func (f *fakeArchiver) StoreResume(_ context.Context, userID int, _ []byte, filename string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, filename)
	return fmt.Sprintf("https://storage.example.com/resumes/user-%d/%s", userID, filename), nil
}

func (f *fakeArchiver) DeleteResumesForUser(_ context.Context, _ int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cleared := len(f.stored)
	f.stored = nil
	f.deletes = append(f.deletes, cleared)
	return cleared, nil
}

// fakeSearcher records the roles it was asked for
type fakeSearcher struct {
	mu        sync.Mutex
	lastRoles []string
	jobs      []models.JobPosting
	err       error
}

func (f *fakeSearcher) SearchPostings(_ context.Context, roles []string, _ []string) ([]models.JobPosting, error) {
	f.mu.Lock()
	f.lastRoles = roles
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs, nil
}

type testServer struct {
	router  *gin.Engine
	store   *storage.MemoryStore
	ai      *fakeEnricher
	search  *fakeSearcher
	archive *fakeArchiver
	jwt     *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		DefaultUserID:  1,
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
	}

	ts := &testServer{
		store:   storage.NewMemoryStore(),
		ai:      &fakeEnricher{},
		search:  &fakeSearcher{},
		archive: &fakeArchiver{},
		jwt:     auth.NewJWTService(cfg),
	}

	profileHandler := NewProfileHandler(ts.store, ts.ai, ts.archive, cfg)
	insightsHandler := NewInsightsHandler(ts.store, ts.ai)
	jobsHandler := NewJobsHandler(ts.store, ts.search)
	sessionHandler := NewSessionHandler(ts.jwt)
	authHandler := NewAuthHandler(ts.store, ts.jwt)

	router := gin.New()
	api := router.Group("/api")
	api.Use(auth.OptionalAuthMiddleware(ts.jwt))
	api.POST("/init-session", sessionHandler.InitSession)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/career-profile", profileHandler.UploadProfile)
	api.GET("/career-profile/:userId", profileHandler.GetProfile)
	api.GET("/career-recommendations/:userId", insightsHandler.Recommendations)
	api.GET("/interview-prep/:userId", insightsHandler.InterviewPrep)
	api.GET("/resume-feedback/:userId", insightsHandler.ResumeFeedback)
	api.GET("/linkedin-events/:userId", insightsHandler.LinkedInEvents)
	api.GET("/portfolio-suggestions/:userId", insightsHandler.PortfolioSuggestions)
	api.GET("/job-postings/:userId", jobsHandler.JobPostings)

	ts.router = router
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) uploadResume(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("resume", "resume.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Jane Doe\nBackend engineer with five years of Go experience."))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return ts.do(t, http.MethodPost, "/api/career-profile", token, body, writer.FormDataContentType())
}

func decodeProfile(t *testing.T, rec *httptest.ResponseRecorder) models.CareerProfile {
	t.Helper()
	var profile models.CareerProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	return profile
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	return errResp
}

func TestUploadProfile(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.uploadResume(t, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	profile := decodeProfile(t, rec)
	assert.Equal(t, 1, profile.UserID)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, profile.Skills)
	assert.NotEmpty(t, profile.Experience)
	assert.NotEmpty(t, profile.Education)
	assert.Nil(t, profile.Recommendations, "a fresh profile has no recommendations yet")
	assert.Nil(t, profile.InterviewPrep)
}

func TestUploadProfileMissingFile(t *testing.T) {
	ts := newTestServer(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("linkedinUrl", "https://linkedin.com/in/jane"))
	require.NoError(t, writer.Close())

	rec := ts.do(t, http.MethodPost, "/api/career-profile", "", body, writer.FormDataContentType())
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Resume file is required", decodeError(t, rec).Message)
}

func TestUploadProfileAnalysisFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.ai.analyzeErr = errors.New("provider unavailable")

	rec := ts.uploadResume(t, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// Nothing must be stored when analysis fails
	_, err := ts.store.GetProfileByOwner(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrProfileNotFound)
}

func TestUploadProfileReplacesPrevious(t *testing.T) {
	ts := newTestServer(t)

	first := decodeProfile(t, ts.uploadResume(t, ""))
	second := decodeProfile(t, ts.uploadResume(t, ""))

	assert.NotEqual(t, first.ID, second.ID)

	rec := ts.do(t, http.MethodGet, "/api/career-profile/1", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, second.ID, decodeProfile(t, rec).ID)
}

func TestUploadProfileClearsArchivedResumes(t *testing.T) {
	ts := newTestServer(t)

	require.Equal(t, http.StatusOK, ts.uploadResume(t, "").Code)
	require.Equal(t, http.StatusOK, ts.uploadResume(t, "").Code)

	// First upload finds nothing to clear, the second clears its predecessor
	assert.Equal(t, []int{0, 1}, ts.archive.deletes)
	assert.Len(t, ts.archive.stored, 1, "the archive keeps only the latest resume per owner")
}

func TestGetProfileNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/career-profile/1", "", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Profile not found", decodeError(t, rec).Message)
}

func TestGetProfileInvalidUserID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/career-profile/abc", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendationsNoProfile(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/career-recommendations/1", "", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Profile not found", decodeError(t, rec).Message)
	assert.Zero(t, ts.ai.recommendCalls, "no AI call without a profile")
}

func TestRecommendationsComputedAndPersisted(t *testing.T) {
	ts := newTestServer(t)
	ts.uploadResume(t, "")

	rec := ts.do(t, http.MethodGet, "/api/career-recommendations/1", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	profile := decodeProfile(t, rec)
	require.NotNil(t, profile.Recommendations)
	require.NotEmpty(t, profile.Recommendations.RecommendedRoles)
	for _, role := range profile.Recommendations.RecommendedRoles {
		assert.GreaterOrEqual(t, role.MatchPercentage, 0)
		assert.LessOrEqual(t, role.MatchPercentage, 100)
	}

	stored, err := ts.store.GetProfileByOwner(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, stored.Recommendations, "recommendations must be persisted on the profile")
}

func TestRecommendationsMemoized(t *testing.T) {
	ts := newTestServer(t)
	ts.uploadResume(t, "")

	for i := 0; i < 3; i++ {
		rec := ts.do(t, http.MethodGet, "/api/career-recommendations/1", "", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 1, ts.ai.recommendCalls, "repeat reads must serve the stored slot")

	rec := ts.do(t, http.MethodGet, "/api/career-recommendations/1?refresh=true", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, ts.ai.recommendCalls, "refresh=true must recompute")
}

func TestRecommendationsAIFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.uploadResume(t, "")
	ts.ai.recommendErr = errors.New("model overloaded")

	rec := ts.do(t, http.MethodGet, "/api/career-recommendations/1", "", nil, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// A failed computation must not poison the slot; retry succeeds
	ts.ai.recommendErr = nil
	rec = ts.do(t, http.MethodGet, "/api/career-recommendations/1", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInterviewPrepMemoized(t *testing.T) {
	ts := newTestServer(t)
	ts.uploadResume(t, "")

	rec := ts.do(t, http.MethodGet, "/api/interview-prep/1", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decodeProfile(t, rec)
	require.NotNil(t, profile.InterviewPrep)
	assert.NotEmpty(t, profile.InterviewPrep.Categories)

	ts.do(t, http.MethodGet, "/api/interview-prep/1", "", nil, "")
	assert.Equal(t, 1, ts.ai.prepCalls)
}

func TestResumeFeedbackNeverPersisted(t *testing.T) {
	ts := newTestServer(t)
	ts.uploadResume(t, "")

	for i := 0; i < 2; i++ {
		rec := ts.do(t, http.MethodGet, "/api/resume-feedback/1", "", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var feedback models.ResumeFeedback
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feedback))
		assert.Equal(t, 75, feedback.ImpactScore)
	}
	assert.Equal(t, 2, ts.ai.reviewCalls, "feedback is recomputed on every request")
}

func TestLinkedInEventsReturnsRawObject(t *testing.T) {
	ts := newTestServer(t)
	ts.uploadResume(t, "")

	rec := ts.do(t, http.MethodGet, "/api/linkedin-events/1", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var insights models.NetworkingInsights
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insights))
	assert.NotEmpty(t, insights.Upcoming)

	// The response is the derived object itself, not a profile
	assert.NotContains(t, rec.Body.String(), "resumeText")
}

func TestPortfolioSuggestions(t *testing.T) {
	ts := newTestServer(t)
	ts.uploadResume(t, "")

	rec := ts.do(t, http.MethodGet, "/api/portfolio-suggestions/1", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var suggestions models.PortfolioSuggestions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suggestions))
	assert.NotEmpty(t, suggestions.SuggestedProjects)
	assert.NotEmpty(t, suggestions.SkillGaps)
}

func TestJobPostingsUsesRecommendedRoles(t *testing.T) {
	ts := newTestServer(t)
	ts.search.jobs = []models.JobPosting{{Title: "Backend Engineer", Company: "Acme", SkillMatch: 80}}
	ts.uploadResume(t, "")

	// No recommendations yet: the searcher decides the fallback role
	rec := ts.do(t, http.MethodGet, "/api/job-postings/1", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, ts.search.lastRoles)

	// After recommendations exist they drive the search
	ts.do(t, http.MethodGet, "/api/career-recommendations/1", "", nil, "")
	rec = ts.do(t, http.MethodGet, "/api/job-postings/1", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Backend Engineer", "Platform Engineer"}, ts.search.lastRoles)

	var resp models.JobPostingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalResults)
}

func TestJobPostingsSearchFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.search.err = errors.New("job search failed for all 1 roles")
	ts.uploadResume(t, "")

	rec := ts.do(t, http.MethodGet, "/api/job-postings/1", "", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInitSessionIssuesToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/init-session", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var session models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.NotEmpty(t, session.SessionID)
	assert.NotEmpty(t, session.Token)

	claims, err := ts.jwt.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, claims.SessionID)
}

func TestInitSessionKeepsExistingSession(t *testing.T) {
	ts := newTestServer(t)

	first := ts.do(t, http.MethodPost, "/api/init-session", "", nil, "")
	var firstSession models.SessionResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstSession))

	second := ts.do(t, http.MethodPost, "/api/init-session", firstSession.Token, nil, "")
	var secondSession models.SessionResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondSession))

	assert.Equal(t, firstSession.SessionID, secondSession.SessionID, "renewal must reuse the live session")
}

func TestSessionGating(t *testing.T) {
	ts := newTestServer(t)

	session := ts.do(t, http.MethodPost, "/api/init-session", "", nil, "")
	var sessionResp models.SessionResponse
	require.NoError(t, json.Unmarshal(session.Body.Bytes(), &sessionResp))

	rec := ts.uploadResume(t, sessionResp.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	// Same session sees the profile
	rec = ts.do(t, http.MethodGet, "/api/career-profile/1", sessionResp.Token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// No session does not
	rec = ts.do(t, http.MethodGet, "/api/career-profile/1", "", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// A different session does not either
	other := ts.do(t, http.MethodPost, "/api/init-session", "", nil, "")
	var otherResp models.SessionResponse
	require.NoError(t, json.Unmarshal(other.Body.Bytes(), &otherResp))

	rec = ts.do(t, http.MethodGet, "/api/career-recommendations/1", otherResp.Token, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, ts.ai.recommendCalls)
}

func TestAnonymousUploadUngated(t *testing.T) {
	ts := newTestServer(t)

	ts.uploadResume(t, "")

	// Profiles created without a session stay visible to everyone
	rec := ts.do(t, http.MethodGet, "/api/career-profile/1", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	session := ts.do(t, http.MethodPost, "/api/init-session", "", nil, "")
	var sessionResp models.SessionResponse
	require.NoError(t, json.Unmarshal(session.Body.Bytes(), &sessionResp))

	rec = ts.do(t, http.MethodGet, "/api/career-profile/1", sessionResp.Token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	payload := bytes.NewBufferString(`{"username":"ada","password":"correct-horse"}`)
	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", payload, "application/json")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var authResp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &authResp))
	assert.NotEmpty(t, authResp.Token)
	require.NotNil(t, authResp.User)
	assert.Equal(t, "ada", authResp.User.Username)
	assert.NotContains(t, rec.Body.String(), "password", "hashes must never leak")

	// Duplicate username
	payload = bytes.NewBufferString(`{"username":"ada","password":"another-pass"}`)
	rec = ts.do(t, http.MethodPost, "/api/auth/register", "", payload, "application/json")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Correct credentials
	payload = bytes.NewBufferString(`{"username":"ada","password":"correct-horse"}`)
	rec = ts.do(t, http.MethodPost, "/api/auth/login", "", payload, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	// Wrong password
	payload = bytes.NewBufferString(`{"username":"ada","password":"wrong"}`)
	rec = ts.do(t, http.MethodPost, "/api/auth/login", "", payload, "application/json")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown user gets the same answer as a wrong password
	payload = bytes.NewBufferString(`{"username":"ghost","password":"whatever"}`)
	rec = ts.do(t, http.MethodPost, "/api/auth/login", "", payload, "application/json")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedUploadUsesAccountID(t *testing.T) {
	ts := newTestServer(t)

	// Register two accounts so the second has an id distinct from the
	// anonymous default owner.
	payload := bytes.NewBufferString(`{"username":"ada","password":"correct-horse"}`)
	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", payload, "application/json")
	require.Equal(t, http.StatusCreated, rec.Code)

	payload = bytes.NewBufferString(`{"username":"bob","password":"correct-horse"}`)
	rec = ts.do(t, http.MethodPost, "/api/auth/register", "", payload, "application/json")
	require.Equal(t, http.StatusCreated, rec.Code)

	var authResp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &authResp))
	require.Equal(t, 2, authResp.User.ID)

	rec = ts.uploadResume(t, authResp.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeProfile(t, rec).UserID)
}
