package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careercompass/backend/auth"
	"github.com/careercompass/backend/config"
	"github.com/careercompass/backend/gemini"
	"github.com/careercompass/backend/models"
	"github.com/careercompass/backend/storage"
	"github.com/careercompass/backend/utils"
)

// ProfileHandler handles resume uploads and profile retrieval
type ProfileHandler struct {
	store   storage.ProfileStore
	ai      Enricher
	archive ResumeArchiver
	cfg     *config.Config
}

// NewProfileHandler creates a new profile handler. archive may be nil when no
// resume bucket is configured.
func NewProfileHandler(store storage.ProfileStore, ai Enricher, archive ResumeArchiver, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{
		store:   store,
		ai:      ai,
		archive: archive,
		cfg:     cfg,
	}
}

// UploadProfile accepts a resume, extracts its text, analyzes it with AI and
// replaces the owner's profile with a fresh one.
// @Summary Upload a resume and build a career profile
// @Description Upload a resume file and optional profile links. The resume is analyzed and a new career profile replaces any existing one for the user.
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "Resume file (.txt, .pdf or .docx)"
// @Param linkedinUrl formData string false "LinkedIn profile URL"
// @Param githubUsername formData string false "GitHub username"
// @Success 200 {object} models.CareerProfile "Created profile"
// @Failure 400 {object} models.ErrorResponse "Missing or unreadable resume"
// @Failure 500 {object} models.ErrorResponse "Analysis or storage failure"
// @Router /career-profile [post]
func (h *ProfileHandler) UploadProfile(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Resume file is required",
		})
		return
	}
	defer file.Close()

	if !utils.IsSupportedFormat(header.Filename) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Unsupported resume format",
			Details: header.Filename,
		})
		return
	}

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Failed to read resume file",
			Details: err.Error(),
		})
		return
	}

	resumeText, err := utils.ExtractResumeText(buf.Bytes(), header.Filename)
	if err != nil {
		log.Printf("[ProfileHandler] Text extraction failed for %s: %v", header.Filename, err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Failed to extract text from resume",
			Details: err.Error(),
		})
		return
	}

	analysis, err := h.ai.AnalyzeResume(c.Request.Context(), resumeText)
	if err != nil {
		log.Printf("[ProfileHandler] Resume analysis failed: %v", err)
		message := "Resume analysis failed"
		if errors.Is(err, gemini.ErrMalformedResponse) || errors.Is(err, gemini.ErrInvalidShape) {
			message = "AI returned an unusable analysis"
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: message,
			Details: err.Error(),
		})
		return
	}

	userID := h.cfg.DefaultUserID
	if claims := auth.GetAuthClaims(c); claims != nil && claims.UserID != 0 {
		userID = claims.UserID
	}

	profile, err := h.store.CreateProfile(c.Request.Context(), storage.CreateProfileParams{
		UserID:         userID,
		ResumeText:     resumeText,
		LinkedinURL:    c.PostForm("linkedinUrl"),
		GithubUsername: c.PostForm("githubUsername"),
		SessionID:      auth.SessionID(c),
		Skills:         analysis.Skills,
		Experience:     analysis.Experience,
		Education:      analysis.Education,
	})
	if err != nil {
		log.Printf("[ProfileHandler] Failed to store profile: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to store career profile",
			Details: err.Error(),
		})
		return
	}

	// Archiving the original file is best effort; the profile is already built
	// from the extracted text. The archive mirrors the one-live-profile rule,
	// so earlier resumes for the owner are cleared first.
	if h.archive != nil {
		if cleared, err := h.archive.DeleteResumesForUser(c.Request.Context(), userID); err != nil {
			log.Printf("[ProfileHandler] Failed to clear archived resumes for user %d: %v", userID, err)
		} else if cleared > 0 {
			log.Printf("[ProfileHandler] Cleared %d archived resumes for user %d", cleared, userID)
		}
		if url, err := h.archive.StoreResume(c.Request.Context(), userID, buf.Bytes(), header.Filename); err != nil {
			log.Printf("[ProfileHandler] Failed to archive resume: %v", err)
		} else {
			log.Printf("[ProfileHandler] Archived resume at %s", url)
		}
	}

	log.Printf("[ProfileHandler] Created profile %d for user %d (%d skills)", profile.ID, userID, len(profile.Skills))
	c.JSON(http.StatusOK, profile)
}

// GetProfile returns the stored profile for a user.
// @Summary Get a career profile
// @Tags Profile
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.CareerProfile
// @Failure 400 {object} models.ErrorResponse "Invalid user ID"
// @Failure 404 {object} models.ErrorResponse "Profile not found"
// @Router /career-profile/{userId} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, ok := fetchProfile(c, h.store)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profile)
}

// fetchProfile resolves the :userId path param, loads the owner's profile and
// enforces session gating. On failure it writes the error response and
// returns ok=false. A profile bound to a session is invisible to requests
// carrying a different session, indistinguishable from a missing profile.
func fetchProfile(c *gin.Context, store storage.ProfileStore) (*models.CareerProfile, bool) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid user ID",
			Details: c.Param("userId"),
		})
		return nil, false
	}

	profile, err := store.GetProfileByOwner(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Profile not found",
			})
			return nil, false
		}
		log.Printf("[ProfileHandler] Profile lookup failed for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to load career profile",
			Details: err.Error(),
		})
		return nil, false
	}

	if profile.SessionID != "" && profile.SessionID != auth.SessionID(c) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "Profile not found",
		})
		return nil, false
	}

	return profile, true
}
