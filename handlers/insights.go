package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careercompass/backend/models"
	"github.com/careercompass/backend/storage"
)

// InsightsHandler serves AI-derived career data for a profile.
//
// Recommendations and InterviewPrep are read-through caches: the first GET
// computes the slot, persists it on the profile and returns the whole
// profile; later GETs return the stored value without an AI call.
// ResumeFeedback, LinkedInEvents and PortfolioSuggestions compute on every
// request and never persist.
type InsightsHandler struct {
	store storage.ProfileStore
	ai    Enricher
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(store storage.ProfileStore, ai Enricher) *InsightsHandler {
	return &InsightsHandler{
		store: store,
		ai:    ai,
	}
}

// Recommendations returns the profile with role recommendations populated.
// @Summary Get role recommendations
// @Description Returns the profile with recommended roles. Computed once and cached on the profile; pass refresh=true to recompute.
// @Tags Insights
// @Produce json
// @Param userId path int true "User ID"
// @Param refresh query bool false "Force recomputation"
// @Success 200 {object} models.CareerProfile
// @Failure 400 {object} models.ErrorResponse "Invalid user ID"
// @Failure 404 {object} models.ErrorResponse "Profile not found"
// @Failure 500 {object} models.ErrorResponse "AI or storage failure"
// @Router /career-recommendations/{userId} [get]
func (h *InsightsHandler) Recommendations(c *gin.Context) {
	profile, ok := fetchProfile(c, h.store)
	if !ok {
		return
	}

	if profile.Recommendations != nil && !forceRefresh(c) {
		c.JSON(http.StatusOK, profile)
		return
	}

	recommendations, err := h.ai.RecommendRoles(c.Request.Context(), profile)
	if err != nil {
		log.Printf("[InsightsHandler] Role recommendation failed for profile %d: %v", profile.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to generate role recommendations",
			Details: err.Error(),
		})
		return
	}

	updated, err := h.store.UpdateProfile(c.Request.Context(), profile.ID, storage.ProfileUpdate{
		Recommendations: recommendations,
	})
	if err != nil {
		h.persistError(c, profile.ID, err)
		return
	}

	log.Printf("[InsightsHandler] Stored %d role recommendations for profile %d", len(recommendations.RecommendedRoles), profile.ID)
	c.JSON(http.StatusOK, updated)
}

// InterviewPrep returns the profile with interview preparation populated.
// @Summary Get interview preparation
// @Description Returns the profile with interview prep categories. Computed once and cached on the profile; pass refresh=true to recompute.
// @Tags Insights
// @Produce json
// @Param userId path int true "User ID"
// @Param refresh query bool false "Force recomputation"
// @Success 200 {object} models.CareerProfile
// @Failure 400 {object} models.ErrorResponse "Invalid user ID"
// @Failure 404 {object} models.ErrorResponse "Profile not found"
// @Failure 500 {object} models.ErrorResponse "AI or storage failure"
// @Router /interview-prep/{userId} [get]
func (h *InsightsHandler) InterviewPrep(c *gin.Context) {
	profile, ok := fetchProfile(c, h.store)
	if !ok {
		return
	}

	if profile.InterviewPrep != nil && !forceRefresh(c) {
		c.JSON(http.StatusOK, profile)
		return
	}

	prep, err := h.ai.GenerateInterviewPrep(c.Request.Context(), profile)
	if err != nil {
		log.Printf("[InsightsHandler] Interview prep failed for profile %d: %v", profile.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to generate interview preparation",
			Details: err.Error(),
		})
		return
	}

	updated, err := h.store.UpdateProfile(c.Request.Context(), profile.ID, storage.ProfileUpdate{
		InterviewPrep: prep,
	})
	if err != nil {
		h.persistError(c, profile.ID, err)
		return
	}

	log.Printf("[InsightsHandler] Stored interview prep (%d categories) for profile %d", len(prep.Categories), profile.ID)
	c.JSON(http.StatusOK, updated)
}

// ResumeFeedback returns structured feedback on the stored resume.
// @Summary Get resume feedback
// @Description Computes feedback on the stored resume. Never cached; every request calls the AI client.
// @Tags Insights
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.ResumeFeedback
// @Failure 400 {object} models.ErrorResponse "Invalid user ID"
// @Failure 404 {object} models.ErrorResponse "Profile not found"
// @Failure 500 {object} models.ErrorResponse "AI failure"
// @Router /resume-feedback/{userId} [get]
func (h *InsightsHandler) ResumeFeedback(c *gin.Context) {
	profile, ok := fetchProfile(c, h.store)
	if !ok {
		return
	}

	feedback, err := h.ai.ReviewResume(c.Request.Context(), profile)
	if err != nil {
		log.Printf("[InsightsHandler] Resume review failed for profile %d: %v", profile.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to generate resume feedback",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, feedback)
}

// LinkedInEvents returns networking suggestions for the profile.
// @Summary Get networking insights
// @Description Computes networking events, groups and influencers relevant to the profile. Never cached.
// @Tags Insights
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.NetworkingInsights
// @Failure 400 {object} models.ErrorResponse "Invalid user ID"
// @Failure 404 {object} models.ErrorResponse "Profile not found"
// @Failure 500 {object} models.ErrorResponse "AI failure"
// @Router /linkedin-events/{userId} [get]
func (h *InsightsHandler) LinkedInEvents(c *gin.Context) {
	profile, ok := fetchProfile(c, h.store)
	if !ok {
		return
	}

	insights, err := h.ai.SuggestNetworking(c.Request.Context(), profile)
	if err != nil {
		log.Printf("[InsightsHandler] Networking suggestions failed for profile %d: %v", profile.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to generate networking insights",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, insights)
}

// PortfolioSuggestions returns project ideas that close the profile's skill gaps.
// @Summary Get portfolio suggestions
// @Description Computes portfolio project suggestions and skill gaps. Never cached.
// @Tags Insights
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.PortfolioSuggestions
// @Failure 400 {object} models.ErrorResponse "Invalid user ID"
// @Failure 404 {object} models.ErrorResponse "Profile not found"
// @Failure 500 {object} models.ErrorResponse "AI failure"
// @Router /portfolio-suggestions/{userId} [get]
func (h *InsightsHandler) PortfolioSuggestions(c *gin.Context) {
	profile, ok := fetchProfile(c, h.store)
	if !ok {
		return
	}

	suggestions, err := h.ai.SuggestPortfolio(c.Request.Context(), profile)
	if err != nil {
		log.Printf("[InsightsHandler] Portfolio suggestions failed for profile %d: %v", profile.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to generate portfolio suggestions",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// persistError reports an UpdateProfile failure. A vanished profile between
// read and write means the store lost a row mid-request, so it surfaces as a
// server error rather than a 404.
func (h *InsightsHandler) persistError(c *gin.Context, profileID int, err error) {
	log.Printf("[InsightsHandler] Failed to persist derived data for profile %d: %v", profileID, err)
	if errors.Is(err, storage.ErrProfileNotFound) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Profile disappeared during update",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Message: "Failed to store derived data",
		Details: err.Error(),
	})
}

func forceRefresh(c *gin.Context) bool {
	return c.Query("refresh") == "true"
}
