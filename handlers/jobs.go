package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careercompass/backend/models"
	"github.com/careercompass/backend/storage"
)

// JobsHandler serves live job postings matched against a profile
type JobsHandler struct {
	store    storage.ProfileStore
	searcher JobSearcher
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(store storage.ProfileStore, searcher JobSearcher) *JobsHandler {
	return &JobsHandler{
		store:    store,
		searcher: searcher,
	}
}

// JobPostings returns recent postings for the profile's recommended roles,
// scored against the profile's skills.
// @Summary Get matched job postings
// @Description Searches recent postings for the profile's recommended role titles and scores each against the profile's skills. Falls back to a default role when no recommendations exist yet.
// @Tags Jobs
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.JobPostingsResponse
// @Failure 400 {object} models.ErrorResponse "Invalid user ID"
// @Failure 404 {object} models.ErrorResponse "Profile not found"
// @Failure 500 {object} models.ErrorResponse "All role searches failed"
// @Router /job-postings/{userId} [get]
func (h *JobsHandler) JobPostings(c *gin.Context) {
	profile, ok := fetchProfile(c, h.store)
	if !ok {
		return
	}

	var roles []string
	if profile.Recommendations != nil {
		for _, role := range profile.Recommendations.RecommendedRoles {
			if role.Title != "" {
				roles = append(roles, role.Title)
			}
		}
	}

	jobs, err := h.searcher.SearchPostings(c.Request.Context(), roles, profile.Skills)
	if err != nil {
		log.Printf("[JobsHandler] Job search failed for profile %d: %v", profile.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to fetch job postings",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.JobPostingsResponse{
		Jobs:         jobs,
		TotalResults: len(jobs),
	})
}
