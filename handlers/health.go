package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careercompass/backend/models"
)

// HealthCheck returns server health status
// @Summary Health check
// @Description Check if the server is running
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse "Server is healthy"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Version: "1.0.0",
	})
}
