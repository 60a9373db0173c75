package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careercompass/backend/auth"
	"github.com/careercompass/backend/models"
	"github.com/careercompass/backend/storage"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	store      storage.UserStore
	jwtService *auth.JWTService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store storage.UserStore, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		store:      store,
		jwtService: jwtService,
	}
}

// Register handles user registration with username/password
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.AuthResponse "Registration successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 409 {object} models.ErrorResponse "Username already taken"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("[AuthHandler] Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to process registration",
		})
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), req.Username, hashedPassword)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Message: "Username already taken",
			})
			return
		}
		log.Printf("[AuthHandler] Failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Registration failed",
			Details: err.Error(),
		})
		return
	}

	token, err := h.issueToken(c, user)
	if err != nil {
		log.Printf("[AuthHandler] Failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to generate token",
		})
		return
	}

	log.Printf("[AuthHandler] User registered: %s", user.Username)
	c.JSON(http.StatusCreated, models.AuthResponse{
		Token:   token,
		User:    user,
		Message: "Registration successful",
	})
}

// Login handles user login with username/password
// @Summary Login user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			log.Printf("[AuthHandler] User lookup failed: %v", err)
		}
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Invalid username or password",
		})
		return
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Invalid username or password",
		})
		return
	}

	token, err := h.issueToken(c, user)
	if err != nil {
		log.Printf("[AuthHandler] Failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to generate token",
		})
		return
	}

	log.Printf("[AuthHandler] User logged in: %s", user.Username)
	c.JSON(http.StatusOK, models.AuthResponse{
		Token:   token,
		User:    user,
		Message: "Login successful",
	})
}

// issueToken mints a user token, carrying forward the caller's current
// session so profiles bound to it stay reachable after login.
func (h *AuthHandler) issueToken(c *gin.Context, user *models.User) (string, error) {
	sessionID := auth.SessionID(c)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return h.jwtService.GenerateUserToken(user, sessionID)
}
