package models

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Message string `json:"message" example:"Profile not found"`
	Details string `json:"details,omitempty" example:"resume analysis failed"`
}

// HealthResponse reports server liveness
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Version string `json:"version" example:"1.0.0"`
}

// RegisterRequest represents a registration request
// @Description Registration with username and password
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"ada"`
	Password string `json:"password" binding:"required,min=8" example:"correct-horse"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"ada"`
	Password string `json:"password" binding:"required" example:"correct-horse"`
}

// AuthResponse carries a token after register/login
type AuthResponse struct {
	Token   string `json:"token"`
	User    *User  `json:"user"`
	Message string `json:"message,omitempty"`
}

// SessionResponse is returned by the session bootstrap endpoint
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}
