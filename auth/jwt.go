package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careercompass/backend/config"
	"github.com/careercompass/backend/models"
)

// JWTService handles JWT token operations
type JWTService struct {
	secretKey   []byte
	expiryHours int
}

// Claims represents JWT claims. SessionID is always set; UserID/Username are
// zero for anonymous sessions bootstrapped without an account.
type Claims struct {
	UserID    int    `json:"userId,omitempty"`
	Username  string `json:"username,omitempty"`
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secretKey:   []byte(cfg.JWTSecret),
		expiryHours: cfg.JWTExpiryHours,
	}
}

// GenerateUserToken generates a token for an account, bound to a session
func (s *JWTService) GenerateUserToken(user *models.User, sessionID string) (string, error) {
	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		SessionID: sessionID,
	}
	return s.sign(claims)
}

// GenerateSessionToken generates a token for an anonymous session
func (s *JWTService) GenerateSessionToken(sessionID string) (string, error) {
	claims := &Claims{
		SessionID: sessionID,
	}
	return s.sign(claims)
}

func (s *JWTService) sign(claims *Claims) (string, error) {
	expirationTime := time.Now().Add(time.Duration(s.expiryHours) * time.Hour)

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "careercompass",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
