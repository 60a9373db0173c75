package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthClaimsKey is the key used to store JWT claims in gin context
const AuthClaimsKey = "auth_claims"

// OptionalAuthMiddleware attaches claims to the context when a valid bearer
// token is present. Requests without a token (or with an invalid one)
// continue anonymously; endpoints that gate on sessions handle the absence
// themselves.
func OptionalAuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set(AuthClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims retrieves auth claims from gin context
func GetAuthClaims(c *gin.Context) *Claims {
	claims, exists := c.Get(AuthClaimsKey)
	if !exists {
		return nil
	}
	return claims.(*Claims)
}

// SessionID returns the caller's session id, or "" for anonymous requests
func SessionID(c *gin.Context) string {
	if claims := GetAuthClaims(c); claims != nil {
		return claims.SessionID
	}
	return ""
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return parts[1]
}
