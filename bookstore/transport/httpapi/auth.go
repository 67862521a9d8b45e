package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

const callerKey = "bookstore.caller"

// authenticate verifies the HS256 bearer token and stores the user ID from its "sub" claim in the gin context.
func authenticate(secret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	keyFunc := func(*jwt.Token) (any, error) {
		return secret, nil
	}

	return func(c *gin.Context) {
		tokenString, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			abortWithError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims := jwt.RegisteredClaims{}

		token, err := parser.ParseWithClaims(strings.TrimSpace(tokenString), &claims, keyFunc)
		if err != nil || !token.Valid {
			abortWithError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil || userID == uuid.Nil {
			abortWithError(c, http.StatusUnauthorized, "token subject is not a user ID")
			return
		}

		c.Set(callerKey, userID)
		c.Next()
	}
}

// callerFrom returns the authenticated caller, or uuid.Nil on public routes.
func callerFrom(c *gin.Context) core.UserID {
	value, ok := c.Get(callerKey)
	if !ok {
		return uuid.Nil
	}

	caller, _ := value.(uuid.UUID)

	return caller
}
