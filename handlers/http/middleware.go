package httpHandler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const contextUserID = "userID"

// UserIDFromToken validates a signed session token and returns the
// user ID it carries.
func UserIDFromToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return id, nil
}

// AuthMiddleware gates a route group behind a Bearer session token and
// stores the caller's user ID on the context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		userID, err := UserIDFromToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		c.Set(contextUserID, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user ID set by AuthMiddleware.
func CurrentUserID(c *gin.Context) string {
	id, _ := c.Get(contextUserID)
	userID, _ := id.(string)
	return userID
}
