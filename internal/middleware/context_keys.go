package middleware

import "github.com/gin-gonic/gin"

// userIDKey and usernameKey hold the authenticated caller's identity in the
// request context.
const (
	userIDKey   = contextKey("userID")
	usernameKey = contextKey("username")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(userIDKey)
	if val == nil {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok
}

// GetUsernameFromContext retrieves the authenticated username from the Gin context.
// It returns the username and a boolean indicating if it was found.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(usernameKey)
	if val == nil {
		return "", false
	}
	username, ok := val.(string)
	return username, ok
}
