package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/response"
)

// HeaderUserID carries the caller's identity. The gateway is trusted to have
// authenticated the user; the backend only parses the id.
const HeaderUserID = "X-Sharer-User-Id"

const userIDKey = "user_id"

// Identity requires a valid X-Sharer-User-Id header and stores the parsed id
// in the request context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderUserID)
		if raw == "" {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing "+HeaderUserID+" header")
			c.Abort()
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+HeaderUserID+" header")
			c.Abort()
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// UserID returns the id stored by Identity.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
