package response

import "github.com/gin-gonic/gin"

// Error writes the error envelope. Success responses return their DTO bodies
// directly; only failures are wrapped.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
