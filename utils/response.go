package utils

import "github.com/gin-gonic/gin"

// Response envelope: {ok, message?, error?{message}, data?}.

func RespondOK(c *gin.Context, message string, data gin.H) {
	body := gin.H{"ok": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(200, body)
}

func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"ok":    false,
		"error": gin.H{"message": message},
	})
}

func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"ok":    false,
		"error": gin.H{"message": message},
	})
}
