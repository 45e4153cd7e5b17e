package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorLogMiddleware logs error statuses in debug mode. Bodies are rendered
// HTML, so only status and path are useful here.
func ErrorLogMiddleware(c *gin.Context) {
	c.Next()
	status := c.Writer.Status()
	if status >= 400 {
		log.Printf("[DEBUG ERROR]: Status %d for %s %s", status, c.Request.Method, c.Request.URL.Path)
	}
}
