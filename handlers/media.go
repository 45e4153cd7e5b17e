package handlers

import (
	"strings"

	"yatube/storage"

	"github.com/gin-gonic/gin"
)

// MediaFetch serves stored post images from whichever backend is configured
func MediaFetch(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		notFound(c)
		return
	}
	storage.Media().Serve(path, c.Request, c.Writer)
}
