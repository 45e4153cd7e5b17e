package handlers

import (
	"net/http"
	"strconv"

	"yatube/auth"
	"yatube/config"
	"yatube/db"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// pageNumber reads the 1-indexed ?page= query parameter
func pageNumber(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// postListing is the base query every listing page shares: newest first,
// with author and group ready for the templates.
func postListing() *gorm.DB {
	return db.Instance.Model(&models.Post{}).
		Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC")
}

func perPage() int {
	return config.POSTS_PER_PAGE
}

// sessionUser loads the logged-in user for pages that do not require auth
func sessionUser(c *gin.Context) models.User {
	return auth.LoadSession(c).User()
}

func notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.tmpl", gin.H{
		"User": sessionUser(c),
	})
	c.Abort()
}
