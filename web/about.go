// Package web serves the static pages that sit outside the posts app
package web

import (
	"net/http"

	"yatube/auth"

	"github.com/gin-gonic/gin"
)

func AboutAuthor(c *gin.Context) {
	c.HTML(http.StatusOK, "about_author.tmpl", gin.H{
		"User": auth.LoadSession(c).User(),
	})
}

func AboutTech(c *gin.Context) {
	c.HTML(http.StatusOK, "about_tech.tmpl", gin.H{
		"User": auth.LoadSession(c).User(),
	})
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
