package auth

import (
	"net/http"

	"yatube/models"

	"github.com/gin-gonic/gin"
)

// User is authenticated when the handler runs
type HandlerFunc func(c *gin.Context, user *models.User)

const LoginPath = "/auth/login/"

// Router is a wrapper class that adds auth checks + User pre-loading.
// Anonymous requests are sent to the login page with the original path
// preserved as the return target.
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	session := LoadSession(c)
	user := session.User()
	if user.ID == 0 {
		c.Redirect(http.StatusFound, LoginPath+"?next="+c.Request.URL.Path)
		return
	}
	handler(c, &user)
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
