package handlers

import (
	"errors"
	"net/http"
	"strings"

	"yatube/auth"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserLoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type UserSignupRequest struct {
	Username string `form:"username" binding:"required"`
	Name     string `form:"name"`
	Password string `form:"password" binding:"required"`
}

// nextTarget keeps only local paths as a post-login return target
func nextTarget(c *gin.Context) string {
	next := c.Query("next")
	if next == "" {
		next = c.PostForm("next")
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func renderLogin(c *gin.Context, username, next, formError string) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"User":     sessionUser(c),
		"Username": username,
		"Next":     next,
		"Error":    formError,
	})
}

func renderSignup(c *gin.Context, username, name, formError string) {
	c.HTML(http.StatusOK, "signup.tmpl", gin.H{
		"User":     sessionUser(c),
		"Username": username,
		"Name":     name,
		"Error":    formError,
	})
}

func LoginForm(c *gin.Context) {
	renderLogin(c, "", c.Query("next"), "")
}

func Login(c *gin.Context) {
	req := UserLoginRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		renderLogin(c, req.Username, nextTarget(c), "Username and password are required")
		return
	}
	user, err := models.UserLogin(req.Username, req.Password)
	if errors.Is(err, models.ErrLoginFailed) {
		renderLogin(c, req.Username, nextTarget(c), "Wrong username or password")
		return
	}
	auth.LoadSession(c).LoginUser(&user)
	c.Redirect(http.StatusFound, nextTarget(c))
}

func Logout(c *gin.Context) {
	auth.LoadSession(c).LogoutUser()
	c.Redirect(http.StatusFound, "/")
}

func SignupForm(c *gin.Context) {
	renderSignup(c, "", "", "")
}

func Signup(c *gin.Context) {
	req := UserSignupRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		renderSignup(c, req.Username, req.Name, "Username and password are required")
		return
	}
	user, err := models.UserCreate(req.Username, req.Name, req.Password)
	if err != nil {
		// Almost always the unique username index
		renderSignup(c, req.Username, req.Name, "That username is taken")
		return
	}
	auth.LoadSession(c).LoginUser(&user)
	c.Redirect(http.StatusFound, "/")
}
