package handlers

import (
	"html/template"
	"time"

	"yatube/auth"
	"yatube/cache"
	"yatube/config"
	"yatube/db"
	"yatube/utils"
	"yatube/web"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
)

const sessionCookieName = "token"

// NewRouter wires the whole route table. The render cache is created by the
// caller and handed only to the home timeline handler.
func NewRouter(pageCache *cache.RenderCache) *gin.Engine {
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}

	// HTML templates
	router.SetFuncMap(template.FuncMap{
		"datetime": func(unix int64) string {
			return time.Unix(unix, 0).Format("2 Jan 2006 15:04")
		},
	})
	router.LoadHTMLGlob(config.TEMPLATES_GLOB)

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: config.SESSION_MAX_AGE})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media/"})))
	}

	// Custom Auth Router
	authRouter := &auth.Router{Base: router}

	// Public listings and detail
	router.GET("/", Index(pageCache))
	router.GET("/group/:slug/", GroupPosts)
	router.GET("/profile/:username/", Profile)
	router.GET("/posts/:id/", PostDetail)

	// Authoring (authenticated; ownership checked in the handlers)
	authRouter.GET("/create/", PostCreateForm)
	authRouter.POST("/create/", PostCreate)
	authRouter.GET("/posts/:id/edit/", PostEditForm)
	authRouter.POST("/posts/:id/edit/", PostEdit)
	authRouter.POST("/posts/:id/comment/", AddComment)

	// Follows
	authRouter.GET("/profile/:username/follow/", ProfileFollow)
	authRouter.GET("/profile/:username/unfollow/", ProfileUnfollow)
	authRouter.GET("/follow/", FollowIndex)

	// Identity
	router.GET("/auth/login/", LoginForm)
	router.POST("/auth/login/", Login)
	router.GET("/auth/logout/", Logout)
	router.GET("/auth/signup/", SignupForm)
	router.POST("/auth/signup/", Signup)

	// Media and misc
	router.GET("/media/*path", MediaFetch)
	router.GET("/about/author/", web.AboutAuthor)
	router.GET("/about/tech/", web.AboutTech)
	router.GET("/robots.txt", web.DisallowRobots)

	return router
}
