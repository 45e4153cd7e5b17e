package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"yatube/cache"
	"yatube/config"
	"yatube/models"
	"yatube/pagination"

	"github.com/gin-gonic/gin"
)

const indexCacheKey = "index"

// renderCapture collects a template render into a buffer instead of the
// network, so the bytes can be cached and replayed
type renderCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *renderCapture) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

func (w *renderCapture) WriteString(s string) (int, error) {
	return w.buf.WriteString(s)
}

func renderToBytes(c *gin.Context, code int, name string, ctx gin.H) ([]byte, error) {
	capture := &renderCapture{ResponseWriter: c.Writer}
	original := c.Writer
	c.Writer = capture
	c.HTML(code, name, ctx)
	c.Writer = original
	return capture.buf.Bytes(), nil
}

func renderIndex(c *gin.Context, pageNum int) ([]byte, error) {
	var posts []models.Post
	page, err := pagination.Paginate(postListing(), pageNum, perPage(), &posts)
	if err != nil {
		return nil, err
	}
	return renderToBytes(c, http.StatusOK, "index.tmpl", gin.H{
		"User":  sessionUser(c),
		"Posts": posts,
		"Page":  page,
	})
}

// Index serves the home timeline. The first page render is kept in the
// injected cache for the configured TTL; posts created or deleted inside
// that window stay invisible until expiry or an explicit Clear.
func Index(pageCache *cache.RenderCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageNum := pageNumber(c)
		if pageNum > 1 {
			// Only the timeline's front page is cached
			body, err := renderIndex(c, pageNum)
			if err != nil {
				c.String(http.StatusInternalServerError, "server error")
				return
			}
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			return
		}
		ttl := time.Duration(config.INDEX_CACHE_TTL) * time.Second
		body, _, err := pageCache.GetOrCompute(indexCacheKey, ttl, func() ([]byte, error) {
			return renderIndex(c, pageNum)
		})
		if err != nil {
			c.String(http.StatusInternalServerError, "server error")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	}
}

// GroupPosts lists the posts filed under one group, newest first
func GroupPosts(c *gin.Context) {
	group, err := models.GroupBySlug(c.Param("slug"))
	if err != nil {
		notFound(c)
		return
	}
	var posts []models.Post
	page, err := pagination.Paginate(
		postListing().Where("group_id = ?", group.ID),
		pageNumber(c), perPage(), &posts)
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.HTML(http.StatusOK, "group_list.tmpl", gin.H{
		"User":  sessionUser(c),
		"Group": group,
		"Posts": posts,
		"Page":  page,
	})
}

// Profile lists one author's posts plus the viewer's follow state
func Profile(c *gin.Context) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		notFound(c)
		return
	}
	var posts []models.Post
	page, err := pagination.Paginate(
		postListing().Where("author_id = ?", author.ID),
		pageNumber(c), perPage(), &posts)
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	user := sessionUser(c)
	following := false
	if user.ID != 0 {
		following = models.IsFollowing(user.ID, author.ID)
	}
	c.HTML(http.StatusOK, "profile.tmpl", gin.H{
		"User":      user,
		"Author":    author,
		"Posts":     posts,
		"Page":      page,
		"Following": following,
	})
}

// PostDetail shows a single post with its comments and the comment form
func PostDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}
	post, err := models.PostByID(id)
	if err != nil {
		notFound(c)
		return
	}
	comments, err := models.CommentsForPost(post.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.HTML(http.StatusOK, "post_detail.tmpl", gin.H{
		"User":         sessionUser(c),
		"Post":         &post,
		"Comments":     comments,
		"CommentCount": post.CommentCount(),
		"CommentError": "",
		"CommentText":  "",
	})
}

// FollowIndex lists posts by the authors the logged-in user follows
func FollowIndex(c *gin.Context, user *models.User) {
	ids, err := models.FollowedAuthorIDs(user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	var posts []models.Post
	page, err := pagination.Paginate(
		postListing().Where("author_id IN ?", ids),
		pageNumber(c), perPage(), &posts)
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.HTML(http.StatusOK, "follow.tmpl", gin.H{
		"User":  *user,
		"Posts": posts,
		"Page":  page,
	})
}
