package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"yatube/config"
	"yatube/db"
	"yatube/models"
	"yatube/storage"
	"yatube/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostFormRequest struct {
	Text    string `form:"text"`
	GroupID uint64 `form:"group"`
}

func allGroups() (groups []models.Group) {
	db.Instance.Order("title ASC").Find(&groups)
	return
}

func renderPostForm(c *gin.Context, user *models.User, form PostFormRequest, post *models.Post, formError string) {
	ctx := gin.H{
		"User":   *user,
		"Form":   form,
		"Groups": allGroups(),
		"Error":  formError,
		"IsEdit": post != nil,
	}
	if post != nil {
		ctx["Post"] = post
	}
	c.HTML(http.StatusOK, "create_post.tmpl", ctx)
}

// saveImage stores an uploaded image plus a jpeg thumbnail and returns both
// storage paths. No file on the form is not an error.
func saveImage(c *gin.Context) (imagePath, thumbPath string, err error) {
	header, err := c.FormFile("image")
	if err != nil || header == nil {
		// Image is optional; a form without one is not an error
		return "", "", nil
	}
	file, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", err
	}
	name := uuid.New().String()
	imagePath = "posts/" + name + strings.ToLower(filepath.Ext(header.Filename))
	if _, err = storage.Media().Save(imagePath, bytes.NewReader(data)); err != nil {
		return "", "", err
	}
	var thumbBuf bytes.Buffer
	if _, err = utils.CreateThumb(uint(config.THUMB_SIZE), bytes.NewReader(data), &thumbBuf); err != nil {
		// Not an image we can decode; keep the original only
		log.Printf("Thumbnail for %s failed: %v", imagePath, err)
		return imagePath, "", nil
	}
	thumbPath = "posts/thumb/" + name + ".jpg"
	if _, err = storage.Media().Save(thumbPath, &thumbBuf); err != nil {
		return imagePath, "", err
	}
	return imagePath, thumbPath, nil
}

func groupIDParam(form PostFormRequest) *uint64 {
	if form.GroupID == 0 {
		return nil
	}
	return &form.GroupID
}

// PostCreateForm renders the empty create form
func PostCreateForm(c *gin.Context, user *models.User) {
	renderPostForm(c, user, PostFormRequest{}, nil, "")
}

// PostCreate stores a new post and sends the author to their profile.
// An empty text re-renders the form with the prior input kept.
func PostCreate(c *gin.Context, user *models.User) {
	form := PostFormRequest{}
	if err := c.ShouldBind(&form); err != nil {
		renderPostForm(c, user, form, nil, err.Error())
		return
	}
	imagePath, thumbPath, err := saveImage(c)
	if err != nil {
		renderPostForm(c, user, form, nil, "could not store the image")
		return
	}
	_, err = models.PostCreate(user.ID, form.Text, groupIDParam(form), imagePath, thumbPath)
	if errors.Is(err, models.ErrTextRequired) {
		renderPostForm(c, user, form, nil, "Text is required")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

func loadOwnedPost(c *gin.Context, user *models.User) (*models.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return nil, false
	}
	post, err := models.PostByID(id)
	if err != nil {
		notFound(c)
		return nil, false
	}
	if post.AuthorID != user.ID {
		// Non-owners land on the detail page, not an error page
		c.Redirect(http.StatusFound, "/posts/"+c.Param("id")+"/")
		return nil, false
	}
	return &post, true
}

// PostEditForm renders the edit form for the post's author only
func PostEditForm(c *gin.Context, user *models.User) {
	post, ok := loadOwnedPost(c, user)
	if !ok {
		return
	}
	form := PostFormRequest{Text: post.Text}
	if post.GroupID != nil {
		form.GroupID = *post.GroupID
	}
	renderPostForm(c, user, form, post, "")
}

// PostEdit mutates text/group/image in place; author and pub date stay
func PostEdit(c *gin.Context, user *models.User) {
	post, ok := loadOwnedPost(c, user)
	if !ok {
		return
	}
	form := PostFormRequest{}
	if err := c.ShouldBind(&form); err != nil {
		renderPostForm(c, user, form, post, err.Error())
		return
	}
	imagePath, thumbPath, err := saveImage(c)
	if err != nil {
		renderPostForm(c, user, form, post, "could not store the image")
		return
	}
	err = post.Update(form.Text, groupIDParam(form), imagePath, thumbPath)
	if errors.Is(err, models.ErrTextRequired) {
		renderPostForm(c, user, form, post, "Text is required")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+c.Param("id")+"/")
}

// AddComment appends a comment and returns to the post's detail page
func AddComment(c *gin.Context, user *models.User) {
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
	text := c.PostForm("text")
	_, err = models.AddComment(post.ID, user.ID, text)
	if errors.Is(err, models.ErrTextRequired) {
		comments, _ := models.CommentsForPost(post.ID)
		c.HTML(http.StatusOK, "post_detail.tmpl", gin.H{
			"User":         *user,
			"Post":         &post,
			"Comments":     comments,
			"CommentCount": post.CommentCount(),
			"CommentError": "Text is required",
			"CommentText":  text,
		})
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+c.Param("id")+"/")
}
