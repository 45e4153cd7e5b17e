package handlers

import (
	"net/http"

	"yatube/models"

	"github.com/gin-gonic/gin"
)

// ProfileFollow creates the follow relation if absent. Following twice is a
// no-op thanks to the unique (user, author) pair.
func ProfileFollow(c *gin.Context, user *models.User) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		notFound(c)
		return
	}
	if err := models.FollowCreate(user.ID, author.ID); err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// ProfileUnfollow removes the relation; removing a missing one is a no-op
func ProfileUnfollow(c *gin.Context, user *models.User) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		notFound(c)
		return
	}
	if _, err := models.Unfollow(user.ID, author.ID); err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}
