package models

import (
	"strings"

	"yatube/db"
)

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	AuthorID  uint64 `gorm:"not null"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PostID    uint64 `gorm:"not null;index:comment_post"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string `gorm:"type:text"`
}

// AddComment attaches a new comment to an existing post. The parent post
// must exist at creation time.
func AddComment(postID, authorID uint64, text string) (cm Comment, err error) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, ErrTextRequired
	}
	var post Post
	if err = db.Instance.First(&post, postID).Error; err != nil {
		return Comment{}, err
	}
	cm = Comment{PostID: post.ID, AuthorID: authorID, Text: text}
	return cm, db.Instance.Create(&cm).Error
}

func CommentsForPost(postID uint64) (comments []Comment, err error) {
	err = db.Instance.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return
}
