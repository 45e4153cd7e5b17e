package models

import (
	"errors"
	"strings"

	"yatube/db"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint64  `gorm:"primaryKey"`
	CreatedAt int64   `gorm:"index:post_order"`
	UpdatedAt int64
	AuthorID  uint64  `gorm:"not null;index:post_author"`
	Author    User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint64 `gorm:"index:post_group"`
	Group     *Group  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Text      string  `gorm:"type:text"`
	ImagePath string  `gorm:"type:varchar(300)"`
	ThumbPath string  `gorm:"type:varchar(300)"`
}

var ErrTextRequired = errors.New("text is required")

const previewRunes = 15

func PostCreate(authorID uint64, text string, groupID *uint64, imagePath, thumbPath string) (p Post, err error) {
	if strings.TrimSpace(text) == "" {
		return Post{}, ErrTextRequired
	}
	p = Post{
		AuthorID:  authorID,
		GroupID:   groupID,
		Text:      text,
		ImagePath: imagePath,
		ThumbPath: thumbPath,
	}
	return p, db.Instance.Create(&p).Error
}

func PostByID(id uint64) (p Post, err error) {
	err = db.Instance.Preload("Author").Preload("Group").First(&p, id).Error
	return
}

// Update changes the mutable fields only. Author and CreatedAt are set once
// at creation and never touched here.
func (p *Post) Update(text string, groupID *uint64, imagePath, thumbPath string) error {
	if strings.TrimSpace(text) == "" {
		return ErrTextRequired
	}
	p.Text = text
	p.GroupID = groupID
	if imagePath != "" {
		p.ImagePath = imagePath
		p.ThumbPath = thumbPath
	}
	return db.Instance.Model(p).Updates(map[string]interface{}{
		"text":       p.Text,
		"group_id":   p.GroupID,
		"image_path": p.ImagePath,
		"thumb_path": p.ThumbPath,
	}).Error
}

// Delete removes the post and all of its comments in one transaction.
// The cascade is an explicit rule here, not left to FK constraints.
func (p *Post) Delete() error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", p.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
}

func (p *Post) CommentCount() (count int64) {
	db.Instance.Model(&Comment{}).Where("post_id = ?", p.ID).Count(&count)
	return
}

// Preview returns the first few runes of the text, used as a byline
func (p *Post) Preview() string {
	runes := []rune(p.Text)
	if len(runes) <= previewRunes {
		return p.Text
	}
	return string(runes[:previewRunes])
}
