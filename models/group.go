package models

import "yatube/db"

// Group is a named topic posts can be filed under. The slug is the routing
// key and must never change once published.
type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Slug        string `gorm:"type:varchar(100);index:uniq_slug,unique"`
	Title       string `gorm:"type:varchar(200)"`
	Description string `gorm:"type:text"`
}

func GroupBySlug(slug string) (g Group, err error) {
	err = db.Instance.First(&g, "slug = ?", slug).Error
	return
}
