package models

import (
	"yatube/db"

	"gorm.io/gorm/clause"
)

// Follow is a directed "user follows author" relation. The composite unique
// index makes the pair the identity of the row.
type Follow struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UserID    uint64 `gorm:"not null;index:idx_follow_pair,unique"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint64 `gorm:"not null;index:idx_follow_pair,unique"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// FollowCreate is idempotent: following an already-followed author is a no-op
func FollowCreate(userID, authorID uint64) error {
	f := Follow{UserID: userID, AuthorID: authorID}
	return db.Instance.Clauses(clause.OnConflict{DoNothing: true}).Create(&f).Error
}

// Unfollow removes the relation if present and reports whether a row was
// actually deleted. A missing relation is not an error.
func Unfollow(userID, authorID uint64) (bool, error) {
	result := db.Instance.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&Follow{})
	return result.RowsAffected > 0, result.Error
}

func IsFollowing(userID, authorID uint64) bool {
	var count int64
	db.Instance.Model(&Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count)
	return count > 0
}

// FollowedAuthorIDs returns the ids of every author the user follows
func FollowedAuthorIDs(userID uint64) (ids []uint64, err error) {
	err = db.Instance.Model(&Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	return
}
