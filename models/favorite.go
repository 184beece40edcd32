package models

import "time"

// Favorite marks an article as favorited by a user, keyed by username. The
// (article, username) pair is unique; double favorites are rejected.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index;uniqueIndex:idx_article_user;not null" json:"article_id"`
	Username  string    `gorm:"size:64;uniqueIndex:idx_article_user;not null" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
