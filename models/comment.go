package models

import "time"

// Comment is a reply authored by a user. The owning article is recorded in a
// separate ArticleComment association row.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
}

// ArticleComment binds a comment to exactly one article. Comment ids are
// freshly generated so the pair needs no uniqueness guard of its own.
type ArticleComment struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ArticleSlug string `gorm:"size:255;index;not null" json:"article_slug"`
	CommentID   uint   `gorm:"uniqueIndex;not null" json:"comment_id"`
}
