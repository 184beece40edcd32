package models

// Tag is a global label. Tags exist independently of articles; attaching one
// to an article is a separate ArticleTag row.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"`
}

// ArticleTag links one article to one tag. The pair is unique: re-tagging an
// article with the same tag is rejected, not merged.
type ArticleTag struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ArticleSlug string `gorm:"size:255;index;uniqueIndex:idx_article_tag;not null" json:"article_slug"`
	TagName     string `gorm:"size:64;uniqueIndex:idx_article_tag;not null" json:"tag_name"`
}
