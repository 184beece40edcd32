package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/conduit-dev/conduit/models"
	"github.com/conduit-dev/conduit/utils"
)

// ArticleFilter narrows ListArticles. Zero values mean "no restriction".
type ArticleFilter struct {
	Tag         string // articles carrying this tag
	Author      string // articles written by this username
	FavoritedBy string // articles favorited by this username
	Offset      int
	Limit       int
}

// ArticleChanges carries a partial article update. Nil fields stay untouched.
// A non-nil TagList replaces the article's tags wholesale.
type ArticleChanges struct {
	Title       *string
	Description *string
	Body        *string
	TagList     *[]string
}

// CreateArticle derives the slug from the title, persists the article and
// links its tags, all in one transaction. A slug collision fails the whole
// operation with ErrAlreadyExists.
func (s *Store) CreateArticle(article *models.Article, tags []string) error {
	article.Slug = utils.Slugify(article.Title)
	return s.transact(func(tx *gorm.DB) error {
		var existing models.Article
		err := tx.Where("slug = ?", article.Slug).First(&existing).Error
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(article).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyExists
			}
			return err
		}
		for _, name := range tags {
			if err := linkTag(tx, article.Slug, name); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetArticleBySlug fetches an article with its author preloaded.
func (s *Store) GetArticleBySlug(slug string) (models.Article, error) {
	var article models.Article
	if err := s.db.Preload("Author").Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Article{}, ErrNotFound
		}
		return models.Article{}, err
	}
	return article, nil
}

// ListArticles returns newest-first articles matching the filter.
func (s *Store) ListArticles(f ArticleFilter) ([]models.Article, error) {
	query := s.db.Preload("Author").Order("articles.created_at DESC")

	if f.Tag != "" {
		query = query.Joins("JOIN article_tags ON article_tags.article_slug = articles.slug").
			Where("article_tags.tag_name = ?", f.Tag)
	}
	if f.Author != "" {
		query = query.Joins("JOIN users ON users.id = articles.author_id").
			Where("users.username = ?", f.Author)
	}
	if f.FavoritedBy != "" {
		query = query.Joins("JOIN favorites ON favorites.article_id = articles.id").
			Where("favorites.username = ?", f.FavoritedBy)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// FeedArticles returns newest-first articles authored by users the viewer follows.
func (s *Store) FeedArticles(viewerID uint, offset, limit int) ([]models.Article, error) {
	query := s.db.Preload("Author").
		Joins("JOIN follows ON follows.followee_id = articles.author_id").
		Where("follows.follower_id = ?", viewerID).
		Order("articles.created_at DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// UpdateArticle applies changes to the actor's own article. A title change
// re-derives the slug (collision rejected) and rewrites the slug on every
// association row so links stay intact. A provided tag list replaces all
// existing tags rather than merging.
func (s *Store) UpdateArticle(slug string, actorID uint, changes ArticleChanges) (models.Article, error) {
	var updated models.Article
	err := s.transact(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Where("slug = ?", slug).First(&article).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if article.AuthorID != actorID {
			return ErrPermissionDenied
		}

		if changes.Title != nil && *changes.Title != article.Title {
			newSlug := utils.Slugify(*changes.Title)
			if newSlug != article.Slug {
				var clash models.Article
				err := tx.Where("slug = ?", newSlug).First(&clash).Error
				if err == nil {
					return ErrAlreadyExists
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				if err := tx.Model(&models.ArticleTag{}).
					Where("article_slug = ?", article.Slug).
					Update("article_slug", newSlug).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.ArticleComment{}).
					Where("article_slug = ?", article.Slug).
					Update("article_slug", newSlug).Error; err != nil {
					return err
				}
				article.Slug = newSlug
			}
			article.Title = *changes.Title
		}
		if changes.Description != nil {
			article.Description = *changes.Description
		}
		if changes.Body != nil {
			article.Body = *changes.Body
		}

		if err := tx.Save(&article).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyExists
			}
			return err
		}

		if changes.TagList != nil {
			if err := replaceTags(tx, article.Slug, *changes.TagList); err != nil {
				return err
			}
		}

		return tx.Preload("Author").Where("slug = ?", article.Slug).First(&updated).Error
	})
	if err != nil {
		return models.Article{}, err
	}
	return updated, nil
}

// DeleteArticle removes the actor's article and every dependent row: tag
// links, favorites, comment links and the comments themselves.
func (s *Store) DeleteArticle(slug string, actorID uint) error {
	return s.transact(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Where("slug = ?", slug).First(&article).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if article.AuthorID != actorID {
			return ErrPermissionDenied
		}
		return deleteArticleCascade(tx, article)
	})
}

// deleteArticleCascade removes an article and all rows that reference it.
// Must run inside a transaction.
func deleteArticleCascade(tx *gorm.DB, article models.Article) error {
	if err := tx.Where("article_slug = ?", article.Slug).Delete(&models.ArticleTag{}).Error; err != nil {
		return err
	}
	if err := tx.Where("article_id = ?", article.ID).Delete(&models.Favorite{}).Error; err != nil {
		return err
	}

	var links []models.ArticleComment
	if err := tx.Where("article_slug = ?", article.Slug).Find(&links).Error; err != nil {
		return err
	}
	for _, link := range links {
		if err := tx.Delete(&models.Comment{}, link.CommentID).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("article_slug = ?", article.Slug).Delete(&models.ArticleComment{}).Error; err != nil {
		return err
	}

	return tx.Delete(&article).Error
}
