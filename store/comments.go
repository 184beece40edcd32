package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/conduit-dev/conduit/models"
)

// AddComment creates a comment and its article link in one transaction.
// Comment ids are freshly generated, so the link needs no duplicate check.
func (s *Store) AddComment(articleSlug string, authorID uint, body string) (models.Comment, error) {
	var comment models.Comment
	err := s.transact(func(tx *gorm.DB) error {
		if err := requireArticle(tx, articleSlug); err != nil {
			return err
		}
		comment = models.Comment{AuthorID: authorID, Body: body}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.ArticleComment{ArticleSlug: articleSlug, CommentID: comment.ID}).Error; err != nil {
			return err
		}
		return tx.Preload("Author").First(&comment, comment.ID).Error
	})
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// ListComments returns an article's comments, oldest first, authors preloaded.
func (s *Store) ListComments(articleSlug string) ([]models.Comment, error) {
	if err := requireArticle(s.db, articleSlug); err != nil {
		return nil, err
	}
	var comments []models.Comment
	err := s.db.Preload("Author").
		Joins("JOIN article_comments ON article_comments.comment_id = comments.id").
		Where("article_comments.article_slug = ?", articleSlug).
		Order("comments.created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes the actor's own comment and its link row.
func (s *Store) DeleteComment(articleSlug string, commentID, actorID uint) error {
	return s.transact(func(tx *gorm.DB) error {
		if err := requireArticle(tx, articleSlug); err != nil {
			return err
		}

		var link models.ArticleComment
		err := tx.Where("article_slug = ? AND comment_id = ?", articleSlug, commentID).First(&link).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if comment.AuthorID != actorID {
			return ErrPermissionDenied
		}

		if err := tx.Delete(&link).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
}
