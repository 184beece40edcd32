package store

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/conduit-dev/conduit/models"
)

// Association operations. Every "add" is idempotent-rejecting: a duplicate
// pair errors instead of merging, so callers can rely on exactly-once
// semantics per edge.

// LinkTag attaches a tag to an article, creating the Tag on first use.
func (s *Store) LinkTag(articleSlug, tagName string) error {
	return s.transact(func(tx *gorm.DB) error {
		if err := requireArticle(tx, articleSlug); err != nil {
			return err
		}
		return linkTag(tx, articleSlug, tagName)
	})
}

// UnlinkAllTags removes every tag association for an article. Tag rows
// themselves stay; tags exist independently of articles.
func (s *Store) UnlinkAllTags(articleSlug string) error {
	return s.db.Where("article_slug = ?", articleSlug).Delete(&models.ArticleTag{}).Error
}

// linkTag creates the tag if absent and the (article, tag) pair row.
func linkTag(tx *gorm.DB, articleSlug, tagName string) error {
	var tag models.Tag
	if err := tx.Where(models.Tag{Name: tagName}).FirstOrCreate(&tag).Error; err != nil {
		return err
	}

	var existing models.ArticleTag
	err := tx.Where("article_slug = ? AND tag_name = ?", articleSlug, tagName).First(&existing).Error
	if err == nil {
		return ErrDuplicateAssociation
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := tx.Create(&models.ArticleTag{ArticleSlug: articleSlug, TagName: tagName}).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateAssociation
		}
		return err
	}
	return nil
}

// replaceTags is delete-and-recreate, not a merge: the request's tag list
// becomes the article's tag list.
func replaceTags(tx *gorm.DB, articleSlug string, tags []string) error {
	if err := tx.Where("article_slug = ?", articleSlug).Delete(&models.ArticleTag{}).Error; err != nil {
		return err
	}
	for _, name := range tags {
		if err := linkTag(tx, articleSlug, name); err != nil {
			return err
		}
	}
	return nil
}

// Follow creates the follower -> followee edge.
func (s *Store) Follow(followerID, followeeID uint) error {
	if followerID == followeeID && !s.AllowSelfFollow {
		return ErrSelfFollow
	}
	return s.transact(func(tx *gorm.DB) error {
		var followee models.User
		if err := tx.First(&followee, followeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.Follow
		err := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).First(&existing).Error
		if err == nil {
			return ErrDuplicateAssociation
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&models.Follow{FollowerID: followerID, FolloweeID: followeeID}).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateAssociation
			}
			return err
		}
		return nil
	})
}

// Unfollow removes the edge; absence is an error, not a no-op.
func (s *Store) Unfollow(followerID, followeeID uint) error {
	res := s.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFollowing reports whether follower currently follows followee.
func (s *Store) IsFollowing(followerID, followeeID uint) (bool, error) {
	if followerID == 0 {
		return false, nil
	}
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// Favorite marks an article as favorited by username.
func (s *Store) Favorite(articleSlug, username string) error {
	return s.transact(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Where("slug = ?", articleSlug).First(&article).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.Favorite
		err := tx.Where("article_id = ? AND username = ?", article.ID, username).First(&existing).Error
		if err == nil {
			return ErrDuplicateAssociation
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&models.Favorite{ArticleID: article.ID, Username: username}).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateAssociation
			}
			return err
		}
		return nil
	})
}

// Unfavorite removes the favorite edge; un-favoriting a non-favorited
// article is an error.
func (s *Store) Unfavorite(articleSlug, username string) error {
	return s.transact(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Where("slug = ?", articleSlug).First(&article).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		res := tx.Where("article_id = ? AND username = ?", article.ID, username).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// IsFavorited reports whether username has favorited the article.
func (s *Store) IsFavorited(articleID uint, username string) (bool, error) {
	if username == "" {
		return false, nil
	}
	var count int64
	err := s.db.Model(&models.Favorite{}).
		Where("article_id = ? AND username = ?", articleID, username).
		Count(&count).Error
	return count > 0, err
}

// FavoritesCount returns the total favorites for an article, viewer independent.
func (s *Store) FavoritesCount(articleID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Favorite{}).Where("article_id = ?", articleID).Count(&count).Error
	return count, err
}

// TagsForArticle returns the article's tag names, sorted.
func (s *Store) TagsForArticle(articleSlug string) ([]string, error) {
	var names []string
	err := s.db.Model(&models.ArticleTag{}).
		Where("article_slug = ?", articleSlug).
		Pluck("tag_name", &names).Error
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// TagsInUse returns the distinct tag names currently attached to any article.
func (s *Store) TagsInUse() ([]string, error) {
	var names []string
	err := s.db.Model(&models.ArticleTag{}).
		Distinct("tag_name").
		Order("tag_name").
		Pluck("tag_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func requireArticle(tx *gorm.DB, slug string) error {
	var article models.Article
	if err := tx.Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
