package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/conduit-dev/conduit/models"
)

// CreateUser registers a new account. Username and email must be unused.
func (s *Store) CreateUser(user *models.User) error {
	return s.transact(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ? OR email = ?", user.Username, user.Email).First(&existing).Error
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyExists
			}
			return err
		}
		return nil
	})
}

// GetUserByID fetches a user by primary key.
func (s *Store) GetUserByID(id uint) (models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByUsername fetches a user by unique username.
func (s *Store) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail fetches a user by unique email.
func (s *Store) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser persists profile changes. A username or email moving onto
// another account's identity is rejected.
func (s *Store) UpdateUser(user *models.User) error {
	return s.transact(func(tx *gorm.DB) error {
		var clash models.User
		err := tx.Where("(username = ? OR email = ?) AND id <> ?", user.Username, user.Email, user.ID).
			First(&clash).Error
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Save(user).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyExists
			}
			return err
		}
		return nil
	})
}

// ListUsers returns users ordered by registration time.
func (s *Store) ListUsers(offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// DeleteUser removes the account and everything it owns: authored articles
// with all their associations, authored comments with their links, follow
// edges in both directions and the user's favorites. One transaction.
func (s *Store) DeleteUser(id uint) error {
	return s.transact(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var articles []models.Article
		if err := tx.Where("author_id = ?", id).Find(&articles).Error; err != nil {
			return err
		}
		for _, article := range articles {
			if err := deleteArticleCascade(tx, article); err != nil {
				return err
			}
		}

		// Authored comments on other users' articles, plus their link rows.
		var comments []models.Comment
		if err := tx.Where("author_id = ?", id).Find(&comments).Error; err != nil {
			return err
		}
		for _, c := range comments {
			if err := tx.Where("comment_id = ?", c.ID).Delete(&models.ArticleComment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("follower_id = ? OR followee_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("username = ?", user.Username).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}
