package store

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/conduit-dev/conduit/models"
)

// newTestStore creates a store over an in-memory SQLite database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Tag{},
		&models.ArticleTag{},
		&models.Comment{},
		&models.ArticleComment{},
		&models.Follow{},
		&models.Favorite{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return New(db)
}

func seedUser(t *testing.T, s *Store, username string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "not-a-real-hash",
	}
	if err := s.CreateUser(&user); err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

func seedArticle(t *testing.T, s *Store, author models.User, title string, tags ...string) models.Article {
	t.Helper()
	article := models.Article{
		AuthorID:    author.ID,
		Title:       title,
		Description: "about " + title,
		Body:        "body of " + title,
	}
	if err := s.CreateArticle(&article, tags); err != nil {
		t.Fatalf("failed to seed article %q: %v", title, err)
	}
	full, err := s.GetArticleBySlug(article.Slug)
	if err != nil {
		t.Fatalf("failed to reload article %q: %v", title, err)
	}
	return full
}
