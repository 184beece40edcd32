package store

import (
	"errors"
	"testing"

	"github.com/conduit-dev/conduit/models"
)

func TestCreateUserDuplicate(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "jake")

	tests := []struct {
		name string
		user models.User
	}{
		{
			name: "same username",
			user: models.User{Username: "jake", Email: "other@example.com"},
		},
		{
			name: "same email",
			user: models.User{Username: "other", Email: "jake@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateUser(&tt.user)
			if !errors.Is(err, ErrAlreadyExists) {
				t.Fatalf("expected ErrAlreadyExists, got %v", err)
			}
		})
	}
}

func TestUpdateUserIdentityClash(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")

	bob.Username = "jake"
	if err := s.UpdateUser(&bob); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")

	article := seedArticle(t, s, jake, "Dragon care", "dragons")
	if _, err := s.AddComment(article.Slug, bob.ID, "nice"); err != nil {
		t.Fatalf("failed to comment: %v", err)
	}
	if err := s.Follow(bob.ID, jake.ID); err != nil {
		t.Fatalf("failed to follow: %v", err)
	}
	if err := s.Favorite(article.Slug, bob.Username); err != nil {
		t.Fatalf("failed to favorite: %v", err)
	}

	if err := s.DeleteUser(jake.ID); err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	if _, err := s.GetUserByUsername("jake"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
	if _, err := s.GetArticleBySlug(article.Slug); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected article gone, got %v", err)
	}

	var count int64
	for _, q := range []struct {
		name  string
		model interface{}
	}{
		{"article tags", &models.ArticleTag{}},
		{"favorites", &models.Favorite{}},
		{"comments", &models.Comment{}},
		{"comment links", &models.ArticleComment{}},
		{"follows", &models.Follow{}},
	} {
		if err := s.DB().Model(q.model).Count(&count).Error; err != nil {
			t.Fatalf("failed to count %s: %v", q.name, err)
		}
		if count != 0 {
			t.Errorf("expected no %s after delete, found %d", q.name, count)
		}
	}
}

func TestDeleteUserKeepsOtherAuthors(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")

	seedArticle(t, s, jake, "Dragon care")
	kept := seedArticle(t, s, bob, "Cat care")

	if err := s.DeleteUser(jake.ID); err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	if _, err := s.GetArticleBySlug(kept.Slug); err != nil {
		t.Fatalf("expected bob's article to survive, got %v", err)
	}
}
