package store

import (
	"errors"
	"testing"

	"github.com/conduit-dev/conduit/models"
)

func TestCreateArticleDerivesSlug(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")

	article := seedArticle(t, s, jake, "How to train your dragon", "dragons", "training")
	if article.Slug != "how-to-train-your-dragon" {
		t.Fatalf("unexpected slug %q", article.Slug)
	}

	tags, err := s.TagsForArticle(article.Slug)
	if err != nil {
		t.Fatalf("failed to load tags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "dragons" || tags[1] != "training" {
		t.Fatalf("unexpected tags %v", tags)
	}
}

func TestCreateArticleSlugCollision(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")

	seedArticle(t, s, jake, "How to Train Your Dragon")

	// Different title text, identical slugification.
	clash := models.Article{
		AuthorID: bob.ID,
		Title:    "how to train your DRAGON",
		Body:     "b",
	}
	if err := s.CreateArticle(&clash, nil); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateArticleRollsBackOnBadTag(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")

	article := models.Article{
		AuthorID: jake.ID,
		Title:    "Tag trouble",
		Body:     "b",
	}
	// Duplicate tag in the request fails the link step; the article insert
	// must roll back with it.
	err := s.CreateArticle(&article, []string{"dup", "dup"})
	if !errors.Is(err, ErrDuplicateAssociation) {
		t.Fatalf("expected ErrDuplicateAssociation, got %v", err)
	}
	if _, err := s.GetArticleBySlug("tag-trouble"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected article rolled back, got %v", err)
	}
}

func TestListArticlesFilters(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")

	dragons := seedArticle(t, s, jake, "Dragon care", "dragons")
	seedArticle(t, s, jake, "Cat care", "cats")
	seedArticle(t, s, bob, "Bob on dragons", "dragons")

	if err := s.Favorite(dragons.Slug, bob.Username); err != nil {
		t.Fatalf("failed to favorite: %v", err)
	}

	tests := []struct {
		name   string
		filter ArticleFilter
		want   int
	}{
		{"no filter", ArticleFilter{}, 3},
		{"by tag", ArticleFilter{Tag: "dragons"}, 2},
		{"by author", ArticleFilter{Author: "jake"}, 2},
		{"by favorited", ArticleFilter{FavoritedBy: "bob"}, 1},
		{"by tag and author", ArticleFilter{Tag: "dragons", Author: "jake"}, 1},
		{"limit", ArticleFilter{Limit: 2}, 2},
		{"offset past end", ArticleFilter{Offset: 5, Limit: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListArticles(tt.filter)
			if err != nil {
				t.Fatalf("ListArticles failed: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("expected %d articles, got %d", tt.want, len(got))
			}
		})
	}
}

func TestFeedArticles(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")
	carol := seedUser(t, s, "carol")

	seedArticle(t, s, jake, "From jake")
	seedArticle(t, s, bob, "From bob")

	if err := s.Follow(carol.ID, jake.ID); err != nil {
		t.Fatalf("failed to follow: %v", err)
	}

	feed, err := s.FeedArticles(carol.ID, 0, 20)
	if err != nil {
		t.Fatalf("FeedArticles failed: %v", err)
	}
	if len(feed) != 1 || feed[0].Author.Username != "jake" {
		t.Fatalf("unexpected feed %+v", feed)
	}
}

func TestUpdateArticle(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")

	article := seedArticle(t, s, jake, "First title", "old")
	if _, err := s.AddComment(article.Slug, bob.ID, "hello"); err != nil {
		t.Fatalf("failed to comment: %v", err)
	}

	t.Run("not owner", func(t *testing.T) {
		title := "Hijacked"
		_, err := s.UpdateArticle(article.Slug, bob.ID, ArticleChanges{Title: &title})
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})

	t.Run("retitle re-slugs and carries associations", func(t *testing.T) {
		title := "Second title"
		tags := []string{"new"}
		updated, err := s.UpdateArticle(article.Slug, jake.ID, ArticleChanges{Title: &title, TagList: &tags})
		if err != nil {
			t.Fatalf("UpdateArticle failed: %v", err)
		}
		if updated.Slug != "second-title" {
			t.Fatalf("unexpected slug %q", updated.Slug)
		}

		gotTags, err := s.TagsForArticle(updated.Slug)
		if err != nil {
			t.Fatalf("failed to load tags: %v", err)
		}
		if len(gotTags) != 1 || gotTags[0] != "new" {
			t.Fatalf("expected tag replacement, got %v", gotTags)
		}

		comments, err := s.ListComments(updated.Slug)
		if err != nil {
			t.Fatalf("failed to list comments: %v", err)
		}
		if len(comments) != 1 {
			t.Fatalf("expected comment link to follow the slug, got %d comments", len(comments))
		}
	})

	t.Run("retitle onto existing slug", func(t *testing.T) {
		seedArticle(t, s, jake, "Taken title")
		title := "Taken Title"
		_, err := s.UpdateArticle("second-title", jake.ID, ArticleChanges{Title: &title})
		if !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestDeleteArticleCascades(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")

	article := seedArticle(t, s, jake, "Doomed", "gone")
	if _, err := s.AddComment(article.Slug, bob.ID, "bye"); err != nil {
		t.Fatalf("failed to comment: %v", err)
	}
	if err := s.Favorite(article.Slug, bob.Username); err != nil {
		t.Fatalf("failed to favorite: %v", err)
	}

	t.Run("not owner", func(t *testing.T) {
		if err := s.DeleteArticle(article.Slug, bob.ID); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})

	if err := s.DeleteArticle(article.Slug, jake.ID); err != nil {
		t.Fatalf("DeleteArticle failed: %v", err)
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
	} {
		if err := s.DB().Model(q.model).Count(&count).Error; err != nil {
			t.Fatalf("failed to count %s: %v", q.name, err)
		}
		if count != 0 {
			t.Errorf("expected no %s after delete, found %d", q.name, count)
		}
	}
}
