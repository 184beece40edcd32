package store

import (
	"errors"
	"testing"
)

func TestFollowRules(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")

	if err := s.Follow(bob.ID, jake.ID); err != nil {
		t.Fatalf("first follow failed: %v", err)
	}
	if err := s.Follow(bob.ID, jake.ID); !errors.Is(err, ErrDuplicateAssociation) {
		t.Fatalf("expected ErrDuplicateAssociation, got %v", err)
	}
	if err := s.Follow(bob.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing followee, got %v", err)
	}

	following, err := s.IsFollowing(bob.ID, jake.ID)
	if err != nil || !following {
		t.Fatalf("expected bob to follow jake, got %v %v", following, err)
	}

	if err := s.Unfollow(bob.ID, jake.ID); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	if err := s.Unfollow(bob.ID, jake.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent follow, got %v", err)
	}
}

func TestSelfFollowPolicy(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")

	if err := s.Follow(jake.ID, jake.ID); !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow under default policy, got %v", err)
	}

	s.AllowSelfFollow = true
	if err := s.Follow(jake.ID, jake.ID); err != nil {
		t.Fatalf("expected self-follow allowed under policy, got %v", err)
	}
}

func TestFavoriteRules(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")
	article := seedArticle(t, s, jake, "Popular")

	count, err := s.FavoritesCount(article.ID)
	if err != nil || count != 0 {
		t.Fatalf("expected zero favorites, got %d %v", count, err)
	}

	if err := s.Favorite(article.Slug, bob.Username); err != nil {
		t.Fatalf("favorite failed: %v", err)
	}
	count, _ = s.FavoritesCount(article.ID)
	if count != 1 {
		t.Fatalf("expected count 1 after favorite, got %d", count)
	}

	// Double favorite rejected, count unchanged.
	if err := s.Favorite(article.Slug, bob.Username); !errors.Is(err, ErrDuplicateAssociation) {
		t.Fatalf("expected ErrDuplicateAssociation, got %v", err)
	}
	count, _ = s.FavoritesCount(article.ID)
	if count != 1 {
		t.Fatalf("expected count still 1, got %d", count)
	}

	if err := s.Unfavorite(article.Slug, bob.Username); err != nil {
		t.Fatalf("unfavorite failed: %v", err)
	}
	count, _ = s.FavoritesCount(article.ID)
	if count != 0 {
		t.Fatalf("expected count 0 after unfavorite, got %d", count)
	}

	if err := s.Unfavorite(article.Slug, bob.Username); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent favorite, got %v", err)
	}
	if err := s.Favorite("missing-slug", bob.Username); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing article, got %v", err)
	}
}

func TestLinkTagRules(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	article := seedArticle(t, s, jake, "Tagged", "one")

	if err := s.LinkTag(article.Slug, "two"); err != nil {
		t.Fatalf("link failed: %v", err)
	}
	if err := s.LinkTag(article.Slug, "two"); !errors.Is(err, ErrDuplicateAssociation) {
		t.Fatalf("expected ErrDuplicateAssociation, got %v", err)
	}
	if err := s.LinkTag("missing-slug", "two"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.UnlinkAllTags(article.Slug); err != nil {
		t.Fatalf("unlink failed: %v", err)
	}
	tags, err := s.TagsForArticle(article.Slug)
	if err != nil {
		t.Fatalf("tags query failed: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %v", tags)
	}
}

func TestTagsInUse(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")

	seedArticle(t, s, jake, "A", "shared", "alpha")
	seedArticle(t, s, jake, "B", "shared", "beta")

	tags, err := s.TagsInUse()
	if err != nil {
		t.Fatalf("TagsInUse failed: %v", err)
	}
	want := []string{"alpha", "beta", "shared"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, tags)
		}
	}
}

func TestCommentLifecycle(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")
	article := seedArticle(t, s, jake, "Discussed")

	comment, err := s.AddComment(article.Slug, bob.ID, "first!")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if comment.Author.Username != "bob" {
		t.Fatalf("expected author preloaded, got %+v", comment.Author)
	}

	if _, err := s.AddComment("missing-slug", bob.ID, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	comments, err := s.ListComments(article.Slug)
	if err != nil || len(comments) != 1 {
		t.Fatalf("expected one comment, got %d %v", len(comments), err)
	}

	if err := s.DeleteComment(article.Slug, comment.ID, jake.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for non-author, got %v", err)
	}
	if err := s.DeleteComment(article.Slug, comment.ID, bob.ID); err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}
	if err := s.DeleteComment(article.Slug, comment.ID, bob.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted comment, got %v", err)
	}
}
