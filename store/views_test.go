package store

import "testing"

func TestAssembleProfile(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")

	t.Run("anonymous viewer never follows", func(t *testing.T) {
		profile, err := s.AssembleProfile(jake, Anonymous)
		if err != nil {
			t.Fatalf("AssembleProfile failed: %v", err)
		}
		if profile.Following {
			t.Fatal("expected following false for anonymous viewer")
		}
		if profile.Username != "jake" || profile.Email != "jake@example.com" {
			t.Fatalf("unexpected profile %+v", profile)
		}
	})

	t.Run("follower sees following true", func(t *testing.T) {
		if err := s.Follow(bob.ID, jake.ID); err != nil {
			t.Fatalf("follow failed: %v", err)
		}
		profile, err := s.AssembleProfile(jake, Viewer{ID: bob.ID, Username: bob.Username})
		if err != nil {
			t.Fatalf("AssembleProfile failed: %v", err)
		}
		if !profile.Following {
			t.Fatal("expected following true for follower")
		}
	})

	t.Run("reverse direction does not count", func(t *testing.T) {
		profile, err := s.AssembleProfile(bob, Viewer{ID: jake.ID, Username: jake.Username})
		if err != nil {
			t.Fatalf("AssembleProfile failed: %v", err)
		}
		if profile.Following {
			t.Fatal("expected following false: jake does not follow bob")
		}
	})
}

func TestAssembleArticle(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")
	bob := seedUser(t, s, "bob")

	article := seedArticle(t, s, jake, "How to train your dragon", "training", "dragons")

	view, err := s.AssembleArticle(article, Anonymous)
	if err != nil {
		t.Fatalf("AssembleArticle failed: %v", err)
	}
	if view.Slug != "how-to-train-your-dragon" {
		t.Fatalf("unexpected slug %q", view.Slug)
	}
	if len(view.TagList) != 2 || view.TagList[0] != "dragons" || view.TagList[1] != "training" {
		t.Fatalf("expected sorted tag list, got %v", view.TagList)
	}
	if view.Favorited || view.FavoritesCount != 0 {
		t.Fatalf("expected unfavorited fresh article, got %+v", view)
	}
	if view.Author.Username != "jake" || view.Author.Following {
		t.Fatalf("unexpected author projection %+v", view.Author)
	}

	if err := s.Favorite(article.Slug, bob.Username); err != nil {
		t.Fatalf("favorite failed: %v", err)
	}
	if err := s.Follow(bob.ID, jake.ID); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	bobView, err := s.AssembleArticle(article, Viewer{ID: bob.ID, Username: bob.Username})
	if err != nil {
		t.Fatalf("AssembleArticle failed: %v", err)
	}
	if !bobView.Favorited || bobView.FavoritesCount != 1 {
		t.Fatalf("expected favorited view with count 1, got %+v", bobView)
	}
	if !bobView.Author.Following {
		t.Fatal("expected author.following true for bob")
	}

	// The count is viewer independent; the flag is not.
	anonView, err := s.AssembleArticle(article, Anonymous)
	if err != nil {
		t.Fatalf("AssembleArticle failed: %v", err)
	}
	if anonView.Favorited || anonView.FavoritesCount != 1 {
		t.Fatalf("expected anonymous count 1, favorited false, got %+v", anonView)
	}
}

func TestAssembleArticles(t *testing.T) {
	s := newTestStore(t)
	jake := seedUser(t, s, "jake")

	seedArticle(t, s, jake, "One")
	seedArticle(t, s, jake, "Two")

	articles, err := s.ListArticles(ArticleFilter{})
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}

	views, count, err := s.AssembleArticles(articles, Anonymous)
	if err != nil {
		t.Fatalf("AssembleArticles failed: %v", err)
	}
	if count != 2 || len(views) != 2 {
		t.Fatalf("expected count 2, got %d (%d views)", count, len(views))
	}
	for _, v := range views {
		if v.TagList == nil {
			t.Fatalf("expected non-nil tag list on %q", v.Slug)
		}
	}
}
