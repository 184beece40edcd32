package store

import (
	"time"

	"github.com/conduit-dev/conduit/models"
)

// Viewer identifies who is looking. The zero value is the anonymous viewer:
// every follow/favorite flag assembles to false, never null.
type Viewer struct {
	ID       uint
	Username string
}

// Anonymous is the unauthenticated viewer.
var Anonymous = Viewer{}

// ProfileView is the public projection of a user from a viewer's perspective.
type ProfileView struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// ArticleView is the denormalized article projection: author profile,
// follow/favorite flags and tag names resolved for the given viewer.
type ArticleView struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tag_list"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int64       `json:"favorites_count"`
	Author         ProfileView `json:"author"`
}

// CommentView is the response projection of a comment.
type CommentView struct {
	ID        uint        `json:"id"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Author    ProfileView `json:"author"`
}

// AssembleProfile builds the profile of user as seen by viewer.
func (s *Store) AssembleProfile(user models.User, viewer Viewer) (ProfileView, error) {
	following := false
	if viewer.ID != 0 {
		var err error
		following, err = s.IsFollowing(viewer.ID, user.ID)
		if err != nil {
			return ProfileView{}, err
		}
	}
	return ProfileView{
		Username:  user.Username,
		Email:     user.Email,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}, nil
}

// AssembleArticle builds the full article projection for viewer. The author
// must be preloaded on the article. Associations are re-queried per call;
// there is no caching at this layer.
func (s *Store) AssembleArticle(article models.Article, viewer Viewer) (ArticleView, error) {
	tags, err := s.TagsForArticle(article.Slug)
	if err != nil {
		return ArticleView{}, err
	}
	favorited, err := s.IsFavorited(article.ID, viewer.Username)
	if err != nil {
		return ArticleView{}, err
	}
	count, err := s.FavoritesCount(article.ID)
	if err != nil {
		return ArticleView{}, err
	}
	author, err := s.AssembleProfile(article.Author, viewer)
	if err != nil {
		return ArticleView{}, err
	}
	if tags == nil {
		tags = []string{}
	}
	return ArticleView{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        tags,
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: count,
		Author:         author,
	}, nil
}

// AssembleArticles maps AssembleArticle over a page of articles. The count
// is the size of the assembled page.
func (s *Store) AssembleArticles(articles []models.Article, viewer Viewer) ([]ArticleView, int, error) {
	views := make([]ArticleView, 0, len(articles))
	for _, article := range articles {
		view, err := s.AssembleArticle(article, viewer)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, len(views), nil
}

// AssembleComment builds the comment projection for viewer. The author must
// be preloaded.
func (s *Store) AssembleComment(comment models.Comment, viewer Viewer) (CommentView, error) {
	author, err := s.AssembleProfile(comment.Author, viewer)
	if err != nil {
		return CommentView{}, err
	}
	return CommentView{
		ID:        comment.ID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Author:    author,
	}, nil
}
