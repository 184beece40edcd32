package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conduit-dev/conduit/models"
	"github.com/conduit-dev/conduit/store"
	"github.com/conduit-dev/conduit/utils"
)

// ArticleController manages article CRUD, listing, feed and favorites.
type ArticleController struct {
	store *store.Store
}

// NewArticleController creates an ArticleController.
func NewArticleController(s *store.Store) *ArticleController {
	return &ArticleController{store: s}
}

// CreateArticle publishes a new article with its tags in one unit.
func (a *ArticleController) CreateArticle(ctx *gin.Context) {
	var req struct {
		Title       string   `json:"title" binding:"required,min=1"`
		Description string   `json:"description"`
		Body        string   `json:"body" binding:"required"`
		TagList     []string `json:"tag_list"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	title := strings.TrimSpace(utils.Sanitize(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "title cannot be empty")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}

	article := models.Article{
		AuthorID:    userID,
		Title:       title,
		Description: utils.Sanitize(req.Description),
		Body:        utils.Sanitize(req.Body),
	}

	if err := a.store.CreateArticle(&article, normalizeTags(req.TagList)); err != nil {
		storeError(ctx, err, 50030, "failed to create article")
		return
	}

	created, err := a.store.GetArticleBySlug(article.Slug)
	if err != nil {
		storeError(ctx, err, 50031, "failed to load article")
		return
	}
	view, err := a.store.AssembleArticle(created, viewerFrom(ctx))
	if err != nil {
		storeError(ctx, err, 50032, "failed to assemble article")
		return
	}

	utils.InvalidateByPrefix("cache:articles:")
	utils.InvalidateByPrefix("cache:tags")

	utils.Created(ctx, gin.H{"article": view})
}

// ListArticles returns a filtered page of articles, anonymous pages cached.
func (a *ArticleController) ListArticles(ctx *gin.Context) {
	offset, limit := parsePagination(ctx.Query("offset"), ctx.Query("limit"))
	filter := store.ArticleFilter{
		Tag:         strings.TrimSpace(ctx.Query("tag")),
		Author:      strings.TrimSpace(ctx.Query("author")),
		FavoritedBy: strings.TrimSpace(ctx.Query("favorited")),
		Offset:      offset,
		Limit:       limit,
	}

	viewer := viewerFrom(ctx)
	cacheKey := fmt.Sprintf("cache:articles:list:tag=%s:author=%s:fav=%s:offset=%d:limit=%d",
		filter.Tag, filter.Author, filter.FavoritedBy, offset, limit)
	if viewer.ID == 0 {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	articles, err := a.store.ListArticles(filter)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to list articles")
		return
	}

	views, count, err := a.store.AssembleArticles(articles, viewer)
	if err != nil {
		storeError(ctx, err, 50034, "failed to assemble articles")
		return
	}

	payload := gin.H{
		"articles":       views,
		"articles_count": count,
	}
	if viewer.ID == 0 {
		wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
		utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	}
	utils.Success(ctx, payload)
}

// Feed returns articles authored by users the viewer follows.
func (a *ArticleController) Feed(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40131, "unauthorized")
		return
	}
	offset, limit := parsePagination(ctx.Query("offset"), ctx.Query("limit"))

	articles, err := a.store.FeedArticles(userID, offset, limit)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to load feed")
		return
	}

	views, count, err := a.store.AssembleArticles(articles, viewerFrom(ctx))
	if err != nil {
		storeError(ctx, err, 50036, "failed to assemble feed")
		return
	}

	utils.Success(ctx, gin.H{
		"articles":       views,
		"articles_count": count,
	})
}

// GetArticle returns a single article view for the current viewer.
func (a *ArticleController) GetArticle(ctx *gin.Context) {
	slug := ctx.Param("slug")
	viewer := viewerFrom(ctx)

	cacheKey := "cache:article:anon:" + slug
	if viewer.ID == 0 {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	article, err := a.store.GetArticleBySlug(slug)
	if err != nil {
		storeError(ctx, err, 50037, "failed to load article")
		return
	}

	view, err := a.store.AssembleArticle(article, viewer)
	if err != nil {
		storeError(ctx, err, 50038, "failed to assemble article")
		return
	}

	payload := gin.H{"article": view}
	if viewer.ID == 0 {
		wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
		utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	}
	utils.Success(ctx, payload)
}

// UpdateArticle applies a partial update to the viewer's own article. A
// provided tag list replaces all existing tags.
func (a *ArticleController) UpdateArticle(ctx *gin.Context) {
	var req struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Body        *string   `json:"body"`
		TagList     *[]string `json:"tag_list"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40132, "unauthorized")
		return
	}

	slug := ctx.Param("slug")
	changes := store.ArticleChanges{}
	if req.Title != nil {
		title := strings.TrimSpace(utils.Sanitize(*req.Title))
		if title == "" {
			utils.Error(ctx, http.StatusBadRequest, 40033, "title cannot be empty")
			return
		}
		changes.Title = &title
	}
	if req.Description != nil {
		desc := utils.Sanitize(*req.Description)
		changes.Description = &desc
	}
	if req.Body != nil {
		body := utils.Sanitize(*req.Body)
		changes.Body = &body
	}
	if req.TagList != nil {
		tags := normalizeTags(*req.TagList)
		changes.TagList = &tags
	}

	updated, err := a.store.UpdateArticle(slug, userID, changes)
	if err != nil {
		storeError(ctx, err, 50039, "failed to update article")
		return
	}

	view, err := a.store.AssembleArticle(updated, viewerFrom(ctx))
	if err != nil {
		storeError(ctx, err, 50040, "failed to assemble article")
		return
	}

	utils.InvalidateByPrefix("cache:articles:")
	utils.InvalidateByPrefix("cache:article:anon:" + slug)
	utils.InvalidateByPrefix("cache:article:anon:" + updated.Slug)
	utils.InvalidateByPrefix("cache:tags")

	utils.Success(ctx, gin.H{"article": view})
}

// DeleteArticle removes the viewer's own article with all its associations.
func (a *ArticleController) DeleteArticle(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40133, "unauthorized")
		return
	}

	slug := ctx.Param("slug")
	if err := a.store.DeleteArticle(slug, userID); err != nil {
		storeError(ctx, err, 50041, "failed to delete article")
		return
	}

	utils.InvalidateByPrefix("cache:articles:")
	utils.InvalidateByPrefix("cache:article:anon:" + slug)
	utils.InvalidateByPrefix("cache:tags")

	utils.Success(ctx, gin.H{"message": "article deleted"})
}

// Favorite marks the article as favorited by the viewer and returns the
// refreshed article view.
func (a *ArticleController) Favorite(ctx *gin.Context) {
	a.setFavorite(ctx, true)
}

// Unfavorite removes the viewer's favorite and returns the refreshed view.
func (a *ArticleController) Unfavorite(ctx *gin.Context) {
	a.setFavorite(ctx, false)
}

func (a *ArticleController) setFavorite(ctx *gin.Context, favorite bool) {
	viewer := viewerFrom(ctx)
	if viewer.ID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40134, "unauthorized")
		return
	}

	slug := ctx.Param("slug")
	var err error
	if favorite {
		err = a.store.Favorite(slug, viewer.Username)
	} else {
		err = a.store.Unfavorite(slug, viewer.Username)
	}
	if err != nil {
		storeError(ctx, err, 50042, "failed to update favorite state")
		return
	}

	article, err := a.store.GetArticleBySlug(slug)
	if err != nil {
		storeError(ctx, err, 50043, "failed to load article")
		return
	}
	view, err := a.store.AssembleArticle(article, viewer)
	if err != nil {
		storeError(ctx, err, 50044, "failed to assemble article")
		return
	}

	// favorites_count changed; anonymous caches are stale now
	utils.InvalidateByPrefix("cache:article:anon:" + slug)
	utils.InvalidateByPrefix("cache:articles:")

	if favorite {
		utils.Created(ctx, gin.H{"article": view})
		return
	}
	utils.Success(ctx, gin.H{"article": view})
}

// normalizeTags trims, drops empties and deduplicates while keeping order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		name := strings.TrimSpace(t)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
