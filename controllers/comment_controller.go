package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conduit-dev/conduit/store"
	"github.com/conduit-dev/conduit/utils"
)

// CommentController manages comments on articles.
type CommentController struct {
	store *store.Store
}

// NewCommentController creates a CommentController.
func NewCommentController(s *store.Store) *CommentController {
	return &CommentController{store: s}
}

// CreateComment adds a comment to an article.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	var req struct {
		Body string `json:"body" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	body := strings.TrimSpace(utils.Sanitize(req.Body))
	if body == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "comment body cannot be empty")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40140, "unauthorized")
		return
	}

	slug := ctx.Param("slug")
	comment, err := c.store.AddComment(slug, userID, body)
	if err != nil {
		storeError(ctx, err, 50050, "failed to create comment")
		return
	}

	view, err := c.store.AssembleComment(comment, viewerFrom(ctx))
	if err != nil {
		storeError(ctx, err, 50051, "failed to assemble comment")
		return
	}

	utils.Created(ctx, gin.H{"comment": view})
}

// ListComments returns an article's comments for the current viewer.
func (c *CommentController) ListComments(ctx *gin.Context) {
	slug := ctx.Param("slug")
	comments, err := c.store.ListComments(slug)
	if err != nil {
		storeError(ctx, err, 50052, "failed to list comments")
		return
	}

	viewer := viewerFrom(ctx)
	views := make([]store.CommentView, 0, len(comments))
	for _, comment := range comments {
		view, err := c.store.AssembleComment(comment, viewer)
		if err != nil {
			storeError(ctx, err, 50053, "failed to assemble comment")
			return
		}
		views = append(views, view)
	}

	utils.Success(ctx, gin.H{"comments": views})
}

// DeleteComment removes the viewer's own comment from an article.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40141, "unauthorized")
		return
	}

	idStr := ctx.Param("id")
	commentID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid comment id")
		return
	}

	slug := ctx.Param("slug")
	if err := c.store.DeleteComment(slug, uint(commentID), userID); err != nil {
		storeError(ctx, err, 50054, "failed to delete comment")
		return
	}

	utils.Success(ctx, gin.H{"message": "comment deleted"})
}
