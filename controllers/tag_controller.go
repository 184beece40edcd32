package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conduit-dev/conduit/store"
	"github.com/conduit-dev/conduit/utils"
)

// TagController serves the public tag listing.
type TagController struct {
	store *store.Store
}

// NewTagController creates a TagController.
func NewTagController(s *store.Store) *TagController {
	return &TagController{store: s}
}

// ListTags returns the distinct tag names currently attached to articles.
// Viewer independent, so the whole response is cacheable.
func (t *TagController) ListTags(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes("cache:tags"); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	tags, err := t.store.TagsInUse()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to list tags")
		return
	}
	if tags == nil {
		tags = []string{}
	}

	payload := gin.H{"tags": tags}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON("cache:tags", wrapper, time.Hour)
	utils.Success(ctx, payload)
}
