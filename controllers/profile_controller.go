package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conduit-dev/conduit/store"
	"github.com/conduit-dev/conduit/utils"
)

// ProfileController serves public profiles and the follow/unfollow endpoints.
type ProfileController struct {
	store *store.Store
}

// NewProfileController creates a ProfileController.
func NewProfileController(s *store.Store) *ProfileController {
	return &ProfileController{store: s}
}

// GetProfile returns a user's profile with the follow flag computed for the
// viewer. Anonymous responses are cached; authenticated ones depend on the
// viewer and are assembled fresh every time.
func (p *ProfileController) GetProfile(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.Param("username"))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40020, "missing username")
		return
	}

	viewer := viewerFrom(ctx)
	cacheKey := "cache:profile:" + username + ":anon"
	if viewer.ID == 0 {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	user, err := p.store.GetUserByUsername(username)
	if err != nil {
		storeError(ctx, err, 50020, "failed to load profile")
		return
	}

	profile, err := p.store.AssembleProfile(user, viewer)
	if err != nil {
		storeError(ctx, err, 50021, "failed to assemble profile")
		return
	}

	payload := gin.H{"profile": profile}
	if viewer.ID == 0 {
		wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
		utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	}
	utils.Success(ctx, payload)
}

// Follow creates a follow edge from the viewer to the named user.
func (p *ProfileController) Follow(ctx *gin.Context) {
	p.setFollow(ctx, true)
}

// Unfollow removes the follow edge from the viewer to the named user.
func (p *ProfileController) Unfollow(ctx *gin.Context) {
	p.setFollow(ctx, false)
}

func (p *ProfileController) setFollow(ctx *gin.Context, follow bool) {
	username := strings.TrimSpace(ctx.Param("username"))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "missing username")
		return
	}

	viewerID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	target, err := p.store.GetUserByUsername(username)
	if err != nil {
		storeError(ctx, err, 50022, "failed to load user")
		return
	}

	if follow {
		err = p.store.Follow(viewerID, target.ID)
	} else {
		err = p.store.Unfollow(viewerID, target.ID)
	}
	if err != nil {
		storeError(ctx, err, 50023, "failed to update follow state")
		return
	}

	profile, err := p.store.AssembleProfile(target, viewerFrom(ctx))
	if err != nil {
		storeError(ctx, err, 50024, "failed to assemble profile")
		return
	}

	if follow {
		utils.Created(ctx, gin.H{"profile": profile})
		return
	}
	utils.Success(ctx, gin.H{"profile": profile})
}
