package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/conduit-dev/conduit/middleware"
	"github.com/conduit-dev/conduit/store"
	"github.com/conduit-dev/conduit/utils"
)

// storeError maps a typed store failure onto the response envelope. The
// fallback code and message cover unexpected storage errors.
func storeError(ctx *gin.Context, err error, fallbackCode int, fallbackMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40400, "resource not found")
	case errors.Is(err, store.ErrAlreadyExists):
		utils.Error(ctx, http.StatusConflict, 40900, "resource already exists")
	case errors.Is(err, store.ErrDuplicateAssociation):
		utils.Error(ctx, http.StatusBadRequest, 40010, "association already exists")
	case errors.Is(err, store.ErrSelfFollow):
		utils.Error(ctx, http.StatusBadRequest, 40011, "cannot follow yourself")
	case errors.Is(err, store.ErrPermissionDenied):
		utils.Error(ctx, http.StatusForbidden, 40300, "operation not permitted")
	default:
		utils.Error(ctx, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// viewerFrom derives the store viewer for the request; the zero Viewer is anonymous.
func viewerFrom(ctx *gin.Context) store.Viewer {
	viewer := store.Viewer{}
	if id, ok := getUserID(ctx); ok {
		viewer.ID = id
	}
	if v, ok := ctx.Get(middleware.ContextUsernameKey); ok {
		if name, ok := v.(string); ok {
			viewer.Username = name
		}
	}
	return viewer
}

func parsePagination(offsetStr, limitStr string) (int, int) {
	offset := 0
	limit := 20
	if o, err := strconv.Atoi(offsetStr); err == nil && o > 0 {
		offset = o
	}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return offset, limit
}
