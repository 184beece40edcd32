package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conduit-dev/conduit/middleware"
	"github.com/conduit-dev/conduit/models"
	"github.com/conduit-dev/conduit/store"
	"github.com/conduit-dev/conduit/utils"
)

const tokenLifetime = 72 * time.Hour

// AuthController handles registration, login and the current-user endpoints.
type AuthController struct {
	store *store.Store
}

// NewAuthController creates an AuthController.
func NewAuthController(s *store.Store) *AuthController {
	return &AuthController{store: s}
}

// Register handles account registration with bcrypt hashing.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=2,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6,max=72"`
		Bio      string `json:"bio"`
		Image    string `json:"image"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40002, "username cannot be empty")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to hash password")
		return
	}

	user := models.User{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Bio:          utils.Sanitize(req.Bio),
		Image:        strings.TrimSpace(req.Image),
	}

	if err := a.store.CreateUser(&user); err != nil {
		storeError(ctx, err, 50002, "failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}

	utils.Created(ctx, gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

// Login verifies credentials and issues a fresh token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	user, err := a.store.GetUserByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		// Same answer for unknown email and wrong password.
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid email or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	jti, _ := ctx.Get(middleware.ContextTokenIDKey)
	expVal, _ := ctx.Get(middleware.ContextTokenExpKey)

	id, _ := jti.(string)
	exp, ok := expVal.(time.Time)
	if id != "" && ok {
		utils.BlacklistToken(id, exp)
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// CurrentUser returns the authenticated account.
func (a *AuthController) CurrentUser(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}

	user, err := a.store.GetUserByID(userID)
	if err != nil {
		storeError(ctx, err, 50005, "failed to load user")
		return
	}

	utils.Success(ctx, gin.H{"user": userResponse(user)})
}

// UpdateUser applies a partial update to the authenticated account.
func (a *AuthController) UpdateUser(ctx *gin.Context) {
	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}

	user, err := a.store.GetUserByID(userID)
	if err != nil {
		storeError(ctx, err, 50006, "failed to load user")
		return
	}

	oldUsername := user.Username

	if req.Username != nil {
		name := strings.ToLower(strings.TrimSpace(*req.Username))
		if name == "" {
			utils.Error(ctx, http.StatusBadRequest, 40005, "username cannot be empty")
			return
		}
		user.Username = name
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			utils.Error(ctx, http.StatusBadRequest, 40006, "password too short")
			return
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50007, "failed to hash password")
			return
		}
		user.PasswordHash = hash
	}
	if req.Bio != nil {
		user.Bio = utils.Sanitize(*req.Bio)
	}
	if req.Image != nil {
		user.Image = strings.TrimSpace(*req.Image)
	}

	if err := a.store.UpdateUser(&user); err != nil {
		storeError(ctx, err, 50008, "failed to update user")
		return
	}

	utils.InvalidateByPrefix("cache:profile:" + oldUsername)
	utils.InvalidateByPrefix("cache:profile:" + user.Username)

	// A renamed user keeps favorites working: favorites key on username.
	if oldUsername != user.Username {
		if err := a.store.DB().Model(&models.Favorite{}).
			Where("username = ?", oldUsername).
			Update("username", user.Username).Error; err != nil && utils.Sugar != nil {
			utils.Sugar.Warnf("failed to rekey favorites for %s: %v", oldUsername, err)
		}
	}

	utils.Success(ctx, gin.H{"user": userResponse(user)})
}

// DeleteUser removes the authenticated account and cascades to everything it owns.
func (a *AuthController) DeleteUser(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40113, "unauthorized")
		return
	}

	user, err := a.store.GetUserByID(userID)
	if err != nil {
		storeError(ctx, err, 50009, "failed to load user")
		return
	}

	if err := a.store.DeleteUser(userID); err != nil {
		storeError(ctx, err, 50010, "failed to delete user")
		return
	}

	utils.InvalidateByPrefix("cache:profile:" + user.Username)
	utils.InvalidateByPrefix("cache:articles:")
	utils.InvalidateByPrefix("cache:article:")
	utils.InvalidateByPrefix("cache:tags")

	utils.Success(ctx, gin.H{"message": "user deleted"})
}

// userResponse is the private account projection returned to its owner.
func userResponse(user models.User) gin.H {
	return gin.H{
		"username": user.Username,
		"email":    user.Email,
		"bio":      user.Bio,
		"image":    user.Image,
	}
}
