package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/foodies/backend/internal/middleware"
	"github.com/pageza/foodies/backend/internal/service"
)

// UserHandler serves the follow endpoints
type UserHandler struct {
	follows service.IFollowService
}

func NewUserHandler(follows service.IFollowService) *UserHandler {
	return &UserHandler{follows: follows}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, auth, writes gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.POST("/:id/follow", auth, writes, h.Follow)
		users.DELETE("/:id/follow", auth, writes, h.Unfollow)
	}
}

// Follow handles POST /users/:id/follow
func (h *UserHandler) Follow(c *gin.Context) {
	target, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.ViewerID(c)

	if err := h.follows.Follow(c.Request.Context(), userID, target); err != nil {
		respondError(c, err)
		return
	}
	h.respondCounts(c, http.StatusCreated, "User followed", target)
}

// Unfollow handles DELETE /users/:id/follow
func (h *UserHandler) Unfollow(c *gin.Context) {
	target, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.ViewerID(c)

	if err := h.follows.Unfollow(c.Request.Context(), userID, target); err != nil {
		respondError(c, err)
		return
	}
	h.respondCounts(c, http.StatusOK, "User unfollowed", target)
}

func (h *UserHandler) respondCounts(c *gin.Context, status int, message string, userID uint) {
	counts, err := h.follows.Counts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, status, message, gin.H{"userId": userID, "followers": counts.Followers, "following": counts.Following})
}
