package discover

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkmatch/sparkmatch/internal/app"
	svcErr "github.com/sparkmatch/sparkmatch/internal/errors"
	"github.com/sparkmatch/sparkmatch/internal/server"
)

// Registrar ties the discover service into the HTTP server.
type Registrar struct {
	svc *Service
}

// NewRegistrar creates a new Registrar for the discover service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{svc: NewService(appCtx)}
}

// Register attaches the discover routes. All of them require auth.
func (r *Registrar) Register(public, protected *gin.RouterGroup) {
	protected.GET("/discover", r.candidates)
	protected.POST("/discover/like", r.like)
	protected.GET("/matches", r.matches)
	protected.GET("/liked-you", r.likedYou)
	protected.GET("/liked-you/count", r.likedYouCount)
}

type likeRequest struct {
	TargetID string `json:"target_id" binding:"required"`
}

func (r *Registrar) like(c *gin.Context) {
	actorID, ok := server.ActorID(c)
	if !ok {
		server.AbortWithError(c, svcErr.Unauthenticated("no authenticated user"))
		return
	}

	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.AbortWithError(c, svcErr.InvalidArgument("target_id is required"))
		return
	}

	result, err := r.svc.Like(c.Request.Context(), actorID, req.TargetID)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (r *Registrar) candidates(c *gin.Context) {
	actorID, _ := server.ActorID(c)
	users, err := r.svc.Candidates(c.Request.Context(), actorID)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": users})
}

func (r *Registrar) matches(c *gin.Context) {
	actorID, _ := server.ActorID(c)
	users, err := r.svc.ActiveMatches(c.Request.Context(), actorID)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": users})
}

func (r *Registrar) likedYou(c *gin.Context) {
	actorID, _ := server.ActorID(c)

	var token *string
	if t := c.Query("pagination_token"); t != "" {
		token = &t
	}

	page, err := r.svc.LikedYou(c.Request.Context(), actorID, token)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (r *Registrar) likedYouCount(c *gin.Context) {
	actorID, _ := server.ActorID(c)
	count, err := r.svc.LikedYouCount(c.Request.Context(), actorID)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
