package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sparkmatch/sparkmatch/internal/auth"
	"github.com/sparkmatch/sparkmatch/internal/config"
	svcErr "github.com/sparkmatch/sparkmatch/internal/errors"
)

// Context keys set by the auth middleware.
const (
	ctxUserID   = "actorUserID"
	ctxUsername = "actorUsername"
)

// JWTAuth validates the Bearer token and stores the caller's identity in
// the gin context. Handlers must derive the actor from here, never from
// the request body.
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "no authorization token provided")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthenticated(c, "authorization header must be: Bearer <token>")
			return
		}

		claims, err := auth.ValidateToken(parts[1], cfg.Auth.JWTSecret)
		if err != nil {
			abortUnauthenticated(c, "token validation failed")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// ActorID returns the authenticated caller's user id, or ok=false when
// the request carries no identity.
func ActorID(c *gin.Context) (string, bool) {
	id := c.GetString(ctxUserID)
	return id, id != ""
}

func abortUnauthenticated(c *gin.Context, msg string) {
	status, body := svcErr.Map(svcErr.Unauthenticated(msg))
	c.AbortWithStatusJSON(status, body)
}

// handler helper shared by services: map a domain error onto the response.
func AbortWithError(c *gin.Context, err error) {
	status, body := svcErr.Map(err)
	c.AbortWithStatusJSON(status, body)
}
