package server

import "github.com/gin-gonic/gin"

// Registrar is a common interface for all HTTP service registrars.
// public receives unauthenticated routes, protected sits behind the JWT
// middleware.
type Registrar interface {
	Register(public, protected *gin.RouterGroup)
}
