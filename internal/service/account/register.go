package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkmatch/sparkmatch/internal/app"
	svcErr "github.com/sparkmatch/sparkmatch/internal/errors"
	"github.com/sparkmatch/sparkmatch/internal/server"
)

// Registrar ties the account service into the HTTP server.
type Registrar struct {
	svc *Service
}

// NewRegistrar creates a new Registrar for the account service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{svc: NewService(appCtx)}
}

// Register attaches signup/login on the public group and the profile
// routes behind auth.
func (r *Registrar) Register(public, protected *gin.RouterGroup) {
	public.POST("/signup", r.signup)
	public.POST("/login", r.login)

	protected.GET("/me", r.me)
	protected.PUT("/me", r.updateMe)
	protected.GET("/users/:id", r.getUser)
}

func (r *Registrar) signup(c *gin.Context) {
	var in SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		server.AbortWithError(c, svcErr.InvalidArgument(err.Error()))
		return
	}

	result, err := r.svc.Signup(c.Request.Context(), in)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (r *Registrar) login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		server.AbortWithError(c, svcErr.InvalidArgument(err.Error()))
		return
	}

	result, err := r.svc.Login(c.Request.Context(), in)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (r *Registrar) me(c *gin.Context) {
	actorID, _ := server.ActorID(c)
	user, err := r.svc.CurrentProfile(c.Request.Context(), actorID)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (r *Registrar) updateMe(c *gin.Context) {
	actorID, _ := server.ActorID(c)

	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		server.AbortWithError(c, svcErr.InvalidArgument(err.Error()))
		return
	}

	user, err := r.svc.UpdateProfile(c.Request.Context(), actorID, in)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (r *Registrar) getUser(c *gin.Context) {
	user, err := r.svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
