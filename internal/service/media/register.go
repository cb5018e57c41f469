package media

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkmatch/sparkmatch/internal/app"
	svcErr "github.com/sparkmatch/sparkmatch/internal/errors"
	"github.com/sparkmatch/sparkmatch/internal/server"
	"github.com/sparkmatch/sparkmatch/internal/storage"
)

// Registrar ties the media service into the HTTP server.
type Registrar struct {
	svc *Service
}

// NewRegistrar creates a new Registrar for the media service.
func NewRegistrar(appCtx *app.AppContext, store storage.MediaStore) *Registrar {
	return &Registrar{svc: NewService(appCtx, store)}
}

// Register attaches the media routes. All of them require auth.
func (r *Registrar) Register(public, protected *gin.RouterGroup) {
	protected.POST("/media/photos", r.uploadPhoto)
	protected.POST("/media/avatar", r.uploadAvatar)
	protected.POST("/media/reels", r.uploadReel)
	protected.DELETE("/media/photos", r.deletePhoto)
	protected.GET("/reels", r.listReels)
}

func (r *Registrar) uploadPhoto(c *gin.Context) {
	actorID, _ := server.ActorID(c)

	up, closeFn, err := formUpload(c, "file")
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	defer closeFn()

	url, err := r.svc.UploadPhoto(c.Request.Context(), actorID, up)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (r *Registrar) uploadAvatar(c *gin.Context) {
	actorID, _ := server.ActorID(c)

	up, closeFn, err := formUpload(c, "file")
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	defer closeFn()

	url, err := r.svc.UploadAvatar(c.Request.Context(), actorID, up)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (r *Registrar) uploadReel(c *gin.Context) {
	actorID, _ := server.ActorID(c)

	video, closeVideo, err := formUpload(c, "video")
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	defer closeVideo()

	var thumb *Upload
	if t, closeThumb, err := formUpload(c, "thumbnail"); err == nil {
		defer closeThumb()
		thumb = &t
	}

	reel, err := r.svc.UploadReel(c.Request.Context(), actorID, video, thumb, c.PostForm("caption"))
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reel)
}

type deletePhotoRequest struct {
	URL string `json:"url" binding:"required"`
}

func (r *Registrar) deletePhoto(c *gin.Context) {
	actorID, _ := server.ActorID(c)

	var req deletePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.AbortWithError(c, svcErr.InvalidArgument("url is required"))
		return
	}

	if err := r.svc.DeletePhoto(c.Request.Context(), actorID, req.URL); err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (r *Registrar) listReels(c *gin.Context) {
	actorID, _ := server.ActorID(c)
	reels, err := r.svc.ListReels(c.Request.Context(), actorID)
	if err != nil {
		server.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reels": reels})
}

// formUpload pulls one file out of the multipart form.
func formUpload(c *gin.Context, field string) (Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		return Upload{}, nil, svcErr.InvalidArgument("missing '" + field + "' file")
	}

	file, err := header.Open()
	if err != nil {
		return Upload{}, nil, svcErr.InvalidArgument("failed to read '" + field + "' file")
	}

	return Upload{
		Reader:   file,
		Size:     header.Size,
		FileName: header.Filename,
		MimeType: headerMime(header),
	}, func() { file.Close() }, nil
}

func headerMime(h *multipart.FileHeader) string {
	return h.Header.Get("Content-Type")
}
