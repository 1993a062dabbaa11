package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/internal/service"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/response"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type mediaService interface {
	Upload(ctx context.Context, sess session.Session, req service.UploadRequest) (models.UploadResult, error)
	Delete(ctx context.Context, path string) error
	Open(ctx context.Context, path string) (*service.MediaObject, error)
	OpenLink(ctx context.Context, token string) (*service.MediaObject, error)
	TemporaryLink(ctx context.Context, sess session.Session, path string) (models.MediaLink, error)
}

// MediaHandler stores and serves uploaded course media.
type MediaHandler struct {
	service mediaService
}

// NewMediaHandler constructs the handler.
func NewMediaHandler(service mediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// Upload godoc
// @Summary Upload a media file
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param folder formData string true "videos, audio, presentations, scorm, thumbnails or assignments"
// @Param file formData file true "File to upload"
// @Success 201 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file could not be read"))
		return
	}
	defer file.Close()

	result, err := h.service.Upload(c.Request.Context(), sessionFromContext(c), service.UploadRequest{
		Folder:   models.MediaFolder(strings.TrimSpace(c.PostForm("folder"))),
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Body:     file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Delete godoc
// @Summary Delete a media file
// @Tags Media
// @Param path query string true "Storage path"
// @Success 204
// @Router /media [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "path is required"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), path); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Link godoc
// @Summary Create a temporary signed link to a media file
// @Tags Media
// @Produce json
// @Param path query string true "Storage path"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /media/link [get]
func (h *MediaHandler) Link(c *gin.Context) {
	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "path is required"))
		return
	}
	link, err := h.service.TemporaryLink(c.Request.Context(), sessionFromContext(c), path)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link, nil)
}

// Serve godoc
// @Summary Stream a stored media file
// @Tags Media
// @Param path path string true "Storage path"
// @Success 200 {file} file
// @Router /media/files/{path} [get]
func (h *MediaHandler) Serve(c *gin.Context) {
	obj, err := h.service.Open(c.Request.Context(), c.Param("path"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveObject(c, obj)
}

// ServeLink godoc
// @Summary Stream a media file by signed token
// @Tags Media
// @Param token path string true "Signed media token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /media/links/{token} [get]
func (h *MediaHandler) ServeLink(c *gin.Context) {
	obj, err := h.service.OpenLink(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveObject(c, obj)
}

func serveObject(c *gin.Context, obj *service.MediaObject) {
	defer obj.File.Close()

	name := obj.File.Name()
	modTime := time.Time{}
	if info, statErr := obj.File.Stat(); statErr == nil {
		modTime = info.ModTime()
	}
	if obj.Metadata != nil {
		name = obj.Metadata.FileName
		if obj.Metadata.MimeType != "" {
			c.Header("Content-Type", obj.Metadata.MimeType)
		}
	}
	http.ServeContent(c.Writer, c.Request, name, modTime, obj.File)
}
