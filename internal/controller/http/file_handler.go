package http

import (
	"errors"
	"net/http"

	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	uploadUseCase usecase.UploadUseCase
	logger        *logger.Logger
}

func NewFileHandler(uploadUseCase usecase.UploadUseCase, logger *logger.Logger) *FileHandler {
	return &FileHandler{uploadUseCase: uploadUseCase, logger: logger}
}

// Upload godoc
// @Summary      Upload an image
// @Description  Accepts a multipart image upload and returns its public URL
// @Tags         admin
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "Image file"
// @Success      200  {object}  usecase.UploadResult
// @Failure      400  {object}  map[string]string
// @Router       /admin/upload [post]
func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	result, err := h.uploadUseCase.UploadImage(fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file storage is not configured"})
		default:
			h.logger.Error("Failed to upload image: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"url":      result.URL,
		"fileName": result.FileName,
	})
}

// Serve godoc
// @Summary      Serve an uploaded file
// @Tags         files
// @Produce      octet-stream
// @Param        name path string true "File name"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /file/{name} [get]
func (h *FileHandler) Serve(c *gin.Context) {
	name := c.Param("name")

	object, err := h.uploadUseCase.GetFile(name)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		case errors.Is(err, usecase.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file name"})
		case errors.Is(err, usecase.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file storage is not configured"})
		default:
			h.logger.Error("Failed to read file %s: %v", name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		}
		return
	}
	defer object.Body.Close()

	contentType := object.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Uploaded files are content-addressed by generated name, safe to cache
	// for a year.
	c.DataFromReader(http.StatusOK, object.ContentLength, contentType, object.Body, map[string]string{
		"Cache-Control":               "public, max-age=31536000",
		"Access-Control-Allow-Origin": "*",
	})
}
