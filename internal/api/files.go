package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"estates/server/internal/attachments"
)

// UploadFiles stores every file of the multipart field "files".
func (h *Handler) UploadFiles(c *gin.Context) {
	b, ok := h.loadBuilding(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected a multipart form"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	saved := make([]string, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.logger.WithError(err).WithField("file", fh.Filename).Error("Failed to open upload")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
			return
		}
		name, err := h.files.Save(b.ID, fh.Filename, f)
		f.Close()
		if errors.Is(err, attachments.ErrInvalidName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
			return
		}
		if err != nil {
			h.logger.WithError(err).WithField("building_id", b.ID).Error("Failed to save file")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}
		saved = append(saved, name)
	}

	c.JSON(http.StatusCreated, gin.H{"files": saved})
}

func (h *Handler) ListFiles(c *gin.Context) {
	b, ok := h.loadBuilding(c)
	if !ok {
		return
	}

	files, err := h.files.List(b.ID)
	if err != nil {
		h.logger.WithError(err).WithField("building_id", b.ID).Error("Failed to list files")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (h *Handler) DownloadFile(c *gin.Context) {
	id, ok := h.buildingID(c)
	if !ok {
		return
	}

	path, err := h.files.Path(id, c.Param("filename"))
	if !h.fileError(c, err) {
		return
	}
	c.FileAttachment(path, c.Param("filename"))
}

func (h *Handler) DeleteFile(c *gin.Context) {
	id, ok := h.buildingID(c)
	if !ok {
		return
	}

	err := h.files.Delete(id, c.Param("filename"))
	if !h.fileError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}

// fileError replies to a store error and reports whether the request may continue.
func (h *Handler) fileError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, attachments.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
	case errors.Is(err, attachments.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
	default:
		h.logger.WithError(err).Error("File operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File operation failed"})
	}
	return false
}
