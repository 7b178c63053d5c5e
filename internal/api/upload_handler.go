package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaq-h/portfolio-service/internal/blob"
	"github.com/jaq-h/portfolio-service/internal/logger"
)

// maxUploadSize caps uploads at 10MB, checked before any storage write so a
// rejected upload never leaves a partial object behind.
const maxUploadSize = 10 << 20

// upload handles POST /api/upload: bearer-authenticated multipart upload of
// an image, icon, or document to object storage.
func (r *Router) upload(c *gin.Context) {
	if r.blobClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Upload endpoint not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	uploadType := c.DefaultPostForm("type", "image")

	if fileHeader.Size > maxUploadSize {
		r.recordUpload(uploadType, "too_large")
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 10MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		r.recordUpload(uploadType, "error")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable file"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	name := c.PostForm("name")

	var result *blob.UploadResult
	switch uploadType {
	case "icon":
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Icon name is required"})
			return
		}
		variant := c.DefaultPostForm("variant", "tech")
		result, err = blob.UploadIcon(ctx, r.blobClient, file, fileHeader.Size, variant, name)

	case "document":
		result, err = blob.UploadDocument(ctx, r.blobClient, file, fileHeader.Size,
			fileHeader.Filename, blob.UploadOptions{Filename: name})

	case "image":
		folder := c.DefaultPostForm("folder", "images")
		result, err = blob.UploadImage(ctx, r.blobClient, file, fileHeader.Size,
			fileHeader.Filename, folder, blob.UploadOptions{Filename: name})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown upload type"})
		return
	}

	if err != nil {
		r.recordUpload(uploadType, "error")
		r.log.Error("upload failed",
			logger.String("type", uploadType),
			logger.String("file", fileHeader.Filename),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Upload failed", "details": err.Error(),
		})
		return
	}

	r.recordUpload(uploadType, "success")
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"url":          result.URL,
		"pathname":     result.Path,
		"contentType":  result.ContentType,
		"size":         result.Size,
		"originalName": result.OriginalName,
	})
}

// deleteUpload handles DELETE /api/upload?url=. The URL must belong to the
// configured storage domain; anything else is rejected before touching
// storage.
func (r *Router) deleteUpload(c *gin.Context) {
	if r.blobClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Upload endpoint not configured"})
		return
	}

	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL parameter is required"})
		return
	}

	if err := r.blobClient.Delete(c.Request.Context(), url); err != nil {
		if errors.Is(err, blob.ErrForeignURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blob URL"})
			return
		}
		r.log.Error("delete failed", logger.String("url", url), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Delete failed", "details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": url})
}

// uploadProbe handles GET /api/upload, a configuration health probe.
func (r *Router) uploadProbe(c *gin.Context) {
	configured := r.cfg.Secrets.Upload != "" && r.blobClient != nil
	message := "Upload endpoint is configured"
	if !configured {
		message = "Upload endpoint disabled"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"configured": configured,
		"message":    message,
	})
}

func (r *Router) recordUpload(uploadType, outcome string) {
	if r.metrics != nil {
		r.metrics.RecordUpload(uploadType, outcome)
	}
}
