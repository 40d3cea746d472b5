package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"roadcare/services/storage"
	"roadcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadHandler accepts issue photos and stores them with the configured
// storage backend.
type UploadHandler struct {
	Storage storage.StorageService
}

func NewUploadHandler(svc storage.StorageService) *UploadHandler {
	return &UploadHandler{Storage: svc}
}

// UploadImage handles POST /api/uploads. The file lands in a temp path first
// so the storage client can stream it from disk.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "file is required")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "upload failed", err.Error())
		return
	}
	defer os.Remove(tmpPath)

	url, err := h.Storage.UploadFile(c.Request.Context(), tmpPath, "request-photos")
	if err != nil {
		utils.GetLogger().Error("image upload failed", zap.Error(err))
		utils.AbortWithError(c, utils.NewExternalError("STORAGE_UPLOAD_FAILED", "image upload failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
