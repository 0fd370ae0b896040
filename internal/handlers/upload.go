package handlers

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/rentdb/internal/types"
)

// UploadsPrefix is where stored files are served from
const UploadsPrefix = "/uploads"

var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".doc":  true,
	".docx": true,
}

// UploadHandler stores receipts and contract documents on local disk
type UploadHandler struct {
	Dir      string
	MaxBytes int64
	Log      *slog.Logger
}

// UploadResult is the public path of a stored file
type UploadResult struct {
	Path string `json:"path"`
}

// Upload handles POST /api/upload
// @Summary Upload a file
// @Description Stores a receipt or document and returns its public path
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File"
// @Success 200 {object} UploadResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return types.NewError(fiber.StatusBadRequest, "upload.missing", "Multipart field \"file\" is required")
	}

	if h.MaxBytes > 0 && file.Size > h.MaxBytes {
		return types.NewError(fiber.StatusBadRequest, "upload.size",
			"File is %d bytes, the limit is %d", file.Size, h.MaxBytes)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		return types.NewError(fiber.StatusBadRequest, "upload.type", "File type %q is not accepted", ext)
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	if err := c.SaveFile(file, filepath.Join(h.Dir, name)); err != nil {
		return serviceError(c, h.Log, "upload.save", err)
	}

	return c.JSON(UploadResult{Path: UploadsPrefix + "/" + name})
}
