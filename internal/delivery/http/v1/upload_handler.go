package v1

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"trendora-backend/internal/domain"
	"trendora-backend/pkg/utils"
)

var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".gif":  true,
	}
)

type UploadHandler struct {
	images        domain.ImageStore
	maxUploadSize int64
}

func NewUploadHandler(images domain.ImageStore, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		images:        images,
		maxUploadSize: maxUploadSizeMB << 20, // Convert MB to bytes
	}
}

// UploadFile accepts a multipart image, recompresses it and stores it. The
// optional folder query parameter groups keys (products, variants).
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		slog.Error("Upload: ParseMultipartForm failed", "error", err)
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file type. Allowed: JPEG, PNG, WebP, GIF")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file extension")
		return
	}

	processedData, newContentType, err := utils.ProcessImage(file)
	if err != nil {
		slog.Error("Upload: image processing failed", "filename", header.Filename, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to process image")
		return
	}

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "products"
	}

	url, publicID, err := h.images.Upload(r.Context(), processedData, newContentType, folder)
	if err != nil {
		slog.Error("Upload: storage upload failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"url":       url,
		"public_id": publicID,
	})
}
