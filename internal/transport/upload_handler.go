package transport

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UploadResponse carries the public URL of a stored image
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadHandler handles product image uploads
type UploadHandler struct {
	uploadService service.UploadService
	maxBytes      int64
	logger        *zap.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService service.UploadService, maxBytes int64, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxBytes:      maxBytes,
		logger:        logger,
	}
}

// RegisterRoutes registers the upload route
func (h *UploadHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin/upload", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Post("/", h.Upload)
	})
}

// Upload accepts a multipart form with an "image" field and returns the
// stored file's public URL
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1024)

	file, header, err := r.FormFile("image")
	if err != nil {
		h.logger.Debug("Upload form parse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	imageURL, err := h.uploadService.StoreImage(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFile),
			errors.Is(err, service.ErrFileTooLarge),
			errors.Is(err, service.ErrUnsupportedType):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error("Upload failed", zap.Error(err), zap.String("filename", header.Filename))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	h.logger.Info("Image uploaded", zap.String("image_url", imageURL))
	middleware.RespondWithJSON(w, http.StatusCreated, UploadResponse{ImageURL: imageURL})
}
