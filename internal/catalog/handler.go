package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/columbia-shop/columbia/backend/internal/httpjson"
	"github.com/columbia-shop/columbia/backend/internal/models"
	"github.com/columbia-shop/columbia/backend/internal/store"
)

// MaxImageBytes caps a single uploaded product image.
const MaxImageBytes = 5 << 20

// maxUploadBytes leaves room for multipart framing around the image.
const maxUploadBytes = MaxImageBytes + 1<<10

// imageTypes maps sniffed content types that may be stored to their file extension.
var imageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStore defines the interface for product image storage.
type ImageStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, string, int64, error)
}

// Handler holds catalog HTTP handlers.
type Handler struct {
	catalog *Service
	images  ImageStore
	baseURL string
	log     *slog.Logger
}

// NewHandler builds a Handler. images may be nil, which disables the image routes.
func NewHandler(catalog *Service, images ImageStore, baseURL string, log *slog.Logger) *Handler {
	return &Handler{catalog: catalog, images: images, baseURL: baseURL, log: log}
}

// List returns every product, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.catalog.List(r.Context()))
}

// Add inserts a product from a strictly decoded JSON body.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.NewProductRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if missing := req.Missing(); len(missing) > 0 {
		httpjson.Fail(w, http.StatusBadRequest, "missing required fields: "+strings.Join(missing, ", "))
		return
	}

	res, ok := h.catalog.Add(r.Context(), models.NewProduct{
		Name:     *req.Name,
		Price:    *req.Price,
		ImageURL: *req.ImageURL,
	})
	status := http.StatusCreated
	if !ok {
		status = http.StatusInternalServerError
	}
	httpjson.Write(w, status, res)
}

// UploadImage stores a multipart "image" file and returns its public URL.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		httpjson.Fail(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}

	if r.ContentLength > maxUploadBytes {
		httpjson.Fail(w, http.StatusRequestEntityTooLarge, "image exceeds 5 MiB")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpjson.Fail(w, http.StatusRequestEntityTooLarge, "image exceeds 5 MiB")
			return
		}
		httpjson.Fail(w, http.StatusBadRequest, "multipart field \"image\" is required (max 5 MiB)")
		return
	}
	defer file.Close()

	if header.Size > MaxImageBytes {
		httpjson.Fail(w, http.StatusRequestEntityTooLarge, "image exceeds 5 MiB")
		return
	}

	// The declared Content-Type is ignored; only sniffed raster formats are kept.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		httpjson.Fail(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	ext, ok := imageTypes[contentType]
	if !ok {
		httpjson.Fail(w, http.StatusBadRequest, "uploaded file must be a PNG, JPEG, GIF or WebP image")
		return
	}
	body := io.MultiReader(bytes.NewReader(head), file)

	key := "products/" + uuid.New().String() + ext
	if err := h.images.Upload(r.Context(), key, body, header.Size, contentType); err != nil {
		h.log.Error("catalog.image_upload_failed", "key", key, "error", err)
		httpjson.Write(w, http.StatusInternalServerError, models.UploadResult{
			Success: false, Message: "failed to store image",
		})
		return
	}

	h.log.Info("catalog.image_uploaded", "key", key, "bytes", header.Size)
	httpjson.Write(w, http.StatusCreated, models.UploadResult{
		Success:  true,
		Message:  "Image uploaded",
		ImageURL: h.baseURL + "/api/images/" + key,
	})
}

// Image streams a stored product image.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		httpjson.Fail(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}

	key := chi.URLParam(r, "*")
	if key == "" || strings.Contains(key, "..") {
		httpjson.Fail(w, http.StatusNotFound, "image not found")
		return
	}

	body, contentType, size, err := h.images.Open(r.Context(), key)
	if errors.Is(err, store.ErrObjectNotFound) {
		httpjson.Fail(w, http.StatusNotFound, "image not found")
		return
	}
	if err != nil {
		h.log.Error("catalog.image_read_failed", "key", key, "error", err)
		httpjson.Fail(w, http.StatusInternalServerError, "failed to read image")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, body); err != nil {
		h.log.Warn("catalog.image_stream_aborted", "key", key, "error", err)
	}
}
