package handlers

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/anonto42/travel-plans/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

const (
	// MaxThumbnailSize is the largest accepted thumbnail, in bytes
	MaxThumbnailSize = 2 * 1024 * 1024
	// MaxUploadBody caps the whole multipart body, framing and other fields included
	MaxUploadBody = 4 * 1024 * 1024
)

// The declared part content type is trusted; file contents are not sniffed.
var allowedThumbnailTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// UploadHandler accepts thumbnail uploads and, for stores that host their own
// objects, serves them back
type UploadHandler struct {
	store storage.Store
}

func NewUploadHandler(store storage.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// RegisterUploadRoutes registers the upload route. The body cap is applied inside
// the handler so the session and content type are checked first.
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/upload/thumbnail", h.UploadThumbnail)
}

// RegisterThumbnailRoutes serves stored thumbnails when the store can open them
func (h *UploadHandler) RegisterThumbnailRoutes(e *echo.Echo) bool {
	if _, ok := h.store.(storage.Opener); !ok {
		return false
	}
	e.GET("/thumbnails/*", h.GetThumbnail)
	return true
}

// UploadThumbnail stores the multipart "file" field and returns its public URL.
// Checks run in order: session, file present, content type, size.
func (h *UploadHandler) UploadThumbnail(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}

	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, MaxUploadBody)

	part, err := thumbnailPart(req)
	if err != nil {
		return err
	}
	defer part.Close()

	contentType := part.Header.Get("Content-Type")
	if !allowedThumbnailTypes[contentType] {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "Only JPEG and PNG images are allowed")
	}

	data, err := io.ReadAll(io.LimitReader(part, MaxThumbnailSize+1))
	if err != nil {
		return uploadReadError(err)
	}
	if len(data) > MaxThumbnailSize {
		return errFileTooLarge
	}

	key := storage.ThumbnailKey(s.UserID, contentType, time.Now())
	if err := h.store.Upload(req.Context(), key, bytes.NewReader(data), contentType); err != nil {
		c.Logger().Errorf("thumbnail upload %s: %v", key, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload file")
	}

	return c.JSON(http.StatusOK, echo.Map{"url": h.store.PublicURL(key)})
}

var errFileTooLarge = echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File size must be less than 2MB")

// thumbnailPart walks the multipart body up to the "file" part without buffering
// the parts before it
func thumbnailPart(req *http.Request) (*multipart.Part, error) {
	mr, err := req.MultipartReader()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "No file provided")
	}
	for {
		part, err := mr.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "No file provided")
			}
			return nil, uploadReadError(err)
		}
		if part.FormName() == "file" {
			return part, nil
		}
		part.Close()
	}
}

func uploadReadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errFileTooLarge
	}
	return echo.NewHTTPError(http.StatusUnprocessableEntity, "No file provided")
}

// GetThumbnail streams a stored thumbnail
func (h *UploadHandler) GetThumbnail(c echo.Context) error {
	opener, ok := h.store.(storage.Opener)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Thumbnail not found")
	}

	rc, contentType, err := opener.Open(c.Request().Context(), c.Param("*"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Thumbnail not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer rc.Close()

	// keys are never reused, so the object can be cached indefinitely
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Stream(http.StatusOK, contentType, rc)
}
