package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // register decoders used by image.Decode
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"devswipe/internal/featureflags"
	"devswipe/internal/models"
	"devswipe/internal/observability"
	"devswipe/internal/storage"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	MaxImageDimension = 2048
	WebPQuality       = 80
)

// allowedUploadTypes maps sniffed content types to stored extensions.
var allowedUploadTypes = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/gif":       "gif",
	"image/webp":      "webp",
	"application/pdf": "pdf",
	"text/plain":      "txt",
	"application/zip": "zip",
}

// UploadInput is a file received from a client.
type UploadInput struct {
	UserID   uint
	Filename string
	Size     int64
	Reader   io.Reader
}

// UploadResult describes a stored file.
type UploadResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// UploadService validates files and writes them to object storage.
type UploadService struct {
	store    storage.Backend
	maxBytes int64
	flags    *featureflags.Manager
}

// NewUploadService returns a new UploadService.
func NewUploadService(store storage.Backend, maxBytes int64, flags *featureflags.Manager) *UploadService {
	return &UploadService{store: store, maxBytes: maxBytes, flags: flags}
}

// Upload stores in and returns where it can be fetched.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if in.Reader == nil || in.Size == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	tooLarge := models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	if in.Size > s.maxBytes {
		s.count("rejected")
		return nil, tooLarge
	}

	// The declared size is advisory; read one byte past the limit to catch liars.
	content, err := io.ReadAll(io.LimitReader(in.Reader, s.maxBytes+1))
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("read upload: %w", err))
	}
	if int64(len(content)) > s.maxBytes {
		s.count("rejected")
		return nil, tooLarge
	}
	if len(content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}

	contentType := sniffContentType(content)
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		s.count("rejected")
		return nil, models.NewValidationError("File type not allowed: " + contentType)
	}

	if (contentType == "image/jpeg" || contentType == "image/png") &&
		s.flags.Enabled(featureflags.ImageWebP, in.UserID) {
		converted, err := convertToWebP(content)
		if err != nil {
			s.count("rejected")
			return nil, models.NewValidationError("Invalid image file")
		}
		content, contentType, ext = converted, "image/webp", "webp"
	}

	key := path.Join("uploads", fmt.Sprint(in.UserID), uuid.NewString()+"."+ext)
	if err := s.store.Put(ctx, key, bytes.NewReader(content), int64(len(content)), contentType); err != nil {
		s.count("failed")
		return nil, models.NewInternalError(fmt.Errorf("store upload: %w", err))
	}
	s.count("stored")
	observability.UploadBytes.Observe(float64(len(content)))

	return &UploadResult{
		URL:         s.store.URL(key),
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(content)),
	}, nil
}

func (s *UploadService) count(result string) {
	observability.Uploads.WithLabelValues(s.store.Name(), result).Inc()
}

func sniffContentType(content []byte) string {
	detected := http.DetectContentType(content)
	mediaType, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return strings.ToLower(detected)
	}
	return mediaType
}

// convertToWebP decodes a JPEG or PNG, scales it to fit MaxImageDimension
// and re-encodes it as lossy WebP.
func convertToWebP(content []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	img = resizeToFit(img, MaxImageDimension)

	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resizeToFit(src image.Image, maxSide int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}
	scale := float64(maxSide) / float64(max(w, h))
	newW := max(1, int(float64(w)*scale))
	newH := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
