package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pawmatch/internal/config"
	"pawmatch/internal/middleware"
	"pawmatch/internal/models"
	"pawmatch/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultMediaDir          = "/tmp/pawmatch/media"
	DefaultPhotoMaxUploadMB  = 10
	PhotoSize                = 500
	PhotoJPEGQuality         = 85
	PhotoWebPQuality         = 75
)

type UploadPhotoInput struct {
	UploaderID  uint
	Filename    string
	ContentType string
	Content     []byte
}

// PhotoService normalizes uploaded pet photos into fixed-size JPEG and
// WebP renditions stored under a content-addressed path.
type PhotoService struct {
	repo               repository.PetRepository
	mediaDir           string
	maxUploadSizeBytes int64
}

func NewPhotoService(repo repository.PetRepository, cfg *config.Config) *PhotoService {
	mediaDir := DefaultMediaDir
	maxUploadMB := DefaultPhotoMaxUploadMB

	if cfg != nil {
		if cfg.MediaDir != "" {
			mediaDir = cfg.MediaDir
		}
		if cfg.MediaMaxSizeMB > 0 {
			maxUploadMB = cfg.MediaMaxSizeMB
		}
	}

	return &PhotoService{
		repo:               repo,
		mediaDir:           mediaDir,
		maxUploadSizeBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// Upload validates, normalizes and stores a pet photo, returning the
// persisted record. Any failure aborts the upload; callers creating a pet
// alongside a photo must not proceed when this errors.
func (s *PhotoService) Upload(ctx context.Context, in UploadPhotoInput) (*models.PetPhoto, error) {
	if in.UploaderID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedPhotoMIME(detectedType) {
		middleware.PhotoPipelineFailures.WithLabelValues("validate").Inc()
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		middleware.PhotoPipelineFailures.WithLabelValues("decode").Inc()
		return nil, models.NewValidationError("Invalid image file")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, formatToMime(format)) {
		return nil, models.NewValidationError("Image content type mismatch")
	}

	normalized := squareResize(decoded, PhotoSize)

	encodedJPEG, err := encodeJPEG(normalized, PhotoJPEGQuality)
	if err != nil {
		middleware.PhotoPipelineFailures.WithLabelValues("encode").Inc()
		return nil, models.NewUpstreamError("Photo processing failed", err)
	}
	encodedWebP, err := encodeWebP(normalized, PhotoWebPQuality)
	if err != nil {
		middleware.PhotoPipelineFailures.WithLabelValues("encode").Inc()
		return nil, models.NewUpstreamError("Photo processing failed", err)
	}

	hash := hashPhotoContent(encodedJPEG)

	if existing, lookupErr := s.repo.GetPhotoByHash(ctx, hash); lookupErr == nil && existing != nil {
		return existing, nil
	}

	jpegRel := hash + ".jpg"
	webpRel := hash + ".webp"
	jpegAbs := filepath.Join(s.mediaDir, jpegRel)
	webpAbs := filepath.Join(s.mediaDir, webpRel)

	if err := writePhotoFile(jpegAbs, encodedJPEG); err != nil {
		middleware.PhotoPipelineFailures.WithLabelValues("store").Inc()
		return nil, models.NewUpstreamError("Photo storage failed", err)
	}
	if err := writePhotoFile(webpAbs, encodedWebP); err != nil {
		_ = os.Remove(jpegAbs)
		middleware.PhotoPipelineFailures.WithLabelValues("store").Inc()
		return nil, models.NewUpstreamError("Photo storage failed", err)
	}

	bounds := normalized.Bounds()
	record := &models.PetPhoto{
		Hash:       hash,
		UploaderID: in.UploaderID,
		Filename:   jpegRel,
		MimeType:   "image/jpeg",
		SizeBytes:  int64(len(encodedJPEG)),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
	}
	if err := s.repo.CreatePhoto(ctx, record); err != nil {
		_ = os.Remove(jpegAbs)
		_ = os.Remove(webpAbs)
		return nil, err
	}

	return record, nil
}

// PhotoURL returns the public URL for a stored photo.
func (s *PhotoService) PhotoURL(photo *models.PetPhoto) string {
	return "/media/pets/" + photo.Filename
}

// ResolveForServing maps a requested media filename to its on-disk path.
func (s *PhotoService) ResolveForServing(filename string) (string, error) {
	hash, ok := strings.CutSuffix(filename, ".jpg")
	if !ok {
		hash, ok = strings.CutSuffix(filename, ".webp")
	}
	if !ok || !isValidPhotoHash(hash) {
		return "", models.NewValidationError("Invalid photo name")
	}

	fullPath := filepath.Join(s.mediaDir, filename)
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Photo", filename)
		}
		return "", models.NewInternalError(err)
	}
	return fullPath, nil
}

// squareResize center-crops the source to a square and scales it to the
// given edge length.
func squareResize(src image.Image, edge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return src
	}

	side := w
	if h < side {
		side = h
	}
	x := b.Min.X + (w-side)/2
	y := b.Min.Y + (h-side)/2

	cropped := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(cropped, cropped.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)

	if side == edge {
		return cropped
	}
	dst := image.NewRGBA(image.Rect(0, 0, edge, edge))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hashPhotoContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// isValidPhotoHash checks that the hash is strictly lowercase hex, which
// prevents path traversal via crafted media names.
func isValidPhotoHash(hash string) bool {
	if len(hash) == 0 || len(hash) > 128 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func isAllowedPhotoMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func formatToMime(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}

func writePhotoFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
