package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"pawmatch/internal/config"
	"pawmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func newTestPhotoService(t *testing.T) (*PhotoService, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewPhotoService(noopPetRepo(), &config.Config{MediaDir: dir, MediaMaxSizeMB: 5})
	return svc, dir
}

func TestPhotoService_Upload(t *testing.T) {
	t.Parallel()

	t.Run("normalizes to square jpeg and webp", func(t *testing.T) {
		t.Parallel()
		svc, dir := newTestPhotoService(t)

		photo, err := svc.Upload(context.Background(), UploadPhotoInput{
			UploaderID:  2,
			Filename:    "biscuit.png",
			ContentType: "image/png",
			Content:     encodeTestPNG(t, 800, 600),
		})
		require.NoError(t, err)
		assert.Equal(t, PhotoSize, photo.Width)
		assert.Equal(t, PhotoSize, photo.Height)
		assert.Equal(t, "image/jpeg", photo.MimeType)
		assert.NotEmpty(t, photo.Hash)

		jpegPath := filepath.Join(dir, photo.Hash+".jpg")
		webpPath := filepath.Join(dir, photo.Hash+".webp")
		_, err = os.Stat(jpegPath)
		assert.NoError(t, err)
		_, err = os.Stat(webpPath)
		assert.NoError(t, err)
	})

	t.Run("small image is upscaled to the target edge", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestPhotoService(t)

		photo, err := svc.Upload(context.Background(), UploadPhotoInput{
			UploaderID: 2,
			Filename:   "tiny.png",
			Content:    encodeTestPNG(t, 100, 100),
		})
		require.NoError(t, err)
		assert.Equal(t, PhotoSize, photo.Width)
		assert.Equal(t, PhotoSize, photo.Height)
	})

	t.Run("gif upload is accepted", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestPhotoService(t)

		// Smallest valid GIF: one black 1x1 frame.
		raw := []byte{
			0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00,
			0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff,
			0x21, 0xf9, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00,
			0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00,
			0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
		}
		photo, err := svc.Upload(context.Background(), UploadPhotoInput{
			UploaderID:  2,
			Filename:    "dot.gif",
			ContentType: "image/gif",
			Content:     raw,
		})
		require.NoError(t, err)
		assert.Equal(t, PhotoSize, photo.Width)
		assert.Equal(t, PhotoSize, photo.Height)
	})

	t.Run("non-image content rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestPhotoService(t)
		_, err := svc.Upload(context.Background(), UploadPhotoInput{
			UploaderID: 2,
			Filename:   "notes.txt",
			Content:    []byte("just some text, definitely not pixels"),
		})
		assertValidationError(t, err)
	})

	t.Run("empty upload rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestPhotoService(t)
		_, err := svc.Upload(context.Background(), UploadPhotoInput{UploaderID: 2})
		assertValidationError(t, err)
	})

	t.Run("oversized upload rejected", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		svc := NewPhotoService(noopPetRepo(), &config.Config{MediaDir: dir, MediaMaxSizeMB: 1})
		big := make([]byte, 2*1024*1024)
		_, err := svc.Upload(context.Background(), UploadPhotoInput{
			UploaderID: 2,
			Filename:   "big.png",
			Content:    big,
		})
		assertValidationError(t, err)
	})

	t.Run("content type mismatch rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestPhotoService(t)
		_, err := svc.Upload(context.Background(), UploadPhotoInput{
			UploaderID:  2,
			Filename:    "biscuit.gif",
			ContentType: "image/gif",
			Content:     encodeTestPNG(t, 50, 50),
		})
		assertValidationError(t, err)
	})

	t.Run("duplicate content resolves to the existing record", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		repo := noopPetRepo()
		existing := &models.PetPhoto{ID: 7, Hash: "deadbeef", Filename: "deadbeef.jpg"}
		repo.getPhotoByHashFn = func(context.Context, string) (*models.PetPhoto, error) {
			return existing, nil
		}
		repo.createPhotoFn = func(context.Context, *models.PetPhoto) error {
			t.Fatal("create should not run for duplicate content")
			return nil
		}
		svc := NewPhotoService(repo, &config.Config{MediaDir: dir, MediaMaxSizeMB: 5})

		photo, err := svc.Upload(context.Background(), UploadPhotoInput{
			UploaderID: 2,
			Filename:   "again.png",
			Content:    encodeTestPNG(t, 60, 60),
		})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, photo.ID)
	})
}

func TestPhotoService_ResolveForServing(t *testing.T) {
	t.Parallel()

	svc, dir := newTestPhotoService(t)
	hash := "0123456789abcdef"
	require.NoError(t, os.WriteFile(filepath.Join(dir, hash+".jpg"), []byte("jpegdata"), 0o600))

	t.Run("resolves stored photo", func(t *testing.T) {
		t.Parallel()
		path, err := svc.ResolveForServing(hash + ".jpg")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, hash+".jpg"), path)
	})

	t.Run("missing photo", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ResolveForServing("ffffffffffffffff.jpg")
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("path traversal rejected", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ResolveForServing("../secret.jpg")
		assertValidationError(t, err)
	})

	t.Run("uppercase hash rejected", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ResolveForServing("ABCDEF.jpg")
		assertValidationError(t, err)
	})
}

func TestPhotoURL(t *testing.T) {
	t.Parallel()
	svc, _ := newTestPhotoService(t)
	url := svc.PhotoURL(&models.PetPhoto{Filename: "cafe01.jpg"})
	assert.Equal(t, "/media/pets/cafe01.jpg", url)
}
