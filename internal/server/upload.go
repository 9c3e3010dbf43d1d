package server

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders for upload validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"connectin/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadSize = 2 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// saveUpload stores an optional uploaded image under the configured upload
// directory and returns its public URL path. An absent file is not an
// error; the empty string means nothing was uploaded.
func (s *Server) saveUpload(c *fiber.Ctx, field string) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	if header.Size > maxUploadSize {
		return "", models.NewValidationError("Image must be 2MB or smaller")
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", models.NewValidationError("Only PNG, JPG, GIF or WebP images are allowed")
	}

	file, err := header.Open()
	if err != nil {
		return "", models.NewStorageError(err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return "", models.NewStorageError(err)
	}
	if len(content) > maxUploadSize {
		return "", models.NewValidationError("Image must be 2MB or smaller")
	}

	// The extension check is advisory; the bytes have to decode too.
	if _, _, err := image.Decode(bytes.NewReader(content)); err != nil {
		return "", models.NewValidationError("Uploaded file is not a valid image")
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return "", models.NewStorageError(err)
	}
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.config.UploadDir, name), content, 0o644); err != nil {
		return "", models.NewStorageError(err)
	}

	return "/uploads/" + name, nil
}
