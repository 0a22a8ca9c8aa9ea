package uploads

import (
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"wishloop/models"
	"wishloop/utils"
)

const maxUploadBytes = 10 * 1024 * 1024

// allowedProofTypes are the content types accepted as proof of purchase.
var allowedProofTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

// Service stores proof-of-purchase files. The filesystem is abstracted so
// tests run against an in-memory backend.
type Service struct {
	fs  afero.Fs
	dir string
}

// NewService creates the upload service rooted at dir.
func NewService(fs afero.Fs, dir string) (*Service, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Service{fs: fs, dir: dir}, nil
}

// SaveProof validates and stores an uploaded proof file, returning the
// relative path it was stored under. The content type is sniffed from the
// bytes, not trusted from the request.
func (s *Service) SaveProof(originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty upload", models.ErrInvalidState)
	}
	if len(data) > maxUploadBytes {
		return "", fmt.Errorf("%w: upload exceeds %d bytes", models.ErrInvalidState, maxUploadBytes)
	}

	detected := mimetype.Detect(data)
	ext, ok := allowedProofTypes[detected.String()]
	if !ok {
		return "", fmt.Errorf("%w: unsupported proof content type %s", models.ErrInvalidState, detected.String())
	}

	base := strings.TrimSuffix(path.Base(originalName), path.Ext(originalName))
	slug := utils.Slugify(base)
	if slug == "" {
		slug = "proof"
	}
	name := fmt.Sprintf("%s-%s%s", uuid.NewString(), slug, ext)
	dest := path.Join(s.dir, name)

	if err := afero.WriteFile(s.fs, dest, data, 0644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	log.Printf("[uploads] stored proof file=%q size=%d type=%s", dest, len(data), detected.String())
	return dest, nil
}

// ContentTypeForName maps a stored proof file's extension back to the
// content type it was validated as on upload. Unknown extensions fall back
// to a generic byte stream.
func ContentTypeForName(name string) string {
	ext := strings.ToLower(path.Ext(name))
	for ct, e := range allowedProofTypes {
		if e == ext {
			return ct
		}
	}
	return "application/octet-stream"
}

// Open returns a reader for a previously stored proof file.
func (s *Service) Open(name string) (io.ReadCloser, error) {
	clean := path.Join(s.dir, path.Base(name))
	f, err := s.fs.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: proof file %s", models.ErrNotFound, name)
	}
	return f, nil
}
