// Package uploads stores request attachments on disk and derives the public
// paths under which they are served.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/config"
)

// Store writes uploaded files into a single shared directory. Generated
// names start with the upload timestamp so directory listings stay roughly
// chronological; a short random suffix keeps two uploads within the same
// clock tick from colliding.
type Store struct {
	dir        string
	publicPath string
	maxSize    int64
}

// New creates the store and ensures the upload directory exists.
func New(cfg config.UploadsConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{
		dir:        cfg.Dir,
		publicPath: strings.TrimSuffix(cfg.PublicPath, "/"),
		maxSize:    int64(cfg.MaxSizeMB) << 20,
	}, nil
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the upload under a generated name and returns the stored
// filename. Only the extension of the original name is kept. An upload over
// the configured cap is rejected, never stored truncated.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	name := generateName(originalName)

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	src := r
	if s.maxSize > 0 {
		// One byte past the cap distinguishes at-limit from over-limit.
		src = io.LimitReader(r, s.maxSize+1)
	}
	written, err := io.Copy(f, src)
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if s.maxSize > 0 && written > s.maxSize {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", entities.ErrAttachmentTooLarge)
	}

	return name, nil
}

// PreviewPath derives the public path for a stored filename.
func (s *Store) PreviewPath(filename string) string {
	return s.publicPath + "/" + filename
}

func generateName(originalName string) string {
	ext := strings.ToLower(path.Ext(path.Base(originalName)))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
