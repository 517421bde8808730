// Package images stores claim attachment images on disk under random
// names, keeping only a path reference inside the claim record.
package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// MaxSize is the attachment size cap in bytes.
const MaxSize = 5 << 20

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Store saves claim images under a base directory.
type Store struct {
	dir string
}

// NewStore creates an image store rooted at dir, creating it if
// needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save copies the image content to disk under a fresh random name and
// returns the stored file name. The original name only contributes its
// extension, which must be one of the allowed image types. Content
// larger than MaxSize is rejected.
func (s *Store) Save(originalName string, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: formato de imagen no permitido: %q", model.ErrValidation, ext)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}

	// One byte past the cap detects oversize without buffering the
	// whole upload.
	n, err := io.Copy(f, io.LimitReader(content, MaxSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("writing image file: %w", err)
	}
	if n > MaxSize {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: la imagen supera el tamaño máximo de 5 MB", model.ErrValidation)
	}
	return name, nil
}

// Path returns the on-disk path of a stored image name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Remove deletes a stored image. A missing file is not an error.
func (s *Store) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
