// Package blob stores uploaded images and hands back a public URL.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageBytes bounds a single upload.
const MaxImageBytes = 5 << 20

var (
	ErrTooLarge        = errors.New("image exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// Store persists objects under a key and returns their public URL.
type Store interface {
	Put(ctx context.Context, userID, contentType string, r io.Reader) (string, error)
}

// FSStore writes objects beneath Dir and serves them from BaseURL.
type FSStore struct {
	Dir     string
	BaseURL string
}

func NewFSStore(dir, baseURL string) *FSStore {
	return &FSStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Put writes r to {userID}/{uuid}{ext}. Partial files are removed on error.
func (s *FSStore) Put(ctx context.Context, userID, contentType string, r io.Reader) (string, error) {
	ext, ok := extensions[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := userID + "/" + uuid.NewString() + ext
	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating blob directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating blob: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(r, MaxImageBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxImageBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}

	return s.BaseURL + "/" + key, nil
}
