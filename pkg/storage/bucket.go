package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrTooLarge is returned when an upload exceeds the bucket's size limit.
	ErrTooLarge = errors.New("object exceeds maximum size")
	// ErrInvalidKey is returned for keys that escape the bucket root.
	ErrInvalidKey = errors.New("invalid object key")
)

// Bucket stores media objects on disk under a root directory.
type Bucket struct {
	baseDir string
	maxSize int64
}

// NewBucket ensures the root directory exists. maxSize <= 0 disables the size check.
func NewBucket(baseDir string, maxSize int64) (*Bucket, error) {
	if baseDir == "" {
		baseDir = "./media"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &Bucket{baseDir: baseDir, maxSize: maxSize}, nil
}

// ObjectKey builds "{owner}/{folder}/{unix-millis}-{random}.{ext}" for an upload.
func ObjectKey(owner, folder, fileName string, now time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	name := fmt.Sprintf("%d-%s", now.UnixMilli(), random)
	if ext != "" {
		name += "." + ext
	}
	if owner == "" {
		owner = "anonymous"
	}
	return path.Join(owner, folder, name)
}

// Upload copies r into key and returns the number of bytes written. A partial
// object is removed when the copy fails.
func (b *Bucket) Upload(key string, r io.Reader) (int64, error) {
	target, err := b.resolve(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, fmt.Errorf("prepare media directory: %w", err)
	}
	file, err := os.Create(target)
	if err != nil {
		return 0, fmt.Errorf("create media object: %w", err)
	}

	src := r
	if b.maxSize > 0 {
		src = io.LimitReader(r, b.maxSize+1)
	}
	n, copyErr := io.Copy(file, src)
	closeErr := file.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(target)
		return 0, fmt.Errorf("write media object: %w", copyErr)
	case b.maxSize > 0 && n > b.maxSize:
		_ = os.Remove(target)
		return 0, ErrTooLarge
	case closeErr != nil:
		_ = os.Remove(target)
		return 0, fmt.Errorf("close media object: %w", closeErr)
	}
	return n, nil
}

// Open returns a read-only handle for the object.
func (b *Bucket) Open(key string) (*os.File, error) {
	target, err := b.resolve(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open media object: %w", err)
	}
	return file, nil
}

// Remove deletes the object. Missing objects are not an error.
func (b *Bucket) Remove(key string) error {
	target, err := b.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media object: %w", err)
	}
	return nil
}

// Exists reports whether the object is present.
func (b *Bucket) Exists(key string) bool {
	target, err := b.resolve(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(target)
	return err == nil
}

func (b *Bucket) resolve(key string) (string, error) {
	if key == "" || filepath.IsAbs(key) || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(filepath.ToSlash(key))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return filepath.Join(b.baseDir, filepath.FromSlash(cleaned)), nil
}
