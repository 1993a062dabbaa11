package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/session"
	"github.com/noah-isme/trainer-console/pkg/storage"
)

type mediaBucket interface {
	Upload(key string, r io.Reader) (int64, error)
	Open(key string) (*os.File, error)
	Remove(key string) error
}

type mediaSigner interface {
	Generate(subject, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (string, string, time.Time, error)
}

type mediaStore interface {
	Create(ctx context.Context, meta *models.MediaMetadata) error
	FindByPath(ctx context.Context, path string) (*models.MediaMetadata, error)
	DeleteByPath(ctx context.Context, path string) (int64, error)
}

// UploadRequest describes one incoming file.
type UploadRequest struct {
	Folder   models.MediaFolder
	FileName string
	MimeType string
	Body     io.Reader
}

// MediaObject is an opened object ready to be streamed.
type MediaObject struct {
	File     *os.File
	Metadata *models.MediaMetadata
}

// MediaService stores uploaded media and records its metadata.
type MediaService struct {
	bucket    mediaBucket
	signer    mediaSigner
	store     mediaStore
	selector  *backend.Selector
	publicURL string
	logger    *zap.Logger
	now       func() time.Time
}

// NewMediaService constructs MediaService. publicURL is the base of the
// media routes: stored objects live under /files and signed links under /links.
func NewMediaService(bucket mediaBucket, signer mediaSigner, store mediaStore, selector *backend.Selector, publicURL string, logger *zap.Logger) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MediaService{bucket: bucket, signer: signer, store: store, selector: selector, publicURL: publicURL, logger: logger, now: time.Now}
}

// Upload writes the object and its metadata row. The object is removed again
// when the metadata cannot be recorded.
func (s *MediaService) Upload(ctx context.Context, sess session.Session, req UploadRequest) (models.UploadResult, error) {
	if !req.Folder.Valid() {
		return models.UploadResult{}, appErrors.Clone(appErrors.ErrValidation, "unknown media folder "+string(req.Folder))
	}
	if req.FileName == "" || req.Body == nil {
		return models.UploadResult{}, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	owner := sess.Key()
	key := storage.ObjectKey(owner, string(req.Folder), req.FileName, s.now())
	size, err := s.bucket.Upload(key, req.Body)
	if err != nil {
		return models.UploadResult{}, mapBucketError(err)
	}

	meta := models.MediaMetadata{
		StoragePath: key,
		FileName:    req.FileName,
		FileType:    string(req.Folder),
		FileSize:    size,
		MimeType:    req.MimeType,
		UploadedBy:  owner,
	}
	_, err = backend.Secondary(ctx, s.selector, backend.ClassUnit, backend.OpCreate, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Create(ctx, &meta)
	})
	if err != nil {
		if rmErr := s.bucket.Remove(key); rmErr != nil {
			s.logger.Error("remove orphaned media object failed", zap.String("path", key), zap.Error(rmErr))
		}
		return models.UploadResult{}, err
	}

	s.logger.Info("media uploaded", zap.String("path", key), zap.Int64("size", size))
	return models.UploadResult{URL: s.PublicURL(key), Path: key}, nil
}

// PublicURL returns the stable URL of a stored object. Unit content keeps
// this URL, so it must not expire.
func (s *MediaService) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return s.publicURL + "/files/" + strings.Join(segments, "/")
}

// TemporaryLink signs a short-lived link to an existing object.
func (s *MediaService) TemporaryLink(ctx context.Context, sess session.Session, path string) (models.MediaLink, error) {
	if _, err := s.store.FindByPath(ctx, path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MediaLink{}, appErrors.Clone(appErrors.ErrNotFound, "media object not found")
		}
		return models.MediaLink{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up media object")
	}
	token, expiresAt, err := s.signer.Generate(sess.Key(), path)
	if err != nil {
		return models.MediaLink{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign media url")
	}
	return models.MediaLink{URL: s.publicURL + "/links/" + token, Path: path, ExpiresAt: expiresAt}, nil
}

// Delete removes the object and its metadata.
func (s *MediaService) Delete(ctx context.Context, path string) error {
	if err := s.bucket.Remove(path); err != nil {
		return mapBucketError(err)
	}
	removed, err := backend.Secondary(ctx, s.selector, backend.ClassUnit, backend.OpDelete, func(ctx context.Context) (int64, error) {
		return s.store.DeleteByPath(ctx, path)
	})
	if err != nil {
		return err
	}
	if removed == 0 {
		s.logger.Warn("media object had no metadata", zap.String("path", path))
	}
	return nil
}

// Open returns the object stored at path.
func (s *MediaService) Open(ctx context.Context, path string) (*MediaObject, error) {
	return s.open(ctx, strings.TrimPrefix(path, "/"))
}

// OpenLink resolves a signed token to its object.
func (s *MediaService) OpenLink(ctx context.Context, token string) (*MediaObject, error) {
	_, key, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired media link")
	}
	return s.open(ctx, key)
}

func (s *MediaService) open(ctx context.Context, key string) (*MediaObject, error) {
	file, err := s.bucket.Open(key)
	if err != nil {
		return nil, mapBucketError(err)
	}
	obj := &MediaObject{File: file}
	meta, err := s.store.FindByPath(ctx, key)
	if err != nil {
		s.logger.Debug("media metadata lookup failed", zap.String("path", key), zap.Error(err))
	} else {
		obj.Metadata = meta
	}
	return obj, nil
}

func mapBucketError(err error) error {
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return appErrors.Wrap(err, "PAYLOAD_TOO_LARGE", http.StatusRequestEntityTooLarge, "file exceeds the maximum upload size")
	case errors.Is(err, storage.ErrInvalidKey):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid media path")
	case errors.Is(err, os.ErrNotExist):
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "media object not found")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "media storage failed")
	}
}
