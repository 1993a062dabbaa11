package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/trainer-console/internal/models"
)

// MediaRepository records uploaded objects.
type MediaRepository struct {
	db *sqlx.DB
}

// NewMediaRepository constructs the repository.
func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create inserts a metadata row.
func (r *MediaRepository) Create(ctx context.Context, meta *models.MediaMetadata) error {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.UploadedAt.IsZero() {
		meta.UploadedAt = time.Now().UTC()
	}
	const query = `INSERT INTO media_metadata (id, storage_path, file_name, file_type, file_size, mime_type, duration, width, height, uploaded_by, uploaded_at)
        VALUES (:id, :storage_path, :file_name, :file_type, :file_size, :mime_type, :duration, :width, :height, :uploaded_by, :uploaded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, meta); err != nil {
		return fmt.Errorf("create media metadata: %w", err)
	}
	return nil
}

// FindByPath returns the metadata for a storage path.
func (r *MediaRepository) FindByPath(ctx context.Context, path string) (*models.MediaMetadata, error) {
	const query = `SELECT id, storage_path, file_name, file_type, file_size, mime_type, duration, width, height, uploaded_by, uploaded_at
        FROM media_metadata WHERE storage_path = $1`
	var meta models.MediaMetadata
	if err := r.db.GetContext(ctx, &meta, query, path); err != nil {
		return nil, fmt.Errorf("get media metadata: %w", err)
	}
	return &meta, nil
}

// DeleteByPath removes the metadata rows for a storage path and reports how many went.
func (r *MediaRepository) DeleteByPath(ctx context.Context, path string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM media_metadata WHERE storage_path = $1`, path)
	if err != nil {
		return 0, fmt.Errorf("delete media metadata: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete media metadata: %w", err)
	}
	return n, nil
}
