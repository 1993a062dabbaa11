package models

import "time"

// MediaFolder groups uploads inside the bucket.
type MediaFolder string

const (
	MediaFolderVideos        MediaFolder = "videos"
	MediaFolderAudio         MediaFolder = "audio"
	MediaFolderPresentations MediaFolder = "presentations"
	MediaFolderScorm         MediaFolder = "scorm"
	MediaFolderThumbnails    MediaFolder = "thumbnails"
	MediaFolderAssignments   MediaFolder = "assignments"
)

// Valid reports whether the folder is one the bucket accepts.
func (f MediaFolder) Valid() bool {
	switch f {
	case MediaFolderVideos, MediaFolderAudio, MediaFolderPresentations, MediaFolderScorm, MediaFolderThumbnails, MediaFolderAssignments:
		return true
	}
	return false
}

// MediaMetadata records one uploaded object.
type MediaMetadata struct {
	ID          string    `db:"id" json:"id"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	FileName    string    `db:"file_name" json:"file_name"`
	FileType    string    `db:"file_type" json:"file_type"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	MimeType    string    `db:"mime_type" json:"mime_type"`
	Duration    *int      `db:"duration" json:"duration,omitempty"`
	Width       *int      `db:"width" json:"width,omitempty"`
	Height      *int      `db:"height" json:"height,omitempty"`
	UploadedBy  string    `db:"uploaded_by" json:"uploaded_by"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// UploadResult is returned for every stored object.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// MediaLink is a temporary signed link to a stored object.
type MediaLink struct {
	URL       string    `json:"url"`
	Path      string    `json:"path"`
	ExpiresAt time.Time `json:"expires_at"`
}
