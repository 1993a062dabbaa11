package models

import "time"

// CourseStatus enumerates the publication state of a course.
type CourseStatus string

// CourseVisibility controls who can discover a course.
type CourseVisibility string

// CompletionRule decides which units count toward course completion.
type CompletionRule string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"

	VisibilityPrivate    CourseVisibility = "private"
	VisibilityPublic     CourseVisibility = "public"
	VisibilityRestricted CourseVisibility = "restricted"

	CompletionAllUnits      CompletionRule = "all_units"
	CompletionRequiredUnits CompletionRule = "required_units"
)

// Course is the top level authoring entity.
type Course struct {
	ID                 string           `db:"id" json:"id"`
	Title              string           `db:"title" json:"title"`
	Description        *string          `db:"description" json:"description,omitempty"`
	Category           *string          `db:"category" json:"category,omitempty"`
	Language           string           `db:"language" json:"language"`
	ThumbnailURL       *string          `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	Status             CourseStatus     `db:"status" json:"status"`
	Visibility         CourseVisibility `db:"visibility" json:"visibility"`
	SequentialAccess   bool             `db:"sequential_access" json:"sequential_access"`
	CompletionRule     CompletionRule   `db:"completion_rule" json:"completion_rule"`
	CertificateEnabled bool             `db:"certificate_enabled" json:"certificate_enabled"`
	CreatedBy          *string          `db:"created_by" json:"created_by,omitempty"`
	CreatedAt          time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at" json:"updated_at"`
	Units              []Unit           `db:"-" json:"units,omitempty"`
}

// GetID returns the course identity.
func (c Course) GetID() string { return c.ID }

// CourseInput carries the authoring form for create and update.
type CourseInput struct {
	Title              string           `json:"title" validate:"required,max=255"`
	Description        *string          `json:"description,omitempty"`
	Category           *string          `json:"category,omitempty"`
	Language           string           `json:"language,omitempty"`
	ThumbnailURL       *string          `json:"thumbnail_url,omitempty"`
	Status             CourseStatus     `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Visibility         CourseVisibility `json:"visibility,omitempty" validate:"omitempty,oneof=private public restricted"`
	SequentialAccess   bool             `json:"sequential_access"`
	CompletionRule     CompletionRule   `json:"completion_rule,omitempty" validate:"omitempty,oneof=all_units required_units"`
	CertificateEnabled bool             `json:"certificate_enabled"`
}

// ApplyDefaults fills the form defaults used by the authoring screen.
func (in *CourseInput) ApplyDefaults() {
	if in.Language == "" {
		in.Language = "en"
	}
	if in.Status == "" {
		in.Status = CourseStatusDraft
	}
	if in.Visibility == "" {
		in.Visibility = VisibilityPrivate
	}
	if in.CompletionRule == "" {
		in.CompletionRule = CompletionAllUnits
	}
}

// ToCourse projects the input onto a course record.
func (in CourseInput) ToCourse() Course {
	return Course{
		Title:              in.Title,
		Description:        in.Description,
		Category:           in.Category,
		Language:           in.Language,
		ThumbnailURL:       in.ThumbnailURL,
		Status:             in.Status,
		Visibility:         in.Visibility,
		SequentialAccess:   in.SequentialAccess,
		CompletionRule:     in.CompletionRule,
		CertificateEnabled: in.CertificateEnabled,
	}
}
