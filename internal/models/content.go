package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ContentKind identifies one of the satellite content records a unit may own.
type ContentKind int

const (
	KindVideo ContentKind = iota
	KindAudio
	KindPresentation
	KindText
	KindPage
	KindQuiz
	KindAssignment
	KindScorm
	KindSurvey

	// NumContentKinds sizes every table indexed by ContentKind.
	NumContentKinds
)

var contentKindNames = [...]string{
	KindVideo:        "video",
	KindAudio:        "audio",
	KindPresentation: "presentation",
	KindText:         "text",
	KindPage:         "page",
	KindQuiz:         "quiz",
	KindAssignment:   "assignment",
	KindScorm:        "scorm",
	KindSurvey:       "survey",
}

var _ [NumContentKinds]string = contentKindNames

func (k ContentKind) String() string {
	if k < 0 || k >= NumContentKinds {
		return "unknown"
	}
	return contentKindNames[k]
}

// Content is the closed set of satellite records. Only types in this package implement it.
type Content interface {
	Kind() ContentKind
	GetID() string
	GetUnitID() string
	SetIdentity(id, unitID string)
	sealed()
}

// satellite carries the identity shared by every content record.
type satellite struct {
	ID     string `db:"id" json:"id"`
	UnitID string `db:"unit_id" json:"unit_id"`
}

func (s *satellite) GetID() string     { return s.ID }
func (s *satellite) GetUnitID() string { return s.UnitID }
func (s *satellite) SetIdentity(id, unitID string) {
	s.ID = id
	s.UnitID = unitID
}
func (s *satellite) sealed() {}

// VideoContent configures playback rules for a video unit.
type VideoContent struct {
	satellite
	VideoURL                *string `db:"video_url" json:"video_url,omitempty" validate:"omitempty,max=2048"`
	VideoStoragePath        *string `db:"video_storage_path" json:"video_storage_path,omitempty"`
	Duration                int     `db:"duration" json:"duration" validate:"gte=0"`
	CompletionType          string  `db:"completion_type" json:"completion_type" validate:"omitempty,oneof=full percentage"`
	RequiredWatchPercentage int     `db:"required_watch_percentage" json:"required_watch_percentage" validate:"gte=0,lte=100"`
	AllowSkip               bool    `db:"allow_skip" json:"allow_skip"`
	AllowRewind             bool    `db:"allow_rewind" json:"allow_rewind"`
}

func (*VideoContent) Kind() ContentKind { return KindVideo }

type AudioContent struct {
	satellite
	AudioURL         *string `db:"audio_url" json:"audio_url,omitempty" validate:"omitempty,max=2048"`
	AudioStoragePath *string `db:"audio_storage_path" json:"audio_storage_path,omitempty"`
	Duration         int     `db:"duration" json:"duration" validate:"gte=0"`
}

func (*AudioContent) Kind() ContentKind { return KindAudio }

type PresentationContent struct {
	satellite
	FileURL         *string `db:"file_url" json:"file_url,omitempty" validate:"omitempty,max=2048"`
	FileStoragePath *string `db:"file_storage_path" json:"file_storage_path,omitempty"`
	SlideCount      int     `db:"slide_count" json:"slide_count" validate:"gte=0"`
}

func (*PresentationContent) Kind() ContentKind { return KindPresentation }

type TextContent struct {
	satellite
	Content *string `db:"content" json:"content,omitempty"`
}

func (*TextContent) Kind() ContentKind { return KindText }

// PageContent holds a block document and its revision counter.
type PageContent struct {
	satellite
	Content types.JSONText `db:"content" json:"content"`
	Version int            `db:"version" json:"version" validate:"gte=0"`
}

func (*PageContent) Kind() ContentKind { return KindPage }

// QuizContent holds quiz settings. Questions are stored separately.
type QuizContent struct {
	satellite
	TimeLimit           *int `db:"time_limit" json:"time_limit,omitempty" validate:"omitempty,gte=0"`
	PassingScore        int  `db:"passing_score" json:"passing_score" validate:"gte=0,lte=100"`
	AttemptsAllowed     int  `db:"attempts_allowed" json:"attempts_allowed" validate:"gte=0"`
	ShowAnswers         bool `db:"show_answers" json:"show_answers"`
	RandomizeQuestions  bool `db:"randomize_questions" json:"randomize_questions"`
	MandatoryCompletion bool `db:"mandatory_completion" json:"mandatory_completion"`
}

func (*QuizContent) Kind() ContentKind { return KindQuiz }

type AssignmentContent struct {
	satellite
	SubmissionType string     `db:"submission_type" json:"submission_type" validate:"omitempty,oneof=file text both"`
	DueDate        *time.Time `db:"due_date" json:"due_date,omitempty"`
	MaxScore       int        `db:"max_score" json:"max_score" validate:"gte=0"`
	Instructions   *string    `db:"instructions" json:"instructions,omitempty"`
}

func (*AssignmentContent) Kind() ContentKind { return KindAssignment }

// ScormContent describes an uploaded SCORM or xAPI package.
type ScormContent struct {
	satellite
	PackageType        string  `db:"package_type" json:"package_type" validate:"omitempty,oneof=scorm_1_2 scorm_2004 xapi"`
	FileURL            *string `db:"file_url" json:"file_url,omitempty" validate:"omitempty,max=2048"`
	FileStoragePath    *string `db:"file_storage_path" json:"file_storage_path,omitempty"`
	Version            *string `db:"version" json:"version,omitempty"`
	CompletionTracking bool    `db:"completion_tracking" json:"completion_tracking"`
	ScoreTracking      bool    `db:"score_tracking" json:"score_tracking"`
}

func (*ScormContent) Kind() ContentKind { return KindScorm }

type SurveyContent struct {
	satellite
	Questions      types.JSONText `db:"questions" json:"questions"`
	AllowAnonymous bool           `db:"allow_anonymous" json:"allow_anonymous"`
}

func (*SurveyContent) Kind() ContentKind { return KindSurvey }
