package models

import "time"

// UnitType is the declared type tag of a unit.
type UnitType string

const (
	UnitTypeText         UnitType = "text"
	UnitTypeVideo        UnitType = "video"
	UnitTypeAudio        UnitType = "audio"
	UnitTypePresentation UnitType = "presentation"
	UnitTypeScorm        UnitType = "scorm"
	UnitTypeXAPI         UnitType = "xapi"
	UnitTypeQuiz         UnitType = "quiz"
	UnitTypeTest         UnitType = "test"
	UnitTypeAssignment   UnitType = "assignment"
	UnitTypeSurvey       UnitType = "survey"
	UnitTypePage         UnitType = "page"
)

// UnitTypes lists every tag a unit may carry.
var UnitTypes = []UnitType{
	UnitTypeText, UnitTypeVideo, UnitTypeAudio, UnitTypePresentation, UnitTypeScorm, UnitTypeXAPI,
	UnitTypeQuiz, UnitTypeTest, UnitTypeAssignment, UnitTypeSurvey, UnitTypePage,
}

// ContentKind maps the tag onto its satellite kind. Unknown tags report false.
func (t UnitType) ContentKind() (ContentKind, bool) {
	switch t {
	case UnitTypeText:
		return KindText, true
	case UnitTypeVideo:
		return KindVideo, true
	case UnitTypeAudio:
		return KindAudio, true
	case UnitTypePresentation:
		return KindPresentation, true
	case UnitTypeScorm, UnitTypeXAPI:
		return KindScorm, true
	case UnitTypeQuiz, UnitTypeTest:
		return KindQuiz, true
	case UnitTypeAssignment:
		return KindAssignment, true
	case UnitTypeSurvey:
		return KindSurvey, true
	case UnitTypePage:
		return KindPage, true
	}
	return 0, false
}

// Unit is a positioned piece of course content.
type Unit struct {
	ID          string    `db:"id" json:"id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	Type        UnitType  `db:"type" json:"type"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Order       int       `db:"order" json:"order"`
	IsRequired  bool      `db:"is_required" json:"is_required"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// GetID returns the unit identity.
func (u Unit) GetID() string { return u.ID }

// UnitInput is the builder payload for a unit. Order is assigned by the backend.
type UnitInput struct {
	CourseID    string   `json:"course_id" validate:"required"`
	Type        UnitType `json:"type" validate:"required"`
	Title       string   `json:"title" validate:"required,max=255"`
	Description *string  `json:"description,omitempty"`
	IsRequired  *bool    `json:"is_required,omitempty"`
}

// UnitUpdate carries the mutable fields of a unit.
type UnitUpdate struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	IsRequired  *bool   `json:"is_required,omitempty"`
}

// Apply overlays the update on u.
func (upd UnitUpdate) Apply(u Unit) Unit {
	if upd.Title != nil {
		u.Title = *upd.Title
	}
	if upd.Description != nil {
		u.Description = upd.Description
	}
	if upd.IsRequired != nil {
		u.IsRequired = *upd.IsRequired
	}
	return u
}

// UnitReorderRequest lists unit ids in their new order.
type UnitReorderRequest struct {
	UnitIDs []string `json:"unit_ids" validate:"required,min=1,dive,required"`
}
