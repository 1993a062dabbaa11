package primary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/pkg/session"
)

// wireUnit decodes a unit in either the API's spelling or the console's.
type wireUnit struct {
	ID            string          `json:"id"`
	Course        json.RawMessage `json:"course"`
	CourseID      string          `json:"course_id"`
	ModuleType    models.UnitType `json:"module_type"`
	Type          models.UnitType `json:"type"`
	Title         string          `json:"title"`
	Description   *string         `json:"description"`
	SequenceOrder *int            `json:"sequence_order"`
	Order         *int            `json:"order"`
	IsMandatory   *bool           `json:"is_mandatory"`
	IsRequired    *bool           `json:"is_required"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (w wireUnit) toUnit(courseID string) models.Unit {
	u := models.Unit{
		ID:          w.ID,
		CourseID:    w.CourseID,
		Type:        w.ModuleType,
		Title:       w.Title,
		Description: w.Description,
		IsRequired:  true,
		CreatedAt:   w.CreatedAt,
	}
	if u.CourseID == "" && len(w.Course) > 0 {
		var id string
		if err := json.Unmarshal(w.Course, &id); err == nil {
			u.CourseID = id
		}
	}
	if u.CourseID == "" {
		u.CourseID = courseID
	}
	if u.Type == "" {
		u.Type = w.Type
	}
	switch {
	case w.SequenceOrder != nil:
		u.Order = *w.SequenceOrder
	case w.Order != nil:
		u.Order = *w.Order
	}
	switch {
	case w.IsMandatory != nil:
		u.IsRequired = *w.IsMandatory
	case w.IsRequired != nil:
		u.IsRequired = *w.IsRequired
	}
	return u
}

func toUnits(wire []wireUnit, courseID string) []models.Unit {
	units := make([]models.Unit, 0, len(wire))
	for _, w := range wire {
		units = append(units, w.toUnit(courseID))
	}
	return units
}

// unitBody is the write shape the API expects. Order is left to the server.
type unitBody struct {
	Course      string          `json:"course,omitempty"`
	ModuleType  models.UnitType `json:"module_type,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	IsMandatory bool            `json:"is_mandatory"`
}

// ListUnits returns the units of a course in their stored order.
func (c *Client) ListUnits(ctx context.Context, sess session.Session, courseID string) ([]models.Unit, error) {
	raw, err := c.do(ctx, sess, http.MethodGet, unitsPath+"?course_id="+url.QueryEscape(courseID), nil)
	if err != nil {
		return nil, err
	}
	wire, err := decodeList[wireUnit](raw)
	if err != nil {
		return nil, err
	}
	return toUnits(wire, courseID), nil
}

// CreateUnit adds a unit to a course.
func (c *Client) CreateUnit(ctx context.Context, sess session.Session, in models.UnitInput) (models.Unit, error) {
	body := unitBody{Course: in.CourseID, ModuleType: in.Type, Title: in.Title, Description: in.Description, IsMandatory: true}
	if in.IsRequired != nil {
		body.IsMandatory = *in.IsRequired
	}
	var wire wireUnit
	if err := c.sendJSON(ctx, sess, http.MethodPost, unitsPath, body, &wire); err != nil {
		return models.Unit{}, err
	}
	return wire.toUnit(in.CourseID), nil
}

// UpdateUnit writes the full unit back.
func (c *Client) UpdateUnit(ctx context.Context, sess session.Session, unit models.Unit) (models.Unit, error) {
	body := unitBody{Course: unit.CourseID, ModuleType: unit.Type, Title: unit.Title, Description: unit.Description, IsMandatory: unit.IsRequired}
	var wire wireUnit
	if err := c.sendJSON(ctx, sess, http.MethodPut, unitPath(unit.ID), body, &wire); err != nil {
		return models.Unit{}, err
	}
	return wire.toUnit(unit.CourseID), nil
}

// DeleteUnit removes a unit.
func (c *Client) DeleteUnit(ctx context.Context, sess session.Session, id string) error {
	_, err := c.do(ctx, sess, http.MethodDelete, unitPath(id), nil)
	return err
}
