package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/trainer-console/internal/models"
)

type satelliteTable struct {
	name    string
	columns []string
}

// Column lists exclude id and unit_id, which every satellite table carries.
var satelliteTables = [...]satelliteTable{
	models.KindVideo:        {"video_units", []string{"video_url", "video_storage_path", "duration", "completion_type", "required_watch_percentage", "allow_skip", "allow_rewind"}},
	models.KindAudio:        {"audio_units", []string{"audio_url", "audio_storage_path", "duration"}},
	models.KindPresentation: {"presentation_units", []string{"file_url", "file_storage_path", "slide_count"}},
	models.KindText:         {"text_units", []string{"content"}},
	models.KindPage:         {"page_units", []string{"content", "version"}},
	models.KindQuiz:         {"quizzes", []string{"time_limit", "passing_score", "attempts_allowed", "show_answers", "randomize_questions", "mandatory_completion"}},
	models.KindAssignment:   {"assignments", []string{"submission_type", "due_date", "max_score", "instructions"}},
	models.KindScorm:        {"scorm_packages", []string{"package_type", "file_url", "file_storage_path", "version", "completion_tracking", "score_tracking"}},
	models.KindSurvey:       {"surveys", []string{"questions", "allow_anonymous"}},
}

var _ [models.NumContentKinds]satelliteTable = satelliteTables

func (t satelliteTable) selectList() string {
	return "id, unit_id, " + strings.Join(t.columns, ", ")
}

func (t satelliteTable) insertQuery() string {
	names := make([]string, 0, len(t.columns)+2)
	names = append(names, ":id", ":unit_id")
	for _, c := range t.columns {
		names = append(names, ":"+c)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, t.selectList(), strings.Join(names, ", "))
}

func (t satelliteTable) updateQuery() string {
	sets := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		sets = append(sets, fmt.Sprintf("%s = :%s", c, c))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", t.name, strings.Join(sets, ", "))
}

// ContentRepository stores unit satellite records, one table per content kind.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository constructs the repository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func tableFor(record models.Content) (satelliteTable, error) {
	kind := record.Kind()
	if kind < 0 || kind >= models.NumContentKinds {
		return satelliteTable{}, fmt.Errorf("unknown content kind %d", kind)
	}
	return satelliteTables[kind], nil
}

// FindByUnit loads the record attached to unitID into dest.
func (r *ContentRepository) FindByUnit(ctx context.Context, dest models.Content, unitID string) (bool, error) {
	return r.find(ctx, dest, "unit_id", unitID)
}

// FindByID loads the record with the given id into dest.
func (r *ContentRepository) FindByID(ctx context.Context, dest models.Content, id string) (bool, error) {
	return r.find(ctx, dest, "id", id)
}

func (r *ContentRepository) find(ctx context.Context, dest models.Content, column, value string) (bool, error) {
	table, err := tableFor(dest)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 LIMIT 1", table.selectList(), table.name, column)
	if err := r.db.GetContext(ctx, dest, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", table.name, err)
	}
	return true, nil
}

// Insert creates a satellite record.
func (r *ContentRepository) Insert(ctx context.Context, record models.Content) error {
	table, err := tableFor(record)
	if err != nil {
		return err
	}
	if _, err := r.db.NamedExecContext(ctx, table.insertQuery(), record); err != nil {
		return fmt.Errorf("insert %s: %w", table.name, err)
	}
	return nil
}

// Update overwrites a satellite record by id.
func (r *ContentRepository) Update(ctx context.Context, record models.Content) error {
	table, err := tableFor(record)
	if err != nil {
		return err
	}
	res, err := r.db.NamedExecContext(ctx, table.updateQuery(), record)
	if err != nil {
		return fmt.Errorf("update %s: %w", table.name, err)
	}
	return expectRow(res, "update "+table.name)
}
