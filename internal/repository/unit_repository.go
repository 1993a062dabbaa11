package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/trainer-console/internal/models"
)

const unitColumns = `id, course_id, type, title, description, "order", is_required, created_at`

// UnitRepository persists units on the secondary store.
type UnitRepository struct {
	db *sqlx.DB
}

// NewUnitRepository constructs the repository.
func NewUnitRepository(db *sqlx.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

// ListByCourse returns the units of a course in position order.
func (r *UnitRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Unit, error) {
	query := fmt.Sprintf(`SELECT %s FROM units WHERE course_id = $1 ORDER BY "order" ASC`, unitColumns)
	var units []models.Unit
	if err := r.db.SelectContext(ctx, &units, query, courseID); err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	if units == nil {
		units = []models.Unit{}
	}
	return units, nil
}

// FindByID returns a unit or sql.ErrNoRows.
func (r *UnitRepository) FindByID(ctx context.Context, id string) (*models.Unit, error) {
	query := fmt.Sprintf(`SELECT %s FROM units WHERE id = $1`, unitColumns)
	var unit models.Unit
	if err := r.db.GetContext(ctx, &unit, query, id); err != nil {
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &unit, nil
}

// Create appends a unit to its course. The position is assigned by the store.
func (r *UnitRepository) Create(ctx context.Context, unit *models.Unit) error {
	if unit.ID == "" {
		unit.ID = uuid.NewString()
	}
	if unit.CreatedAt.IsZero() {
		unit.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO units (id, course_id, type, title, description, "order", is_required, created_at)
        VALUES ($1, $2, $3, $4, $5, (SELECT COALESCE(MAX("order") + 1, 0) FROM units WHERE course_id = $2), $6, $7)
        RETURNING "order"`
	row := r.db.QueryRowxContext(ctx, query, unit.ID, unit.CourseID, unit.Type, unit.Title, unit.Description, unit.IsRequired, unit.CreatedAt)
	if err := row.Scan(&unit.Order); err != nil {
		return fmt.Errorf("create unit: %w", err)
	}
	return nil
}

// Update writes the mutable fields of a unit.
func (r *UnitRepository) Update(ctx context.Context, unit *models.Unit) error {
	const query = `UPDATE units SET title = :title, description = :description, is_required = :is_required WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, unit)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	return expectRow(res, "update unit")
}

// Delete removes a unit.
func (r *UnitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return expectRow(res, "delete unit")
}

// Reorder assigns positions 0..n-1 following ids, atomically.
func (r *UnitRepository) Reorder(ctx context.Context, courseID string, ids []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reorder units: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck
	for pos, id := range ids {
		res, err := tx.ExecContext(ctx, `UPDATE units SET "order" = $1 WHERE id = $2 AND course_id = $3`, pos, id, courseID)
		if err != nil {
			return fmt.Errorf("reorder unit %s: %w", id, err)
		}
		if err := expectRow(res, "reorder unit "+id); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder units: %w", err)
	}
	return nil
}
