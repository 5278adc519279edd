package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// LegacyRepository holds the queries behind the one-time orphan
// reconciliation: rows written before classes existed carry a zero or NULL
// class reference and need a home.
type LegacyRepository struct {
	db *sqlx.DB
}

// NewLegacyRepository constructs a LegacyRepository.
func NewLegacyRepository(db *sqlx.DB) *LegacyRepository {
	return &LegacyRepository{db: db}
}

// CountStudents returns the total number of student rows.
func (r *LegacyRepository) CountStudents(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM students`)
}

// CountAssignments returns the total number of assignment rows.
func (r *LegacyRepository) CountAssignments(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM assignments`)
}

// CountOrphanStudents counts students with no valid class reference.
func (r *LegacyRepository) CountOrphanStudents(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM students WHERE class_id IS NULL OR class_id = 0`)
}

// CountOrphanAssignments counts assignments with no valid class reference.
func (r *LegacyRepository) CountOrphanAssignments(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM assignments WHERE class_id IS NULL OR class_id = 0`)
}

// AssignOrphanStudents points every orphaned student at the target class.
func (r *LegacyRepository) AssignOrphanStudents(ctx context.Context, classID int64) (int64, error) {
	const query = `UPDATE students SET class_id = ? WHERE class_id IS NULL OR class_id = 0`
	res, err := r.db.ExecContext(ctx, query, classID)
	if err != nil {
		return 0, fmt.Errorf("assign orphan students: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("assign orphan students: %w", err)
	}
	return affected, nil
}

// AssignOrphanAssignments points every orphaned assignment at the target class.
func (r *LegacyRepository) AssignOrphanAssignments(ctx context.Context, classID int64) (int64, error) {
	const query = `UPDATE assignments SET class_id = ? WHERE class_id IS NULL OR class_id = 0`
	res, err := r.db.ExecContext(ctx, query, classID)
	if err != nil {
		return 0, fmt.Errorf("assign orphan assignments: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("assign orphan assignments: %w", err)
	}
	return affected, nil
}

func (r *LegacyRepository) count(ctx context.Context, query string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("legacy count: %w", err)
	}
	return count, nil
}
