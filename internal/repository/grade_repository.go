package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-records-api/internal/models"
)

// GradeRepository reads scored assessments for the document context.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// RecentByStudent returns the most recent graded rows with their subject
// names resolved, newest first.
func (r *GradeRepository) RecentByStudent(ctx context.Context, studentID string, limit int) ([]models.GradeRow, error) {
	if limit <= 0 {
		limit = 24
	}
	query := fmt.Sprintf(`SELECT sub.name AS subject, g.score, g.max_score, g.created_at AS recorded_at
        FROM grades g
        JOIN subjects sub ON sub.id = g.subject_id
        WHERE g.student_id = $1
        ORDER BY g.created_at DESC
        LIMIT %d`, limit)

	var rows []models.GradeRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("recent grades: %w", err)
	}
	return rows, nil
}
