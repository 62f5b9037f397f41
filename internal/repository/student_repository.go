package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-records-api/internal/models"
)

// StudentRepository reads student identity scoped to an institution.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `s.id, s.institution_id, s.nis, s.first_name, s.last_name,
        c.name AS class_name, s.active, s.created_at, s.updated_at`

// GetForInstitution fetches a student only when it belongs to the given
// institution; otherwise sql.ErrNoRows surfaces through the wrap.
func (r *StudentRepository) GetForInstitution(ctx context.Context, studentID, institutionID string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students s
        LEFT JOIN classes c ON c.id = s.class_id
        WHERE s.id = $1 AND s.institution_id = $2`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, studentID, institutionID); err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &student, nil
}

// ListActiveByInstitution returns every active student of an institution.
func (r *StudentRepository) ListActiveByInstitution(ctx context.Context, institutionID string) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students s
        LEFT JOIN classes c ON c.id = s.class_id
        WHERE s.institution_id = $1 AND s.active = true ORDER BY s.nis`, studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, institutionID); err != nil {
		return nil, fmt.Errorf("list active students: %w", err)
	}
	return students, nil
}
