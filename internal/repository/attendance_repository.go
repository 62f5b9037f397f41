package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-records-api/internal/models"
)

// AttendanceRepository reads grouped attendance tallies.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// StatusCounts returns the number of attendance entries per status for a
// student.
func (r *AttendanceRepository) StatusCounts(ctx context.Context, studentID string) ([]models.AttendanceStatusCount, error) {
	query := `SELECT status, COUNT(*) AS count FROM attendance
        WHERE student_id = $1 GROUP BY status`

	var counts []models.AttendanceStatusCount
	if err := r.db.SelectContext(ctx, &counts, query, studentID); err != nil {
		return nil, fmt.Errorf("attendance status counts: %w", err)
	}
	return counts, nil
}
