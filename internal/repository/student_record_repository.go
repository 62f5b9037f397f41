package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-records-api/internal/models"
)

// StudentRecordRepository manages persistence for generated student records.
// The natural key (student_id, period_type, period_label, record_type)
// carries a unique index; Create upserts against it so a concurrent
// duplicate insert can never produce two rows.
type StudentRecordRepository struct {
	db *sqlx.DB
}

// NewStudentRecordRepository constructs a StudentRecordRepository.
func NewStudentRecordRepository(db *sqlx.DB) *StudentRecordRepository {
	return &StudentRecordRepository{db: db}
}

const studentRecordColumns = `id, institution_id, student_id, record_type, period_type, period_label,
        title, file_name, file_url, file_size, source, generated_by, generated_at, created_at, updated_at`

// FindByNaturalKey fetches the record stored for the natural key, or nil
// when none exists.
func (r *StudentRecordRepository) FindByNaturalKey(ctx context.Context, studentID string, periodType models.RecordPeriodType, periodLabel string, recordType models.StudentRecordType) (*models.StudentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_records
        WHERE student_id = $1 AND period_type = $2 AND period_label = $3 AND record_type = $4`, studentRecordColumns)

	var records []models.StudentRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID, periodType, periodLabel, recordType); err != nil {
		return nil, fmt.Errorf("find student record: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// Create inserts a record, relying on the natural-key unique index as the
// only concurrency guard: a racing insert for the same key collapses into an
// update of the row that won.
func (r *StudentRecordRepository) Create(ctx context.Context, rec *models.StudentRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	query := `INSERT INTO student_records (id, institution_id, student_id, record_type, period_type, period_label,
        title, file_name, file_url, file_size, source, generated_by, generated_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        ON CONFLICT (student_id, period_type, period_label, record_type) DO UPDATE SET
        title = EXCLUDED.title, file_name = EXCLUDED.file_name, file_url = EXCLUDED.file_url,
        file_size = EXCLUDED.file_size, source = EXCLUDED.source, generated_by = EXCLUDED.generated_by,
        generated_at = EXCLUDED.generated_at, updated_at = EXCLUDED.updated_at
        RETURNING id`

	var id string
	if err := r.db.GetContext(ctx, &id, query,
		rec.ID, rec.InstitutionID, rec.StudentID, rec.RecordType, rec.PeriodType, rec.PeriodLabel,
		rec.Title, rec.FileName, rec.FileURL, rec.FileSize, rec.Source, rec.GeneratedBy,
		rec.GeneratedAt, rec.CreatedAt, rec.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create student record: %w", err)
	}
	rec.ID = id
	return nil
}

// Update replaces the regenerable fields of an existing record.
func (r *StudentRecordRepository) Update(ctx context.Context, rec *models.StudentRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	query := `UPDATE student_records SET title = $2, file_name = $3, file_url = $4, file_size = $5,
        source = $6, generated_by = $7, generated_at = $8, updated_at = $9
        WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Title, rec.FileName, rec.FileURL, rec.FileSize,
		rec.Source, rec.GeneratedBy, rec.GeneratedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update student record: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update student record: no row with id %s", rec.ID)
	}
	return nil
}

// List returns records matching the filter, most recent first.
func (r *StudentRecordRepository) List(ctx context.Context, filter models.StudentRecordFilter) ([]models.StudentRecord, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.InstitutionID != "" {
		conditions = append(conditions, fmt.Sprintf("institution_id = $%d", len(args)+1))
		args = append(args, filter.InstitutionID)
	}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.RecordType != "" {
		conditions = append(conditions, fmt.Sprintf("record_type = $%d", len(args)+1))
		args = append(args, filter.RecordType)
	}
	if filter.PeriodType != "" {
		conditions = append(conditions, fmt.Sprintf("period_type = $%d", len(args)+1))
		args = append(args, filter.PeriodType)
	}
	if filter.PeriodLabel != "" {
		conditions = append(conditions, fmt.Sprintf("period_label = $%d", len(args)+1))
		args = append(args, filter.PeriodLabel)
	}
	if filter.Source != "" {
		conditions = append(conditions, fmt.Sprintf("source = $%d", len(args)+1))
		args = append(args, filter.Source)
	}
	where := strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s FROM student_records WHERE %s ORDER BY generated_at DESC LIMIT %d OFFSET %d`,
		studentRecordColumns, where, size, offset)

	var records []models.StudentRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list student records: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM student_records WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count student records: %w", err)
	}
	return records, total, nil
}
