package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-records-api/internal/models"
)

func newRecordMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func recordRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "institution_id", "student_id", "record_type", "period_type", "period_label",
		"title", "file_name", "file_url", "file_size", "source", "generated_by", "generated_at",
		"created_at", "updated_at",
	}).AddRow("rec-1", "inst-1", "stu-1", "MONTHLY_PROGRESS", "MONTHLY", "2026-03",
		"Monthly Progress Report", "s-0042-monthly-progress-2026-03.pdf", "data:application/pdf;base64,JVBERg==",
		int64(1024), "MANUAL", nil, now, now, now)
}

func TestFindByNaturalKeyHit(t *testing.T) {
	db, mock, cleanup := newRecordMock(t)
	defer cleanup()
	repo := NewStudentRecordRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM student_records").
		WithArgs("stu-1", models.PeriodMonthly, "2026-03", models.RecordTypeMonthlyProgress).
		WillReturnRows(recordRows())

	rec, err := repo.FindByNaturalKey(context.Background(), "stu-1", models.PeriodMonthly, "2026-03", models.RecordTypeMonthlyProgress)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, models.RecordTypeMonthlyProgress, rec.RecordType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByNaturalKeyMiss(t *testing.T) {
	db, mock, cleanup := newRecordMock(t)
	defer cleanup()
	repo := NewStudentRecordRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM student_records").
		WithArgs("stu-2", models.PeriodAnnual, "2026", models.RecordTypeIDCard).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec, err := repo.FindByNaturalKey(context.Background(), "stu-2", models.PeriodAnnual, "2026", models.RecordTypeIDCard)
	require.NoError(t, err)
	assert.Nil(t, rec, "absent natural key returns nil without error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUpsertsOnNaturalKey(t *testing.T) {
	db, mock, cleanup := newRecordMock(t)
	defer cleanup()
	repo := NewStudentRecordRepository(db)

	mock.ExpectQuery("INSERT INTO student_records (.+) ON CONFLICT \\(student_id, period_type, period_label, record_type\\) DO UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rec-existing"))

	rec := &models.StudentRecord{
		InstitutionID: "inst-1",
		StudentID:     "stu-1",
		RecordType:    models.RecordTypeIDCard,
		PeriodType:    models.PeriodAnnual,
		PeriodLabel:   "2026",
		Title:         "Student ID Card",
		FileName:      "s-0042-id-card-2026.pdf",
		FileURL:       "data:application/pdf;base64,JVBERg==",
		FileSize:      2048,
		Source:        models.SourceManual,
		GeneratedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), rec))
	assert.Equal(t, "rec-existing", rec.ID, "conflicting insert adopts the surviving row's id")
	assert.False(t, rec.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRequiresExistingRow(t *testing.T) {
	db, mock, cleanup := newRecordMock(t)
	defer cleanup()
	repo := NewStudentRecordRepository(db)

	mock.ExpectExec("UPDATE student_records SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.StudentRecord{ID: "missing"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newRecordMock(t)
	defer cleanup()
	repo := NewStudentRecordRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM student_records WHERE 1=1 AND institution_id = \\$1 ORDER BY generated_at DESC LIMIT 20 OFFSET 0").
		WithArgs("inst-1").
		WillReturnRows(recordRows())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM student_records WHERE 1=1 AND institution_id = \\$1").
		WithArgs("inst-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	records, total, err := repo.List(context.Background(), models.StudentRecordFilter{InstitutionID: "inst-1"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
