package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-records-api/internal/models"
	appErrors "github.com/noah-isme/sma-records-api/pkg/errors"
)

type recordListerStub struct {
	records    []models.StudentRecord
	total      int
	lastFilter models.StudentRecordFilter
}

func (s *recordListerStub) List(ctx context.Context, filter models.StudentRecordFilter) ([]models.StudentRecord, int, error) {
	s.lastFilter = filter
	return s.records, s.total, nil
}

func exportRecords() []models.StudentRecord {
	return []models.StudentRecord{
		{
			StudentID:   "stu-1",
			RecordType:  models.RecordTypeIDCard,
			PeriodType:  models.PeriodAnnual,
			PeriodLabel: "2026",
			Title:       "Student ID Card",
			FileName:    "s-0001-id-card-2026.pdf",
			FileSize:    4096,
			Source:      models.SourceManual,
			GeneratedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportRegisterCSV(t *testing.T) {
	lister := &recordListerStub{records: exportRecords(), total: 1}
	svc := NewRecordExportService(lister, nil, true)

	result, err := svc.Export(context.Background(), models.StudentRecordFilter{}, "csv")
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.FileName, "records-register-"))

	body := string(result.Data)
	assert.Contains(t, body, "Student ID,Record Type")
	assert.Contains(t, body, "s-0001-id-card-2026.pdf")
	assert.Contains(t, body, "2026-08-01T09:00:00Z")

	assert.Equal(t, maxExportRows, lister.lastFilter.PageSize)
}

func TestExportRegisterPDF(t *testing.T) {
	svc := NewRecordExportService(&recordListerStub{records: exportRecords(), total: 1}, nil, true)

	result, err := svc.Export(context.Background(), models.StudentRecordFilter{}, "pdf")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestExportDefaultsToCSV(t *testing.T) {
	svc := NewRecordExportService(&recordListerStub{total: 0}, nil, true)

	result, err := svc.Export(context.Background(), models.StudentRecordFilter{}, "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := NewRecordExportService(&recordListerStub{}, nil, true)

	_, err := svc.Export(context.Background(), models.StudentRecordFilter{}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportDisabledByFlag(t *testing.T) {
	svc := NewRecordExportService(&recordListerStub{}, nil, false)

	_, err := svc.Export(context.Background(), models.StudentRecordFilter{}, "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
