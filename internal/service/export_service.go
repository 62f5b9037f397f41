package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-records-api/internal/models"
	appErrors "github.com/noah-isme/sma-records-api/pkg/errors"
	"github.com/noah-isme/sma-records-api/pkg/export"
)

// maxExportRows bounds one register export so a single request cannot pull
// the whole table through memory.
const maxExportRows = 1000

var registerHeaders = []string{
	"Student ID", "Record Type", "Period Type", "Period", "Title",
	"File Name", "Size (bytes)", "Source", "Generated At",
}

// ExportResult carries a rendered register with its download metadata.
type ExportResult struct {
	Data        []byte
	ContentType string
	FileName    string
}

// RecordExportService renders the generation register as CSV or PDF for
// administrative download.
type RecordExportService struct {
	records recordLister
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
	enabled bool
}

// NewRecordExportService constructs the export service.
func NewRecordExportService(records recordLister, logger *zap.Logger, enabled bool) *RecordExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordExportService{
		records: records,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
		enabled: enabled,
	}
}

// Export renders the register for the given filter in the requested format.
func (s *RecordExportService) Export(ctx context.Context, filter models.StudentRecordFilter, format string) (*ExportResult, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "record exports are disabled")
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	filter.Page = 1
	filter.PageSize = maxExportRows
	records, total, err := s.records.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to collect records for export")
	}
	if total > maxExportRows {
		s.logger.Warn("register export truncated",
			zap.Int("total", total), zap.Int("limit", maxExportRows))
	}

	dataset := export.Dataset{Headers: registerHeaders, Rows: make([][]string, 0, len(records))}
	for _, rec := range records {
		dataset.Rows = append(dataset.Rows, []string{
			rec.StudentID,
			string(rec.RecordType),
			string(rec.PeriodType),
			rec.PeriodLabel,
			rec.Title,
			rec.FileName,
			fmt.Sprintf("%d", rec.FileSize),
			string(rec.Source),
			rec.GeneratedAt.UTC().Format(time.RFC3339),
		})
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	if format == "pdf" {
		data, err := s.pdf.Render(dataset, "Student Records Register")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render register pdf")
		}
		return &ExportResult{Data: data, ContentType: "application/pdf", FileName: "records-register-" + stamp + ".pdf"}, nil
	}

	data, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render register csv")
	}
	return &ExportResult{Data: data, ContentType: "text/csv", FileName: "records-register-" + stamp + ".csv"}, nil
}
