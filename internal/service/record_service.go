package service

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-records-api/internal/models"
	appErrors "github.com/noah-isme/sma-records-api/pkg/errors"
)

type recordStore interface {
	FindByNaturalKey(ctx context.Context, studentID string, periodType models.RecordPeriodType, periodLabel string, recordType models.StudentRecordType) (*models.StudentRecord, error)
	Create(ctx context.Context, rec *models.StudentRecord) error
	Update(ctx context.Context, rec *models.StudentRecord) error
}

type contextSource interface {
	Build(ctx context.Context, institutionID, studentID string) (*DocumentContext, error)
}

type documentRenderer interface {
	Render(ctx context.Context, doc *DocumentContext, category models.TemplateCategory, title, periodLabel string) ([]byte, error)
}

type recordMetrics interface {
	RecordGenerated(source string)
	RecordReused()
	RecordFailed()
}

// ArchiveStore persists plain-file copies of rendered documents.
type ArchiveStore interface {
	Save(filename string, data []byte) (string, error)
}

// RecordService owns the generation/idempotence contract for student record
// documents.
type RecordService struct {
	records      recordStore
	contexts     contextSource
	renderer     documentRenderer
	institutions institutionStore
	students     studentStore
	metrics      recordMetrics
	archive      ArchiveStore
	validator    *validator.Validate
	logger       *zap.Logger
	cfg          RecordServiceConfig
}

// RecordServiceConfig carries the feature flags the service honours.
type RecordServiceConfig struct {
	CronEnabled bool
}

// NewRecordService constructs the record service. metrics and archive are
// optional and may be nil.
func NewRecordService(records recordStore, contexts contextSource, renderer documentRenderer,
	institutions institutionStore, students studentStore, metrics recordMetrics,
	archive ArchiveStore, logger *zap.Logger, cfg RecordServiceConfig) *RecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService{
		records:      records,
		contexts:     contexts,
		renderer:     renderer,
		institutions: institutions,
		students:     students,
		metrics:      metrics,
		archive:      archive,
		validator:    validator.New(),
		logger:       logger,
		cfg:          cfg,
	}
}

// GenerateInput identifies one document generation request.
type GenerateInput struct {
	InstitutionID string                   `validate:"required"`
	StudentID     string                   `validate:"required"`
	RecordType    models.StudentRecordType `validate:"required"`
	PeriodType    models.RecordPeriodType  `validate:"required"`
	PeriodLabel   string
	Source        models.RecordSource
	GeneratedBy   string
	Regenerate    bool
}

// GenerateResult reports the persisted record and whether this call inserted
// it.
type GenerateResult struct {
	Created bool                  `json:"created"`
	Record  *models.StudentRecord `json:"record"`
}

// Generate produces (or returns) the document for a natural key. With
// regenerate unset, an existing record short-circuits before any context
// building or rendering happens.
func (s *RecordService) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation input")
	}
	if !in.RecordType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown record type")
	}
	if !in.PeriodType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown period type")
	}

	label := strings.TrimSpace(in.PeriodLabel)
	if label == "" {
		label = DefaultPeriodLabel(in.PeriodType, time.Now().UTC())
	}
	source := in.Source
	if source == "" {
		source = models.SourceManual
	}

	existing, err := s.records.FindByNaturalKey(ctx, in.StudentID, in.PeriodType, label, in.RecordType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up student record")
	}
	if existing != nil && !in.Regenerate {
		if s.metrics != nil {
			s.metrics.RecordReused()
		}
		return &GenerateResult{Created: false, Record: existing}, nil
	}

	doc, err := s.contexts.Build(ctx, in.InstitutionID, in.StudentID)
	if err != nil {
		s.countFailure()
		return nil, err
	}

	title := recordTitle(in.RecordType)
	category := in.RecordType.TemplateCategory()

	pdfBytes, err := s.renderer.Render(ctx, doc, category, title, label)
	if err != nil {
		s.countFailure()
		return nil, appErrors.Wrap(err, appErrors.ErrRenderFailed.Code, appErrors.ErrRenderFailed.Status, appErrors.ErrRenderFailed.Message)
	}

	fileName := recordFileName(doc.Student.NIS, in.RecordType, label)
	fileURL := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdfBytes)
	now := time.Now().UTC()

	if s.archive != nil {
		if _, archiveErr := s.archive.Save(fileName, pdfBytes); archiveErr != nil {
			s.logger.Warn("failed to archive rendered document",
				zap.String("file_name", fileName), zap.Error(archiveErr))
		}
	}

	var generatedBy *string
	if in.GeneratedBy != "" {
		generatedBy = &in.GeneratedBy
	}

	if existing == nil {
		rec := &models.StudentRecord{
			InstitutionID: in.InstitutionID,
			StudentID:     in.StudentID,
			RecordType:    in.RecordType,
			PeriodType:    in.PeriodType,
			PeriodLabel:   label,
			Title:         title,
			FileName:      fileName,
			FileURL:       fileURL,
			FileSize:      int64(len(pdfBytes)),
			Source:        source,
			GeneratedBy:   generatedBy,
			GeneratedAt:   now,
		}
		if err := s.records.Create(ctx, rec); err != nil {
			s.countFailure()
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist student record")
		}
		if s.metrics != nil {
			s.metrics.RecordGenerated(string(source))
		}
		return &GenerateResult{Created: true, Record: rec}, nil
	}

	existing.Title = title
	existing.FileName = fileName
	existing.FileURL = fileURL
	existing.FileSize = int64(len(pdfBytes))
	existing.Source = source
	existing.GeneratedBy = generatedBy
	existing.GeneratedAt = now
	if err := s.records.Update(ctx, existing); err != nil {
		s.countFailure()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student record")
	}
	if s.metrics != nil {
		s.metrics.RecordGenerated(string(source))
	}
	return &GenerateResult{Created: false, Record: existing}, nil
}

// PeriodicInput configures one batch run.
type PeriodicInput struct {
	PeriodType  models.RecordPeriodType
	PeriodLabel string
	RecordTypes []models.StudentRecordType
	GeneratedBy string
}

// PeriodicResult aggregates one batch run's outcome.
type PeriodicResult struct {
	Skipped     bool                    `json:"skipped"`
	PeriodType  models.RecordPeriodType `json:"period_type"`
	PeriodLabel string                  `json:"period_label"`
	Generated   int                     `json:"generated"`
	Reused      int                     `json:"reused"`
	Failed      int                     `json:"failed"`
}

// defaultRecordTypes picks the canonical progress document per period type.
func defaultRecordTypes(periodType models.RecordPeriodType) []models.StudentRecordType {
	switch periodType {
	case models.PeriodWeekly:
		return []models.StudentRecordType{models.RecordTypeWeeklyProgress}
	case models.PeriodMonthly:
		return []models.StudentRecordType{models.RecordTypeMonthlyProgress}
	case models.PeriodQuarterly:
		return []models.StudentRecordType{models.RecordTypeQuarterlyProgress}
	case models.PeriodAnnual:
		return []models.StudentRecordType{models.RecordTypeAnnualFinalReport}
	default:
		return []models.StudentRecordType{models.RecordTypeResultSheet}
	}
}

// GeneratePeriodic walks all active institutions and students, generating
// the requested record types with cron provenance. Per-item failures are
// counted, never raised, so one bad student cannot abort the run.
func (s *RecordService) GeneratePeriodic(ctx context.Context, in PeriodicInput) (*PeriodicResult, error) {
	if !in.PeriodType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown period type")
	}

	label := strings.TrimSpace(in.PeriodLabel)
	if label == "" {
		label = DefaultPeriodLabel(in.PeriodType, time.Now().UTC())
	}
	result := &PeriodicResult{PeriodType: in.PeriodType, PeriodLabel: label}

	if !s.cfg.CronEnabled {
		result.Skipped = true
		return result, nil
	}

	recordTypes := in.RecordTypes
	if len(recordTypes) == 0 {
		recordTypes = defaultRecordTypes(in.PeriodType)
	}

	institutions, err := s.institutions.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list institutions")
	}

	for _, inst := range institutions {
		students, err := s.students.ListActiveByInstitution(ctx, inst.ID)
		if err != nil {
			s.logger.Warn("skipping institution, student listing failed",
				zap.String("institution_id", inst.ID), zap.Error(err))
			continue
		}
		for _, student := range students {
			for _, recordType := range recordTypes {
				res, err := s.Generate(ctx, GenerateInput{
					InstitutionID: inst.ID,
					StudentID:     student.ID,
					RecordType:    recordType,
					PeriodType:    in.PeriodType,
					PeriodLabel:   label,
					Source:        models.SourceCron,
					GeneratedBy:   in.GeneratedBy,
				})
				if err != nil {
					result.Failed++
					s.logger.Warn("periodic generation failed",
						zap.String("institution_id", inst.ID),
						zap.String("student_id", student.ID),
						zap.String("record_type", string(recordType)),
						zap.Error(err))
					continue
				}
				if res.Created {
					result.Generated++
				} else {
					result.Reused++
				}
			}
		}
	}

	s.logger.Info("periodic generation finished",
		zap.String("period_type", string(in.PeriodType)),
		zap.String("period_label", label),
		zap.Int("generated", result.Generated),
		zap.Int("reused", result.Reused),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (s *RecordService) countFailure() {
	if s.metrics != nil {
		s.metrics.RecordFailed()
	}
}
