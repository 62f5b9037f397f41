package models

import "time"

// StudentRecordType enumerates the document kinds the service can generate.
type StudentRecordType string

const (
	RecordTypeIDCard                StudentRecordType = "ID_CARD"
	RecordTypeResultSheet           StudentRecordType = "RESULT_SHEET"
	RecordTypeAttendanceRecord      StudentRecordType = "ATTENDANCE_RECORD"
	RecordTypeBehaviorTracking      StudentRecordType = "BEHAVIOR_TRACKING"
	RecordTypeFinalExamCertificate  StudentRecordType = "FINAL_EXAM_CERTIFICATE"
	RecordTypeCharacterCertificate  StudentRecordType = "CHARACTER_CERTIFICATE"
	RecordTypeExtraSkillsCert       StudentRecordType = "EXTRA_SKILLS_CERTIFICATE"
	RecordTypeTransferCertificate   StudentRecordType = "TRANSFER_CERTIFICATE"
	RecordTypeWeeklyProgress        StudentRecordType = "WEEKLY_PROGRESS"
	RecordTypeMonthlyProgress       StudentRecordType = "MONTHLY_PROGRESS"
	RecordTypeQuarterlyProgress     StudentRecordType = "QUARTERLY_PROGRESS"
	RecordTypeAnnualFinalReport     StudentRecordType = "ANNUAL_FINAL_REPORT"
)

// RecordPeriodType enumerates the period granularities a record covers.
type RecordPeriodType string

const (
	PeriodWeekly    RecordPeriodType = "WEEKLY"
	PeriodMonthly   RecordPeriodType = "MONTHLY"
	PeriodQuarterly RecordPeriodType = "QUARTERLY"
	PeriodAnnual    RecordPeriodType = "ANNUAL"
	PeriodCustom    RecordPeriodType = "CUSTOM"
)

// RecordSource tracks who triggered generation.
type RecordSource string

const (
	SourceManual RecordSource = "MANUAL"
	SourceCron   RecordSource = "CRON"
)

// TemplateCategory is the layout family a record type renders through.
type TemplateCategory string

const (
	CategoryIDCard      TemplateCategory = "ID_CARD"
	CategoryCertificate TemplateCategory = "CERTIFICATE"
	CategoryReport      TemplateCategory = "REPORT"
)

// TemplateCategory maps every record type to its layout family. Unrecognised
// values fall back to the tabular report layout.
func (t StudentRecordType) TemplateCategory() TemplateCategory {
	switch t {
	case RecordTypeIDCard:
		return CategoryIDCard
	case RecordTypeFinalExamCertificate, RecordTypeCharacterCertificate,
		RecordTypeExtraSkillsCert, RecordTypeTransferCertificate:
		return CategoryCertificate
	case RecordTypeResultSheet, RecordTypeAttendanceRecord, RecordTypeBehaviorTracking,
		RecordTypeWeeklyProgress, RecordTypeMonthlyProgress, RecordTypeQuarterlyProgress,
		RecordTypeAnnualFinalReport:
		return CategoryReport
	default:
		return CategoryReport
	}
}

// Valid reports whether the record type is one of the known enum values.
func (t StudentRecordType) Valid() bool {
	switch t {
	case RecordTypeIDCard, RecordTypeResultSheet, RecordTypeAttendanceRecord,
		RecordTypeBehaviorTracking, RecordTypeFinalExamCertificate,
		RecordTypeCharacterCertificate, RecordTypeExtraSkillsCert,
		RecordTypeTransferCertificate, RecordTypeWeeklyProgress,
		RecordTypeMonthlyProgress, RecordTypeQuarterlyProgress,
		RecordTypeAnnualFinalReport:
		return true
	}
	return false
}

// Valid reports whether the period type is one of the known enum values.
func (p RecordPeriodType) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodAnnual, PeriodCustom:
		return true
	}
	return false
}

// StudentRecord is a generated document versioned by its natural key
// (student_id, period_type, period_label, record_type), which carries a
// unique index at the storage layer.
type StudentRecord struct {
	ID            string            `db:"id" json:"id"`
	InstitutionID string            `db:"institution_id" json:"institution_id"`
	StudentID     string            `db:"student_id" json:"student_id"`
	RecordType    StudentRecordType `db:"record_type" json:"record_type"`
	PeriodType    RecordPeriodType  `db:"period_type" json:"period_type"`
	PeriodLabel   string            `db:"period_label" json:"period_label"`
	Title         string            `db:"title" json:"title"`
	FileName      string            `db:"file_name" json:"file_name"`
	FileURL       string            `db:"file_url" json:"file_url"`
	FileSize      int64             `db:"file_size" json:"file_size"`
	Source        RecordSource      `db:"source" json:"source"`
	GeneratedBy   *string           `db:"generated_by" json:"generated_by,omitempty"`
	GeneratedAt   time.Time         `db:"generated_at" json:"generated_at"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// StudentRecordFilter encapsulates list parameters for the records register.
type StudentRecordFilter struct {
	InstitutionID string
	StudentID     string
	RecordType    string
	PeriodType    string
	PeriodLabel   string
	Source        string
	Page          int
	PageSize      int
}
