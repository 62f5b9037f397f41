package dto

import "github.com/noah-isme/sma-records-api/internal/models"

// GenerateRecordRequest captures POST /records/generate payload.
type GenerateRecordRequest struct {
	InstitutionID string                   `json:"institution_id" binding:"required"`
	StudentID     string                   `json:"student_id" binding:"required"`
	RecordType    models.StudentRecordType `json:"record_type" binding:"required"`
	PeriodType    models.RecordPeriodType  `json:"period_type" binding:"required"`
	PeriodLabel   string                   `json:"period_label"`
	Regenerate    bool                     `json:"regenerate"`
}

// PeriodicRunRequest captures POST /records/periodic-run payload.
type PeriodicRunRequest struct {
	PeriodType  models.RecordPeriodType    `json:"period_type" binding:"required"`
	PeriodLabel string                     `json:"period_label"`
	RecordTypes []models.StudentRecordType `json:"record_types"`
}

// ListRecordsResponse carries one page of records with pagination metadata.
type ListRecordsResponse struct {
	Records    []models.StudentRecord `json:"records"`
	Pagination models.Pagination      `json:"pagination"`
}

// ListRecordsQuery captures GET /records query parameters.
type ListRecordsQuery struct {
	InstitutionID string `form:"institution_id"`
	StudentID     string `form:"student_id"`
	RecordType    string `form:"record_type"`
	PeriodType    string `form:"period_type"`
	PeriodLabel   string `form:"period_label"`
	Source        string `form:"source"`
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=20"`
}
