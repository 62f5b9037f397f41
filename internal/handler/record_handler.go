package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-records-api/internal/dto"
	"github.com/noah-isme/sma-records-api/internal/models"
	"github.com/noah-isme/sma-records-api/internal/service"
	appErrors "github.com/noah-isme/sma-records-api/pkg/errors"
	"github.com/noah-isme/sma-records-api/pkg/response"
)

type recordGenerator interface {
	Generate(ctx context.Context, in service.GenerateInput) (*service.GenerateResult, error)
	GeneratePeriodic(ctx context.Context, in service.PeriodicInput) (*service.PeriodicResult, error)
}

type recordQuerier interface {
	List(ctx context.Context, filter models.StudentRecordFilter) (*dto.ListRecordsResponse, error)
}

type recordExporter interface {
	Export(ctx context.Context, filter models.StudentRecordFilter, format string) (*service.ExportResult, error)
}

// RecordHandler exposes document generation and register endpoints.
type RecordHandler struct {
	records recordGenerator
	queries recordQuerier
	exports recordExporter
}

// NewRecordHandler constructs handler.
func NewRecordHandler(records recordGenerator, queries recordQuerier, exports recordExporter) *RecordHandler {
	return &RecordHandler{records: records, queries: queries, exports: exports}
}

// Generate handles POST /records/generate.
func (h *RecordHandler) Generate(c *gin.Context) {
	var req dto.GenerateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	input := service.GenerateInput{
		InstitutionID: req.InstitutionID,
		StudentID:     req.StudentID,
		RecordType:    req.RecordType,
		PeriodType:    req.PeriodType,
		PeriodLabel:   req.PeriodLabel,
		Regenerate:    req.Regenerate,
	}
	if claims := currentUser(c); claims != nil {
		input.GeneratedBy = claims.UserID
	}

	result, err := h.records.Generate(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.JSON(c, status, result, nil)
}

// PeriodicRun handles POST /records/periodic-run.
func (h *RecordHandler) PeriodicRun(c *gin.Context) {
	var req dto.PeriodicRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	input := service.PeriodicInput{
		PeriodType:  req.PeriodType,
		PeriodLabel: req.PeriodLabel,
		RecordTypes: req.RecordTypes,
	}
	if claims := currentUser(c); claims != nil {
		input.GeneratedBy = claims.UserID
	}

	result, err := h.records.GeneratePeriodic(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List handles GET /records.
func (h *RecordHandler) List(c *gin.Context) {
	var query dto.ListRecordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	result, err := h.queries.List(c.Request.Context(), recordFilter(query))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result.Records, &result.Pagination)
}

// Export handles GET /records/export.
func (h *RecordHandler) Export(c *gin.Context) {
	var query dto.ListRecordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	result, err := h.exports.Export(c.Request.Context(), recordFilter(query), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func recordFilter(query dto.ListRecordsQuery) models.StudentRecordFilter {
	return models.StudentRecordFilter{
		InstitutionID: query.InstitutionID,
		StudentID:     query.StudentID,
		RecordType:    query.RecordType,
		PeriodType:    query.PeriodType,
		PeriodLabel:   query.PeriodLabel,
		Source:        query.Source,
		Page:          query.Page,
		PageSize:      query.Limit,
	}
}
