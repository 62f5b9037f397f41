package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-records-api/internal/dto"
	"github.com/noah-isme/sma-records-api/internal/middleware"
	"github.com/noah-isme/sma-records-api/internal/models"
	"github.com/noah-isme/sma-records-api/internal/service"
)

type recordServiceMock struct {
	generateResp *service.GenerateResult
	generateErr  error
	periodicResp *service.PeriodicResult
	periodicErr  error
	lastInput    service.GenerateInput
}

func (m *recordServiceMock) Generate(ctx context.Context, in service.GenerateInput) (*service.GenerateResult, error) {
	m.lastInput = in
	return m.generateResp, m.generateErr
}

func (m *recordServiceMock) GeneratePeriodic(ctx context.Context, in service.PeriodicInput) (*service.PeriodicResult, error) {
	return m.periodicResp, m.periodicErr
}

type recordQuerierMock struct {
	resp *dto.ListRecordsResponse
	err  error
}

func (m *recordQuerierMock) List(ctx context.Context, filter models.StudentRecordFilter) (*dto.ListRecordsResponse, error) {
	return m.resp, m.err
}

type recordExporterMock struct {
	resp   *service.ExportResult
	err    error
	format string
}

func (m *recordExporterMock) Export(ctx context.Context, filter models.StudentRecordFilter, format string) (*service.ExportResult, error) {
	m.format = format
	return m.resp, m.err
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestRecordHandlerGenerateCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &recordServiceMock{
		generateResp: &service.GenerateResult{Created: true, Record: &models.StudentRecord{ID: "rec-1"}},
	}
	handler := NewRecordHandler(mockSvc, nil, nil)

	payload, _ := json.Marshal(dto.GenerateRecordRequest{
		InstitutionID: "inst-1",
		StudentID:     "stu-1",
		RecordType:    models.RecordTypeIDCard,
		PeriodType:    models.PeriodAnnual,
	})
	c, w := newGinContext(http.MethodPost, "/records/generate", payload)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1"})

	handler.Generate(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "admin-1", mockSvc.lastInput.GeneratedBy)
}

func TestRecordHandlerGenerateReusedReturnsOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &recordServiceMock{
		generateResp: &service.GenerateResult{Created: false, Record: &models.StudentRecord{ID: "rec-1"}},
	}
	handler := NewRecordHandler(mockSvc, nil, nil)

	payload, _ := json.Marshal(dto.GenerateRecordRequest{
		InstitutionID: "inst-1",
		StudentID:     "stu-1",
		RecordType:    models.RecordTypeIDCard,
		PeriodType:    models.PeriodAnnual,
	})
	c, w := newGinContext(http.MethodPost, "/records/generate", payload)

	handler.Generate(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.GenerateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.False(t, envelope.Data.Created)
}

func TestRecordHandlerGenerateRejectsBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRecordHandler(&recordServiceMock{}, nil, nil)

	c, w := newGinContext(http.MethodPost, "/records/generate", []byte(`{"student_id":"stu-1"}`))
	handler.Generate(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordHandlerPeriodicRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &recordServiceMock{
		periodicResp: &service.PeriodicResult{PeriodType: models.PeriodMonthly, PeriodLabel: "2026-03", Generated: 5},
	}
	handler := NewRecordHandler(mockSvc, nil, nil)

	payload, _ := json.Marshal(dto.PeriodicRunRequest{PeriodType: models.PeriodMonthly, PeriodLabel: "2026-03"})
	c, w := newGinContext(http.MethodPost, "/records/periodic-run", payload)

	handler.PeriodicRun(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRecordHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockQueries := &recordQuerierMock{
		resp: &dto.ListRecordsResponse{
			Records:    []models.StudentRecord{{ID: "rec-1"}},
			Pagination: models.Pagination{Page: 1, PageSize: 20, TotalCount: 1},
		},
	}
	handler := NewRecordHandler(&recordServiceMock{}, mockQueries, nil)

	c, w := newGinContext(http.MethodGet, "/records?student_id=stu-1", nil)
	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data       []models.StudentRecord `json:"data"`
		Pagination *models.Pagination     `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	require.NotNil(t, envelope.Pagination)
	require.Equal(t, 1, envelope.Pagination.TotalCount)
}

func TestRecordHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockExports := &recordExporterMock{
		resp: &service.ExportResult{Data: []byte("a,b\n"), ContentType: "text/csv", FileName: "records-register.csv"},
	}
	handler := NewRecordHandler(&recordServiceMock{}, nil, mockExports)

	c, w := newGinContext(http.MethodGet, "/records/export?format=csv", nil)
	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "csv", mockExports.format)
	require.Contains(t, w.Header().Get("Content-Disposition"), "records-register.csv")
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
}
