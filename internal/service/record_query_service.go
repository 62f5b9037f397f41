package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-records-api/internal/dto"
	"github.com/noah-isme/sma-records-api/internal/models"
	appErrors "github.com/noah-isme/sma-records-api/pkg/errors"
)

type recordLister interface {
	List(ctx context.Context, filter models.StudentRecordFilter) ([]models.StudentRecord, int, error)
}

// RecordQueryService serves record listings, fronted by a short-TTL cache.
// Entries expire rather than being invalidated, so a listing can lag a
// fresh generation by at most the TTL.
type RecordQueryService struct {
	records recordLister
	cache   *CacheService
	ttl     time.Duration
	logger  *zap.Logger
}

// NewRecordQueryService constructs the query service. cache may be nil.
func NewRecordQueryService(records recordLister, cache *CacheService, ttl time.Duration, logger *zap.Logger) *RecordQueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RecordQueryService{records: records, cache: cache, ttl: ttl, logger: logger}
}

// List returns one page of records matching the filter.
func (s *RecordQueryService) List(ctx context.Context, filter models.StudentRecordFilter) (*dto.ListRecordsResponse, error) {
	key := listCacheKey(filter)
	if s.cache != nil {
		var cached dto.ListRecordsResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	records, total, err := s.records.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student records")
	}
	if records == nil {
		records = []models.StudentRecord{}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}

	result := &dto.ListRecordsResponse{
		Records:    records,
		Pagination: models.Pagination{Page: page, PageSize: size, TotalCount: total},
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
			s.logger.Warn("record listing cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return result, nil
}

func listCacheKey(filter models.StudentRecordFilter) string {
	return fmt.Sprintf("records:list:%s:%s:%s:%s:%s:%s:%d:%d",
		filter.InstitutionID, filter.StudentID, filter.RecordType,
		filter.PeriodType, filter.PeriodLabel, filter.Source,
		filter.Page, filter.PageSize)
}
