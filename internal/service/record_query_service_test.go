package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-records-api/internal/models"
	appErrors "github.com/noah-isme/sma-records-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries map[string][]byte
	sets    int
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	return nil
}

type countingLister struct {
	records []models.StudentRecord
	total   int
	calls   int
}

func (s *countingLister) List(ctx context.Context, filter models.StudentRecordFilter) ([]models.StudentRecord, int, error) {
	s.calls++
	return s.records, s.total, nil
}

func TestQueryServiceListPopulatesPagination(t *testing.T) {
	lister := &countingLister{records: []models.StudentRecord{{ID: "rec-1"}}, total: 41}
	svc := NewRecordQueryService(lister, nil, time.Minute, nil)

	result, err := svc.List(context.Background(), models.StudentRecordFilter{Page: 3, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Pagination.Page)
	assert.Equal(t, 10, result.Pagination.PageSize)
	assert.Equal(t, 41, result.Pagination.TotalCount)
	require.Len(t, result.Records, 1)
}

func TestQueryServiceListServesSecondCallFromCache(t *testing.T) {
	lister := &countingLister{records: []models.StudentRecord{{ID: "rec-1"}}, total: 1}
	cacheSvc := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	svc := NewRecordQueryService(lister, cacheSvc, time.Minute, nil)

	filter := models.StudentRecordFilter{StudentID: "stu-1"}

	first, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, 1, lister.calls, "second listing comes from cache")
	assert.Equal(t, first.Pagination, second.Pagination)
	assert.Equal(t, first.Records[0].ID, second.Records[0].ID)
}

func TestQueryServiceDistinctFiltersMissCache(t *testing.T) {
	lister := &countingLister{total: 0}
	cacheSvc := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	svc := NewRecordQueryService(lister, cacheSvc, time.Minute, nil)

	_, err := svc.List(context.Background(), models.StudentRecordFilter{StudentID: "stu-1"})
	require.NoError(t, err)
	_, err = svc.List(context.Background(), models.StudentRecordFilter{StudentID: "stu-2"})
	require.NoError(t, err)

	assert.Equal(t, 2, lister.calls)
}

func TestQueryServiceListWithoutCache(t *testing.T) {
	lister := &countingLister{total: 0}
	svc := NewRecordQueryService(lister, nil, 0, nil)

	result, err := svc.List(context.Background(), models.StudentRecordFilter{})
	require.NoError(t, err)
	assert.NotNil(t, result.Records, "empty listings marshal as an array")
}
