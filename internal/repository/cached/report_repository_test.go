package cached

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) HSet(ctx context.Context, key string, values map[string]interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, values, ttl).Error(0)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Name() string { return "archive" }

func (m *MockArchive) Save(ctx context.Context, report *domain.SessionReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockArchive) GetByID(ctx context.Context, id uuid.UUID) (*domain.SessionReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionReport), args.Error(1)
}

func testReport() *domain.SessionReport {
	return &domain.SessionReport{
		ID:          uuid.New(),
		GeneratedAt: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		TotalSlots:  4,
		Counts:      domain.TierCounts{Small: 1, Large: 1, Oversize: 2},
		Available:   map[domain.SizeClass]int{domain.SizeSmall: 1, domain.SizeLarge: 0, domain.SizeOversize: 2},
		Slots: []domain.SlotView{
			{ID: 1, Size: domain.SizeSmall},
			{ID: 2, Size: domain.SizeLarge, Occupied: true, LicensePlate: "MID1", VehicleSize: domain.SizeLarge},
			{ID: 3, Size: domain.SizeOversize},
			{ID: 4, Size: domain.SizeOversize},
		},
	}
}

func TestReportRepository_Save(t *testing.T) {
	ttl := time.Hour
	report := testReport()

	archive := new(MockArchive)
	archive.On("Save", mock.Anything, report).Return(nil)

	cache := new(MockCache)
	cache.On("Set", mock.Anything, reportCachePrefix+report.ID.String(), mock.Anything, ttl).Return(nil)
	cache.On("HSet", mock.Anything, occupancyKey, mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["occupied"] == "1" &&
			fields["total"] == "4" &&
			fields["available_SMALL"] == "1" &&
			fields["available_LARGE"] == "0" &&
			fields["available_OVERSIZE"] == "2"
	}), ttl).Return(nil)

	repo := NewReportRepository(archive, cache, ttl)
	assert.Equal(t, "redis+archive", repo.Name())
	require.NoError(t, repo.Save(context.Background(), report))

	archive.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestReportRepository_SaveArchiveFailure(t *testing.T) {
	report := testReport()

	archive := new(MockArchive)
	archive.On("Save", mock.Anything, report).Return(errors.New("db down"))
	cache := new(MockCache)

	err := NewReportRepository(archive, cache, time.Hour).Save(context.Background(), report)
	assert.Error(t, err)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportRepository_GetByID(t *testing.T) {
	report := testReport()
	payload, err := json.Marshal(report)
	require.NoError(t, err)
	key := reportCachePrefix + report.ID.String()

	t.Run("cache hit", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", mock.Anything, key).Return(string(payload), nil)
		archive := new(MockArchive)

		got, err := NewReportRepository(archive, cache, time.Hour).GetByID(context.Background(), report.ID)
		require.NoError(t, err)
		assert.Equal(t, report.ID, got.ID)
		archive.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("cache miss", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", mock.Anything, key).Return("", redisv9.Nil)
		cache.On("Set", mock.Anything, key, mock.Anything, time.Hour).Return(nil)
		archive := new(MockArchive)
		archive.On("GetByID", mock.Anything, report.ID).Return(report, nil)

		got, err := NewReportRepository(archive, cache, time.Hour).GetByID(context.Background(), report.ID)
		require.NoError(t, err)
		assert.Equal(t, report.ID, got.ID)
		cache.AssertExpectations(t)
		archive.AssertExpectations(t)
	})

	t.Run("miss without archive", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", mock.Anything, key).Return("", redisv9.Nil)

		_, err := NewReportRepository(nil, cache, time.Hour).GetByID(context.Background(), report.ID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})
}
