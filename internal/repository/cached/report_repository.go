package cached

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/repository"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
)

const (
	reportCachePrefix = "parking:report:"
	occupancyKey      = "parking:occupancy"
)

// Cache - операции Redis, которые использует репозиторий (реализуется pkg/redis.Client)
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	HSet(ctx context.Context, key string, values map[string]interface{}, ttl time.Duration) error
}

// ReportRepository публикует загрузку парковки в Redis и кэширует отчеты
// перед архивом. archive может быть nil - тогда Redis единственное хранилище.
type ReportRepository struct {
	archive repository.ReportArchive
	cache   Cache
	ttl     time.Duration
}

// NewReportRepository создает кэшируемый репозиторий отчетов
func NewReportRepository(archive repository.ReportArchive, cache Cache, ttl time.Duration) *ReportRepository {
	return &ReportRepository{
		archive: archive,
		cache:   cache,
		ttl:     ttl,
	}
}

func (r *ReportRepository) Name() string {
	if r.archive != nil {
		return "redis+" + r.archive.Name()
	}
	return "redis"
}

// Save сохраняет отчет в архив (если есть), затем обновляет кэш и сводку загрузки
func (r *ReportRepository) Save(ctx context.Context, report *domain.SessionReport) error {
	if r.archive != nil {
		if err := r.archive.Save(ctx, report); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := r.cache.Set(ctx, reportCachePrefix+report.ID.String(), payload, r.ttl); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}

	if err := r.cache.HSet(ctx, occupancyKey, occupancyFields(report), r.ttl); err != nil {
		return fmt.Errorf("failed to publish occupancy: %w", err)
	}

	return nil
}

// GetByID читает отчет из кэша, при промахе идет в архив и кладет результат в кэш
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SessionReport, error) {
	cacheKey := reportCachePrefix + id.String()

	// 1. Проверяем кэш
	cachedPayload, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		report := &domain.SessionReport{}
		if jsonErr := json.Unmarshal([]byte(cachedPayload), report); jsonErr == nil {
			return report, nil
		}
	} else if !errors.Is(err, redisv9.Nil) && r.archive == nil {
		return nil, fmt.Errorf("failed to read report cache: %w", err)
	}

	// 2. Cache miss - идем в архив
	if r.archive == nil {
		return nil, domain.ErrReportNotFound
	}

	report, err := r.archive.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Сохраняем результат в кэш (ошибка не критична)
	if payload, err := json.Marshal(report); err == nil {
		_ = r.cache.Set(ctx, cacheKey, payload, r.ttl)
	}

	return report, nil
}

// occupancyFields собирает сводку загрузки для хеша parking:occupancy
func occupancyFields(report *domain.SessionReport) map[string]interface{} {
	fields := map[string]interface{}{
		"report_id":    report.ID.String(),
		"generated_at": report.GeneratedAt.Format(time.RFC3339),
		"total":        strconv.Itoa(report.TotalSlots),
		"occupied":     strconv.Itoa(report.OccupiedSlots()),
	}
	for _, size := range domain.AllSizeClasses() {
		fields["available_"+size.String()] = strconv.Itoa(report.Available[size])
	}
	return fields
}
