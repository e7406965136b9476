package repository

import (
	"context"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/google/uuid"
)

// ReportRepository определяет хранилище итоговых отчетов сессий
// Состояние парковки между запусками не восстанавливается: хранится только отчет.
type ReportRepository interface {
	// Name возвращает имя хранилища для логов
	Name() string

	// Save сохраняет отчет
	Save(ctx context.Context, report *domain.SessionReport) error
}

// ReportArchive - хранилище, из которого отчет можно прочитать обратно
type ReportArchive interface {
	ReportRepository

	// GetByID возвращает отчет по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SessionReport, error)
}
