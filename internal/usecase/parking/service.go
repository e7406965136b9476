package parking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/facility"
	"github.com/frontandrew/parking/internal/pkg/clock"
	"github.com/frontandrew/parking/internal/pkg/logger"
	"github.com/frontandrew/parking/internal/report"
	"github.com/frontandrew/parking/internal/repository"
	"github.com/google/uuid"
)

// ParkRequest - запрос на парковку
type ParkRequest struct {
	LicensePlate string           `json:"license_plate" validate:"required"`
	Size         domain.SizeClass `json:"size" validate:"required"`
}

// ParkResult - результат парковки
type ParkResult struct {
	SlotID       int              `json:"slot_id"`
	SlotSize     domain.SizeClass `json:"slot_size"`
	LicensePlate string           `json:"license_plate"`
	Size         domain.SizeClass `json:"size"`
	ParkedAt     time.Time        `json:"parked_at"`
}

// UnparkRequest - запрос на выезд
type UnparkRequest struct {
	LicensePlate string `json:"license_plate" validate:"required"`
}

// UnparkResult - результат выезда
type UnparkResult struct {
	SlotID       int       `json:"slot_id"`
	LicensePlate string    `json:"license_plate"`
	UnparkedAt   time.Time `json:"unparked_at"`
}

// StatusResult - текущее состояние парковки
type StatusResult struct {
	TotalSlots int                      `json:"total_slots"`
	Counts     domain.TierCounts        `json:"counts"`
	Available  map[domain.SizeClass]int `json:"available"`
	Slots      []domain.SlotView        `json:"slots"`
}

// HistoryEntry - событие истории вместе с длительностью стоянки
type HistoryEntry struct {
	domain.ParkingEvent
	DurationSeconds int64 `json:"duration_seconds"`
}

// ReportResult - результат выгрузки отчета
type ReportResult struct {
	Path   string                `json:"path"`
	Report *domain.SessionReport `json:"report"`
}

// Exporter сохраняет итоговый отчет
type Exporter interface {
	Export(ctx context.Context, r *domain.SessionReport) (string, error)
}

// Service содержит бизнес-логику парковки поверх ядра facility.
// Время операций берется из clock, ядро получает его параметром.
type Service struct {
	facility *facility.Facility
	exporter Exporter
	archive  repository.ReportArchive
	clock    clock.Clock
	logger   logger.Logger
}

// NewService создает новый экземпляр ParkingService
func NewService(
	facility *facility.Facility,
	exporter Exporter,
	archive repository.ReportArchive,
	clock clock.Clock,
	logger logger.Logger,
) *Service {
	return &Service{
		facility: facility,
		exporter: exporter,
		archive:  archive,
		clock:    clock,
		logger:   logger,
	}
}

// Park ставит автомобиль на первое подходящее свободное место
func (s *Service) Park(ctx context.Context, req *ParkRequest) (*ParkResult, error) {
	vehicle, err := domain.NewVehicle(req.LicensePlate, req.Size)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	slotID, err := s.facility.Park(vehicle, now)
	if err != nil {
		if errors.Is(err, domain.ErrNoSlotAvailable) {
			s.logger.Warn("No suitable parking slot found", map[string]interface{}{
				"license_plate": vehicle.LicensePlate,
				"size":          vehicle.Size.String(),
			})
		}
		return nil, err
	}

	slotSize, _ := s.facility.SlotSize(slotID)

	s.logger.Info("Vehicle parked", map[string]interface{}{
		"license_plate": vehicle.LicensePlate,
		"size":          vehicle.Size.String(),
		"slot_id":       slotID,
		"slot_size":     slotSize.String(),
	})

	return &ParkResult{
		SlotID:       slotID,
		SlotSize:     slotSize,
		LicensePlate: vehicle.LicensePlate,
		Size:         vehicle.Size,
		ParkedAt:     now,
	}, nil
}

// Unpark освобождает место, занятое автомобилем с указанным номером
func (s *Service) Unpark(ctx context.Context, req *UnparkRequest) (*UnparkResult, error) {
	now := s.clock.Now()
	slotID, err := s.facility.Unpark(req.LicensePlate, now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Vehicle not found for unpark", map[string]interface{}{
				"license_plate": req.LicensePlate,
			})
		}
		return nil, err
	}

	s.logger.Info("Vehicle unparked", map[string]interface{}{
		"license_plate": req.LicensePlate,
		"slot_id":       slotID,
	})

	return &UnparkResult{
		SlotID:       slotID,
		LicensePlate: req.LicensePlate,
		UnparkedAt:   now,
	}, nil
}

// IsSlotAvailableFor проверяет, есть ли место для автомобиля класса size
func (s *Service) IsSlotAvailableFor(ctx context.Context, size domain.SizeClass) bool {
	return s.facility.IsSlotAvailableFor(size)
}

// HasParkedVehicles проверяет, есть ли на парковке хоть один автомобиль
func (s *Service) HasParkedVehicles(ctx context.Context) bool {
	return s.facility.HasParkedVehicles()
}

// Status возвращает распределение, свободные места и состояние всех мест
func (s *Service) Status(ctx context.Context) *StatusResult {
	state := s.facility.State()
	return &StatusResult{
		TotalSlots: state.Counts.Total(),
		Counts:     state.Counts,
		Available:  state.Available,
		Slots:      state.Slots,
	}
}

// History возвращает историю парковок в порядке создания.
// Для незакрытых событий длительность считается до текущего момента.
func (s *Service) History(ctx context.Context) []HistoryEntry {
	now := s.clock.Now()
	events := s.facility.History()

	entries := make([]HistoryEntry, 0, len(events))
	for _, event := range events {
		entries = append(entries, HistoryEntry{
			ParkingEvent:    event,
			DurationSeconds: int64(event.Duration(now) / time.Second),
		})
	}
	return entries
}

// GenerateReport строит отчет на текущий момент и отдает его exporter
func (s *Service) GenerateReport(ctx context.Context) (*ReportResult, error) {
	r := report.Build(s.facility, s.clock.Now())

	path, err := s.exporter.Export(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to export report: %w", err)
	}

	s.logger.Info("Report generated", map[string]interface{}{
		"report_id":   r.ID,
		"path":        path,
		"events":      len(r.History),
		"total_slots": r.TotalSlots,
	})

	return &ReportResult{Path: path, Report: r}, nil
}

// Report возвращает ранее выгруженный отчет из архива
func (s *Service) Report(ctx context.Context, id uuid.UUID) (*domain.SessionReport, error) {
	if s.archive == nil {
		return nil, domain.ErrReportNotFound
	}

	r, err := s.archive.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrReportNotFound) {
			s.logger.Error("Failed to read report from archive", map[string]interface{}{
				"report_id": id,
				"archive":   s.archive.Name(),
				"error":     err.Error(),
			})
		}
		return nil, err
	}
	return r, nil
}
