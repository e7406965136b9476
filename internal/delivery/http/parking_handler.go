package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
	"github.com/frontandrew/parking/internal/usecase/parking"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ParkingService определяет интерфейс для сервиса парковки
type ParkingService interface {
	Park(ctx context.Context, req *parking.ParkRequest) (*parking.ParkResult, error)
	Unpark(ctx context.Context, req *parking.UnparkRequest) (*parking.UnparkResult, error)
	IsSlotAvailableFor(ctx context.Context, size domain.SizeClass) bool
	Status(ctx context.Context) *parking.StatusResult
	History(ctx context.Context) []parking.HistoryEntry
	GenerateReport(ctx context.Context) (*parking.ReportResult, error)
	Report(ctx context.Context, id uuid.UUID) (*domain.SessionReport, error)
}

// ParkingHandler обрабатывает запросы парковки
type ParkingHandler struct {
	parkingService ParkingService
	logger         logger.Logger
}

// NewParkingHandler создает новый handler
func NewParkingHandler(parkingService ParkingService, logger logger.Logger) *ParkingHandler {
	return &ParkingHandler{
		parkingService: parkingService,
		logger:         logger,
	}
}

// Park ставит автомобиль на место
// POST /api/v1/park
func (h *ParkingHandler) Park(w http.ResponseWriter, r *http.Request) {
	var req parking.ParkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, domain.ErrInvalidSizeClass) {
			respondError(w, http.StatusBadRequest, "Invalid vehicle size")
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.parkingService.Park(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidLicensePlate):
			respondError(w, http.StatusBadRequest, "Invalid license plate")
		case errors.Is(err, domain.ErrInvalidSizeClass):
			respondError(w, http.StatusBadRequest, "Invalid vehicle size")
		case errors.Is(err, domain.ErrNoSlotAvailable):
			respondError(w, http.StatusConflict, "No suitable parking slot available")
		default:
			h.logger.Error("Failed to park vehicle", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to park vehicle")
		}
		return
	}

	respondData(w, http.StatusCreated, res)
}

// Unpark освобождает место
// POST /api/v1/unpark
func (h *ParkingHandler) Unpark(w http.ResponseWriter, r *http.Request) {
	var req parking.UnparkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.parkingService.Unpark(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "No vehicle found with that license plate")
			return
		}
		h.logger.Error("Failed to unpark vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to unpark vehicle")
		return
	}

	respondData(w, http.StatusOK, res)
}

// GetStatus возвращает состояние парковки
// GET /api/v1/status
func (h *ParkingHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, h.parkingService.Status(r.Context()))
}

// GetHistory возвращает историю парковок
// GET /api/v1/history
func (h *ParkingHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, h.parkingService.History(r.Context()))
}

// GetAvailability проверяет, есть ли место для автомобиля класса size
// GET /api/v1/availability/{size}
func (h *ParkingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	size, err := domain.ParseSizeClass(chi.URLParam(r, "size"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vehicle size")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"size":      size,
		"available": h.parkingService.IsSlotAvailableFor(r.Context(), size),
	})
}

// GenerateReport выгружает итоговый отчет
// POST /api/v1/report
func (h *ParkingHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	res, err := h.parkingService.GenerateReport(r.Context())
	if err != nil {
		h.logger.Error("Failed to generate report", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	respondData(w, http.StatusCreated, res)
}

// GetReport возвращает выгруженный ранее отчет из архива
// GET /api/v1/reports/{id}
func (h *ParkingHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid report ID")
		return
	}

	report, err := h.parkingService.Report(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			respondError(w, http.StatusNotFound, "Report not found")
			return
		}
		h.logger.Error("Failed to get report", map[string]interface{}{
			"report_id": id,
			"error":     err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get report")
		return
	}

	respondData(w, http.StatusOK, report)
}
