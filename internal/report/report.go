// Package report собирает итоговый отчет сессии и выводит его в текстовом виде.
package report

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/google/uuid"
)

const (
	timeLayout     = "2006-01-02 15:04:05"
	fileDateLayout = "02-01-2006"
	separator      = "--------------------------"
)

// Source - read-only представление парковки, из которого строится отчет
type Source interface {
	State() domain.FacilityState
}

// Build снимает состояние парковки на момент generatedAt
func Build(src Source, generatedAt time.Time) *domain.SessionReport {
	state := src.State()
	return &domain.SessionReport{
		ID:          uuid.New(),
		GeneratedAt: generatedAt,
		TotalSlots:  state.Counts.Total(),
		Counts:      state.Counts,
		Available:   state.Available,
		Slots:       state.Slots,
		History:     state.History,
	}
}

// FileName возвращает имя файла отчета за дату t
func FileName(t time.Time) string {
	return "parking_lot_report_" + t.Format(fileDateLayout) + ".txt"
}

// Render пишет отчет в текстовом формате
func Render(w io.Writer, r *domain.SessionReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "--- Parking Lot Report ---")
	fmt.Fprintf(bw, "Report Generated: %s\n", r.GeneratedAt.Format(timeLayout))
	fmt.Fprintln(bw, separator)
	fmt.Fprintf(bw, "Total Parking Slots: %d\n", r.TotalSlots)
	fmt.Fprintln(bw, "Slot Distribution:")
	fmt.Fprintf(bw, "  Small Slots: %d\n", r.Counts.Small)
	fmt.Fprintf(bw, "  Large Slots: %d\n", r.Counts.Large)
	fmt.Fprintf(bw, "  Oversize Slots: %d\n", r.Counts.Oversize)
	fmt.Fprintln(bw, separator)

	fmt.Fprintln(bw, "Current Slot Status:")
	for _, slot := range r.Slots {
		fmt.Fprintln(bw, SlotLine(slot, true))
	}
	fmt.Fprintln(bw, separator)

	fmt.Fprintln(bw, "\n--- Parking History ---")
	if len(r.History) == 0 {
		fmt.Fprintln(bw, "No vehicles have been parked yet during this session.")
	} else {
		for _, event := range r.History {
			fmt.Fprintln(bw, EventLine(event))
		}
	}
	fmt.Fprintln(bw, separator)

	return bw.Flush()
}

// SlotLine форматирует строку о месте. withVehicleSize добавляет класс стоящего автомобиля.
func SlotLine(slot domain.SlotView, withVehicleSize bool) string {
	status := slot.Status()
	if slot.Occupied && withVehicleSize {
		status += " (Size: " + slot.VehicleSize.String() + ")"
	}
	return fmt.Sprintf("Slot ID: %d, Size: %s, Status: %s", slot.ID, slot.Size, status)
}

// EventLine форматирует строку истории
func EventLine(e domain.ParkingEvent) string {
	unparked := "N/A (Still Parked)"
	if e.UnparkedAt != nil {
		unparked = e.UnparkedAt.Format(timeLayout)
	}
	return fmt.Sprintf("  License Plate: %s, Size: %s, Parked: %s, Unparked: %s",
		e.LicensePlate, e.Size, e.ParkedAt.Format(timeLayout), unparked)
}
