// Package cli - интерактивное консольное меню парковки.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
	"github.com/frontandrew/parking/internal/report"
	"github.com/frontandrew/parking/internal/usecase/parking"
)

const (
	choicePark    = 1
	choiceUnpark  = 2
	choiceStatus  = 3
	choiceExit    = 4
	pressEnterMsg = "\nPress Enter to return to menu..."
)

// ParkingService определяет интерфейс сервиса парковки для консоли
type ParkingService interface {
	Park(ctx context.Context, req *parking.ParkRequest) (*parking.ParkResult, error)
	Unpark(ctx context.Context, req *parking.UnparkRequest) (*parking.UnparkResult, error)
	IsSlotAvailableFor(ctx context.Context, size domain.SizeClass) bool
	HasParkedVehicles(ctx context.Context) bool
	Status(ctx context.Context) *parking.StatusResult
	GenerateReport(ctx context.Context) (*parking.ReportResult, error)
}

// ServiceFactory создает сервис для парковки на slots мест
type ServiceFactory func(slots int) (ParkingService, error)

// App читает команды из in и печатает ответы в out
type App struct {
	in         *bufio.Scanner
	out        io.Writer
	newService ServiceFactory
	logger     logger.Logger
}

// NewApp создает консольное приложение
func NewApp(in io.Reader, out io.Writer, newService ServiceFactory, logger logger.Logger) *App {
	return &App{
		in:         bufio.NewScanner(in),
		out:        out,
		newService: newService,
		logger:     logger,
	}
}

// Run запускает меню. Если slots > 0, количество мест не спрашивается.
// Конец ввода равносилен выбору пункта Exit.
func (a *App) Run(ctx context.Context, slots int) error {
	a.println("")
	a.println("Welcome to the Parking Lot Management Application!")
	a.println("")

	if slots <= 0 {
		var ok bool
		slots, ok = a.askSlotCount()
		if !ok {
			return nil
		}
	}

	svc, err := a.newService(slots)
	if err != nil {
		return fmt.Errorf("failed to initialize parking lot: %w", err)
	}
	a.printInitialized(svc.Status(ctx))

	for {
		a.println("\n--- Menu ---")
		a.println("1. Park Vehicle")
		a.println("2. Unpark Vehicle")
		a.println("3. Display Parking Status")
		a.println("4. Exit")
		a.println("")
		a.print("Enter your choice: ")

		line, ok := a.readLine()
		if !ok {
			return a.exit(ctx, svc)
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			a.println("Invalid input. Please enter a number.")
			if !a.waitEnter("\nPress Enter to try again...") {
				return a.exit(ctx, svc)
			}
			continue
		}

		switch choice {
		case choicePark:
			if !a.park(ctx, svc) {
				return a.exit(ctx, svc)
			}
		case choiceUnpark:
			if !a.unpark(ctx, svc) {
				return a.exit(ctx, svc)
			}
		case choiceStatus:
			a.printStatus(svc.Status(ctx))
			if !a.waitEnter(pressEnterMsg) {
				return a.exit(ctx, svc)
			}
		case choiceExit:
			return a.exit(ctx, svc)
		default:
			a.println("Invalid choice. Please enter a number between 1 and 4.")
			if !a.waitEnter("\nPress Enter to try again...") {
				return a.exit(ctx, svc)
			}
		}
	}
}

func (a *App) askSlotCount() (int, bool) {
	for {
		a.print("Enter the total number of parking slots (N): ")
		line, ok := a.readLine()
		if !ok {
			return 0, false
		}

		n, err := strconv.Atoi(line)
		switch {
		case err != nil:
			a.println("Invalid input. Please enter a number.")
		case n <= 0:
			a.println("Please enter a positive number for slots.")
		default:
			return n, true
		}
	}
}

// park возвращает false, если ввод закончился
func (a *App) park(ctx context.Context, svc ParkingService) bool {
	a.println("")
	size, ok := a.askSize()
	if !ok {
		return false
	}

	if !svc.IsSlotAvailableFor(ctx, size) {
		a.println(fmt.Sprintf("No space available for %s vehicles.", size))
		return a.waitEnter(pressEnterMsg)
	}

	a.print("Enter vehicle license plate: ")
	plate, ok := a.readLine()
	if !ok {
		return false
	}

	res, err := svc.Park(ctx, &parking.ParkRequest{LicensePlate: plate, Size: size})
	switch {
	case err == nil:
		a.println("")
		a.println(fmt.Sprintf("Vehicle %s parked in Slot ID: %d (Size: %s)", res.LicensePlate, res.SlotID, res.SlotSize))
	case errors.Is(err, domain.ErrInvalidLicensePlate):
		a.println("License plate must not be empty.")
	case errors.Is(err, domain.ErrNoSlotAvailable):
		a.println(fmt.Sprintf("No suitable parking slot found for vehicle %s (Size: %s).", plate, size))
	default:
		a.logger.Error("Failed to park vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		a.println("Failed to park vehicle.")
	}

	return a.waitEnter(pressEnterMsg)
}

func (a *App) askSize() (domain.SizeClass, bool) {
	for {
		a.println("Select vehicle size:")
		a.println("  1. SMALL (Small and compact car)")
		a.println("  2. LARGE (Full-size car)")
		a.println("  3. OVERSIZE (SUV or Truck)")
		a.println("")
		a.print("Enter your choice (1-3): ")

		line, ok := a.readLine()
		if !ok {
			return 0, false
		}

		if _, err := strconv.Atoi(line); err != nil {
			a.println("Invalid input. Please enter a number.")
			continue
		}

		size, err := domain.ParseSizeClass(line)
		if err != nil {
			a.println("Invalid choice. Please enter a number between 1 and 3.")
			continue
		}
		return size, true
	}
}

// unpark возвращает false, если ввод закончился
func (a *App) unpark(ctx context.Context, svc ParkingService) bool {
	a.println("")
	a.println("Unpark Vehicle")
	a.println("")

	if !svc.HasParkedVehicles(ctx) {
		a.println("No vehicle parked yet.")
		return a.waitEnter(pressEnterMsg)
	}

	a.print("Enter license plate of vehicle to unpark: ")
	plate, ok := a.readLine()
	if !ok {
		return false
	}

	res, err := svc.Unpark(ctx, &parking.UnparkRequest{LicensePlate: plate})
	if err != nil {
		a.println("No vehicle found with that license plate.")
	} else {
		a.println("")
		a.println(fmt.Sprintf("Vehicle %s unparked from Slot ID: %d", res.LicensePlate, res.SlotID))
	}

	return a.waitEnter(pressEnterMsg)
}

func (a *App) exit(ctx context.Context, svc ParkingService) error {
	a.println("Exiting application. Generating report...")

	res, err := svc.GenerateReport(ctx)
	if err != nil {
		a.println(fmt.Sprintf("Error generating parking lot report: %v", err))
		return err
	}

	a.println("Parking lot report successfully generated to " + res.Path)
	return nil
}

func (a *App) printInitialized(status *parking.StatusResult) {
	a.println("")
	a.println(fmt.Sprintf("Parking lot initialized with %d slots:", status.TotalSlots))
	a.println(fmt.Sprintf("  %d Small slots", status.Counts.Small))
	a.println(fmt.Sprintf("  %d Large slots", status.Counts.Large))
	a.println(fmt.Sprintf("  %d Oversize slots", status.Counts.Oversize))
}

func (a *App) printStatus(status *parking.StatusResult) {
	a.println("\n--- Parking Lot Status ---")
	a.println("Available Slots: ")
	a.println(fmt.Sprintf("  Small: %d", status.Available[domain.SizeSmall]))
	a.println(fmt.Sprintf("  Large: %d", status.Available[domain.SizeLarge]))
	a.println(fmt.Sprintf("  Oversize: %d", status.Available[domain.SizeOversize]))
	a.println("--------------------------")
	for _, slot := range status.Slots {
		a.println(report.SlotLine(slot, false))
	}
	a.println("--------------------------")
}

func (a *App) waitEnter(prompt string) bool {
	a.println(prompt)
	_, ok := a.readLine()
	return ok
}

// readLine читает строку без окружающих пробелов; false - конец ввода
func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) print(s string) {
	fmt.Fprint(a.out, s)
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}
