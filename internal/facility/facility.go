// Package facility содержит ядро парковки: места, их распределение по классам
// и историю парковок. Пакет не выполняет ввод-вывод и не читает системное время:
// момент операции всегда передает вызывающая сторона.
package facility

import (
	"sync"
	"time"

	"github.com/frontandrew/parking/internal/domain"
)

// Split делит total мест на три класса; остаток достается Oversize
func Split(total int) domain.TierCounts {
	small := total / 3
	large := total / 3
	return domain.TierCounts{
		Small:    small,
		Large:    large,
		Oversize: total - small - large,
	}
}

// Facility владеет местами и историей и является единственным, кто их изменяет.
// Все операции атомарны относительно друг друга: место и история меняются под одной блокировкой.
type Facility struct {
	mu      sync.RWMutex
	slots   []*domain.Slot
	history []*domain.ParkingEvent
	counts  domain.TierCounts
}

// New создает парковку на totalSlots мест.
// Идентификаторы выдаются подряд с 1: сначала Small, затем Large, затем Oversize.
func New(totalSlots int) (*Facility, error) {
	if totalSlots <= 0 {
		return nil, domain.ErrInvalidConfiguration
	}

	counts := Split(totalSlots)
	f := &Facility{
		slots:   make([]*domain.Slot, 0, totalSlots),
		history: make([]*domain.ParkingEvent, 0),
		counts:  counts,
	}

	id := 1
	for _, size := range domain.AllSizeClasses() {
		for i := 0; i < counts.Of(size); i++ {
			f.slots = append(f.slots, domain.NewSlot(id, size))
			id++
		}
	}

	return f, nil
}

// Park ставит автомобиль на первое свободное подходящее место (first-fit, в порядке id).
// Один и тот же номер может занять несколько мест одновременно: дубликаты не отсекаются.
func (f *Facility) Park(v domain.Vehicle, now time.Time) (int, error) {
	if !v.Size.IsValid() {
		return 0, domain.ErrInvalidSizeClass
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, slot := range f.slots {
		if slot.Occupy(v) {
			f.history = append(f.history, domain.NewParkingEvent(v, slot.ID, now))
			return slot.ID, nil
		}
	}

	return 0, domain.ErrNoSlotAvailable
}

// Unpark освобождает первое (по id) место, занятое автомобилем с номером plate,
// и закрывает самое раннее открытое событие этого номера на этом месте.
func (f *Facility) Unpark(plate string, now time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, slot := range f.slots {
		if !slot.Occupied || !domain.SamePlate(slot.Vehicle.LicensePlate, plate) {
			continue
		}

		for _, event := range f.history {
			if event.IsOpen() && event.SlotID == slot.ID && domain.SamePlate(event.LicensePlate, plate) {
				event.Close(now)
				break
			}
		}

		slot.Vacate()
		return slot.ID, nil
	}

	return 0, domain.ErrNotFound
}

// IsSlotAvailableFor проверяет, есть ли свободное место, вмещающее автомобиль класса size
func (f *Facility) IsSlotAvailableFor(size domain.SizeClass) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, slot := range f.slots {
		if slot.IsFreeFor(size) {
			return true
		}
	}
	return false
}

// HasParkedVehicles проверяет, занято ли хотя бы одно место
func (f *Facility) HasParkedVehicles() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, slot := range f.slots {
		if slot.Occupied {
			return true
		}
	}
	return false
}

// AvailabilityByTier возвращает число свободных мест по точному классу места
func (f *Facility) AvailabilityByTier() map[domain.SizeClass]int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.availability()
}

// Snapshot возвращает состояние всех мест в порядке id
func (f *Facility) Snapshot() []domain.SlotView {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.snapshot()
}

// History возвращает копию истории в порядке создания событий
func (f *Facility) History() []domain.ParkingEvent {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.historyCopy()
}

// State снимает распределение, свободные места, состояние мест и историю под одной блокировкой,
// поэтому все части согласованы между собой
func (f *Facility) State() domain.FacilityState {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return domain.FacilityState{
		Counts:    f.counts,
		Available: f.availability(),
		Slots:     f.snapshot(),
		History:   f.historyCopy(),
	}
}

// SlotSize возвращает класс места id. Класс места не меняется, блокировка не нужна.
func (f *Facility) SlotSize(id int) (domain.SizeClass, bool) {
	if id < 1 || id > len(f.slots) {
		return 0, false
	}
	return f.slots[id-1].Size, true
}

// TierCounts возвращает распределение мест по классам
func (f *Facility) TierCounts() domain.TierCounts {
	return f.counts
}

// TotalSlots возвращает общее количество мест
func (f *Facility) TotalSlots() int {
	return f.counts.Total()
}

// Методы ниже вызываются под f.mu

func (f *Facility) availability() map[domain.SizeClass]int {
	available := make(map[domain.SizeClass]int, 3)
	for _, size := range domain.AllSizeClasses() {
		available[size] = 0
	}
	for _, slot := range f.slots {
		if !slot.Occupied {
			available[slot.Size]++
		}
	}
	return available
}

func (f *Facility) snapshot() []domain.SlotView {
	views := make([]domain.SlotView, 0, len(f.slots))
	for _, slot := range f.slots {
		views = append(views, slot.View())
	}
	return views
}

func (f *Facility) historyCopy() []domain.ParkingEvent {
	events := make([]domain.ParkingEvent, 0, len(f.history))
	for _, event := range f.history {
		events = append(events, event.Copy())
	}
	return events
}
