package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParkingEvent - запись истории об одной парковке
// Создается при успешной парковке, закрывается ровно один раз при выезде и никогда не удаляется.
// UnparkedAt == nil означает, что автомобиль все еще стоит на парковке.
type ParkingEvent struct {
	ID           uuid.UUID  `json:"id"`
	LicensePlate string     `json:"license_plate"`
	Size         SizeClass  `json:"size"`
	SlotID       int        `json:"slot_id"`
	ParkedAt     time.Time  `json:"parked_at"`
	UnparkedAt   *time.Time `json:"unparked_at,omitempty"`
}

// NewParkingEvent открывает событие для автомобиля, вставшего на место slotID
func NewParkingEvent(v Vehicle, slotID int, parkedAt time.Time) *ParkingEvent {
	return &ParkingEvent{
		ID:           uuid.New(),
		LicensePlate: v.LicensePlate,
		Size:         v.Size,
		SlotID:       slotID,
		ParkedAt:     parkedAt,
	}
}

// IsOpen проверяет, что выезд еще не зафиксирован
func (e *ParkingEvent) IsOpen() bool {
	return e.UnparkedAt == nil
}

// Close фиксирует время выезда. Закрытое событие больше не меняется.
func (e *ParkingEvent) Close(unparkedAt time.Time) bool {
	if !e.IsOpen() {
		return false
	}
	e.UnparkedAt = &unparkedAt
	return true
}

// Copy возвращает независимую копию события
func (e *ParkingEvent) Copy() ParkingEvent {
	c := *e
	if e.UnparkedAt != nil {
		t := *e.UnparkedAt
		c.UnparkedAt = &t
	}
	return c
}

// Duration возвращает время стоянки; для открытого события считается до now
func (e *ParkingEvent) Duration(now time.Time) time.Duration {
	if e.UnparkedAt != nil {
		return e.UnparkedAt.Sub(e.ParkedAt)
	}
	return now.Sub(e.ParkedAt)
}
