package domain

import (
	"time"

	"github.com/google/uuid"
)

// FacilityState - согласованный снимок парковки на один момент
type FacilityState struct {
	Counts    TierCounts
	Available map[SizeClass]int
	Slots     []SlotView
	History   []ParkingEvent
}

// SessionReport - итоговый отчет за сессию работы парковки
// Содержит все поля, нужные для текстового отчета: распределение мест,
// состояние каждого места и полную историю парковок.
type SessionReport struct {
	ID          uuid.UUID         `json:"id"`
	GeneratedAt time.Time         `json:"generated_at"`
	TotalSlots  int               `json:"total_slots"`
	Counts      TierCounts        `json:"counts"`
	Available   map[SizeClass]int `json:"available"`
	Slots       []SlotView        `json:"slots"`
	History     []ParkingEvent    `json:"history"`
}

// OccupiedSlots возвращает количество занятых мест
func (r *SessionReport) OccupiedSlots() int {
	occupied := 0
	for _, slot := range r.Slots {
		if slot.Occupied {
			occupied++
		}
	}
	return occupied
}
