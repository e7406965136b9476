package domain

// Slot - одно парковочное место
// Идентификатор и класс задаются при создании парковки и больше не меняются.
// Vehicle != nil тогда и только тогда, когда Occupied == true.
type Slot struct {
	ID       int
	Size     SizeClass
	Occupied bool
	Vehicle  *Vehicle
}

// NewSlot создает свободное место
func NewSlot(id int, size SizeClass) *Slot {
	return &Slot{ID: id, Size: size}
}

// IsFreeFor проверяет, что место свободно и подходит автомобилю
func (s *Slot) IsFreeFor(size SizeClass) bool {
	return !s.Occupied && s.Size.CanAccommodate(size)
}

// Occupy ставит автомобиль на место
func (s *Slot) Occupy(v Vehicle) bool {
	if !s.IsFreeFor(v.Size) {
		return false
	}
	s.Vehicle = &v
	s.Occupied = true
	return true
}

// Vacate освобождает место
func (s *Slot) Vacate() {
	s.Vehicle = nil
	s.Occupied = false
}

// View возвращает копию состояния места только для чтения
func (s *Slot) View() SlotView {
	view := SlotView{
		ID:       s.ID,
		Size:     s.Size,
		Occupied: s.Occupied,
	}
	if s.Occupied && s.Vehicle != nil {
		view.LicensePlate = s.Vehicle.LicensePlate
		view.VehicleSize = s.Vehicle.Size
	}
	return view
}

// SlotView - снимок места для отчетов и API
type SlotView struct {
	ID           int       `json:"id"`
	Size         SizeClass `json:"size"`
	Occupied     bool      `json:"occupied"`
	LicensePlate string    `json:"license_plate,omitempty"`
	VehicleSize  SizeClass `json:"vehicle_size,omitempty"`
}

// Status возвращает строку статуса в формате отчета
func (v SlotView) Status() string {
	if !v.Occupied {
		return "AVAILABLE"
	}
	return "OCCUPIED by " + v.LicensePlate
}
