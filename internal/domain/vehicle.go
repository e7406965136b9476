package domain

import "strings"

// Vehicle - автомобиль, который въезжает на парковку
// Неизменяемый: создается драйвером в момент запроса на парковку и принадлежит месту,
// пока автомобиль стоит. История хранится в ParkingEvent, а не здесь.
type Vehicle struct {
	LicensePlate string    `json:"license_plate"`
	Size         SizeClass `json:"size"`
}

// NewVehicle создает автомобиль, предварительно проверяя номер и класс
func NewVehicle(licensePlate string, size SizeClass) (Vehicle, error) {
	plate := strings.TrimSpace(licensePlate)
	if plate == "" {
		return Vehicle{}, ErrInvalidLicensePlate
	}
	if !size.IsValid() {
		return Vehicle{}, ErrInvalidSizeClass
	}
	return Vehicle{LicensePlate: plate, Size: size}, nil
}

// SamePlate сравнивает номера без учета регистра и окружающих пробелов
func SamePlate(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (v Vehicle) String() string {
	return "License Plate: " + v.LicensePlate + ", Size: " + v.Size.String()
}
