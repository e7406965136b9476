package domain

import "strings"

// SizeClass представляет размерный класс места и автомобиля.
// Порядок значений важен: Small < Large < Oversize.
type SizeClass int

const (
	SizeSmall    SizeClass = iota + 1 // Малолитражка, компактный автомобиль
	SizeLarge                         // Полноразмерный автомобиль
	SizeOversize                      // Внедорожник или грузовик
)

// AllSizeClasses возвращает все классы в порядке обхода мест
func AllSizeClasses() []SizeClass {
	return []SizeClass{SizeSmall, SizeLarge, SizeOversize}
}

// CanAccommodate проверяет, помещается ли автомобиль класса vehicle на место класса slot
func CanAccommodate(slot, vehicle SizeClass) bool {
	return vehicle.IsValid() && slot.IsValid() && vehicle <= slot
}

// CanAccommodate - то же самое, что и одноименная функция, для места класса s
func (s SizeClass) CanAccommodate(vehicle SizeClass) bool {
	return CanAccommodate(s, vehicle)
}

// IsValid проверяет, что значение входит в перечисление
func (s SizeClass) IsValid() bool {
	return s >= SizeSmall && s <= SizeOversize
}

func (s SizeClass) String() string {
	switch s {
	case SizeSmall:
		return "SMALL"
	case SizeLarge:
		return "LARGE"
	case SizeOversize:
		return "OVERSIZE"
	default:
		return "UNKNOWN"
	}
}

// TierCounts - количество мест каждого класса, фиксируется при создании
type TierCounts struct {
	Small    int `json:"small"`
	Large    int `json:"large"`
	Oversize int `json:"oversize"`
}

// Total возвращает общее количество мест
func (c TierCounts) Total() int {
	return c.Small + c.Large + c.Oversize
}

// Of возвращает количество мест заданного класса
func (c TierCounts) Of(size SizeClass) int {
	switch size {
	case SizeSmall:
		return c.Small
	case SizeLarge:
		return c.Large
	case SizeOversize:
		return c.Oversize
	default:
		return 0
	}
}

// ParseSizeClass разбирает название класса (без учета регистра) или номер пункта меню 1-3
func ParseSizeClass(s string) (SizeClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SMALL", "1":
		return SizeSmall, nil
	case "LARGE", "2":
		return SizeLarge, nil
	case "OVERSIZE", "3":
		return SizeOversize, nil
	default:
		return 0, ErrInvalidSizeClass
	}
}

// MarshalText сериализует класс по имени (в том числе как ключ JSON-объекта)
func (s SizeClass) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, ErrInvalidSizeClass
	}
	return []byte(s.String()), nil
}

// UnmarshalText принимает имя класса или номер пункта меню
func (s *SizeClass) UnmarshalText(text []byte) error {
	parsed, err := ParseSizeClass(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
