package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// Facility errors
var (
	ErrInvalidConfiguration = errors.New("invalid configuration: slot count must be positive")
	ErrNoSlotAvailable      = errors.New("no suitable parking slot available")
	ErrNotFound             = errors.New("no vehicle found with that license plate")
)

// Vehicle errors
var (
	ErrInvalidLicensePlate = errors.New("invalid license plate")
	ErrInvalidSizeClass    = errors.New("invalid size class")
)

// Report errors
var (
	ErrReportNotFound = errors.New("report not found")
)
