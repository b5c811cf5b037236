package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrAuthentication     = errors.New("authentication failed")
	ErrDatabaseConnection = errors.New("database connection error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
)

// Account errors
var (
	ErrAdminNotFound    = errors.New("admin not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
)

// Fleet and booking errors
var (
	ErrVehicleNotFound          = errors.New("vehicle not found")
	ErrVehicleUnavailable       = errors.New("vehicle is not available")
	ErrReservationNotFound      = errors.New("reservation not found")
	ErrReservationConflict      = errors.New("vehicle already reserved for these dates")
	ErrInvalidReservationStatus = errors.New("invalid reservation status")
	ErrHasActiveReservations    = errors.New("record has active reservations")
)

// IsNotFound reports whether err is one of the not-found errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAdminNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrVehicleNotFound) ||
		errors.Is(err, ErrReservationNotFound)
}
