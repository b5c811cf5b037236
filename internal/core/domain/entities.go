package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role represents the kind of principal authenticated against the system
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// DefaultAdminRole is the job title given to admins created without one
const DefaultAdminRole = "admin"

// ReservationStatus is the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// ActiveStatuses are the statuses that hold a vehicle for their date range
var ActiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

// ParseReservationStatus normalizes a user supplied status
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReservationStatus, s)
}

// IsActive reports whether the status still holds the vehicle
func (s ReservationStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// DateLayout is the calendar date format accepted on input
const DateLayout = "2006-01-02"

// TruncateDay returns midnight UTC of the calendar day t falls on in its own location
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	return t, nil
}
