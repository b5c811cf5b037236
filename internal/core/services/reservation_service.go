package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/adapters/persistence/repositories"
	"carconnect/internal/core/domain"
	"carconnect/internal/pkg/pagination"

	"github.com/sirupsen/logrus"
)

// ReservationService handles booking and the reservation lifecycle
type ReservationService struct {
	reservationRepo repositories.ReservationRepository
	customerRepo    repositories.CustomerRepository
	vehicles        *VehicleService
	now             func() time.Time
}

// NewReservationService creates a new reservation service
func NewReservationService(
	reservationRepo repositories.ReservationRepository,
	customerRepo repositories.CustomerRepository,
	vehicles *VehicleService,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
		vehicles:        vehicles,
		now:             time.Now,
	}
}

// RentalDays returns the number of calendar days between start and end
func RentalDays(start, end time.Time) int {
	return int(domain.TruncateDay(end).Sub(domain.TruncateDay(start)).Hours() / 24)
}

// CalculateCost returns days × rate rounded to cents
func CalculateCost(start, end time.Time, dailyRate float64) float64 {
	return math.Round(float64(RentalDays(start, end))*dailyRate*100) / 100
}

func (s *ReservationService) today() time.Time {
	return domain.TruncateDay(s.now())
}

// claimDates locks the vehicle and fails with ErrReservationConflict when
// another active reservation overlaps [start, end). It must run inside WithTx.
func claimDates(ctx context.Context, tx repositories.ReservationRepository, vehicleID, excludeID uint, start, end time.Time) error {
	if err := tx.LockVehicle(ctx, vehicleID); err != nil {
		return notFound(err, domain.ErrVehicleNotFound)
	}
	overlapping, err := tx.CountOverlapping(ctx, vehicleID, excludeID, start, end)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return domain.ErrReservationConflict
	}
	return nil
}

// BookReservation validates and stores a new reservation
func (s *ReservationService) BookReservation(ctx context.Context, input *BookReservationInput) (*models.Reservation, error) {
	start := domain.TruncateDay(input.StartDate)
	end := domain.TruncateDay(input.EndDate)

	// 1. Date sanity
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start date must be before end date", domain.ErrInvalidInput)
	}
	if start.Before(s.today()) {
		return nil, fmt.Errorf("%w: start date cannot be in the past", domain.ErrInvalidInput)
	}

	// 2. Status
	status := domain.StatusPending
	if input.Status != "" {
		parsed, err := domain.ParseReservationStatus(input.Status)
		if err != nil {
			return nil, err
		}
		if !parsed.IsActive() {
			return nil, fmt.Errorf("%w: new reservations must be %s or %s",
				domain.ErrInvalidReservationStatus, domain.StatusPending, domain.StatusConfirmed)
		}
		status = parsed
	}

	// 3. Customer and vehicle
	if _, err := s.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, notFound(err, domain.ErrCustomerNotFound)
	}
	vehicle, err := s.vehicles.GetVehicleByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Availability {
		return nil, domain.ErrVehicleUnavailable
	}

	reservation := &models.Reservation{
		CustomerID: input.CustomerID,
		VehicleID:  vehicle.ID,
		StartDate:  start,
		EndDate:    end,
		TotalCost:  CalculateCost(start, end, vehicle.DailyRate),
		Status:     string(status),
	}

	// 4. Overlap check and insert share one transaction
	err = s.reservationRepo.WithTx(ctx, func(tx repositories.ReservationRepository) error {
		if err := claimDates(ctx, tx, vehicle.ID, 0, start, end); err != nil {
			return err
		}
		return tx.Create(ctx, reservation)
	})
	if err != nil {
		return nil, err
	}

	reservation.Vehicle = vehicle

	logrus.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"customer_id":    reservation.CustomerID,
		"vehicle_id":     reservation.VehicleID,
		"start":          start.Format(domain.DateLayout),
		"end":            end.Format(domain.DateLayout),
		"total_cost":     reservation.TotalCost,
	}).Info("Reservation booked")

	return reservation, nil
}

// GetReservationByID gets a reservation by ID
func (s *ReservationService) GetReservationByID(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrReservationNotFound)
	}
	return reservation, nil
}

// GetReservationsByCustomerID lists a customer's reservations, newest first
func (s *ReservationService) GetReservationsByCustomerID(ctx context.Context, customerID uint) ([]*models.Reservation, error) {
	return s.reservationRepo.ListByCustomer(ctx, customerID)
}

// GetReservationsByVehicleID lists a vehicle's reservations in date order
func (s *ReservationService) GetReservationsByVehicleID(ctx context.Context, vehicleID uint) ([]*models.Reservation, error) {
	if _, err := s.vehicles.GetVehicleByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.reservationRepo.ListByVehicle(ctx, vehicleID)
}

// ListReservations lists all reservations with pagination
func (s *ReservationService) ListReservations(ctx context.Context, params *pagination.Params) ([]*models.Reservation, int64, error) {
	return s.reservationRepo.List(ctx, params.Offset, params.Limit)
}

// CancelReservation cancels a reservation. Completed reservations cannot be
// cancelled and cancelling twice is a no-op.
func (s *ReservationService) CancelReservation(ctx context.Context, id uint) error {
	reservation, err := s.GetReservationByID(ctx, id)
	if err != nil {
		return err
	}
	return s.cancel(ctx, reservation)
}

// CancelCustomerReservation cancels a reservation owned by customerID.
// Reservations of other customers are reported as not found.
func (s *ReservationService) CancelCustomerReservation(ctx context.Context, customerID, id uint) error {
	reservation, err := s.GetReservationByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation.CustomerID != customerID {
		return domain.ErrReservationNotFound
	}
	return s.cancel(ctx, reservation)
}

func (s *ReservationService) cancel(ctx context.Context, reservation *models.Reservation) error {
	switch domain.ReservationStatus(reservation.Status) {
	case domain.StatusCancelled:
		return nil
	case domain.StatusCompleted:
		return fmt.Errorf("%w: completed reservations cannot be cancelled", domain.ErrInvalidReservationStatus)
	}

	today := s.today()
	held := holdsVehicle(reservation, today)

	if err := s.reservationRepo.UpdateStatus(ctx, reservation.ID, string(domain.StatusCancelled)); err != nil {
		return err
	}
	reservation.Status = string(domain.StatusCancelled)

	if held {
		if err := s.releaseVehicle(ctx, reservation.VehicleID, today); err != nil {
			return err
		}
	}

	logrus.WithField("reservation_id", reservation.ID).Info("Reservation cancelled")
	return nil
}

// UpdateReservationStatus sets any valid status, releasing the vehicle when
// the reservation stops being active. Reopening a cancelled or completed
// reservation fails with ErrReservationConflict if its dates were taken since.
func (s *ReservationService) UpdateReservationStatus(ctx context.Context, id uint, status string) (*models.Reservation, error) {
	parsed, err := domain.ParseReservationStatus(status)
	if err != nil {
		return nil, err
	}

	reservation, err := s.GetReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := domain.ReservationStatus(reservation.Status)
	if previous == parsed {
		return reservation, nil
	}
	today := s.today()
	held := holdsVehicle(reservation, today)

	if parsed.IsActive() && !previous.IsActive() {
		// Reopening a reservation claims its dates again
		err = s.reservationRepo.WithTx(ctx, func(tx repositories.ReservationRepository) error {
			if err := claimDates(ctx, tx, reservation.VehicleID, reservation.ID, reservation.StartDate, reservation.EndDate); err != nil {
				return err
			}
			return tx.UpdateStatus(ctx, id, string(parsed))
		})
	} else {
		err = s.reservationRepo.UpdateStatus(ctx, id, string(parsed))
	}
	if err != nil {
		return nil, err
	}
	reservation.Status = string(parsed)

	if held && !parsed.IsActive() {
		if err := s.releaseVehicle(ctx, reservation.VehicleID, today); err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"reservation_id": id,
		"from":           previous,
		"to":             parsed,
	}).Info("Reservation status updated")

	return reservation, nil
}

// holdsVehicle reports whether a confirmed reservation has started, which is
// when the sweeper takes its vehicle off the available list
func holdsVehicle(r *models.Reservation, today time.Time) bool {
	return domain.ReservationStatus(r.Status) == domain.StatusConfirmed && !r.StartDate.After(today)
}

// releaseVehicle marks the vehicle available again unless another active
// reservation still covers today
func (s *ReservationService) releaseVehicle(ctx context.Context, vehicleID uint, today time.Time) error {
	vehicle, err := s.vehicles.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil
		}
		return err
	}
	if vehicle.Availability {
		return nil
	}

	holding, err := s.reservationRepo.CountOverlapping(ctx, vehicleID, 0, today, today.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	if holding > 0 {
		return nil
	}
	return s.vehicles.SetAvailability(ctx, vehicleID, true)
}

// CompleteEndedReservations marks active reservations ending on or before
// today as completed and releases their vehicles. It returns how many
// reservations were completed.
func (s *ReservationService) CompleteEndedReservations(ctx context.Context, today time.Time) (int, error) {
	today = domain.TruncateDay(today)

	ended, err := s.reservationRepo.ListEnded(ctx, today)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, r := range ended {
		held := holdsVehicle(r, today)
		if err := s.reservationRepo.UpdateStatus(ctx, r.ID, string(domain.StatusCompleted)); err != nil {
			return completed, err
		}
		completed++
		if !held {
			continue
		}
		if err := s.releaseVehicle(ctx, r.VehicleID, today); err != nil {
			return completed, err
		}
	}

	if completed > 0 {
		logrus.WithField("count", completed).Info("Ended reservations completed")
	}
	return completed, nil
}

// ActivateStartedReservations marks the vehicles of confirmed reservations
// covering today as unavailable. It returns how many vehicles changed.
func (s *ReservationService) ActivateStartedReservations(ctx context.Context, today time.Time) (int, error) {
	today = domain.TruncateDay(today)

	started, err := s.reservationRepo.ListStarted(ctx, today)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, r := range started {
		vehicle, err := s.vehicles.GetVehicleByID(ctx, r.VehicleID)
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}
			return changed, err
		}
		if !vehicle.Availability {
			continue
		}
		if err := s.vehicles.SetAvailability(ctx, r.VehicleID, false); err != nil {
			return changed, err
		}
		changed++
	}

	if changed > 0 {
		logrus.WithField("count", changed).Info("Vehicles picked up for started reservations")
	}
	return changed, nil
}
