package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carconnect/internal/adapters/cache"
	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/adapters/persistence/repositories"
	"carconnect/internal/core/domain"
	"carconnect/internal/pkg/pagination"

	"github.com/sirupsen/logrus"
)

const (
	availableVehiclesKey = "vehicles:available"
	availableVehiclesTTL = 5 * time.Minute

	// first production automobile
	minVehicleYear = 1886
)

// VehicleService handles the fleet
type VehicleService struct {
	vehicleRepo     repositories.VehicleRepository
	reservationRepo repositories.ReservationRepository
	cache           cache.Store
	now             func() time.Time
}

// NewVehicleService creates a new vehicle service; a nil store disables caching
func NewVehicleService(
	vehicleRepo repositories.VehicleRepository,
	reservationRepo repositories.ReservationRepository,
	store cache.Store,
) *VehicleService {
	if store == nil {
		store = cache.NoopStore{}
	}
	return &VehicleService{
		vehicleRepo:     vehicleRepo,
		reservationRepo: reservationRepo,
		cache:           store,
		now:             time.Now,
	}
}

func (s *VehicleService) validateYear(year int) error {
	maxYear := s.now().Year() + 1
	if year < minVehicleYear || year > maxYear {
		return fmt.Errorf("%w: year must be between %d and %d", domain.ErrInvalidInput, minVehicleYear, maxYear)
	}
	return nil
}

func validateDailyRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("%w: daily rate must be positive", domain.ErrInvalidInput)
	}
	return nil
}

// AddVehicle adds a vehicle to the fleet, available unless stated otherwise
func (s *VehicleService) AddVehicle(ctx context.Context, input *AddVehicleInput) (*models.Vehicle, error) {
	if err := requireFields(
		field{"make", input.Make},
		field{"model", input.Model},
		field{"registration number", input.RegistrationNumber},
	); err != nil {
		return nil, err
	}
	if err := s.validateYear(input.Year); err != nil {
		return nil, err
	}
	if err := validateDailyRate(input.DailyRate); err != nil {
		return nil, err
	}

	regNo := strings.ToUpper(strings.TrimSpace(input.RegistrationNumber))
	exists, err := s.vehicleRepo.ExistsByRegistrationNumber(ctx, regNo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: registration number %q already registered", domain.ErrDuplicateEntry, regNo)
	}

	available := true
	if input.Availability != nil {
		available = *input.Availability
	}

	vehicle := &models.Vehicle{
		Model:              strings.TrimSpace(input.Model),
		Make:               strings.TrimSpace(input.Make),
		Year:               input.Year,
		Color:              strings.TrimSpace(input.Color),
		RegistrationNumber: regNo,
		Availability:       available,
		DailyRate:          input.DailyRate,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	logrus.WithFields(logrus.Fields{
		"vehicle_id":   vehicle.ID,
		"registration": vehicle.RegistrationNumber,
	}).Info("Vehicle added")

	return vehicle, nil
}

// GetVehicleByID gets a vehicle by ID
func (s *VehicleService) GetVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrVehicleNotFound)
	}
	return vehicle, nil
}

// GetVehicleByRegistrationNumber gets a vehicle by its plate
func (s *VehicleService) GetVehicleByRegistrationNumber(ctx context.Context, regNo string) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByRegistrationNumber(ctx, strings.ToUpper(strings.TrimSpace(regNo)))
	if err != nil {
		return nil, notFound(err, domain.ErrVehicleNotFound)
	}
	return vehicle, nil
}

// GetAvailableVehicles lists vehicles flagged available, served from cache when possible
func (s *VehicleService) GetAvailableVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	var cached []*models.Vehicle
	found, err := s.cache.Get(ctx, availableVehiclesKey, &cached)
	if err != nil {
		logrus.WithError(err).Warn("Available vehicles cache read failed")
	}
	if found {
		return cached, nil
	}

	vehicles, err := s.vehicleRepo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, availableVehiclesKey, vehicles, availableVehiclesTTL); err != nil {
		logrus.WithError(err).Warn("Available vehicles cache write failed")
	}
	return vehicles, nil
}

// ListVehicles lists the whole fleet with pagination
func (s *VehicleService) ListVehicles(ctx context.Context, params *pagination.Params) ([]*models.Vehicle, int64, error) {
	return s.vehicleRepo.List(ctx, params.Offset, params.Limit)
}

// UpdateVehicle applies the non-nil fields of input
func (s *VehicleService) UpdateVehicle(ctx context.Context, id uint, input *UpdateVehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.GetVehicleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Make != nil {
		if err := requireFields(field{"make", *input.Make}); err != nil {
			return nil, err
		}
		vehicle.Make = strings.TrimSpace(*input.Make)
	}
	if input.Model != nil {
		if err := requireFields(field{"model", *input.Model}); err != nil {
			return nil, err
		}
		vehicle.Model = strings.TrimSpace(*input.Model)
	}
	if input.Year != nil {
		if err := s.validateYear(*input.Year); err != nil {
			return nil, err
		}
		vehicle.Year = *input.Year
	}
	if input.Color != nil {
		vehicle.Color = strings.TrimSpace(*input.Color)
	}
	if input.DailyRate != nil {
		if err := validateDailyRate(*input.DailyRate); err != nil {
			return nil, err
		}
		vehicle.DailyRate = *input.DailyRate
	}
	if input.Availability != nil {
		vehicle.Availability = *input.Availability
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return vehicle, nil
}

// RemoveVehicle deletes a vehicle without pending or confirmed reservations
func (s *VehicleService) RemoveVehicle(ctx context.Context, id uint) error {
	active, err := s.reservationRepo.CountActiveByVehicle(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("%w: vehicle %d has %d open reservation(s)", domain.ErrHasActiveReservations, id, active)
	}

	deleted, err := s.vehicleRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrVehicleNotFound
	}
	s.invalidate(ctx)

	logrus.WithField("vehicle_id", id).Info("Vehicle removed")
	return nil
}

// SetAvailability flips a vehicle's availability flag
func (s *VehicleService) SetAvailability(ctx context.Context, id uint, available bool) error {
	if _, err := s.GetVehicleByID(ctx, id); err != nil {
		return err
	}
	if err := s.vehicleRepo.SetAvailability(ctx, id, available); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *VehicleService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, availableVehiclesKey); err != nil {
		logrus.WithError(err).Warn("Available vehicles cache invalidation failed")
	}
}
