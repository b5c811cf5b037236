package repositories

import (
	"context"
	"time"

	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reservationRepository implements ReservationRepository interface
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// WithTx runs fn against a repository bound to a single transaction
func (r *reservationRepository) WithTx(ctx context.Context, fn func(repo ReservationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&reservationRepository{db: tx})
	})
}

// Create creates a new reservation
func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// GetByID gets a reservation by ID with its vehicle
func (r *reservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("id = ?", id).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListByCustomer lists a customer's reservations, newest first
func (r *reservationRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("customer_id = ?", customerID).
		Order("start_date DESC, id DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListByVehicle lists a vehicle's reservations in date order
func (r *reservationRepository) ListByVehicle(ctx context.Context, vehicleID uint) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("vehicle_id = ?", vehicleID).
		Order("start_date, id").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// List lists all reservations with pagination
func (r *reservationRepository) List(ctx context.Context, offset, limit int) ([]*models.Reservation, int64, error) {
	var reservations []*models.Reservation
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Reservation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reservations).Error
	if err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// UpdateStatus sets the status column only
func (r *reservationRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountOverlapping counts active reservations of the vehicle whose
// half-open [start, end) range intersects the given one. A non-zero
// excludeID leaves that reservation out of the count.
func (r *reservationRepository) CountOverlapping(ctx context.Context, vehicleID, excludeID uint, start, end time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("vehicle_id = ?", vehicleID).
		Where("status IN ?", domain.ActiveStatuses).
		Where("start_date < ? AND end_date > ?", end, start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

// LockVehicle takes a row lock on the vehicle for the rest of the transaction
// so that concurrent bookings of the same vehicle run one after another.
// SQLite has no row locks and serializes writers on its own.
func (r *reservationRepository) LockVehicle(ctx context.Context, vehicleID uint) error {
	var vehicle models.Vehicle
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", vehicleID).
		First(&vehicle).Error
}

func (r *reservationRepository) CountActiveByCustomer(ctx context.Context, customerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("customer_id = ? AND status IN ?", customerID, domain.ActiveStatuses).
		Count(&count).Error
	return count, err
}

func (r *reservationRepository) CountActiveByVehicle(ctx context.Context, vehicleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("vehicle_id = ? AND status IN ?", vehicleID, domain.ActiveStatuses).
		Count(&count).Error
	return count, err
}

// ListEnded lists active reservations whose end date is on or before today
func (r *reservationRepository) ListEnded(ctx context.Context, today time.Time) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Where("status IN ? AND end_date <= ?", domain.ActiveStatuses, today).
		Order("id").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListStarted lists confirmed reservations whose range covers today
func (r *reservationRepository) ListStarted(ctx context.Context, today time.Time) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusConfirmed)).
		Where("start_date <= ? AND end_date > ?", today, today).
		Order("id").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}
