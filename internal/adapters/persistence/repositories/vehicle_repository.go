package repositories

import (
	"context"

	"carconnect/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// vehicleRepository implements VehicleRepository interface
type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

// Create creates a new vehicle
func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return translateWrite(r.db.WithContext(ctx).Create(vehicle).Error)
}

// GetByID gets a vehicle by ID
func (r *vehicleRepository) GetByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetByRegistrationNumber gets a vehicle by its plate
func (r *vehicleRepository) GetByRegistrationNumber(ctx context.Context, regNo string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Where("registration_number = ?", regNo).First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListAvailable lists vehicles flagged available
func (r *vehicleRepository) ListAvailable(ctx context.Context) ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle
	err := r.db.WithContext(ctx).
		Where("availability = ?", true).
		Order("make, model, id").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// List lists all vehicles with pagination
func (r *vehicleRepository) List(ctx context.Context, offset, limit int) ([]*models.Vehicle, int64, error) {
	var vehicles []*models.Vehicle
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Vehicle{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

// Update updates a vehicle
func (r *vehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	return translateWrite(r.db.WithContext(ctx).Save(vehicle).Error)
}

// SetAvailability flips the availability flag only
func (r *vehicleRepository) SetAvailability(ctx context.Context, id uint, available bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("id = ?", id).
		Update("availability", available).Error
}

// Delete removes a vehicle, reporting whether a row was deleted
func (r *vehicleRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Vehicle{}, id)
	return result.RowsAffected > 0, result.Error
}

// ExistsByRegistrationNumber checks if a plate is already registered
func (r *vehicleRepository) ExistsByRegistrationNumber(ctx context.Context, regNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vehicle{}).Where("registration_number = ?", regNo).Count(&count).Error
	return count > 0, err
}
