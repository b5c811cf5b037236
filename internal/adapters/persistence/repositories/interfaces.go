package repositories

import (
	"context"
	"time"

	"carconnect/internal/adapters/persistence/models"
)

// AdminRepository defines admin repository interface
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.Admin, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CustomerRepository defines customer repository interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByUsername(ctx context.Context, username string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.Customer, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// VehicleRepository defines vehicle repository interface
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id uint) (*models.Vehicle, error)
	GetByRegistrationNumber(ctx context.Context, regNo string) (*models.Vehicle, error)
	ListAvailable(ctx context.Context) ([]*models.Vehicle, error)
	List(ctx context.Context, offset, limit int) ([]*models.Vehicle, int64, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	SetAvailability(ctx context.Context, id uint, available bool) error
	Delete(ctx context.Context, id uint) (bool, error)
	ExistsByRegistrationNumber(ctx context.Context, regNo string) (bool, error)
}

// ReservationRepository defines reservation repository interface
type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Reservation, error)
	ListByVehicle(ctx context.Context, vehicleID uint) ([]*models.Reservation, error)
	List(ctx context.Context, offset, limit int) ([]*models.Reservation, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	CountOverlapping(ctx context.Context, vehicleID, excludeID uint, start, end time.Time) (int64, error)
	LockVehicle(ctx context.Context, vehicleID uint) error
	CountActiveByCustomer(ctx context.Context, customerID uint) (int64, error)
	CountActiveByVehicle(ctx context.Context, vehicleID uint) (int64, error)
	ListEnded(ctx context.Context, today time.Time) ([]*models.Reservation, error)
	ListStarted(ctx context.Context, today time.Time) ([]*models.Reservation, error)
	WithTx(ctx context.Context, fn func(repo ReservationRepository) error) error
}

// ReportRepository defines the aggregate queries behind the admin reports
type ReportRepository interface {
	ReservationHistory(ctx context.Context, customerID *uint) ([]*ReservationHistoryRow, error)
	VehicleUtilization(ctx context.Context) ([]*VehicleUtilizationRow, error)
	RevenueByStatus(ctx context.Context) ([]*StatusRevenueRow, error)
}
