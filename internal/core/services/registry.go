package services

import (
	"carconnect/internal/adapters/cache"
	"carconnect/internal/adapters/persistence/repositories"
	"carconnect/internal/config"

	"gorm.io/gorm"
)

// Registry holds every service built over one database connection
type Registry struct {
	Auth         *AuthService
	Admins       *AdminService
	Customers    *CustomerService
	Vehicles     *VehicleService
	Reservations *ReservationService
	Reports      *ReportService
}

// NewRegistry initializes repositories and services
func NewRegistry(db *gorm.DB, jwtCfg config.JWTConfig, store cache.Store) *Registry {
	// Initialize repositories
	adminRepo := repositories.NewAdminRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Initialize services
	vehicles := NewVehicleService(vehicleRepo, reservationRepo, store)

	return &Registry{
		Auth:         NewAuthService(adminRepo, customerRepo, jwtCfg),
		Admins:       NewAdminService(adminRepo),
		Customers:    NewCustomerService(customerRepo, reservationRepo),
		Vehicles:     vehicles,
		Reservations: NewReservationService(reservationRepo, customerRepo, vehicles),
		Reports:      NewReportService(reportRepo),
	}
}
