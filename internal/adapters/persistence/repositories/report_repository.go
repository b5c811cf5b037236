package repositories

import (
	"context"
	"time"

	"carconnect/internal/core/domain"

	"gorm.io/gorm"
)

// ReservationHistoryRow is one reservation joined with its customer and vehicle
type ReservationHistoryRow struct {
	ReservationID      uint      `json:"reservation_id"`
	CustomerID         uint      `json:"customer_id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	VehicleID          uint      `json:"vehicle_id"`
	Make               string    `json:"make"`
	Model              string    `json:"model"`
	RegistrationNumber string    `json:"registration_number"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	TotalCost          float64   `json:"total_cost"`
	Status             string    `json:"status"`
}

// VehicleUtilizationRow aggregates the non-cancelled bookings of one vehicle
type VehicleUtilizationRow struct {
	VehicleID          uint    `json:"vehicle_id"`
	Make               string  `json:"make"`
	Model              string  `json:"model"`
	RegistrationNumber string  `json:"registration_number"`
	Availability       bool    `json:"availability"`
	ReservationCount   int64   `json:"reservation_count"`
	CompletedCount     int64   `json:"completed_count"`
	Revenue            float64 `json:"revenue"`
}

// StatusRevenueRow totals reservations per status
type StatusRevenueRow struct {
	Status           string  `json:"status"`
	ReservationCount int64   `json:"reservation_count"`
	TotalCost        float64 `json:"total_cost"`
}

// reportRepository implements ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// ReservationHistory returns reservations joined with customer and vehicle,
// optionally restricted to one customer
func (r *reportRepository) ReservationHistory(ctx context.Context, customerID *uint) ([]*ReservationHistoryRow, error) {
	var rows []*ReservationHistoryRow

	query := r.db.WithContext(ctx).
		Table("reservations AS r").
		Select(`r.id AS reservation_id, r.customer_id, c.first_name, c.last_name,
			r.vehicle_id, v.make, v.model, v.registration_number,
			r.start_date, r.end_date, r.total_cost, r.status`).
		Joins("JOIN customers AS c ON c.id = r.customer_id").
		Joins("JOIN vehicles AS v ON v.id = r.vehicle_id")

	if customerID != nil {
		query = query.Where("r.customer_id = ?", *customerID)
	}

	if err := query.Order("r.start_date, r.id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// VehicleUtilization returns one row per vehicle, including vehicles never booked
func (r *reportRepository) VehicleUtilization(ctx context.Context) ([]*VehicleUtilizationRow, error) {
	var rows []*VehicleUtilizationRow

	completed := string(domain.StatusCompleted)
	err := r.db.WithContext(ctx).
		Table("vehicles AS v").
		Select(`v.id AS vehicle_id, v.make, v.model, v.registration_number, v.availability,
			COUNT(r.id) AS reservation_count,
			COALESCE(SUM(CASE WHEN r.status = ? THEN 1 ELSE 0 END), 0) AS completed_count,
			COALESCE(SUM(CASE WHEN r.status = ? THEN r.total_cost ELSE 0 END), 0) AS revenue`,
			completed, completed).
		Joins("LEFT JOIN reservations AS r ON r.vehicle_id = v.id AND r.status <> ?", string(domain.StatusCancelled)).
		Group("v.id, v.make, v.model, v.registration_number, v.availability").
		Order("v.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RevenueByStatus returns reservation counts and cost totals per status
func (r *reportRepository) RevenueByStatus(ctx context.Context) ([]*StatusRevenueRow, error) {
	var rows []*StatusRevenueRow
	err := r.db.WithContext(ctx).
		Table("reservations").
		Select("status, COUNT(*) AS reservation_count, COALESCE(SUM(total_cost), 0) AS total_cost").
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
