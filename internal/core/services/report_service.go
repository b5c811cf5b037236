package services

import (
	"context"
	"math"
	"time"

	"carconnect/internal/adapters/persistence/repositories"
	"carconnect/internal/core/domain"
)

// ReportService builds the admin reports
type ReportService struct {
	reportRepo repositories.ReportRepository
	now        func() time.Time
}

// NewReportService creates a new report service
func NewReportService(reportRepo repositories.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, now: time.Now}
}

// ReservationHistoryReport lists reservations with their customer and vehicle
type ReservationHistoryReport struct {
	GeneratedAt time.Time                             `json:"generated_at"`
	CustomerID  *uint                                 `json:"customer_id,omitempty"`
	Rows        []*repositories.ReservationHistoryRow `json:"rows"`
	TotalCost   float64                               `json:"total_cost"`
}

// VehicleUtilizationReport summarizes bookings per vehicle
type VehicleUtilizationReport struct {
	GeneratedAt       time.Time                             `json:"generated_at"`
	Vehicles          []*repositories.VehicleUtilizationRow `json:"vehicles"`
	TotalReservations int64                                 `json:"total_reservations"`
}

// RevenueReport totals reservation cost by status
type RevenueReport struct {
	GeneratedAt time.Time                        `json:"generated_at"`
	ByStatus    []*repositories.StatusRevenueRow `json:"by_status"`
	// Revenue is the cost of completed reservations
	Revenue float64 `json:"revenue"`
	// Projected is the cost of pending and confirmed reservations
	Projected         float64 `json:"projected"`
	TotalReservations int64   `json:"total_reservations"`
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// ReservationHistory reports every reservation, or only customerID's when set
func (s *ReportService) ReservationHistory(ctx context.Context, customerID *uint) (*ReservationHistoryReport, error) {
	rows, err := s.reportRepo.ReservationHistory(ctx, customerID)
	if err != nil {
		return nil, err
	}

	report := &ReservationHistoryReport{
		GeneratedAt: s.now().UTC(),
		CustomerID:  customerID,
		Rows:        rows,
	}
	for _, r := range rows {
		if r.Status != string(domain.StatusCancelled) {
			report.TotalCost += r.TotalCost
		}
	}
	report.TotalCost = roundCents(report.TotalCost)
	return report, nil
}

// VehicleUtilization reports booking counts and revenue per vehicle
func (s *ReportService) VehicleUtilization(ctx context.Context) (*VehicleUtilizationReport, error) {
	rows, err := s.reportRepo.VehicleUtilization(ctx)
	if err != nil {
		return nil, err
	}

	report := &VehicleUtilizationReport{
		GeneratedAt: s.now().UTC(),
		Vehicles:    rows,
	}
	for _, r := range rows {
		report.TotalReservations += r.ReservationCount
	}
	return report, nil
}

// Revenue reports earned and projected revenue
func (s *ReportService) Revenue(ctx context.Context) (*RevenueReport, error) {
	rows, err := s.reportRepo.RevenueByStatus(ctx)
	if err != nil {
		return nil, err
	}

	report := &RevenueReport{
		GeneratedAt: s.now().UTC(),
		ByStatus:    rows,
	}
	for _, r := range rows {
		report.TotalReservations += r.ReservationCount
		switch domain.ReservationStatus(r.Status) {
		case domain.StatusCompleted:
			report.Revenue += r.TotalCost
		case domain.StatusPending, domain.StatusConfirmed:
			report.Projected += r.TotalCost
		}
	}
	report.Revenue = roundCents(report.Revenue)
	report.Projected = roundCents(report.Projected)
	return report, nil
}
