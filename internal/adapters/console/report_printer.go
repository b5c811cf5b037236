package console

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"carconnect/internal/core/domain"
	"carconnect/internal/core/services"
)

// PrintReservationHistory writes the reservation history report as text
func PrintReservationHistory(w io.Writer, report *services.ReservationHistoryReport) {
	fmt.Fprintln(w, "\n--- Reservation History Report ---")
	if len(report.Rows) == 0 {
		fmt.Fprintln(w, "No reservations found.")
		return
	}
	for _, r := range report.Rows {
		fmt.Fprintf(w, "Reservation ID: %d\n", r.ReservationID)
		fmt.Fprintf(w, "  Customer: %s %s (ID: %d)\n", r.FirstName, r.LastName, r.CustomerID)
		fmt.Fprintf(w, "  Vehicle: %s %s (Reg: %s, ID: %d)\n", r.Make, r.Model, r.RegistrationNumber, r.VehicleID)
		fmt.Fprintf(w, "  Start Date: %s\n", r.StartDate.Format(domain.DateLayout))
		fmt.Fprintf(w, "  End Date: %s\n", r.EndDate.Format(domain.DateLayout))
		fmt.Fprintf(w, "  Total Cost: $%.2f\n", r.TotalCost)
		fmt.Fprintf(w, "  Status: %s\n", r.Status)
		fmt.Fprintln(w, "--------------------")
	}
	fmt.Fprintf(w, "Reservations: %d, booked value (excluding cancelled): $%.2f\n", len(report.Rows), report.TotalCost)
}

// PrintVehicleUtilization writes the per-vehicle utilization report as text
func PrintVehicleUtilization(w io.Writer, report *services.VehicleUtilizationReport) {
	fmt.Fprintln(w, "\n--- Vehicle Utilization Report ---")
	if len(report.Vehicles) == 0 {
		fmt.Fprintln(w, "No vehicles found in the system.")
		return
	}
	for _, v := range report.Vehicles {
		fmt.Fprintf(w, "Vehicle: %s %s (Reg: %s)\n", v.Make, v.Model, v.RegistrationNumber)
		fmt.Fprintf(w, "  Current Availability: %s\n", availabilityLabel(v.Availability))
		fmt.Fprintf(w, "  Reservations: %d (completed: %d)\n", v.ReservationCount, v.CompletedCount)
		fmt.Fprintf(w, "  Revenue: $%.2f\n", v.Revenue)
		fmt.Fprintln(w, "--------------------")
	}
	fmt.Fprintf(w, "Total reservations: %d\n", report.TotalReservations)
}

// PrintRevenue writes the revenue report as text
func PrintRevenue(w io.Writer, report *services.RevenueReport) {
	fmt.Fprintln(w, "\n--- Revenue Report ---")
	for _, s := range report.ByStatus {
		fmt.Fprintf(w, "  %-10s %4d reservation(s)  $%.2f\n", s.Status, s.ReservationCount, s.TotalCost)
	}
	fmt.Fprintf(w, "Total Revenue Generated: $%.2f\n", report.Revenue)
	fmt.Fprintf(w, "Projected Revenue (pending and confirmed): $%.2f\n", report.Projected)
	fmt.Fprintln(w, "--------------------")
}

func (c *Console) reservationHistoryReport(ctx context.Context) error {
	id, err := c.promptOptional("Enter Customer ID (leave blank for all customers): ")
	if err != nil {
		return err
	}

	var customerID *uint
	if id != nil {
		n, err := strconv.ParseUint(*id, 10, 64)
		if err != nil || n == 0 {
			return fmt.Errorf("%w: please enter a positive number", domain.ErrInvalidInput)
		}
		cid := uint(n)
		customerID = &cid
	}

	report, err := c.svc.Reports.ReservationHistory(ctx, customerID)
	if err != nil {
		return err
	}
	PrintReservationHistory(c.out, report)
	return nil
}

func (c *Console) vehicleUtilizationReport(ctx context.Context) error {
	report, err := c.svc.Reports.VehicleUtilization(ctx)
	if err != nil {
		return err
	}
	PrintVehicleUtilization(c.out, report)
	return nil
}

func (c *Console) revenueReport(ctx context.Context) error {
	report, err := c.svc.Reports.Revenue(ctx)
	if err != nil {
		return err
	}
	PrintRevenue(c.out, report)
	return nil
}
