package services

import (
	"context"
	"testing"
	"time"

	"carconnect/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCost(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		rate       float64
		wantDays   int
		wantCost   float64
	}{
		{"one day", "2030-01-10", "2030-01-11", 50, 1, 50},
		{"three days", "2030-01-10", "2030-01-13", 45.5, 3, 136.5},
		{"rounded to cents", "2030-01-10", "2030-01-13", 33.333, 3, 100},
		{"across month end", "2030-01-30", "2030-02-02", 10, 3, 30},
		{"across leap day", "2032-02-28", "2032-03-01", 10, 2, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := date(tt.start), date(tt.end)
			assert.Equal(t, tt.wantDays, RentalDays(start, end))
			assert.InDelta(t, tt.wantCost, CalculateCost(start, end, tt.rate), 0.0001)
		})
	}
}

func TestBookReservation_CostIsDaysTimesRate(t *testing.T) {
	env := newTestEnv(t)

	c := env.customer(t)
	v := env.vehicle(t, 45.5)

	r := env.book(t, c.ID, v.ID, "2030-01-10", "2030-01-13", "")

	assert.NotZero(t, r.ID)
	assert.Equal(t, string(domain.StatusPending), r.Status)
	assert.InDelta(t, 136.5, r.TotalCost, 0.001)
	require.NotNil(t, r.Vehicle)
	assert.Equal(t, v.ID, r.Vehicle.ID)

	got, err := env.reservations.GetReservationByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.True(t, got.StartDate.Equal(date("2030-01-10")))
	assert.True(t, got.EndDate.Equal(date("2030-01-13")))
}

func TestBookReservation_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c := env.customer(t)
	v := env.vehicle(t, 30)
	parked := env.vehicle(t, 30)
	require.NoError(t, env.vehicles.SetAvailability(ctx, parked.ID, false))
	env.book(t, c.ID, v.ID, "2030-01-20", "2030-01-25", "confirmed")

	tests := []struct {
		name  string
		input BookReservationInput
		want  error
	}{
		{"start equals end", BookReservationInput{c.ID, v.ID, date("2030-01-12"), date("2030-01-12"), ""}, domain.ErrInvalidInput},
		{"start after end", BookReservationInput{c.ID, v.ID, date("2030-01-14"), date("2030-01-12"), ""}, domain.ErrInvalidInput},
		{"start in the past", BookReservationInput{c.ID, v.ID, date("2030-01-09"), date("2030-01-12"), ""}, domain.ErrInvalidInput},
		{"unknown customer", BookReservationInput{9999, v.ID, date("2030-01-12"), date("2030-01-13"), ""}, domain.ErrCustomerNotFound},
		{"unknown vehicle", BookReservationInput{c.ID, 9999, date("2030-01-12"), date("2030-01-13"), ""}, domain.ErrVehicleNotFound},
		{"unavailable vehicle", BookReservationInput{c.ID, parked.ID, date("2030-01-12"), date("2030-01-13"), ""}, domain.ErrVehicleUnavailable},
		{"overlapping dates", BookReservationInput{c.ID, v.ID, date("2030-01-24"), date("2030-01-27"), ""}, domain.ErrReservationConflict},
		{"completed status", BookReservationInput{c.ID, v.ID, date("2030-01-12"), date("2030-01-13"), "completed"}, domain.ErrInvalidReservationStatus},
		{"unknown status", BookReservationInput{c.ID, v.ID, date("2030-01-12"), date("2030-01-13"), "booked"}, domain.ErrInvalidReservationStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := env.reservations.BookReservation(ctx, &input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBookReservation_AdjacentAndCaseInsensitiveStatus(t *testing.T) {
	env := newTestEnv(t)

	c := env.customer(t)
	v := env.vehicle(t, 30)
	env.book(t, c.ID, v.ID, "2030-01-12", "2030-01-15", "")

	// Starts the day the previous rental is returned
	r := env.book(t, c.ID, v.ID, "2030-01-15", "2030-01-16", "Confirmed")
	assert.Equal(t, string(domain.StatusConfirmed), r.Status)
}

func TestBookReservation_TimeOfDayIsIgnored(t *testing.T) {
	env := newTestEnv(t)

	c := env.customer(t)
	v := env.vehicle(t, 10)

	r, err := env.reservations.BookReservation(context.Background(), &BookReservationInput{
		CustomerID: c.ID,
		VehicleID:  v.ID,
		StartDate:  fixedNow,
		EndDate:    fixedNow.Add(30 * time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, r.StartDate.Equal(date("2030-01-10")))
	assert.InDelta(t, 10, r.TotalCost, 0.001)
}

func TestCancelReservation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c := env.customer(t)
	v := env.vehicle(t, 30)
	r := env.book(t, c.ID, v.ID, "2030-01-12", "2030-01-14", "")

	require.NoError(t, env.reservations.CancelReservation(ctx, r.ID))

	got, err := env.reservations.GetReservationByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)

	// Second cancel is a no-op
	assert.NoError(t, env.reservations.CancelReservation(ctx, r.ID))

	assert.ErrorIs(t, env.reservations.CancelReservation(ctx, 9999), domain.ErrReservationNotFound)

	// The freed dates can be booked again
	env.book(t, c.ID, v.ID, "2030-01-12", "2030-01-14", "")
}

func TestCancelReservation_CompletedIsRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c := env.customer(t)
	v := env.vehicle(t, 30)
	r := env.book(t, c.ID, v.ID, "2030-01-12", "2030-01-14", "")

	_, err := env.reservations.UpdateReservationStatus(ctx, r.ID, "COMPLETED")
	require.NoError(t, err)

	assert.ErrorIs(t, env.reservations.CancelReservation(ctx, r.ID), domain.ErrInvalidReservationStatus)
}

func TestCancelCustomerReservation_OnlyOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.customer(t)
	other := env.customer(t)
	v := env.vehicle(t, 30)
	r := env.book(t, owner.ID, v.ID, "2030-01-12", "2030-01-14", "")

	assert.ErrorIs(t, env.reservations.CancelCustomerReservation(ctx, other.ID, r.ID), domain.ErrReservationNotFound)
	require.NoError(t, env.reservations.CancelCustomerReservation(ctx, owner.ID, r.ID))

	mine, err := env.reservations.GetReservationsByCustomerID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, string(domain.StatusCancelled), mine[0].Status)
}

func TestUpdateReservationStatus_Invalid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c := env.customer(t)
	v := env.vehicle(t, 30)
	r := env.book(t, c.ID, v.ID, "2030-01-12", "2030-01-14", "")

	_, err := env.reservations.UpdateReservationStatus(ctx, r.ID, "returned")
	assert.ErrorIs(t, err, domain.ErrInvalidReservationStatus)

	_, err = env.reservations.UpdateReservationStatus(ctx, 9999, "confirmed")
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)

	updated, err := env.reservations.UpdateReservationStatus(ctx, r.ID, " confirmed ")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), updated.Status)
}

func TestUpdateReservationStatus_ReopeningChecksOverlap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.customer(t)
	second := env.customer(t)
	v := env.vehicle(t, 30)

	r := env.book(t, first.ID, v.ID, "2030-01-20", "2030-01-25", "")
	require.NoError(t, env.reservations.CancelReservation(ctx, r.ID))
	env.book(t, second.ID, v.ID, "2030-01-21", "2030-01-24", "")

	for _, status := range []string{"confirmed", "pending"} {
		_, err := env.reservations.UpdateReservationStatus(ctx, r.ID, status)
		assert.ErrorIs(t, err, domain.ErrReservationConflict, status)
	}

	got, err := env.reservations.GetReservationByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)

	// Free dates can be reopened
	free := env.book(t, first.ID, v.ID, "2030-02-01", "2030-02-03", "")
	require.NoError(t, env.reservations.CancelReservation(ctx, free.ID))
	reopened, err := env.reservations.UpdateReservationStatus(ctx, free.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), reopened.Status)

	// Moving between active statuses does not count the reservation against itself
	_, err = env.reservations.UpdateReservationStatus(ctx, free.ID, "pending")
	require.NoError(t, err)
}

func TestGetReservationsByVehicleID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c := env.customer(t)
	v := env.vehicle(t, 30)
	other := env.vehicle(t, 30)
	env.book(t, c.ID, v.ID, "2030-01-20", "2030-01-22", "")
	env.book(t, c.ID, other.ID, "2030-01-20", "2030-01-22", "")
	env.book(t, c.ID, v.ID, "2030-01-12", "2030-01-14", "")

	list, err := env.reservations.GetReservationsByVehicleID(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2030-01-12", list[0].StartDate.Format(domain.DateLayout))
	for _, r := range list {
		assert.Equal(t, v.ID, r.VehicleID)
	}

	_, err = env.reservations.GetReservationsByVehicleID(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestReservationLifecycle_Sweep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c := env.customer(t)
	v := env.vehicle(t, 30)
	r := env.book(t, c.ID, v.ID, "2030-01-10", "2030-01-12", "confirmed")

	// Picked up today
	activated, err := env.reservations.ActivateStartedReservations(ctx, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, activated)

	vehicle, err := env.vehicles.GetVehicleByID(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, vehicle.Availability)

	// Running again changes nothing
	activated, err = env.reservations.ActivateStartedReservations(ctx, fixedNow)
	require.NoError(t, err)
	assert.Zero(t, activated)

	// Returned on the end date
	completed, err := env.reservations.CompleteEndedReservations(ctx, date("2030-01-12"))
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	got, err := env.reservations.GetReservationByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)

	vehicle, err = env.vehicles.GetVehicleByID(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, vehicle.Availability)
}

func TestCancelStartedReservation_ReleasesVehicle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c := env.customer(t)
	v := env.vehicle(t, 30)
	r := env.book(t, c.ID, v.ID, "2030-01-10", "2030-01-15", "confirmed")

	_, err := env.reservations.ActivateStartedReservations(ctx, fixedNow)
	require.NoError(t, err)

	require.NoError(t, env.reservations.CancelReservation(ctx, r.ID))

	vehicle, err := env.vehicles.GetVehicleByID(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, vehicle.Availability)
}

func TestCancelFutureReservation_KeepsManualHold(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c := env.customer(t)
	v := env.vehicle(t, 30)
	r := env.book(t, c.ID, v.ID, "2030-02-01", "2030-02-03", "confirmed")

	// Taken off the road by an admin
	require.NoError(t, env.vehicles.SetAvailability(ctx, v.ID, false))
	require.NoError(t, env.reservations.CancelReservation(ctx, r.ID))

	vehicle, err := env.vehicles.GetVehicleByID(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, vehicle.Availability)
}

func TestReservationSweeper(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := NewReservationSweeper(env.reservations, "not a schedule")
	assert.Error(t, err)

	sweeper, err := NewReservationSweeper(env.reservations, "")
	require.NoError(t, err)

	c := env.customer(t)
	v := env.vehicle(t, 30)
	env.book(t, c.ID, v.ID, "2030-01-10", "2030-01-11", "")
	env.book(t, c.ID, v.ID, "2030-01-11", "2030-01-13", "confirmed")

	sweeper.now = func() time.Time { return date("2030-01-11").Add(time.Hour) }

	completed, activated, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 1, activated)

	vehicle, err := env.vehicles.GetVehicleByID(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, vehicle.Availability)
}
