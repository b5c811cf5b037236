package repositories

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/core/domain"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seq atomic.Int64

func unique(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, seq.Add(1))
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func createCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()
	c := &models.Customer{
		FirstName:        gofakeit.FirstName(),
		LastName:         gofakeit.LastName(),
		Email:            unique("cust") + "@example.com",
		PhoneNumber:      gofakeit.Phone(),
		Address:          gofakeit.Street(),
		Username:         unique("customer"),
		Password:         "hash",
		RegistrationDate: time.Now().UTC(),
	}
	require.NoError(t, NewCustomerRepository(db).Create(context.Background(), c))
	return c
}

func createVehicle(t *testing.T, db *gorm.DB, rate float64) *models.Vehicle {
	t.Helper()
	v := &models.Vehicle{
		Model:              gofakeit.CarModel(),
		Make:               gofakeit.CarMaker(),
		Year:               gofakeit.Number(2010, 2024),
		Color:              gofakeit.Color(),
		RegistrationNumber: unique("REG-"),
		Availability:       true,
		DailyRate:          rate,
	}
	require.NoError(t, NewVehicleRepository(db).Create(context.Background(), v))
	return v
}

func createReservation(t *testing.T, db *gorm.DB, customerID, vehicleID uint, start, end string, status domain.ReservationStatus, cost float64) *models.Reservation {
	t.Helper()
	r := &models.Reservation{
		CustomerID: customerID,
		VehicleID:  vehicleID,
		StartDate:  day(start),
		EndDate:    day(end),
		TotalCost:  cost,
		Status:     string(status),
	}
	require.NoError(t, NewReservationRepository(db).Create(context.Background(), r))
	return r
}
