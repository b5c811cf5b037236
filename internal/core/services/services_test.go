package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"carconnect/internal/adapters/cache"
	"carconnect/internal/adapters/cache/cachetest"
	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/config"
	"carconnect/internal/core/domain"
	"carconnect/internal/pkg/testdb"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixedNow is the wall clock every service sees in tests
var fixedNow = time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db           *gorm.DB
	store        *cache.RedisStore
	admins       *AdminService
	customers    *CustomerService
	vehicles     *VehicleService
	reservations *ReservationService
	auth         *AuthService
	reports      *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testdb.New(t)
	store := cachetest.New()

	reg := NewRegistry(db, config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenMins: 15,
	}, store)

	clock := func() time.Time { return fixedNow }
	reg.Admins.now = clock
	reg.Customers.now = clock
	reg.Vehicles.now = clock
	reg.Reservations.now = clock
	reg.Reports.now = clock

	return &testEnv{
		db:           db,
		store:        store,
		admins:       reg.Admins,
		customers:    reg.Customers,
		vehicles:     reg.Vehicles,
		reservations: reg.Reservations,
		auth:         reg.Auth,
		reports:      reg.Reports,
	}
}

var seq atomic.Int64

func unique(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, seq.Add(1))
}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func (e *testEnv) customer(t *testing.T) *models.Customer {
	t.Helper()
	c, err := e.customers.RegisterCustomer(context.Background(), &RegisterCustomerInput{
		FirstName:   gofakeit.FirstName(),
		LastName:    gofakeit.LastName(),
		Email:       unique("customer") + "@example.com",
		PhoneNumber: gofakeit.Phone(),
		Address:     gofakeit.Street(),
		Username:    unique("user"),
		Password:    "secret123",
	})
	require.NoError(t, err)
	return c
}

func (e *testEnv) vehicle(t *testing.T, rate float64) *models.Vehicle {
	t.Helper()
	v, err := e.vehicles.AddVehicle(context.Background(), &AddVehicleInput{
		Make:               gofakeit.CarMaker(),
		Model:              gofakeit.CarModel(),
		Year:               gofakeit.Number(2015, 2029),
		Color:              gofakeit.Color(),
		RegistrationNumber: unique("CC-"),
		DailyRate:          rate,
	})
	require.NoError(t, err)
	return v
}

func (e *testEnv) book(t *testing.T, customerID, vehicleID uint, start, end, status string) *models.Reservation {
	t.Helper()
	r, err := e.reservations.BookReservation(context.Background(), &BookReservationInput{
		CustomerID: customerID,
		VehicleID:  vehicleID,
		StartDate:  date(start),
		EndDate:    date(end),
		Status:     status,
	})
	require.NoError(t, err)
	return r
}

func ptr[T any](v T) *T {
	return &v
}
