package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"carconnect/internal/adapters/cache/cachetest"
	"carconnect/internal/adapters/http/middleware"
	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/config"
	"carconnect/internal/core/services"
	"carconnect/internal/pkg/pagination"
	"carconnect/internal/pkg/testdb"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Meta    *pagination.Meta `json:"meta"`
	Error   string           `json:"error"`
}

type testAPI struct {
	app *fiber.App
	reg *services.Registry
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenMins: 15,
		},
	}
}

func newTestAPI(t *testing.T, dbCheck func() error) *testAPI {
	t.Helper()
	cfg := testConfig()
	reg := services.NewRegistry(testdb.New(t), cfg.JWT, cachetest.New())

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(app, reg, cfg, dbCheck)
	return &testAPI{app: app, reg: reg}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) (int, *envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, &env
}

func decode[T any](t *testing.T, env *envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}

func idPath(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (a *testAPI) login(t *testing.T, path, username, password string) string {
	t.Helper()
	status, env := a.do(t, http.MethodPost, path, "", fiber.Map{"username": username, "password": password})
	require.Equal(t, http.StatusOK, status, env.Error)

	data := decode[struct {
		Token services.TokenResponse `json:"token"`
	}](t, env)
	require.NotEmpty(t, data.Token.AccessToken)
	return data.Token.AccessToken
}

func (a *testAPI) seedAdmin(t *testing.T, username string) string {
	t.Helper()
	_, err := a.reg.Admins.AddAdmin(context.Background(), &services.AddAdminInput{
		FirstName: "Root",
		LastName:  "Admin",
		Email:     username + "@example.com",
		Username:  username,
		Password:  "adminpass",
	})
	require.NoError(t, err)
	return a.login(t, "/api/v1/auth/admin/login", username, "adminpass")
}

func (a *testAPI) seedCustomer(t *testing.T, username string) string {
	t.Helper()
	_, err := a.reg.Customers.RegisterCustomer(context.Background(), &services.RegisterCustomerInput{
		FirstName: "Test",
		LastName:  "Customer",
		Email:     username + "@example.com",
		Username:  username,
		Password:  "secret123",
	})
	require.NoError(t, err)
	return a.login(t, "/api/v1/auth/customer/login", username, "secret123")
}

func (a *testAPI) seedVehicle(t *testing.T, regNo string, rate float64) *models.Vehicle {
	t.Helper()
	v, err := a.reg.Vehicles.AddVehicle(context.Background(), &services.AddVehicleInput{
		Make:               "Honda",
		Model:              "Civic",
		Year:               2021,
		RegistrationNumber: regNo,
		DailyRate:          rate,
	})
	require.NoError(t, err)
	return v
}

func TestHealthCheck(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	status, _ := api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	down := newTestAPI(t, func() error { return errors.New("connection refused") })
	status, _ = down.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestAuthentication(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })

	status, env := api.do(t, http.MethodPost, "/api/v1/auth/customer/register", "", fiber.Map{
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "jane@example.com",
		"username":   "jane",
		"password":   "secret123",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)

	status, _ = api.do(t, http.MethodPost, "/api/v1/auth/customer/register", "", fiber.Map{
		"first_name": "Jane",
		"last_name":  "Again",
		"email":      "other@example.com",
		"username":   "jane",
		"password":   "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, env = api.do(t, http.MethodPost, "/api/v1/auth/customer/login", "", fiber.Map{"username": "jane", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid username or password", env.Error)

	status, _ = api.do(t, http.MethodPost, "/api/v1/auth/customer/login", "", fiber.Map{"username": "jane"})
	assert.Equal(t, http.StatusBadRequest, status)

	token := api.login(t, "/api/v1/auth/customer/login", "jane", "secret123")

	status, env = api.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[struct {
		Role     string                   `json:"role"`
		Customer *models.CustomerResponse `json:"customer"`
	}](t, env)
	assert.Equal(t, "CUSTOMER", me.Role)
	assert.Equal(t, "jane", me.Customer.Username)

	// A customer is not an admin
	_, err := api.reg.Auth.AdminLogin(context.Background(), "jane", "secret123")
	assert.Error(t, err)
}

func TestAccessControl(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	customerToken := api.seedCustomer(t, "jane")
	adminToken := api.seedAdmin(t, "root")

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"no token", "/api/v1/admin/vehicles", "", http.StatusUnauthorized},
		{"garbage token", "/api/v1/admin/vehicles", "not-a-jwt", http.StatusUnauthorized},
		{"customer on admin area", "/api/v1/admin/vehicles", customerToken, http.StatusForbidden},
		{"admin on customer area", "/api/v1/customer/reservations", adminToken, http.StatusForbidden},
		{"admin area", "/api/v1/admin/vehicles", adminToken, http.StatusOK},
		{"customer area", "/api/v1/customer/reservations", customerToken, http.StatusOK},
		{"public catalogue", "/api/v1/vehicles/available", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := api.do(t, http.MethodGet, tt.path, tt.token, nil)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestCustomerReservationFlow(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	vehicle := api.seedVehicle(t, "CIV-1", 40)
	token := api.seedCustomer(t, "jane")

	status, env := api.do(t, http.MethodGet, "/api/v1/vehicles/available", "", nil)
	require.Equal(t, http.StatusOK, status)
	available := decode[[]*models.Vehicle](t, env)
	require.Len(t, available, 1)
	assert.Equal(t, "CIV-1", available[0].RegistrationNumber)

	book := fiber.Map{"vehicle_id": vehicle.ID, "start_date": "2099-01-10", "end_date": "2099-01-13"}
	status, env = api.do(t, http.MethodPost, "/api/v1/customer/reservations", token, book)
	require.Equal(t, http.StatusCreated, status, env.Error)
	reservation := decode[models.Reservation](t, env)
	assert.InDelta(t, 120.0, reservation.TotalCost, 0.001)
	assert.Equal(t, "pending", reservation.Status)

	// Overlapping booking
	status, _ = api.do(t, http.MethodPost, "/api/v1/customer/reservations", token,
		fiber.Map{"vehicle_id": vehicle.ID, "start_date": "2099-01-12", "end_date": "2099-01-15"})
	assert.Equal(t, http.StatusConflict, status)

	status, env = api.do(t, http.MethodPost, "/api/v1/customer/reservations", token,
		fiber.Map{"vehicle_id": vehicle.ID, "start_date": "13/01/2099", "end_date": "2099-01-15"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error, "YYYY-MM-DD")

	status, _ = api.do(t, http.MethodPost, "/api/v1/customer/reservations", token,
		fiber.Map{"vehicle_id": 999, "start_date": "2099-02-01", "end_date": "2099-02-02"})
	assert.Equal(t, http.StatusNotFound, status)

	status, env = api.do(t, http.MethodGet, "/api/v1/customer/reservations", token, nil)
	require.Equal(t, http.StatusOK, status)
	mine := decode[[]*models.Reservation](t, env)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Vehicle)
	assert.Equal(t, "Civic", mine[0].Vehicle.Model)

	cancelPath := "/api/v1/customer/reservations/" + idPath(reservation.ID) + "/cancel"
	status, _ = api.do(t, http.MethodPost, cancelPath, token, nil)
	assert.Equal(t, http.StatusOK, status)
	// Cancelling twice is a no-op
	status, _ = api.do(t, http.MethodPost, cancelPath, token, nil)
	assert.Equal(t, http.StatusOK, status)

	got, err := api.reg.Reservations.GetReservationByID(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
}

func TestCustomerCannotCancelOthersReservation(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	vehicle := api.seedVehicle(t, "CIV-1", 40)
	alice := api.seedCustomer(t, "alice")
	bob := api.seedCustomer(t, "bob")

	status, env := api.do(t, http.MethodPost, "/api/v1/customer/reservations", alice,
		fiber.Map{"vehicle_id": vehicle.ID, "start_date": "2099-03-01", "end_date": "2099-03-02"})
	require.Equal(t, http.StatusCreated, status, env.Error)
	reservation := decode[models.Reservation](t, env)

	status, _ = api.do(t, http.MethodPost, "/api/v1/customer/reservations/"+idPath(reservation.ID)+"/cancel", bob, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCustomerProfile(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	token := api.seedCustomer(t, "jane")

	status, env := api.do(t, http.MethodPut, "/api/v1/customer/profile", token, fiber.Map{"address": "42 Elm St"})
	require.Equal(t, http.StatusOK, status, env.Error)

	status, env = api.do(t, http.MethodGet, "/api/v1/customer/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	profile := decode[models.CustomerResponse](t, env)
	assert.Equal(t, "42 Elm St", profile.Address)

	status, _ = api.do(t, http.MethodPut, "/api/v1/customer/profile", token, fiber.Map{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminFleetManagement(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	token := api.seedAdmin(t, "root")

	status, env := api.do(t, http.MethodPost, "/api/v1/admin/vehicles", token, fiber.Map{
		"make":                "Toyota",
		"model":               "Corolla",
		"year":                2022,
		"color":               "White",
		"registration_number": "tc-22",
		"daily_rate":          55.5,
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	vehicle := decode[models.Vehicle](t, env)
	assert.Equal(t, "TC-22", vehicle.RegistrationNumber)
	assert.True(t, vehicle.Availability)

	status, _ = api.do(t, http.MethodPost, "/api/v1/admin/vehicles", token, fiber.Map{
		"make": "Toyota", "model": "Corolla", "year": 2022, "registration_number": "TC-22", "daily_rate": 10,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = api.do(t, http.MethodPost, "/api/v1/admin/vehicles", token, fiber.Map{
		"make": "Toyota", "model": "Corolla", "year": 2022, "registration_number": "NEG-1", "daily_rate": -1,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	path := "/api/v1/admin/vehicles/" + idPath(vehicle.ID)
	status, _ = api.do(t, http.MethodPut, path+"/availability", token, fiber.Map{"availability": false})
	require.Equal(t, http.StatusOK, status)

	status, env = api.do(t, http.MethodGet, "/api/v1/vehicles/available", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]*models.Vehicle](t, env))

	status, env = api.do(t, http.MethodPut, path, token, fiber.Map{"daily_rate": 60})
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.InDelta(t, 60.0, decode[models.Vehicle](t, env).DailyRate, 0.001)

	status, env = api.do(t, http.MethodGet, "/api/v1/admin/vehicles?page=1&limit=5", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)
	assert.Equal(t, 5, env.Meta.Limit)

	status, _ = api.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = api.do(t, http.MethodGet, "/api/v1/admin/vehicles/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminVehicleLookups(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	admin := api.seedAdmin(t, "root")
	customer := api.seedCustomer(t, "jane")
	vehicle := api.seedVehicle(t, "CIV-1", 40)
	other := api.seedVehicle(t, "CIV-2", 40)

	for _, v := range []*models.Vehicle{vehicle, other} {
		status, env := api.do(t, http.MethodPost, "/api/v1/customer/reservations", customer,
			fiber.Map{"vehicle_id": v.ID, "start_date": "2099-06-01", "end_date": "2099-06-03"})
		require.Equal(t, http.StatusCreated, status, env.Error)
	}

	status, env := api.do(t, http.MethodGet, "/api/v1/admin/vehicles/registration/civ-1", admin, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, vehicle.ID, decode[models.Vehicle](t, env).ID)

	status, _ = api.do(t, http.MethodGet, "/api/v1/admin/vehicles/registration/NOPE-9", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = api.do(t, http.MethodGet, "/api/v1/admin/vehicles/"+idPath(vehicle.ID)+"/reservations", admin, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	list := decode[[]*models.Reservation](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, vehicle.ID, list[0].VehicleID)

	status, _ = api.do(t, http.MethodGet, "/api/v1/admin/vehicles/999/reservations", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Admin only
	status, _ = api.do(t, http.MethodGet, "/api/v1/admin/vehicles/registration/CIV-1", customer, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRegisterDuplicateUsernameIsConflict(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	api.seedCustomer(t, "alice")

	status, env := api.do(t, http.MethodPost, "/api/v1/auth/customer/register", "", fiber.Map{
		"first_name": "Other",
		"last_name":  "Alice",
		"email":      "other.alice@example.com",
		"username":   " alice",
		"password":   "secret123",
	})
	assert.Equal(t, http.StatusConflict, status, env.Error)
}

func TestReopeningTakenDatesIsConflict(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	admin := api.seedAdmin(t, "root")
	alice := api.seedCustomer(t, "alice")
	bob := api.seedCustomer(t, "bob")
	vehicle := api.seedVehicle(t, "CIV-1", 40)

	status, env := api.do(t, http.MethodPost, "/api/v1/customer/reservations", alice,
		fiber.Map{"vehicle_id": vehicle.ID, "start_date": "2099-01-20", "end_date": "2099-01-25"})
	require.Equal(t, http.StatusCreated, status, env.Error)
	first := decode[models.Reservation](t, env)

	status, _ = api.do(t, http.MethodPost, "/api/v1/customer/reservations/"+idPath(first.ID)+"/cancel", alice, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = api.do(t, http.MethodPost, "/api/v1/customer/reservations", bob,
		fiber.Map{"vehicle_id": vehicle.ID, "start_date": "2099-01-21", "end_date": "2099-01-24"})
	require.Equal(t, http.StatusCreated, status, env.Error)

	status, _ = api.do(t, http.MethodPut, "/api/v1/admin/reservations/"+idPath(first.ID)+"/status", admin,
		fiber.Map{"status": "confirmed"})
	assert.Equal(t, http.StatusConflict, status)
}

func TestAdminAccounts(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	token := api.seedAdmin(t, "root")

	status, env := api.do(t, http.MethodPost, "/api/v1/admin/admins", token, fiber.Map{
		"first_name": "Grace",
		"last_name":  "Hopper",
		"email":      "grace@example.com",
		"username":   "grace",
		"password":   "cobol123",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	grace := decode[models.AdminResponse](t, env)
	assert.Equal(t, "admin", grace.Role)

	status, env = api.do(t, http.MethodGet, "/api/v1/admin/admins", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]*models.AdminResponse](t, env), 2)

	// The seeded admin has ID 1 and may not delete itself
	status, _ = api.do(t, http.MethodDelete, "/api/v1/admin/admins/1", token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(t, http.MethodDelete, "/api/v1/admin/admins/"+idPath(grace.ID), token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(t, http.MethodDelete, "/api/v1/admin/admins/"+idPath(grace.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminReservationsAndReports(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	vehicle := api.seedVehicle(t, "CIV-1", 40)
	customerToken := api.seedCustomer(t, "jane")
	adminToken := api.seedAdmin(t, "root")

	status, env := api.do(t, http.MethodPost, "/api/v1/customer/reservations", customerToken,
		fiber.Map{"vehicle_id": vehicle.ID, "start_date": "2099-04-01", "end_date": "2099-04-03"})
	require.Equal(t, http.StatusCreated, status, env.Error)
	reservation := decode[models.Reservation](t, env)
	path := "/api/v1/admin/reservations/" + idPath(reservation.ID)

	status, _ = api.do(t, http.MethodPut, path+"/status", adminToken, fiber.Map{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = api.do(t, http.MethodPut, path+"/status", adminToken, fiber.Map{"status": "Completed"})
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "completed", decode[models.Reservation](t, env).Status)

	status, _ = api.do(t, http.MethodPost, path+"/cancel", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = api.do(t, http.MethodGet, "/api/v1/admin/reservations", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), env.Meta.Total)

	status, env = api.do(t, http.MethodGet, "/api/v1/admin/reports/revenue", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	revenue := decode[services.RevenueReport](t, env)
	assert.InDelta(t, 80.0, revenue.Revenue, 0.001)

	status, env = api.do(t, http.MethodGet, "/api/v1/admin/reports/reservations?customer_id=1", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	history := decode[services.ReservationHistoryReport](t, env)
	require.Len(t, history.Rows, 1)
	assert.Equal(t, "CIV-1", history.Rows[0].RegistrationNumber)

	status, _ = api.do(t, http.MethodGet, "/api/v1/admin/reports/reservations?customer_id=x", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = api.do(t, http.MethodGet, "/api/v1/admin/reports/utilization", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	utilization := decode[services.VehicleUtilizationReport](t, env)
	require.Len(t, utilization.Vehicles, 1)
	assert.Equal(t, int64(1), utilization.Vehicles[0].CompletedCount)

	// Customers with history but no open reservations can be removed
	status, _ = api.do(t, http.MethodDelete, "/api/v1/admin/customers/1", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestMiddlewareSetup(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	middleware.Setup(app, testConfig())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "SAMEORIGIN", resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.False(t, env.Success)
	assert.Equal(t, "short and stout", env.Error)
}

func TestAuthRateLimiterBucketsPerEndpoint(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	creds := fiber.Map{"username": "ghost", "password": "secret123"}

	for i := 0; i < 10; i++ {
		status, _ := api.do(t, http.MethodPost, "/api/v1/auth/customer/login", "", creds)
		require.Equal(t, http.StatusUnauthorized, status)
	}

	status, env := api.do(t, http.MethodPost, "/api/v1/auth/customer/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "Too many login attempts")

	// Admin login has its own bucket
	status, _ = api.do(t, http.MethodPost, "/api/v1/auth/admin/login", "", creds)
	assert.Equal(t, http.StatusUnauthorized, status)
}
