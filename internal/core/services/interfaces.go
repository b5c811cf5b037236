package services

import "time"

// Note: each service implementation lives in its own *_service.go file

// AddAdminInput represents the fields of a new admin
type AddAdminInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// UpdateAdminInput represents a partial admin update
type UpdateAdminInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
}

// RegisterCustomerInput represents customer self registration
type RegisterCustomerInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

// UpdateCustomerInput represents a partial customer update
type UpdateCustomerInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Password    *string `json:"password"`
}

// AddVehicleInput represents a vehicle joining the fleet
type AddVehicleInput struct {
	Model              string  `json:"model"`
	Make               string  `json:"make"`
	Year               int     `json:"year"`
	Color              string  `json:"color"`
	RegistrationNumber string  `json:"registration_number"`
	DailyRate          float64 `json:"daily_rate"`
	Availability       *bool   `json:"availability"`
}

// UpdateVehicleInput represents a partial vehicle update
type UpdateVehicleInput struct {
	Model        *string  `json:"model"`
	Make         *string  `json:"make"`
	Year         *int     `json:"year"`
	Color        *string  `json:"color"`
	DailyRate    *float64 `json:"daily_rate"`
	Availability *bool    `json:"availability"`
}

// BookReservationInput represents a booking request
type BookReservationInput struct {
	CustomerID uint
	VehicleID  uint
	StartDate  time.Time
	EndDate    time.Time
	// Status is pending when empty
	Status string
}
