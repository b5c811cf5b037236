package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// Admin represents admins table
type Admin struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `gorm:"size:50;not null" json:"first_name"`
	LastName    string    `gorm:"size:50;not null" json:"last_name"`
	Email       string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PhoneNumber string    `gorm:"size:20" json:"phone_number"`
	Username    string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	Role        string    `gorm:"size:50;default:'admin'" json:"role"`
	JoinDate    time.Time `gorm:"not null" json:"join_date"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// AdminResponse DTO
type AdminResponse struct {
	ID          uint      `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	JoinDate    time.Time `json:"join_date"`
}

func (a *Admin) ToResponse() *AdminResponse {
	return &AdminResponse{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		Username:    a.Username,
		Role:        a.Role,
		JoinDate:    a.JoinDate,
	}
}

// Customer represents customers table
type Customer struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	FirstName        string    `gorm:"size:50;not null" json:"first_name"`
	LastName         string    `gorm:"size:50;not null" json:"last_name"`
	Email            string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PhoneNumber      string    `gorm:"size:20" json:"phone_number"`
	Address          string    `gorm:"size:255" json:"address"`
	Username         string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password         string    `gorm:"size:255;not null" json:"-"`
	RegistrationDate time.Time `gorm:"not null" json:"registration_date"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// CustomerResponse DTO
type CustomerResponse struct {
	ID               uint      `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phone_number"`
	Address          string    `json:"address"`
	Username         string    `json:"username"`
	RegistrationDate time.Time `json:"registration_date"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	return &CustomerResponse{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		PhoneNumber:      c.PhoneNumber,
		Address:          c.Address,
		Username:         c.Username,
		RegistrationDate: c.RegistrationDate,
	}
}

// FullName returns first and last name joined
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ============================================================
// Fleet & Booking
// ============================================================

// Vehicle represents vehicles table
type Vehicle struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Model              string    `gorm:"size:50;not null" json:"model"`
	Make               string    `gorm:"size:50;not null" json:"make"`
	Year               int       `gorm:"not null" json:"year"`
	Color              string    `gorm:"size:30" json:"color"`
	RegistrationNumber string    `gorm:"uniqueIndex;size:30;not null" json:"registration_number"`
	Availability       bool      `gorm:"not null;index" json:"availability"`
	DailyRate          float64   `gorm:"type:decimal(10,2);not null" json:"daily_rate"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// Reservation represents reservations table
type Reservation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	VehicleID  uint      `gorm:"not null;index" json:"vehicle_id"`
	StartDate  time.Time `gorm:"not null;index" json:"start_date"`
	EndDate    time.Time `gorm:"not null;index" json:"end_date"`
	TotalCost  float64   `gorm:"type:decimal(12,2);not null" json:"total_cost"`
	Status     string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Admin{},
		&Customer{},
		&Vehicle{},
		&Reservation{},
	)
}
