package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/adapters/persistence/repositories"
	"carconnect/internal/core/domain"
	"carconnect/internal/pkg/pagination"
	"carconnect/internal/pkg/password"

	"github.com/sirupsen/logrus"
)

// CustomerService handles customer registration and profile management
type CustomerService struct {
	customerRepo    repositories.CustomerRepository
	reservationRepo repositories.ReservationRepository
	now             func() time.Time
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repositories.CustomerRepository,
	reservationRepo repositories.ReservationRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo:    customerRepo,
		reservationRepo: reservationRepo,
		now:             time.Now,
	}
}

// RegisterCustomer registers a new customer
func (s *CustomerService) RegisterCustomer(ctx context.Context, input *RegisterCustomerInput) (*models.Customer, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if err := requireFields(
		field{"first name", input.FirstName},
		field{"last name", input.LastName},
		field{"email", email},
		field{"username", username},
	); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	// 1. Username must be free
	exists, err := s.customerRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: username %q already taken", domain.ErrDuplicateEntry, username)
	}

	// 2. Email must be free
	exists, err = s.customerRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email %q already registered", domain.ErrDuplicateEntry, email)
	}

	// 3. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		FirstName:        strings.TrimSpace(input.FirstName),
		LastName:         strings.TrimSpace(input.LastName),
		Email:            email,
		PhoneNumber:      strings.TrimSpace(input.PhoneNumber),
		Address:          strings.TrimSpace(input.Address),
		Username:         username,
		Password:         hashedPassword,
		RegistrationDate: s.now().UTC(),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": customer.ID,
		"username":    customer.Username,
	}).Info("Customer registered")

	return customer, nil
}

// GetCustomerByID gets a customer by ID
func (s *CustomerService) GetCustomerByID(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrCustomerNotFound)
	}
	return customer, nil
}

// GetCustomerByUsername gets a customer by username
func (s *CustomerService) GetCustomerByUsername(ctx context.Context, username string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, domain.ErrCustomerNotFound)
	}
	return customer, nil
}

// UpdateCustomer applies the non-nil fields of input
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uint, input *UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		if err := requireFields(field{"first name", *input.FirstName}); err != nil {
			return nil, err
		}
		customer.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		if err := requireFields(field{"last name", *input.LastName}); err != nil {
			return nil, err
		}
		customer.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		if email := strings.TrimSpace(*input.Email); email != customer.Email {
			if err := validateEmail(email); err != nil {
				return nil, err
			}
			exists, err := s.customerRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("%w: email %q already registered", domain.ErrDuplicateEntry, email)
			}
			customer.Email = email
		}
	}
	if input.PhoneNumber != nil {
		customer.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Address != nil {
		customer.Address = strings.TrimSpace(*input.Address)
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hashedPassword, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		customer.Password = hashedPassword
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer without pending or confirmed reservations
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint) error {
	active, err := s.reservationRepo.CountActiveByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("%w: customer %d has %d open reservation(s)", domain.ErrHasActiveReservations, id, active)
	}

	deleted, err := s.customerRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrCustomerNotFound
	}

	logrus.WithField("customer_id", id).Info("Customer deleted")
	return nil
}

// ListCustomers lists customers with pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.Params) ([]*models.Customer, int64, error) {
	return s.customerRepo.List(ctx, params.Offset, params.Limit)
}
