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

// AdminService handles admin account management
type AdminService struct {
	adminRepo repositories.AdminRepository
	now       func() time.Time
}

// NewAdminService creates a new admin service
func NewAdminService(adminRepo repositories.AdminRepository) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		now:       time.Now,
	}
}

// AddAdmin creates a new admin with a hashed password
func (s *AdminService) AddAdmin(ctx context.Context, input *AddAdminInput) (*models.Admin, error) {
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

	exists, err := s.adminRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: username %q already taken", domain.ErrDuplicateEntry, username)
	}

	exists, err = s.adminRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email %q already registered", domain.ErrDuplicateEntry, email)
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = domain.DefaultAdminRole
	}

	admin := &models.Admin{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       email,
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Username:    username,
		Password:    hashedPassword,
		Role:        role,
		JoinDate:    s.now().UTC(),
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"admin_id": admin.ID,
		"username": admin.Username,
	}).Info("Admin added")

	return admin, nil
}

// GetAdminByID gets an admin by ID
func (s *AdminService) GetAdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrAdminNotFound)
	}
	return admin, nil
}

// GetAdminByUsername gets an admin by username
func (s *AdminService) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, domain.ErrAdminNotFound)
	}
	return admin, nil
}

// UpdateAdmin applies the non-nil fields of input
func (s *AdminService) UpdateAdmin(ctx context.Context, id uint, input *UpdateAdminInput) (*models.Admin, error) {
	admin, err := s.GetAdminByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		if err := requireFields(field{"first name", *input.FirstName}); err != nil {
			return nil, err
		}
		admin.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		if err := requireFields(field{"last name", *input.LastName}); err != nil {
			return nil, err
		}
		admin.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		if email := strings.TrimSpace(*input.Email); email != admin.Email {
			if err := validateEmail(email); err != nil {
				return nil, err
			}
			exists, err := s.adminRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("%w: email %q already registered", domain.ErrDuplicateEntry, email)
			}
			admin.Email = email
		}
	}
	if input.PhoneNumber != nil {
		admin.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Role != nil && strings.TrimSpace(*input.Role) != "" {
		admin.Role = strings.TrimSpace(*input.Role)
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hashedPassword, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		admin.Password = hashedPassword
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// DeleteAdmin deletes an admin; actingAdminID cannot delete itself
func (s *AdminService) DeleteAdmin(ctx context.Context, id, actingAdminID uint) error {
	if id == actingAdminID {
		return domain.ErrCannotDeleteSelf
	}

	deleted, err := s.adminRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrAdminNotFound
	}

	logrus.WithFields(logrus.Fields{
		"admin_id":   id,
		"deleted_by": actingAdminID,
	}).Info("Admin deleted")
	return nil
}

// ListAdmins lists admins with pagination
func (s *AdminService) ListAdmins(ctx context.Context, params *pagination.Params) ([]*models.Admin, int64, error) {
	return s.adminRepo.List(ctx, params.Offset, params.Limit)
}
