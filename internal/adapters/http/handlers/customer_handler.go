package handlers

import (
	"carconnect/internal/adapters/http/middleware"
	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/core/services"
	"carconnect/internal/pkg/pagination"
	"carconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer profile and management endpoints
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

func customerResponses(customers []*models.Customer) []*models.CustomerResponse {
	out := make([]*models.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, c.ToResponse())
	}
	return out
}

// GetProfile returns the logged in customer
// @Summary Get my profile
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /customer/profile [get]
func (h *CustomerHandler) GetProfile(c *fiber.Ctx) error {
	customer, err := h.customerService.GetCustomerByID(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", customer.ToResponse())
}

// UpdateProfile updates the logged in customer
// @Summary Update my profile
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateCustomerInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /customer/profile [put]
func (h *CustomerHandler) UpdateProfile(c *fiber.Ctx) error {
	return h.update(c, middleware.CurrentUserID(c))
}

// List handles listing customers (Admin only)
// @Summary List customers
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /admin/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	customers, total, err := h.customerService.ListCustomers(c.Context(), params)
	if err != nil {
		return respondError(c, err)
	}
	return response.Paginated(c, customerResponses(customers), params, total)
}

// Get handles fetching one customer (Admin only)
// @Summary Get customer by ID
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid customer ID")
	}

	customer, err := h.customerService.GetCustomerByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", customer.ToResponse())
}

// Update handles editing a customer (Admin only)
// @Summary Update customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param body body services.UpdateCustomerInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid customer ID")
	}
	return h.update(c, id)
}

func (h *CustomerHandler) update(c *fiber.Ctx, id uint) error {
	var req services.UpdateCustomerInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	customer, err := h.customerService.UpdateCustomer(c.Context(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Customer updated successfully", customer.ToResponse())
}

// Delete handles removing a customer (Admin only)
// @Summary Delete customer
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid customer ID")
	}

	if err := h.customerService.DeleteCustomer(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Customer deleted successfully", nil)
}
