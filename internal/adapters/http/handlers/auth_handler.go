package handlers

import (
	"strings"

	"carconnect/internal/adapters/http/middleware"
	"carconnect/internal/core/domain"
	"carconnect/internal/core/services"
	"carconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService     *services.AuthService
	customerService *services.CustomerService
	adminService    *services.AdminService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService *services.AuthService,
	customerService *services.CustomerService,
	adminService *services.AdminService,
) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		customerService: customerService,
		adminService:    adminService,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// parseLogin reads and checks the login body
func parseLogin(c *fiber.Ctx) (*LoginRequest, string) {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, "Invalid request body"
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return nil, "Username is required"
	}
	if req.Password == "" {
		return nil, "Password is required"
	}
	return &req, ""
}

// RegisterCustomer handles customer self registration
// @Summary Register new customer
// @Description Create a customer account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterCustomerInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/customer/register [post]
func (h *AuthHandler) RegisterCustomer(c *fiber.Ctx) error {
	var req services.RegisterCustomerInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	customer, err := h.customerService.RegisterCustomer(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Customer registered successfully", fiber.Map{
		"customer": customer.ToResponse(),
	})
}

// CustomerLogin handles customer login
// @Summary Customer login
// @Description Authenticate a customer and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/customer/login [post]
func (h *AuthHandler) CustomerLogin(c *fiber.Ctx) error {
	req, msg := parseLogin(c)
	if req == nil {
		return response.BadRequest(c, msg)
	}

	customer, err := h.authService.CustomerLogin(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.IssueToken(customer.ID, customer.Username, domain.RoleCustomer)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token":    token,
		"customer": customer.ToResponse(),
	})
}

// AdminLogin handles admin login
// @Summary Admin login
// @Description Authenticate an admin and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	req, msg := parseLogin(c)
	if req == nil {
		return response.BadRequest(c, msg)
	}

	admin, err := h.authService.AdminLogin(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.IssueToken(admin.ID, admin.Username, domain.RoleAdmin)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token": token,
		"admin": admin.ToResponse(),
	})
}

// Me returns the authenticated principal
// @Summary Current user
// @Description Get the admin or customer behind the access token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id := middleware.CurrentUserID(c)
	role, _ := c.Locals(middleware.LocalRole).(string)

	switch domain.Role(role) {
	case domain.RoleAdmin:
		admin, err := h.adminService.GetAdminByID(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return response.Success(c, "", fiber.Map{"role": role, "admin": admin.ToResponse()})
	case domain.RoleCustomer:
		customer, err := h.customerService.GetCustomerByID(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return response.Success(c, "", fiber.Map{"role": role, "customer": customer.ToResponse()})
	}

	return response.Unauthorized(c, "Unauthorized")
}
