package handlers

import (
	"carconnect/internal/adapters/http/middleware"
	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/core/services"
	"carconnect/internal/pkg/pagination"
	"carconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin account management (Admin only)
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// List handles listing admins
// @Summary List admins
// @Tags Admins
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /admin/admins [get]
func (h *AdminHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	admins, total, err := h.adminService.ListAdmins(c.Context(), params)
	if err != nil {
		return respondError(c, err)
	}

	data := make([]*models.AdminResponse, 0, len(admins))
	for _, a := range admins {
		data = append(data, a.ToResponse())
	}
	return response.Paginated(c, data, params, total)
}

// Get handles fetching one admin
// @Summary Get admin by ID
// @Tags Admins
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/admins/{id} [get]
func (h *AdminHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid admin ID")
	}

	admin, err := h.adminService.GetAdminByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", admin.ToResponse())
}

// Create handles adding an admin
// @Summary Add admin
// @Tags Admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AddAdminInput true "Admin data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/admins [post]
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var req services.AddAdminInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	admin, err := h.adminService.AddAdmin(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Admin added successfully", admin.ToResponse())
}

// Update handles editing an admin
// @Summary Update admin
// @Tags Admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Param body body services.UpdateAdminInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/admins/{id} [put]
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid admin ID")
	}

	var req services.UpdateAdminInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	admin, err := h.adminService.UpdateAdmin(c.Context(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Admin updated successfully", admin.ToResponse())
}

// Delete handles removing an admin. Admins cannot delete themselves.
// @Summary Delete admin
// @Tags Admins
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/admins/{id} [delete]
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid admin ID")
	}

	if err := h.adminService.DeleteAdmin(c.Context(), id, middleware.CurrentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Admin deleted successfully", nil)
}
