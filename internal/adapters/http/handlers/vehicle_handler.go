package handlers

import (
	"carconnect/internal/core/services"
	"carconnect/internal/pkg/pagination"
	"carconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VehicleHandler handles fleet endpoints
type VehicleHandler struct {
	vehicleService *services.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// ListAvailable handles browsing the vehicles open for booking
// @Summary List available vehicles
// @Description Vehicles currently flagged available
// @Tags Vehicles
// @Produce json
// @Success 200 {object} response.Response
// @Router /vehicles/available [get]
func (h *VehicleHandler) ListAvailable(c *fiber.Ctx) error {
	vehicles, err := h.vehicleService.GetAvailableVehicles(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", vehicles)
}

// List handles listing the whole fleet (Admin only)
// @Summary List vehicles
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/vehicles [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	vehicles, total, err := h.vehicleService.ListVehicles(c.Context(), params)
	if err != nil {
		return respondError(c, err)
	}
	return response.Paginated(c, vehicles, params, total)
}

// Get handles fetching one vehicle (Admin only)
// @Summary Get vehicle by ID
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/vehicles/{id} [get]
func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid vehicle ID")
	}

	vehicle, err := h.vehicleService.GetVehicleByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", vehicle)
}

// GetByRegistration handles looking a vehicle up by its registration number (Admin only)
// @Summary Get vehicle by registration number
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param regNo path string true "Registration number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/vehicles/registration/{regNo} [get]
func (h *VehicleHandler) GetByRegistration(c *fiber.Ctx) error {
	vehicle, err := h.vehicleService.GetVehicleByRegistrationNumber(c.Context(), c.Params("regNo"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", vehicle)
}

// Create handles adding a vehicle (Admin only)
// @Summary Add vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AddVehicleInput true "Vehicle data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var req services.AddVehicleInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	vehicle, err := h.vehicleService.AddVehicle(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Vehicle added successfully", vehicle)
}

// Update handles editing a vehicle (Admin only)
// @Summary Update vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param body body services.UpdateVehicleInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/vehicles/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid vehicle ID")
	}

	var req services.UpdateVehicleInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Context(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Vehicle updated successfully", vehicle)
}

// AvailabilityRequest represents availability toggle body
type AvailabilityRequest struct {
	Availability *bool `json:"availability"`
}

// SetAvailability handles taking a vehicle in or out of service (Admin only)
// @Summary Set vehicle availability
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param body body AvailabilityRequest true "Availability flag"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/vehicles/{id}/availability [put]
func (h *VehicleHandler) SetAvailability(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid vehicle ID")
	}

	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil || req.Availability == nil {
		return response.BadRequest(c, "availability is required")
	}

	if err := h.vehicleService.SetAvailability(c.Context(), id, *req.Availability); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Availability updated", fiber.Map{
		"id":           id,
		"availability": *req.Availability,
	})
}

// Delete handles removing a vehicle (Admin only)
// @Summary Remove vehicle
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid vehicle ID")
	}

	if err := h.vehicleService.RemoveVehicle(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Vehicle removed successfully", nil)
}
