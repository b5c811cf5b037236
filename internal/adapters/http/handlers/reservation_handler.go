package handlers

import (
	"carconnect/internal/adapters/http/middleware"
	"carconnect/internal/core/domain"
	"carconnect/internal/core/services"
	"carconnect/internal/pkg/pagination"
	"carconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReservationHandler handles booking endpoints
type ReservationHandler struct {
	reservationService *services.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
	}
}

// BookRequest represents a booking body. Dates use YYYY-MM-DD.
type BookRequest struct {
	VehicleID uint   `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

// StatusRequest represents a status change body
type StatusRequest struct {
	Status string `json:"status"`
}

// Book handles a customer booking a vehicle
// @Summary Book a reservation
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BookRequest true "Booking"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /customer/reservations [post]
func (h *ReservationHandler) Book(c *fiber.Ctx) error {
	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.VehicleID == 0 {
		return response.BadRequest(c, "vehicle_id is required")
	}

	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return respondError(c, err)
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		return respondError(c, err)
	}

	reservation, err := h.reservationService.BookReservation(c.Context(), &services.BookReservationInput{
		CustomerID: middleware.CurrentUserID(c),
		VehicleID:  req.VehicleID,
		StartDate:  start,
		EndDate:    end,
		Status:     req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Reservation booked successfully", reservation)
}

// Mine handles listing the customer's own reservations
// @Summary My reservations
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /customer/reservations [get]
func (h *ReservationHandler) Mine(c *fiber.Ctx) error {
	reservations, err := h.reservationService.GetReservationsByCustomerID(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", reservations)
}

// ByVehicle handles listing every reservation of one vehicle (Admin only)
// @Summary Reservations of a vehicle
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/vehicles/{id}/reservations [get]
func (h *ReservationHandler) ByVehicle(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid vehicle ID")
	}

	reservations, err := h.reservationService.GetReservationsByVehicleID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", reservations)
}

// CancelMine handles a customer cancelling one of their reservations
// @Summary Cancel my reservation
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /customer/reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelMine(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid reservation ID")
	}

	if err := h.reservationService.CancelCustomerReservation(c.Context(), middleware.CurrentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Reservation cancelled successfully", nil)
}

// List handles listing every reservation (Admin only)
// @Summary List reservations
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /admin/reservations [get]
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	reservations, total, err := h.reservationService.ListReservations(c.Context(), params)
	if err != nil {
		return respondError(c, err)
	}
	return response.Paginated(c, reservations, params, total)
}

// Get handles fetching one reservation (Admin only)
// @Summary Get reservation by ID
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/reservations/{id} [get]
func (h *ReservationHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid reservation ID")
	}

	reservation, err := h.reservationService.GetReservationByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", reservation)
}

// UpdateStatus handles an admin moving a reservation to another status
// @Summary Update reservation status
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/reservations/{id}/status [put]
func (h *ReservationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid reservation ID")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reservation, err := h.reservationService.UpdateReservationStatus(c.Context(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Reservation status updated", reservation)
}

// Cancel handles an admin cancelling any reservation
// @Summary Cancel reservation
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid reservation ID")
	}

	if err := h.reservationService.CancelReservation(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Reservation cancelled successfully", nil)
}
