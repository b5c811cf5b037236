package handlers

import (
	"strconv"

	"carconnect/internal/core/services"
	"carconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles report endpoints (Admin only)
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ReservationHistory handles the reservation history report
// @Summary Reservation history report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param customer_id query int false "Restrict to one customer"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/reports/reservations [get]
func (h *ReportHandler) ReservationHistory(c *fiber.Ctx) error {
	var customerID *uint
	if raw := c.Query("customer_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || n == 0 {
			return response.BadRequest(c, "Invalid customer_id")
		}
		id := uint(n)
		customerID = &id
	}

	report, err := h.reportService.ReservationHistory(c.Context(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", report)
}

// VehicleUtilization handles the per-vehicle utilization report
// @Summary Vehicle utilization report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/reports/utilization [get]
func (h *ReportHandler) VehicleUtilization(c *fiber.Ctx) error {
	report, err := h.reportService.VehicleUtilization(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", report)
}

// Revenue handles the revenue report
// @Summary Revenue report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/reports/revenue [get]
func (h *ReportHandler) Revenue(c *fiber.Ctx) error {
	report, err := h.reportService.Revenue(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", report)
}
