package handlers

import (
	"errors"
	"strconv"

	"carconnect/internal/core/domain"
	"carconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// respondError maps a service error onto the response envelope
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidReservationStatus):
		return response.BadRequest(c, err.Error())

	case errors.Is(err, domain.ErrAuthentication):
		// Wrapped form carries a storage failure
		if err != domain.ErrAuthentication {
			logrus.WithError(err).Warn("Login lookup failed")
		}
		return response.Unauthorized(c, "Invalid username or password")

	case errors.Is(err, domain.ErrCannotDeleteSelf):
		return response.Forbidden(c, err.Error())

	case domain.IsNotFound(err):
		return response.NotFound(c, err.Error())

	case errors.Is(err, domain.ErrDuplicateEntry),
		errors.Is(err, domain.ErrReservationConflict),
		errors.Is(err, domain.ErrVehicleUnavailable),
		errors.Is(err, domain.ErrHasActiveReservations):
		return response.Conflict(c, err.Error())

	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("Request failed")
		return response.InternalServerError(c, "Internal server error")
	}
}

// parseID reads a positive numeric path parameter
func parseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
