package handlers

import (
	"errors"

	"Food-Tracker/domain"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFoodItemNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAudioTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrTranscriptionFailed):
		return fiber.StatusBadGateway
	case errors.Is(err, domain.ErrTranscriberDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrParseID),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidDaysToExpiry),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrItemLimitReached),
		errors.Is(err, domain.ErrAudioMissing):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
