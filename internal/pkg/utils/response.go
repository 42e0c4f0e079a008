package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/station-locator/internal/pkg/errors"
)

const statusError = "error"

type ErrorResponse struct {
	Status string           `json:"status"`
	Error  *errors.AppError `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

func SendSuccess(c *fiber.Ctx, data interface{}) error {
	return c.JSON(data)
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Status: statusError,
			Error:  appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Status: statusError,
		Error:  errors.ErrInternalServer,
	})
}
