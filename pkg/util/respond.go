package util

import "github.com/gofiber/fiber/v2"

// Envelope is the uniform response shape for every endpoint, success or
// failure: {status, statusCode, message, data|errors}.
type Envelope struct {
	Status     bool   `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Errors     any    `json:"errors,omitempty"`
}

// Success writes a successful envelope with the given HTTP status.
func Success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{
		Status:     true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// Failure writes a failed envelope from a DomainError.
func Failure(c *fiber.Ctx, derr *DomainError) error {
	var errs any = derr.Code
	if len(derr.Details) > 0 {
		errs = derr.Details
	}
	return c.Status(derr.HTTPStatus).JSON(Envelope{
		Status:     false,
		StatusCode: derr.HTTPStatus,
		Message:    derr.Message,
		Errors:     errs,
	})
}
