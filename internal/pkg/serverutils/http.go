package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}

// ValidateRequest runs struct-tag validation and converts failures into a
// 422 fiber error listing the offending fields.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", ve.Field(), ve.Tag()))
			}
		}
		return fiber.NewError(
			fiber.StatusUnprocessableEntity,
			fmt.Sprintf("Validation failed: %s", strings.Join(fields, ", ")),
		)
	}
	return nil
}

// RequestIDMiddleware tags each request with a UUID, echoed in the
// X-Request-ID response header and available via ctx.Locals("request_id").
func RequestIDMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		requestID := ctx.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Locals("request_id", requestID)
		ctx.Set("X-Request-ID", requestID)
		return ctx.Next()
	}
}

// ErrorHandlerMiddleware converts unhandled errors and panics into JSON
// responses. Fiber errors keep their status code; everything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				_ = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(fmt.Sprintf("Internal server error: %v", r)))
			}
		}()

		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fe, ok := err.(*fiber.Error); ok {
			return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Message))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(err.Error()))
	}
}
