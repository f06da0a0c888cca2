package handlers

import (
	"errors"
	"fmt"
	"strings"

	"setlist/internal/apperror"
	"setlist/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders every failure as {"message": ..., "error"?: ...}.
// Internal failures are logged and never expose their cause.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	log = logger.OrNop(log)
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"message": fiberErr.Message,
			})
		}

		status := apperror.StatusCode(err)
		if apperror.Is(err, apperror.KindInternal) {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return c.Status(status).JSON(fiber.Map{
				"message": apperror.PublicMessage(err),
			})
		}

		return c.Status(status).JSON(fiber.Map{
			"message": apperror.PublicMessage(err),
			"error":   apperror.KindOf(err).String(),
		})
	}
}

// respond writes the {message, data} envelope. data is omitted when nil.
func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{"message": message}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// bind parses the JSON body into dst and validates it.
func bind(c *fiber.Ctx, validate *validator.Validate, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return &apperror.Error{Kind: apperror.KindInvalid, Message: "Invalid request body", Err: err}
	}
	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return apperror.Invalid(err.Error())
		}
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
		}
		return apperror.Invalid("Validation failed: " + strings.Join(messages, "; "))
	}
	return nil
}
