package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"newpack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// bind parses the JSON body into req and validates its struct tags.
func bind(c *fiber.Ctx, validate *validator.Validate, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return &services.Error{Kind: services.KindValidation, Title: "Validation failed", Message: "Invalid request body"}
	}

	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
		}
		return &services.Error{Kind: services.KindValidation, Title: "Validation failed", Message: strings.Join(messages, "; ")}
	}
	return nil
}

// respondError writes the {error, message} envelope for err.
func respondError(c *fiber.Ctx, err error) error {
	serr, ok := services.AsError(err)
	if !ok {
		log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal Server Error",
			"message": "Something went wrong",
		})
	}

	if serr.Err != nil {
		log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), serr)
	}
	return c.Status(statusFor(serr.Kind)).JSON(fiber.Map{
		"error":   serr.Title,
		"message": serr.Message,
	})
}

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindUnauthorized:
		return fiber.StatusUnauthorized
	case services.KindForbidden:
		return fiber.StatusForbidden
	case services.KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, &services.Error{Kind: services.KindValidation, Title: "Validation failed", Message: fmt.Sprintf("Invalid %s", name)}
	}
	return uint(id), nil
}
