package middleware

import (
	"strings"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by ValidationMiddleware.
const (
	ValidatedURLKey    = "validated_url"
	ValidatedQuizIDKey = "validated_quiz_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateArticleURL validates the url query parameter, falling back to a
// JSON body of the form {"url": "..."}.
func (vm *ValidationMiddleware) ValidateArticleURL() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawURL := c.Query("url")
		if rawURL == "" && len(c.Body()) > 0 {
			var req dto.GenerateQuizRequest
			if err := c.BodyParser(&req); err != nil {
				return domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
			}
			rawURL = req.URL
		}

		if errors := vm.validator.ValidateArticleURL(rawURL); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		// Store validated value in context for handlers to use
		c.Locals(ValidatedURLKey, strings.TrimSpace(rawURL))
		return c.Next()
	}
}

// ValidateQuizID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, errors := vm.validator.ParseQuizID(c.Params("id"))
		if len(errors) > 0 {
			return errors
		}

		c.Locals(ValidatedQuizIDKey, id)
		return c.Next()
	}
}
