package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"doc-engine-be/pkg/lexical"
)

// ErrorHandlerMiddleware converts errors returned by handlers into the
// standard error envelope. Document schema failures map to 422 so a
// client can tell a malformed document apart from a malformed request.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError

		var (
			fiberErr    *fiber.Error
			unknownType *lexical.UnknownTypeError
			schemaErr   *lexical.SchemaMismatchError
		)
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		case errors.As(err, &unknownType), errors.As(err, &schemaErr):
			code = fiber.StatusUnprocessableEntity
		case errors.Is(err, lexical.ErrNoRoot):
			code = fiber.StatusUnprocessableEntity
		case errors.Is(err, gorm.ErrRecordNotFound):
			code = fiber.StatusNotFound
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
