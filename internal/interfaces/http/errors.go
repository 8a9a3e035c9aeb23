package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
)

// writeError converte os erros sentinela do domínio na resposta HTTP
// correspondente. Os usecases embrulham o sentinela com contexto
// (fmt.Errorf("%w: ...")), então a comparação é sempre por errors.Is
// e a mensagem embrulhada vai no corpo.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "INTERNAL"

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrPaymentPending):
		status, code = fiber.StatusForbidden, "PAYMENT_PENDING"
	case errors.Is(err, domain.ErrPlanExpired):
		status, code = fiber.StatusForbidden, "PLAN_EXPIRED"
	case errors.Is(err, domain.ErrCompanyInactive):
		status, code = fiber.StatusForbidden, "COMPANY_INACTIVE"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrPlanLimitReached):
		status, code = fiber.StatusUnprocessableEntity, "PLAN_LIMIT"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInvalidStatusChange):
		status, code = fiber.StatusUnprocessableEntity, "INVALID_STATUS_CHANGE"
	}

	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
