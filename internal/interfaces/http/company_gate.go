package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
)

// companyChecker é o contrato mínimo que o gate precisa para reavaliar a
// situação da empresa. Implementado por *usecase.CompanyUseCase; a interface
// evita o import circular com o pacote de usecases.
type companyChecker interface {
	CheckAccess(companyID string) error
}

// CompanyGate bloqueia empresas desativadas, sem pagamento confirmado ou com
// plano vencido. Deve vir DEPOIS de AuthMiddleware (usa LocalCompanyID).
// O admin da plataforma não pertence a nenhuma empresa e passa direto.
//
// Respostas:
//   - 401 quando o token não carrega company_id (e não é admin)
//   - 403 COMPANY_INACTIVE | PAYMENT_PENDING | PLAN_EXPIRED conforme o caso
func CompanyGate(checker companyChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) == entity.RoleAdmin {
			return c.Next()
		}
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id ausente no token",
			})
		}
		if err := checker.CheckAccess(companyID); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}
