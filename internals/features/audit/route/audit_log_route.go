package route

import (
	"github.com/gofiber/fiber/v2"

	"smartschool_backend/internals/constants"
	controller "smartschool_backend/internals/features/audit/controller"
	service "smartschool_backend/internals/features/audit/service"
	authMiddleware "smartschool_backend/internals/middlewares/auth"
)

// AuditLogRoutes exposes the read side of the audit trail to managers only.
func AuditLogRoutes(r fiber.Router, rec *service.Recorder) {
	ctl := controller.NewAuditLogController(rec)

	logs := r.Group("/audit-logs",
		authMiddleware.OnlyRoles("Audit logs are restricted to managers", constants.ManagerOnly...))
	logs.Get("/", ctl.FindAll)
	logs.Get("/:entity/:entityId", ctl.FindByEntity)
}
