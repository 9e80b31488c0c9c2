package route

import (
	"github.com/gofiber/fiber/v2"

	controller "smartschool_backend/internals/features/realtime/controller"
	reportsService "smartschool_backend/internals/features/reports/service"
	realtime "smartschool_backend/internals/features/realtime/service"
)

// RealtimeRoutes mounts the websocket endpoint; r must already carry the
// auth middleware so the handshake is session-gated.
func RealtimeRoutes(r fiber.Router, hub *realtime.Hub, reports *reportsService.ReportsService) {
	ctl := controller.NewRealtimeController(hub, reports)
	r.Use("/ws", ctl.Upgrade)
	r.Get("/ws", ctl.Handler())
}
