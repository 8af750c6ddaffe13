package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// AlertHandler exposes the owner dashboard's live alert socket.
type AlertHandler struct {
	hub *Hub
}

func NewAlertHandler(hub *Hub) *AlertHandler {
	return &AlertHandler{hub: hub}
}

func (h *AlertHandler) RegisterRoutes(r fiber.Router) {
	ws := r.Group("/alerts")

	ws.Use(func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	ws.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		ServeWs(h.hub, conn)
	}))
}
