package handler

import (
	"os"

	"course-copilot-be/internal/pkg/logger"
	internalWS "course-copilot-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NotificationHandler upgrades staff connections onto the operations feed.
type NotificationHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs authenticates the handshake and upgrades the connection. The
// token comes from the query string (browser) or the Authorization header.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	staffIDStr, ok := claims["staff_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing staff_id"})
	}
	staffID, err := uuid.Parse(staffIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid staff ID in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("NotificationHandler", "Staff feed session started", map[string]interface{}{"staff_id": staffID})
			internalWS.ServeWs(h.hub, conn, staffID)
			h.logger.Info("NotificationHandler", "Staff feed session ended", map[string]interface{}{"staff_id": staffID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
