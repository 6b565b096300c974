package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"realtime-chat-be/internal/pkg/logger"
	"realtime-chat-be/internal/pkg/serverutils"
	internalWS "realtime-chat-be/internal/websocket"
)

// ChatStreamHandler owns the websocket handshake for the realtime chat feed.
type ChatStreamHandler struct {
	hub    *internalWS.Hub
	router *internalWS.Router
	logger logger.ILogger
}

func NewChatStreamHandler(hub *internalWS.Hub, router *internalWS.Router, log logger.ILogger) *ChatStreamHandler {
	return &ChatStreamHandler{
		hub:    hub,
		router: router,
		logger: log,
	}
}

func (h *ChatStreamHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/chat/v1")
	g.Get("/ws", h.ServeWs)
}

// ServeWs authenticates the handshake and upgrades the connection. Browsers
// cannot set headers on websocket requests, so a query param token is
// accepted alongside the Authorization header.
func (h *ChatStreamHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	claims, err := serverutils.ParseToken(tokenStr)
	if err != nil {
		h.logger.Warn("ChatStreamHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	username, _ := claims["display_name"].(string)

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatStreamHandler", "Starting chat session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, h.router, conn, userID, username)
			h.logger.Info("ChatStreamHandler", "Chat session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
