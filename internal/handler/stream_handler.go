package handler

import (
	"doc-engine-be/internal/pkg/logger"
	"doc-engine-be/internal/pkg/serverutils"
	"doc-engine-be/internal/service"
	internalWS "doc-engine-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// StreamHandler upgrades document watchers onto the hub.
type StreamHandler struct {
	documentService service.IDocumentService
	hub             *internalWS.Hub
	logger          logger.ILogger
}

func NewStreamHandler(documentService service.IDocumentService, hub *internalWS.Hub, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		documentService: documentService,
		hub:             hub,
		logger:          log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	// 1. Get Token source
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		tokenStr = serverutils.BearerToken(c)
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	// 2. Verify with the same secret the REST middleware uses
	if _, err := serverutils.ParseToken(tokenStr); err != nil {
		h.logger.Warn("StreamHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	// 3. Resolve the watched document
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document ID"})
	}

	doc, err := h.documentService.Show(c.Context(), documentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Starting WebSocket session", map[string]interface{}{"document_id": documentID})
			internalWS.ServeWs(h.hub, conn, documentID)
			h.logger.Info("StreamHandler", "WebSocket session ended", map[string]interface{}{"document_id": documentID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the stream endpoint.
func (h *StreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/document/v1/:id/stream", h.ServeWs)
}
