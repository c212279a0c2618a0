package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"doc-engine-be/internal/pkg/logger"
	"doc-engine-be/pkg/events"
	pkgNats "doc-engine-be/pkg/nats"

	"github.com/google/uuid"
)

// StreamDelivery pushes real-time document updates to watchers.
// Typically implemented by the WebSocket Hub.
type StreamDelivery interface {
	SendToDocument(documentID uuid.UUID, payload []byte)
	Broadcast(payload []byte)
}

// StreamService bridges the external event bus to websocket rooms: every
// document lifecycle event lands in the room of the document it names.
type StreamService struct {
	subscriber *pkgNats.Subscriber
	delivery   StreamDelivery
	logger     logger.ILogger
}

func NewStreamService(sub *pkgNats.Subscriber, delivery StreamDelivery, log logger.ILogger) *StreamService {
	return &StreamService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *StreamService) Start() {
	err := s.subscriber.Subscribe("events.>", "doc-stream-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("StreamService", "Failed to start stream subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("StreamService", "Stream service started, listening to events.>", nil)
}

func (s *StreamService) handleEvent(ctx context.Context, event events.Event) error {
	// The subject carries the stream prefix; the type code follows it.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	payload := event.Payload()
	docIDStr, _ := payload["document_id"].(string)
	docID, err := uuid.Parse(docIDStr)
	if err != nil {
		// Not a document event; nothing to fan out.
		return nil
	}

	frame, err := json.Marshal(map[string]interface{}{
		"type":        typeCode,
		"document_id": docID,
		"data":        payload,
		"occurred_at": event.Timestamp().Format(time.RFC3339),
	})
	if err != nil {
		return nil
	}

	if s.delivery != nil {
		s.delivery.SendToDocument(docID, frame)
	}
	s.logger.Info("StreamService", "Event delivered to document room", map[string]interface{}{
		"type":        typeCode,
		"document_id": docID,
	})
	return nil
}
