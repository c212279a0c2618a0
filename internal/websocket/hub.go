package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"doc-engine-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients map: DocumentID -> subscribed clients (one room
	// per document, multi-tab)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// instanceID marks envelopes this hub published, so the subscriber
	// skips them; local clients were already served directly.
	instanceID string

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// clusterEnvelope wraps a payload for the Redis channel. Message is
// RawMessage so the payload embeds as JSON instead of base64.
type clusterEnvelope struct {
	Origin           string          `json:"origin"`
	TargetDocumentID string          `json:"target_document_id"`
	Message          json.RawMessage `json:"message"`
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.DocumentID] = append(h.clients[client.DocumentID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client joined document room", map[string]interface{}{"document_id": client.DocumentID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.DocumentID]; ok {
				for i, c := range clients {
					if c == client {
						// Remove from slice
						h.clients[client.DocumentID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.DocumentID]) == 0 {
					delete(h.clients, client.DocumentID)
					h.logger.Info("Hub", "Document room closed", map[string]interface{}{"document_id": client.DocumentID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a payload to ALL connected clients, every room.
func (h *Hub) Broadcast(payload []byte) {
	// 1. Send to all local clients
	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- payload:
			default:
				close(client.Send)
				h.unregister <- client
			}
		}
	}
	h.mu.RUnlock()

	// 2. Publish to Redis for other instances
	if h.rdb != nil {
		jsonPayload, _ := json.Marshal(clusterEnvelope{
			Origin:           h.instanceID,
			TargetDocumentID: "*", // Wildcard for broadcast
			Message:          payload,
		})
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// SendToDocument delivers a payload to every client watching a document.
func (h *Hub) SendToDocument(documentID uuid.UUID, payload []byte) {
	// 1. Check locally
	h.mu.RLock()
	clients, localFound := h.clients[documentID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- payload:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"document_id": documentID})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	// 2. Publish to Redis so instances holding other watchers deliver too
	if h.rdb != nil {
		jsonPayload, _ := json.Marshal(clusterEnvelope{
			Origin:           h.instanceID,
			TargetDocumentID: documentID.String(),
			Message:          payload,
		})
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// subscribeToRedis listens on the shared cluster channel. Every instance
// receives every envelope and delivers only to the rooms it holds.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		// Parse message
		var envelope clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if envelope.Origin == h.instanceID {
			continue
		}

		// Check for Broadcast
		if envelope.TargetDocumentID == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					select {
					case client.Send <- envelope.Message:
					default:
						close(client.Send)
						h.unregister <- client
					}
				}
			}
			h.mu.RUnlock()
			continue
		}

		docID, err := uuid.Parse(envelope.TargetDocumentID)
		if err != nil {
			continue
		}

		// Check local
		h.mu.RLock()
		clients, ok := h.clients[docID]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- envelope.Message:
				default:
					close(client.Send)
					h.unregister <- client
				}
			}
		}
	}
}
