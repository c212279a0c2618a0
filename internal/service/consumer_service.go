// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"doc-engine-be/internal/dto"
	"doc-engine-be/internal/repository/memory"
	"doc-engine-be/internal/repository/specification"
	"doc-engine-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	uowFactory      unitofwork.RepositoryFactory
	documentService IDocumentService
	renderCache     *memory.RenderCacheRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	documentService IDocumentService,
	renderCache *memory.RenderCacheRepository,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		uowFactory:      uowFactory,
		documentService: documentService,
		renderCache:     renderCache,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage drops stale cached renders for the updated document and
// re-renders every export format at the new seq, so the next export
// request is served warm.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.DocumentUpdatedMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing render refresh for DocumentId: %s seq %d", payload.DocumentId, payload.Seq)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if doc == nil {
		log.Printf("[WARN] Document not found: %s", payload.DocumentId)
		msg.Ack() // Document deleted? Ack.
		return
	}

	cs.renderCache.Invalidate(doc.Id)

	// Content was normalized at write time, so a render failure here is
	// not retriable. Log and move on; exports fall back to on-demand.
	for _, format := range []string{FormatMarkdown, FormatHTML, FormatText} {
		if _, err := cs.documentService.Export(ctx, doc.Id, format); err != nil {
			log.Printf("[ERROR] Failed to warm %s render for document %s: %v", format, doc.Id, err)
		}
	}

	log.Printf("[SUCCESS] Render cache refreshed for DocumentId: %s seq %d", payload.DocumentId, doc.Seq)
	msg.Ack()
}
