package contract

import (
	"context"

	"doc-engine-be/internal/entity"
	"doc-engine-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RevisionRepository interface {
	Create(ctx context.Context, rev *entity.Revision) error
	DeleteAllByDocumentId(ctx context.Context, documentId uuid.UUID) error // Hard delete all
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Revision, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Revision, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
