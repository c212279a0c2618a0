package unitofwork

import (
	"context"

	"doc-engine-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	RevisionRepository() contract.RevisionRepository
}
