package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	Namespace string `json:"namespace" validate:"required,max=128"`
	Content   string `json:"content" validate:"required"`
}

type CreateDocumentResponse struct {
	Id  uuid.UUID `json:"id"`
	Seq int       `json:"seq"`
}

type ShowDocumentResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Namespace string     `json:"namespace"`
	Content   string     `json:"content"`
	Seq       int        `json:"seq"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ListDocumentsRequest struct {
	Namespace string `query:"namespace"`
	Search    string `query:"search"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

type DocumentSummary struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Namespace string     `json:"namespace"`
	Seq       int        `json:"seq"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ListDocumentsResponse struct {
	Documents []DocumentSummary `json:"documents"`
	Total     int64             `json:"total"`
}

type UpdateDocumentRequest struct {
	Id      uuid.UUID
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type UpdateDocumentResponse struct {
	Id  uuid.UUID `json:"id"`
	Seq int       `json:"seq"`
}

type ExportDocumentResponse struct {
	Id       uuid.UUID `json:"id"`
	Format   string    `json:"format"`
	Seq      int       `json:"seq"`
	Rendered string    `json:"rendered"`
	Cached   bool      `json:"cached"`
}

type ValidateDocumentRequest struct {
	Content string `json:"content" validate:"required"`
}

// ValidateDocumentResponse reports whether a serialized document imports
// cleanly against the builtin registry, with the normalized form on
// success and the import error otherwise.
type ValidateDocumentResponse struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	NodeCount  int    `json:"node_count,omitempty"`
	Issue      string `json:"issue,omitempty"`
}

type RevisionSummary struct {
	Id        uuid.UUID `json:"id"`
	Seq       int       `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentUpdatedMessage travels the internal bus from the write path to
// the consumer that invalidates caches and fans the change out.
type DocumentUpdatedMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
	Seq        int       `json:"seq"`
}
