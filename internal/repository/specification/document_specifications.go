package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByNamespace struct {
	Namespace string
}

func (s ByNamespace) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("namespace = ?", s.Namespace)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type BySeq struct {
	Seq int
}

func (s BySeq) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("seq = ?", s.Seq)
}

type TitleContains struct {
	Term string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Term+"%")
}
