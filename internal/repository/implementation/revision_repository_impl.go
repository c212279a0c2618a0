package implementation

import (
	"context"
	"errors"

	"doc-engine-be/internal/entity"
	"doc-engine-be/internal/mapper"
	"doc-engine-be/internal/model"
	"doc-engine-be/internal/repository/contract"
	"doc-engine-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RevisionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RevisionMapper
}

func NewRevisionRepository(db *gorm.DB) contract.RevisionRepository {
	return &RevisionRepositoryImpl{
		db:     db,
		mapper: mapper.NewRevisionMapper(),
	}
}

func (r *RevisionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RevisionRepositoryImpl) Create(ctx context.Context, rev *entity.Revision) error {
	m := r.mapper.ToModel(rev)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*rev = *r.mapper.ToEntity(m)
	return nil
}

func (r *RevisionRepositoryImpl) DeleteAllByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.Revision{}).Error
}

func (r *RevisionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Revision, error) {
	var m model.Revision
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RevisionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Revision, error) {
	var models []*model.Revision
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RevisionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Revision{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
