package mapper

import (
	"doc-engine-be/internal/entity"
	"doc-engine-be/internal/model"

	"gorm.io/datatypes"
)

type RevisionMapper struct{}

func NewRevisionMapper() *RevisionMapper {
	return &RevisionMapper{}
}

func (m *RevisionMapper) ToEntity(r *model.Revision) *entity.Revision {
	if r == nil {
		return nil
	}

	return &entity.Revision{
		Id:         r.Id,
		DocumentId: r.DocumentId,
		Seq:        r.Seq,
		Content:    string(r.Content),
		CreatedAt:  r.CreatedAt,
	}
}

func (m *RevisionMapper) ToModel(r *entity.Revision) *model.Revision {
	if r == nil {
		return nil
	}

	return &model.Revision{
		Id:         r.Id,
		DocumentId: r.DocumentId,
		Seq:        r.Seq,
		Content:    datatypes.JSON(r.Content),
		CreatedAt:  r.CreatedAt,
	}
}

func (m *RevisionMapper) ToEntities(revs []*model.Revision) []*entity.Revision {
	entities := make([]*entity.Revision, len(revs))
	for i, r := range revs {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *RevisionMapper) ToModels(revs []*entity.Revision) []*model.Revision {
	models := make([]*model.Revision, len(revs))
	for i, r := range revs {
		models[i] = m.ToModel(r)
	}
	return models
}
