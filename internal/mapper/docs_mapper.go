package mapper

import (
	"encoding/json"

	"workspace-be/internal/entity"
	"workspace-be/internal/model"

	"gorm.io/datatypes"
)

type DocsMapper struct{}

func NewDocsMapper() *DocsMapper {
	return &DocsMapper{}
}

func (m *DocsMapper) PageToEntity(p *model.DocsPage) *entity.Page {
	if p == nil {
		return nil
	}
	return &entity.Page{
		Id:          p.Id,
		WorkspaceId: p.WorkspaceId,
		Title:       p.Title,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *DocsMapper) PageToModel(p *entity.Page) *model.DocsPage {
	if p == nil {
		return nil
	}
	return &model.DocsPage{
		Id:          p.Id,
		WorkspaceId: p.WorkspaceId,
		Title:       p.Title,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *DocsMapper) PagesToEntities(pages []*model.DocsPage) []*entity.Page {
	entities := make([]*entity.Page, len(pages))
	for i, p := range pages {
		entities[i] = m.PageToEntity(p)
	}
	return entities
}

func (m *DocsMapper) BlockToEntity(b *model.DocsBlock) *entity.Block {
	if b == nil {
		return nil
	}
	kind := entity.BlockKind(b.Kind)
	return &entity.Block{
		Id:         b.Id,
		PageId:     b.PageId,
		Kind:       kind,
		Data:       entity.DecodeBlockData(kind, json.RawMessage(b.Data)),
		OrderIndex: b.OrderIndex,
		CreatedAt:  b.CreatedAt,
	}
}

// BlockToModel stores the payload as received alongside its plain-text
// rendering for search.
func (m *DocsMapper) BlockToModel(b *entity.Block) *model.DocsBlock {
	if b == nil {
		return nil
	}
	data := b.Data
	if data == nil {
		data = entity.DecodeBlockData(b.Kind, nil)
	}
	return &model.DocsBlock{
		Id:         b.Id,
		PageId:     b.PageId,
		Kind:       string(b.Kind),
		Data:       datatypes.JSON(data.Raw()),
		OrderIndex: b.OrderIndex,
		SearchText: data.PlainText(),
		CreatedAt:  b.CreatedAt,
	}
}

func (m *DocsMapper) BlocksToEntities(blocks []*model.DocsBlock) []*entity.Block {
	entities := make([]*entity.Block, len(blocks))
	for i, b := range blocks {
		entities[i] = m.BlockToEntity(b)
	}
	return entities
}
