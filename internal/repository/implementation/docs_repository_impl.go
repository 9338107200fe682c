package implementation

import (
	"context"
	"errors"
	"time"

	"workspace-be/internal/entity"
	"workspace-be/internal/mapper"
	"workspace-be/internal/model"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/repository/contract"
	"workspace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocsPageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocsMapper
}

func NewDocsPageRepository(db *gorm.DB) contract.DocsPageRepository {
	return &DocsPageRepositoryImpl{db: db, mapper: mapper.NewDocsMapper()}
}

func (r *DocsPageRepositoryImpl) Create(ctx context.Context, page *entity.Page) error {
	m := r.mapper.PageToModel(page)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.StorageFailure("create page", err)
	}
	*page = *r.mapper.PageToEntity(m)
	return nil
}

func (r *DocsPageRepositoryImpl) Update(ctx context.Context, page *entity.Page) error {
	res := r.db.WithContext(ctx).Model(&model.DocsPage{}).
		Where("id = ?", page.Id).
		Updates(map[string]interface{}{"title": page.Title, "updated_at": page.UpdatedAt})
	if res.Error != nil {
		return apperror.StorageFailure("update page", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("page %s not found", page.Id)
	}
	return nil
}

func (r *DocsPageRepositoryImpl) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.DocsPage{}).
		Where("id = ?", id).
		Update("updated_at", at)
	if res.Error != nil {
		return apperror.StorageFailure("touch page", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("page %s not found", id)
	}
	return nil
}

func (r *DocsPageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.DocsPage{}, "id = ?", id)
	return deleteResult(res, "delete page", "page", id)
}

func (r *DocsPageRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return deleteAll(r.db.WithContext(ctx), &model.DocsPage{}, "delete pages", specs...)
}

func (r *DocsPageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Page, error) {
	var m model.DocsPage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageFailure("find page", err)
	}
	return r.mapper.PageToEntity(&m), nil
}

func (r *DocsPageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Page, error) {
	var models []*model.DocsPage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.StorageFailure("list pages", err)
	}
	return r.mapper.PagesToEntities(models), nil
}

type DocsBlockRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocsMapper
}

func NewDocsBlockRepository(db *gorm.DB) contract.DocsBlockRepository {
	return &DocsBlockRepositoryImpl{db: db, mapper: mapper.NewDocsMapper()}
}

func (r *DocsBlockRepositoryImpl) Create(ctx context.Context, block *entity.Block) error {
	m := r.mapper.BlockToModel(block)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.StorageFailure("create block", err)
	}
	*block = *r.mapper.BlockToEntity(m)
	return nil
}

func (r *DocsBlockRepositoryImpl) Update(ctx context.Context, block *entity.Block) error {
	m := r.mapper.BlockToModel(block)
	res := r.db.WithContext(ctx).Model(&model.DocsBlock{}).
		Where("id = ?", block.Id).
		Select("kind", "data", "order_index", "search_text").
		Updates(m)
	if res.Error != nil {
		return apperror.StorageFailure("update block", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("block %s not found", block.Id)
	}
	return nil
}

func (r *DocsBlockRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.DocsBlock{}, "id = ?", id)
	return deleteResult(res, "delete block", "block", id)
}

func (r *DocsBlockRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return deleteAll(r.db.WithContext(ctx), &model.DocsBlock{}, "delete blocks", specs...)
}

func (r *DocsBlockRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Block, error) {
	var m model.DocsBlock
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageFailure("find block", err)
	}
	return r.mapper.BlockToEntity(&m), nil
}

func (r *DocsBlockRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Block, error) {
	var models []*model.DocsBlock
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.StorageFailure("list blocks", err)
	}
	return r.mapper.BlocksToEntities(models), nil
}
