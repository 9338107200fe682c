package implementation

import (
	"context"
	"errors"

	"workspace-be/internal/entity"
	"workspace-be/internal/mapper"
	"workspace-be/internal/model"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/repository/contract"
	"workspace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileMapper
}

func NewFileRepository(db *gorm.DB) contract.FileRepository {
	return &FileRepositoryImpl{db: db, mapper: mapper.NewFileMapper()}
}

func (r *FileRepositoryImpl) Create(ctx context.Context, file *entity.File) error {
	m := r.mapper.ToModel(file)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.StorageFailure("create file", err)
	}
	*file = *r.mapper.ToEntity(m)
	return nil
}

func (r *FileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.File{}, "id = ?", id)
	return deleteResult(res, "delete file", "file", id)
}

func (r *FileRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return deleteAll(r.db.WithContext(ctx), &model.File{}, "delete files", specs...)
}

func (r *FileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error) {
	var m model.File
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageFailure("find file", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error) {
	var models []*model.File
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.StorageFailure("list files", err)
	}
	files := r.mapper.ToEntities(models)
	if len(files) == 0 {
		return files, nil
	}

	seen := make(map[uuid.UUID]bool)
	var workspaceIds []uuid.UUID
	for _, f := range files {
		if !seen[f.WorkspaceId] {
			seen[f.WorkspaceId] = true
			workspaceIds = append(workspaceIds, f.WorkspaceId)
		}
	}

	var workspaces []*model.Workspace
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", workspaceIds).Find(&workspaces).Error; err != nil {
		return nil, apperror.StorageFailure("list file workspaces", err)
	}
	names := make(map[uuid.UUID]string, len(workspaces))
	for _, w := range workspaces {
		names[w.Id] = w.Name
	}
	for _, f := range files {
		f.WorkspaceName = names[f.WorkspaceId]
	}
	return files, nil
}
