package service

import (
	"context"
	"errors"
	"strings"

	"workspace-be/internal/dto"
	"workspace-be/internal/entity"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/pkg/logger"
	"workspace-be/internal/repository/scope"
	"workspace-be/internal/repository/specification"
	"workspace-be/internal/repository/unitofwork"
	"workspace-be/pkg/blobstore"
	"workspace-be/pkg/events"
	"workspace-be/pkg/export"

	"github.com/google/uuid"
)

const (
	unscopedFileLimit  = 500
	defaultContentType = "application/octet-stream"
)

type IFileService interface {
	Upload(ctx context.Context, req *dto.UploadFileRequest) (*dto.UploadFileResponse, error)
	List(ctx context.Context, workspaceId *uuid.UUID) (*dto.ListFilesResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.FileResponse, error)
	Download(ctx context.Context, id uuid.UUID) (*dto.FileDownload, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileService struct {
	uowFactory unitofwork.RepositoryFactory
	blobs      blobstore.Store
	cleanup    IBlobCleanupService
	notifier   IChangeNotifier
	logger     logger.ILogger
}

func NewFileService(
	uowFactory unitofwork.RepositoryFactory,
	blobs blobstore.Store,
	cleanup IBlobCleanupService,
	notifier IChangeNotifier,
	log logger.ILogger,
) IFileService {
	return &fileService{
		uowFactory: uowFactory,
		blobs:      blobs,
		cleanup:    cleanup,
		notifier:   notifier,
		logger:     log,
	}
}

// Upload writes the blob under a fresh key and then records its metadata. If
// the metadata insert fails the blob is removed again.
func (c *fileService) Upload(ctx context.Context, req *dto.UploadFileRequest) (*dto.UploadFileResponse, error) {
	if req.Body == nil {
		return nil, apperror.InvalidArgument("file is required")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireWorkspace(ctx, uow, req.WorkspaceId); err != nil {
		return nil, err
	}

	id := uuid.New()
	safeName := export.SafeFilename(req.Filename, "file")
	key := id.String() + "__" + safeName

	if err := c.blobs.Put(ctx, key, req.Body, req.Size, req.ContentType); err != nil {
		return nil, apperror.StorageFailure("store blob", err)
	}

	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = defaultContentType
	}
	file := entity.File{
		Id:          id,
		WorkspaceId: req.WorkspaceId,
		Filename:    safeName,
		ContentType: contentType,
		SizeBytes:   req.Size,
		StoragePath: key,
	}
	if err := uow.FileRepository().Create(ctx, &file); err != nil {
		removeBlob(ctx, c.blobs, c.cleanup, c.logger, key)
		return nil, err
	}

	c.notifier.Notify(ctx, events.FileUploaded, map[string]interface{}{
		"file_id":      file.Id.String(),
		"workspace_id": file.WorkspaceId.String(),
	})
	return &dto.UploadFileResponse{Id: file.Id, Filename: file.Filename}, nil
}

func (c *fileService) List(ctx context.Context, workspaceId *uuid.UUID) (*dto.ListFilesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	specs := []specification.Specification{specification.Scope(scope.OrderByCreatedDesc)}
	if workspaceId != nil {
		specs = append(specs, specification.ByWorkspaceID{WorkspaceID: *workspaceId})
	} else {
		specs = append(specs, specification.Pagination{Limit: unscopedFileLimit})
	}

	files, err := uow.FileRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.ListFilesResponse{Files: make([]dto.FileResponse, 0, len(files))}
	for _, f := range files {
		res.Files = append(res.Files, dto.NewFileResponse(f))
	}
	return res, nil
}

func (c *fileService) Show(ctx context.Context, id uuid.UUID) (*dto.FileResponse, error) {
	file, err := requireFile(ctx, c.uowFactory.NewUnitOfWork(ctx), id)
	if err != nil {
		return nil, err
	}
	res := dto.NewFileResponse(file)
	return &res, nil
}

func (c *fileService) Download(ctx context.Context, id uuid.UUID) (*dto.FileDownload, error) {
	file, err := requireFile(ctx, c.uowFactory.NewUnitOfWork(ctx), id)
	if err != nil {
		return nil, err
	}

	body, err := c.blobs.Open(ctx, file.StoragePath)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, apperror.NotFound("content of file %s not found", id)
		}
		return nil, apperror.StorageFailure("open blob", err)
	}

	return &dto.FileDownload{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.SizeBytes,
		Body:        body,
	}, nil
}

// Delete removes the backing blob best-effort, then the metadata. A blob
// failure never fails the request.
func (c *fileService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	file, err := requireFile(ctx, uow, id)
	if err != nil {
		return err
	}

	removeBlob(ctx, c.blobs, c.cleanup, c.logger, file.StoragePath)

	if err := uow.FileRepository().Delete(ctx, id); err != nil {
		return err
	}

	c.notifier.Notify(ctx, events.FileDeleted, map[string]interface{}{
		"file_id":      id.String(),
		"workspace_id": file.WorkspaceId.String(),
	})
	return nil
}

func requireFile(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.File, error) {
	file, err := uow.FileRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperror.NotFound("file %s not found", id)
	}
	return file, nil
}
