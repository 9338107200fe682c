package service

import (
	"context"

	"workspace-be/internal/dto"
	"workspace-be/internal/entity"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/pkg/logger"
	"workspace-be/internal/repository/scope"
	"workspace-be/internal/repository/specification"
	"workspace-be/internal/repository/unitofwork"
	"workspace-be/pkg/blobstore"
	"workspace-be/pkg/events"

	"github.com/google/uuid"
)

type IWorkspaceService interface {
	Create(ctx context.Context, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	List(ctx context.Context, only *uuid.UUID) (*dto.ListWorkspacesResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.WorkspaceResponse, error)
	Update(ctx context.Context, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type workspaceService struct {
	uowFactory unitofwork.RepositoryFactory
	blobs      blobstore.Store
	cleanup    IBlobCleanupService
	notifier   IChangeNotifier
	logger     logger.ILogger
}

func NewWorkspaceService(
	uowFactory unitofwork.RepositoryFactory,
	blobs blobstore.Store,
	cleanup IBlobCleanupService,
	notifier IChangeNotifier,
	log logger.ILogger,
) IWorkspaceService {
	return &workspaceService{
		uowFactory: uowFactory,
		blobs:      blobs,
		cleanup:    cleanup,
		notifier:   notifier,
		logger:     log,
	}
}

func newWorkspaceResponse(w *entity.Workspace) *dto.WorkspaceResponse {
	return &dto.WorkspaceResponse{Id: w.Id, Name: w.Name, CreatedAt: w.CreatedAt}
}

func (c *workspaceService) Create(ctx context.Context, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	workspace := entity.Workspace{Name: req.Name}
	if err := uow.WorkspaceRepository().Create(ctx, &workspace); err != nil {
		return nil, err
	}

	c.notifier.Notify(ctx, events.WorkspaceCreated, map[string]interface{}{"workspace_id": workspace.Id.String()})
	return newWorkspaceResponse(&workspace), nil
}

// List returns workspaces newest first. A non-nil only restricts the listing
// to that workspace.
func (c *workspaceService) List(ctx context.Context, only *uuid.UUID) (*dto.ListWorkspacesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	specs := []specification.Specification{specification.Scope(scope.OrderByCreatedDesc)}
	if only != nil {
		specs = append(specs, specification.ByID{ID: *only})
	}
	workspaces, err := uow.WorkspaceRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.ListWorkspacesResponse{Workspaces: make([]dto.WorkspaceResponse, 0, len(workspaces))}
	for _, w := range workspaces {
		res.Workspaces = append(res.Workspaces, *newWorkspaceResponse(w))
	}
	return res, nil
}

func (c *workspaceService) Show(ctx context.Context, id uuid.UUID) (*dto.WorkspaceResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	workspace, err := requireWorkspace(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return newWorkspaceResponse(workspace), nil
}

func (c *workspaceService) Update(ctx context.Context, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	if req.Name == nil {
		return nil, apperror.InvalidArgument("nothing to update")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	workspace, err := requireWorkspace(ctx, uow, req.Id)
	if err != nil {
		return nil, err
	}
	workspace.Name = *req.Name
	if err := uow.WorkspaceRepository().Update(ctx, workspace); err != nil {
		return nil, err
	}
	return newWorkspaceResponse(workspace), nil
}

// Delete removes the workspace and everything it owns in one transaction.
// Backing blobs of its files are removed after commit, best-effort.
func (c *workspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.StorageFailure("begin transaction", err)
	}
	defer uow.Rollback()

	workspace, err := requireWorkspace(ctx, uow, id)
	if err != nil {
		return err
	}

	files, err := uow.FileRepository().FindAll(ctx, specification.ByWorkspaceID{WorkspaceID: id})
	if err != nil {
		return err
	}

	if _, err := uow.TableCellRepository().DeleteAll(ctx, specification.CellsOfWorkspace{WorkspaceID: id}); err != nil {
		return err
	}
	if _, err := uow.TableRowRepository().DeleteAll(ctx, specification.OfWorkspaceTables{WorkspaceID: id}); err != nil {
		return err
	}
	if _, err := uow.TableColumnRepository().DeleteAll(ctx, specification.OfWorkspaceTables{WorkspaceID: id}); err != nil {
		return err
	}
	if _, err := uow.TableRepository().DeleteAll(ctx, specification.ByWorkspaceID{WorkspaceID: id}); err != nil {
		return err
	}
	if _, err := uow.DocsBlockRepository().DeleteAll(ctx, specification.BlocksOfWorkspace{WorkspaceID: id}); err != nil {
		return err
	}
	if _, err := uow.DocsPageRepository().DeleteAll(ctx, specification.ByWorkspaceID{WorkspaceID: id}); err != nil {
		return err
	}
	if _, err := uow.EventRepository().DeleteAll(ctx, specification.EventsOfWorkspace{WorkspaceID: id}); err != nil {
		return err
	}
	if _, err := uow.CalendarRepository().DeleteAll(ctx, specification.ByWorkspaceID{WorkspaceID: id}); err != nil {
		return err
	}
	if _, err := uow.FileRepository().DeleteAll(ctx, specification.ByWorkspaceID{WorkspaceID: id}); err != nil {
		return err
	}
	if err := uow.WorkspaceRepository().Delete(ctx, workspace.Id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return apperror.StorageFailure("commit workspace delete", err)
	}

	for _, f := range files {
		removeBlob(ctx, c.blobs, c.cleanup, c.logger, f.StoragePath)
	}

	c.notifier.Notify(ctx, events.WorkspaceDeleted, map[string]interface{}{"workspace_id": id.String()})
	return nil
}

func requireWorkspace(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Workspace, error) {
	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, apperror.NotFound("workspace %s not found", id)
	}
	return workspace, nil
}
