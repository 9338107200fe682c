package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"workspace-be/internal/dto"
	"workspace-be/internal/entity"
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/repository/scope"
	"workspace-be/internal/repository/specification"
	"workspace-be/internal/repository/unitofwork"
	"workspace-be/pkg/events"

	"github.com/google/uuid"
)

const unscopedPageLimit = 200

type IPageService interface {
	Create(ctx context.Context, req *dto.CreatePageRequest) (*dto.PageResponse, error)
	List(ctx context.Context, workspaceId *uuid.UUID) (*dto.ListPagesResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.PageViewResponse, error)
	Update(ctx context.Context, req *dto.UpdatePageRequest) (*dto.PageResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddBlock(ctx context.Context, req *dto.AddBlockRequest) (*dto.BlockResponse, error)
	UpdateBlock(ctx context.Context, req *dto.UpdateBlockRequest) (*dto.BlockResponse, error)
	DeleteBlock(ctx context.Context, pageId, blockId uuid.UUID) error
}

type pageService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   IChangeNotifier
	now        func() time.Time
}

func NewPageService(uowFactory unitofwork.RepositoryFactory, notifier IChangeNotifier) IPageService {
	return &pageService{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (c *pageService) Create(ctx context.Context, req *dto.CreatePageRequest) (*dto.PageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireWorkspace(ctx, uow, req.WorkspaceId); err != nil {
		return nil, err
	}

	page := entity.Page{WorkspaceId: req.WorkspaceId, Title: req.Title}
	if err := uow.DocsPageRepository().Create(ctx, &page); err != nil {
		return nil, err
	}

	c.changed(ctx, &page)
	res := dto.NewPageResponse(&page)
	return &res, nil
}

// List orders pages by last touch. Without a workspace the listing is capped.
func (c *pageService) List(ctx context.Context, workspaceId *uuid.UUID) (*dto.ListPagesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	specs := []specification.Specification{specification.PageRecency{}}
	if workspaceId != nil {
		specs = append(specs, specification.ByWorkspaceID{WorkspaceID: *workspaceId})
	} else {
		specs = append(specs, specification.Pagination{Limit: unscopedPageLimit})
	}

	pages, err := uow.DocsPageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.ListPagesResponse{Pages: make([]dto.PageResponse, 0, len(pages))}
	for _, p := range pages {
		res.Pages = append(res.Pages, dto.NewPageResponse(p))
	}
	return res, nil
}

func (c *pageService) Show(ctx context.Context, id uuid.UUID) (*dto.PageViewResponse, error) {
	view, err := loadPage(ctx, c.uowFactory.NewUnitOfWork(ctx), id)
	if err != nil {
		return nil, err
	}
	return dto.NewPageViewResponse(view), nil
}

func loadPage(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.PageView, error) {
	page, err := requirePage(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	blocks, err := uow.DocsBlockRepository().FindAll(ctx,
		specification.ByPageID{PageID: id},
		specification.Scope(scope.OrderByIndexAsc),
		specification.Scope(scope.OrderByCreatedAsc),
	)
	if err != nil {
		return nil, err
	}

	view := &entity.PageView{Page: *page, Blocks: make([]entity.Block, 0, len(blocks))}
	for _, b := range blocks {
		view.Blocks = append(view.Blocks, *b)
	}
	return view, nil
}

func (c *pageService) Update(ctx context.Context, req *dto.UpdatePageRequest) (*dto.PageResponse, error) {
	if req.Title == nil {
		return nil, apperror.InvalidArgument("nothing to update")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.StorageFailure("begin transaction", err)
	}
	defer uow.Rollback()

	page, err := requirePage(ctx, uow, req.Id)
	if err != nil {
		return nil, err
	}
	at := c.nextTouch(page)
	page.Title = *req.Title
	page.UpdatedAt = &at
	if err := uow.DocsPageRepository().Update(ctx, page); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.StorageFailure("commit page", err)
	}

	c.changed(ctx, page)
	res := dto.NewPageResponse(page)
	return &res, nil
}

func (c *pageService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.StorageFailure("begin transaction", err)
	}
	defer uow.Rollback()

	page, err := requirePage(ctx, uow, id)
	if err != nil {
		return err
	}
	if _, err := uow.DocsBlockRepository().DeleteAll(ctx, specification.ByPageID{PageID: id}); err != nil {
		return err
	}
	if err := uow.DocsPageRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return apperror.StorageFailure("commit page delete", err)
	}

	c.notifier.Notify(ctx, events.PageDeleted, map[string]interface{}{
		"page_id":      id.String(),
		"workspace_id": page.WorkspaceId.String(),
	})
	return nil
}

func (c *pageService) AddBlock(ctx context.Context, req *dto.AddBlockRequest) (*dto.BlockResponse, error) {
	kind := entity.BlockKind(strings.TrimSpace(req.Type))
	if kind == "" {
		return nil, apperror.InvalidArgument("type is required")
	}

	var block entity.Block
	page, err := c.mutateBlocks(ctx, req.PageId, func(uow unitofwork.UnitOfWork, page *entity.Page) error {
		block = entity.Block{
			PageId: page.Id,
			Kind:   kind,
			Data:   entity.DecodeBlockData(kind, req.Data),
		}
		if req.OrderIndex != nil {
			block.OrderIndex = *req.OrderIndex
		}
		return uow.DocsBlockRepository().Create(ctx, &block)
	})
	if err != nil {
		return nil, err
	}

	c.changed(ctx, page)
	res := dto.NewBlockResponse(&block)
	return &res, nil
}

// UpdateBlock patches only the supplied fields. Changing the kind re-reads the
// existing payload under the new kind unless new data is supplied.
func (c *pageService) UpdateBlock(ctx context.Context, req *dto.UpdateBlockRequest) (*dto.BlockResponse, error) {
	hasData := len(req.Data) > 0
	if req.Type == nil && !hasData && req.OrderIndex == nil {
		return nil, apperror.InvalidArgument("nothing to update")
	}

	var block *entity.Block
	page, err := c.mutateBlocks(ctx, req.PageId, func(uow unitofwork.UnitOfWork, page *entity.Page) error {
		var err error
		if block, err = requireBlock(ctx, uow, page.Id, req.BlockId); err != nil {
			return err
		}

		raw := block.Data.Raw()
		if hasData {
			raw = req.Data
		}
		if req.Type != nil {
			kind := entity.BlockKind(strings.TrimSpace(*req.Type))
			if kind == "" {
				return apperror.InvalidArgument("type must not be empty")
			}
			block.Kind = kind
		}
		block.Data = entity.DecodeBlockData(block.Kind, raw)
		if req.OrderIndex != nil {
			block.OrderIndex = *req.OrderIndex
		}
		return uow.DocsBlockRepository().Update(ctx, block)
	})
	if err != nil {
		return nil, err
	}

	c.changed(ctx, page)
	res := dto.NewBlockResponse(block)
	return &res, nil
}

func (c *pageService) DeleteBlock(ctx context.Context, pageId, blockId uuid.UUID) error {
	page, err := c.mutateBlocks(ctx, pageId, func(uow unitofwork.UnitOfWork, page *entity.Page) error {
		if _, err := requireBlock(ctx, uow, page.Id, blockId); err != nil {
			return err
		}
		return uow.DocsBlockRepository().Delete(ctx, blockId)
	})
	if err != nil {
		return err
	}

	c.changed(ctx, page)
	return nil
}

// mutateBlocks runs a block mutation and the page touch in one transaction.
func (c *pageService) mutateBlocks(ctx context.Context, pageId uuid.UUID, mutate func(unitofwork.UnitOfWork, *entity.Page) error) (*entity.Page, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.StorageFailure("begin transaction", err)
	}
	defer uow.Rollback()

	page, err := requirePage(ctx, uow, pageId)
	if err != nil {
		return nil, err
	}
	if err := mutate(uow, page); err != nil {
		return nil, err
	}

	at := c.nextTouch(page)
	if err := uow.DocsPageRepository().Touch(ctx, page.Id, at); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.StorageFailure("commit block", err)
	}
	page.UpdatedAt = &at
	return page, nil
}

// nextTouch is strictly after the page's previous touch even when the clock
// has not advanced.
func (c *pageService) nextTouch(page *entity.Page) time.Time {
	at := c.now().UTC().Truncate(time.Microsecond)
	if floor := page.LastTouched().Add(time.Microsecond); at.Before(floor) {
		at = floor
	}
	return at
}

func (c *pageService) changed(ctx context.Context, page *entity.Page) {
	c.notifier.Notify(ctx, events.PageUpdated, map[string]interface{}{
		"page_id":      page.Id.String(),
		"workspace_id": page.WorkspaceId.String(),
	})
}

func requirePage(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Page, error) {
	page, err := uow.DocsPageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, apperror.NotFound("page %s not found", id)
	}
	return page, nil
}

// requireBlock treats a block of another page as missing.
func requireBlock(ctx context.Context, uow unitofwork.UnitOfWork, pageId, id uuid.UUID) (*entity.Block, error) {
	block, err := uow.DocsBlockRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByPageID{PageID: pageId},
	)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, apperror.NotFound("block %s not found", id)
	}
	if block.Data == nil {
		block.Data = entity.DecodeBlockData(block.Kind, json.RawMessage("{}"))
	}
	return block, nil
}
