package controller

import (
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/pkg/serverutils"
	"workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// listScope resolves the workspace a listing is confined to. Workspace callers
// are always confined to their own workspace; service callers to the
// workspaceId query parameter when given.
func listScope(ctx *fiber.Ctx) (*uuid.UUID, error) {
	identity, err := serverutils.IdentityOf(ctx)
	if err != nil {
		return nil, err
	}
	requested, err := serverutils.QueryUUID(ctx, "workspaceId")
	if err != nil {
		return nil, err
	}
	if requested != nil && !identity.Allows(*requested) {
		return nil, apperror.Unauthorized("token is not valid for this workspace")
	}
	if requested != nil {
		return requested, nil
	}
	return identity.Scope(), nil
}

// requiredScope is listScope for listings that need a workspace.
func requiredScope(ctx *fiber.Ctx) (uuid.UUID, error) {
	scope, err := listScope(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if scope == nil {
		return uuid.Nil, apperror.InvalidArgument("workspaceId is required")
	}
	return *scope, nil
}

func ok() serverutils.BaseResponse[fiber.Map] {
	return serverutils.SuccessResponse("ok", fiber.Map{"ok": true})
}

// ownedParam parses an entity id route parameter and checks that a workspace
// caller owns the entity. Service callers skip the lookup.
func ownedParam(ctx *fiber.Ctx, owners service.IOwnershipService, kind service.OwnerKind, name string) (uuid.UUID, error) {
	id, err := serverutils.ParamUUID(ctx, name)
	if err != nil {
		return uuid.Nil, err
	}
	identity, err := serverutils.IdentityOf(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if identity.Service {
		return id, nil
	}

	workspaceId, err := owners.WorkspaceOf(ctx.UserContext(), kind, id)
	if err != nil {
		return uuid.Nil, err
	}
	if !identity.Allows(workspaceId) {
		return uuid.Nil, apperror.Unauthorized("token is not valid for this workspace")
	}
	return id, nil
}
