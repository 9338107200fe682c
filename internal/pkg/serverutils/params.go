package serverutils

import (
	"strings"

	"workspace-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParamUUID parses a route parameter as a uuid.
func ParamUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.InvalidArgument("%s is not a valid id", name)
	}
	return id, nil
}

// QueryUUID parses an optional query parameter; absent yields nil.
func QueryUUID(ctx *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.InvalidArgument("%s is not a valid id", name)
	}
	return &id, nil
}
