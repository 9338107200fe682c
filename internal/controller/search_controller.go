package controller

import (
	"workspace-be/internal/dto"
	"workspace-be/internal/pkg/serverutils"
	"workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type searchController struct {
	service service.ISearchService
}

func NewSearchController(service service.ISearchService) ISearchController {
	return &searchController{service: service}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	r.Get("/search", c.Search)
}

// Search: GET /search?q=keyword&workspaceId=optional
func (c *searchController) Search(ctx *fiber.Ctx) error {
	scope, err := listScope(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Search(ctx.UserContext(), &dto.SearchRequest{
		Query:       ctx.Query("q"),
		WorkspaceId: scope,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search", res))
}
