package controller

import (
	"gastroassist-be/internal/dto"
	"gastroassist-be/internal/pkg/serverutils"
	"gastroassist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Process(ctx *fiber.Ctx) error
	Direct(ctx *fiber.Ctx) error
}

type queryController struct {
	queryService service.IQueryService
}

func NewQueryController(queryService service.IQueryService) IQueryController {
	return &queryController{
		queryService: queryService,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/query")
	h.Post("", c.Process)
	h.Post("/direct", c.Direct)
}

func (c *queryController) Process(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.queryService.Process(ctx.Context(), &req)
	return ctx.JSON(res)
}

func (c *queryController) Direct(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.queryService.Direct(ctx.Context(), &req)
	return ctx.JSON(res)
}
