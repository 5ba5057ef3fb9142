package controller

import (
	"strings"

	"gastroassist-be/internal/pkg/serverutils"
	"gastroassist-be/pkg/knowledge/kb"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeBaseController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
}

type knowledgeBaseController struct {
	knowledgeBase *kb.KnowledgeBase
}

func NewKnowledgeBaseController(knowledgeBase *kb.KnowledgeBase) IKnowledgeBaseController {
	return &knowledgeBaseController{
		knowledgeBase: knowledgeBase,
	}
}

func (c *knowledgeBaseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/kb")
	h.Get("", c.Query)
}

// Query serves the curated corpus directly: GET /api/kb?q=...&category=...&conditions=gerd,ibd
func (c *knowledgeBaseController) Query(ctx *fiber.Ctx) error {
	queryText := ctx.Query("q")

	var filters *kb.Filters
	category := ctx.Query("category")
	conditionsParam := ctx.Query("conditions")
	if category != "" || conditionsParam != "" {
		filters = &kb.Filters{Category: category}
		if conditionsParam != "" {
			filters.Conditions = strings.Split(conditionsParam, ",")
		}
	}

	res := c.knowledgeBase.Query(queryText, filters)
	return ctx.JSON(serverutils.SuccessResponse("Success query knowledge base", res))
}
