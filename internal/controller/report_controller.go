package controller

import (
	"persona-chat-be/internal/pkg/serverutils"
	"persona-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	EngagementStats(ctx *fiber.Ctx) error
	VisitorMessages(ctx *fiber.Ctx) error
}

type reportController struct {
	reportService service.IReportService
}

func NewReportController(reportService service.IReportService) IReportController {
	return &reportController{
		reportService: reportService,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report/v1")
	h.Get("engagement", c.EngagementStats)
	h.Get("messages", c.VisitorMessages)
}

func (c *reportController) EngagementStats(ctx *fiber.Ctx) error {
	res, err := c.reportService.EngagementStats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get engagement stats", res))
}

func (c *reportController) VisitorMessages(ctx *fiber.Ctx) error {
	res, err := c.reportService.VisitorMessages(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get visitor messages", res))
}
