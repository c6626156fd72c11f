// FILE: internal/controller/stats_controller.go
package controller

import (
	"strconv"
	"time"

	"marketplace-billing-be/internal/pkg/serverutils"
	"marketplace-billing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStatsController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type statsController struct {
	revenueService service.IRevenueService
}

func NewStatsController(revenueService service.IRevenueService) IStatsController {
	return &statsController{
		revenueService: revenueService,
	}
}

func (c *statsController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	admin := api.Group("/admin/stats", jwtMiddleware, serverutils.AdminOnly)
	admin.Get("/", c.GetStats)
	admin.Get("/evolution", c.GetMonthlyEvolution)
}

func (c *statsController) GetStats(ctx *fiber.Ctx) error {
	year, err := queryYear(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid year"))
	}

	stats, err := c.revenueService.GetStats(ctx.Context(), year)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Revenue stats", stats))
}

func (c *statsController) GetMonthlyEvolution(ctx *fiber.Ctx) error {
	year, err := queryYear(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid year"))
	}

	evolution, err := c.revenueService.GetMonthlyEvolution(ctx.Context(), year)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Monthly revenue evolution", evolution))
}

func queryYear(ctx *fiber.Ctx) (int, error) {
	raw := ctx.Query("year")
	if raw == "" {
		return time.Now().Year(), nil
	}
	return strconv.Atoi(raw)
}
