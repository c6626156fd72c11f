// FILE: internal/controller/settings_controller.go
package controller

import (
	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/pkg/serverutils"
	"marketplace-billing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISettingsController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type settingsController struct {
	settingsService service.ISettingsService
}

func NewSettingsController(settingsService service.ISettingsService) ISettingsController {
	return &settingsController{
		settingsService: settingsService,
	}
}

func (c *settingsController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	admin := api.Group("/admin/settings", jwtMiddleware, serverutils.AdminOnly)
	admin.Get("/", c.GetSettings)
	admin.Patch("/", c.UpdateSettings)
}

func (c *settingsController) GetSettings(ctx *fiber.Ctx) error {
	settings, err := c.settingsService.GetSettings(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Billing settings", settings))
}

func (c *settingsController) UpdateSettings(ctx *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	settings, err := c.settingsService.UpdateSettings(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Settings updated", settings))
}
