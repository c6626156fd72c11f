// FILE: internal/controller/subscription_controller.go
package controller

import (
	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/pkg/serverutils"
	"marketplace-billing-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISubscriptionController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type subscriptionController struct {
	subscriptionService service.ISubscriptionService
	invoiceService      service.IInvoiceService
}

func NewSubscriptionController(subscriptionService service.ISubscriptionService, invoiceService service.IInvoiceService) ISubscriptionController {
	return &subscriptionController{
		subscriptionService: subscriptionService,
		invoiceService:      invoiceService,
	}
}

func (c *subscriptionController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	subs := api.Group("/subscriptions", jwtMiddleware)
	subs.Post("/", c.Subscribe)
	subs.Get("/:id", c.GetSubscription)
	subs.Get("/:id/invoices", c.GetSubscriptionInvoices)

	orgs := api.Group("/organizations", jwtMiddleware)
	orgs.Get("/:id/subscription", c.GetCurrentSubscription)
	orgs.Get("/:id/subscriptions", c.ListSubscriptions)

	admin := api.Group("/admin/subscriptions", jwtMiddleware, serverutils.AdminOnly)
	admin.Post("/:id/suspend", c.Suspend)
	admin.Post("/:id/reactivate", c.Reactivate)
	admin.Post("/:id/cancel", c.Cancel)
}

func (c *subscriptionController) Subscribe(ctx *fiber.Ctx) error {
	var req dto.CreateSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	sub, err := c.subscriptionService.Subscribe(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Subscription created", sub))
}

func (c *subscriptionController) GetSubscription(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription ID"))
	}

	sub, err := c.subscriptionService.GetSubscription(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription retrieved", sub))
}

func (c *subscriptionController) GetSubscriptionInvoices(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription ID"))
	}

	invoices, err := c.invoiceService.ListForSubscription(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Invoices retrieved", invoices))
}

func (c *subscriptionController) GetCurrentSubscription(ctx *fiber.Ctx) error {
	orgId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid organization ID"))
	}

	sub, err := c.subscriptionService.GetCurrentForOrganization(ctx.Context(), orgId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Current subscription", sub))
}

func (c *subscriptionController) ListSubscriptions(ctx *fiber.Ctx) error {
	orgId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid organization ID"))
	}

	subs, err := c.subscriptionService.ListForOrganization(ctx.Context(), orgId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription history", subs))
}

func (c *subscriptionController) Suspend(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription ID"))
	}

	var req dto.SuspendSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	sub, err := c.subscriptionService.Suspend(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription suspended", sub))
}

func (c *subscriptionController) Reactivate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription ID"))
	}

	sub, err := c.subscriptionService.Reactivate(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription reactivated", sub))
}

func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription ID"))
	}

	var req dto.CancelSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	sub, err := c.subscriptionService.Cancel(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription cancelled", sub))
}
