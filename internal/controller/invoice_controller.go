// FILE: internal/controller/invoice_controller.go
package controller

import (
	"marketplace-billing-be/internal/pkg/serverutils"
	"marketplace-billing-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInvoiceController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type invoiceController struct {
	invoiceService service.IInvoiceService
}

func NewInvoiceController(invoiceService service.IInvoiceService) IInvoiceController {
	return &invoiceController{
		invoiceService: invoiceService,
	}
}

func (c *invoiceController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	invoices := api.Group("/invoices", jwtMiddleware)
	invoices.Get("/:id", c.GetInvoice)

	admin := api.Group("/admin/invoices", jwtMiddleware, serverutils.AdminOnly)
	admin.Get("/", c.ListByStatus)
}

func (c *invoiceController) GetInvoice(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid invoice ID"))
	}

	invoice, err := c.invoiceService.GetInvoice(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Invoice retrieved", invoice))
}

// ListByStatus returns invoices filtered by the ?status= query, defaulting
// to pending.
func (c *invoiceController) ListByStatus(ctx *fiber.Ctx) error {
	status := ctx.Query("status", "pending")

	invoices, err := c.invoiceService.ListByStatus(ctx.Context(), status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Invoices retrieved", invoices))
}
