// FILE: internal/controller/payment_controller.go
package controller

import (
	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/pkg/serverutils"
	"marketplace-billing-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{
		paymentService: paymentService,
	}
}

func (c *paymentController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	claims := api.Group("/payment-claims", jwtMiddleware)
	claims.Post("/", c.SubmitClaim)
	claims.Get("/:id", c.GetClaim)

	invoices := api.Group("/invoices", jwtMiddleware)
	invoices.Get("/:id/claims", c.ListClaimsForInvoice)
	invoices.Get("/:id/receipt", c.DownloadReceipt)

	admin := api.Group("/admin/payment-claims", jwtMiddleware, serverutils.AdminOnly)
	admin.Get("/pending", c.ListPendingClaims)
	admin.Post("/:id/validate", c.ValidateClaim)
	admin.Post("/:id/reject", c.RejectClaim)

	adminPayments := api.Group("/admin/payments", jwtMiddleware, serverutils.AdminOnly)
	adminPayments.Post("/", c.RecordDirectPayment)
}

func (c *paymentController) SubmitClaim(ctx *fiber.Ctx) error {
	userId, err := localUUID(ctx, "user_id")
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token subject"))
	}

	var req dto.SubmitClaimRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	claim, err := c.paymentService.SubmitClaim(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Payment claim submitted", claim))
}

func (c *paymentController) GetClaim(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid claim ID"))
	}

	claim, err := c.paymentService.GetClaim(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Claim retrieved", claim))
}

func (c *paymentController) ListClaimsForInvoice(ctx *fiber.Ctx) error {
	invoiceId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid invoice ID"))
	}

	claims, err := c.paymentService.ListClaimsForInvoice(ctx.Context(), invoiceId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Claims retrieved", claims))
}

// DownloadReceipt serves the rendered receipt for a settled invoice.
func (c *paymentController) DownloadReceipt(ctx *fiber.Ctx) error {
	invoiceId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid invoice ID"))
	}

	path, err := c.paymentService.ReceiptForInvoice(ctx.Context(), invoiceId)
	if err != nil {
		return err
	}
	return ctx.SendFile(path)
}

func (c *paymentController) ListPendingClaims(ctx *fiber.Ctx) error {
	claims, err := c.paymentService.ListPendingClaims(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Pending claims", claims))
}

func (c *paymentController) ValidateClaim(ctx *fiber.Ctx) error {
	claimId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid claim ID"))
	}
	adminId, err := localUUID(ctx, "user_id")
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token subject"))
	}

	claim, err := c.paymentService.ValidateClaim(ctx.Context(), claimId, adminId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Claim validated", claim))
}

func (c *paymentController) RejectClaim(ctx *fiber.Ctx) error {
	claimId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid claim ID"))
	}
	adminId, err := localUUID(ctx, "user_id")
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token subject"))
	}

	var req dto.RejectClaimRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	claim, err := c.paymentService.RejectClaim(ctx.Context(), claimId, adminId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Claim rejected", claim))
}

func (c *paymentController) RecordDirectPayment(ctx *fiber.Ctx) error {
	adminId, err := localUUID(ctx, "user_id")
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token subject"))
	}

	var req dto.DirectPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	claim, err := c.paymentService.RecordDirectPayment(ctx.Context(), adminId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Payment recorded", claim))
}

// localUUID reads a UUID that JwtMiddleware stored in the request locals.
func localUUID(ctx *fiber.Ctx, key string) (uuid.UUID, error) {
	raw, _ := ctx.Locals(key).(string)
	return uuid.Parse(raw)
}
