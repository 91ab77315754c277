package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/application/referral"
)

// ReferralHandler programa de indicación y retiros PIX (vendedor y back-office).
type ReferralHandler struct {
	uc *referral.UseCase
}

func NewReferralHandler(uc *referral.UseCase) *ReferralHandler {
	return &ReferralHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de indicaciones y saldos
// @Tags         referral
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReferralSummaryResponse
// @Router       /api/referral/summary [get]
func (h *ReferralHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Commissions godoc
// @Summary      Comisiones generadas por mis indicados
// @Tags         referral
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.CommissionResponse
// @Router       /api/referral/commissions [get]
func (h *ReferralHandler) Commissions(c *fiber.Ctx) error {
	out, err := h.uc.ListCommissions(c.UserContext(), GetUserID(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetPixKey godoc
// @Summary      Registrar chave PIX
// @Tags         referral
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetPixKeyRequest  true  "Chave y tipo"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/referral/pix-key [put]
func (h *ReferralHandler) SetPixKey(c *fiber.Ctx) error {
	var in dto.SetPixKeyRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SetPixKey(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RequestPayout godoc
// @Summary      Solicitar retiro PIX del saldo disponible
// @Tags         referral
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RequestPayoutRequest  true  "Monto y chave opcional"
// @Success      201   {object}  dto.PayoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/referral/payouts [post]
func (h *ReferralHandler) RequestPayout(c *fiber.Ctx) error {
	var in dto.RequestPayoutRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RequestPayout(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ── back-office ───────────────────────────────────────────────────────────────

// RecordPayment godoc
// @Summary      Registrar pago de un usuario indicado (genera comisión)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordReferralPaymentRequest  true  "Usuario indicado y monto"
// @Success      201   {object}  dto.CommissionResponse
// @Router       /api/admin/referral/payments [post]
func (h *ReferralHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordReferralPaymentRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RecordPayment(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayouts godoc
// @Summary      Retiros PIX (filtro opcional por estado)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "requested | paid | rejected"
// @Success      200  {array}  dto.PayoutResponse
// @Router       /api/admin/payouts [get]
func (h *ReferralHandler) ListPayouts(c *fiber.Ctx) error {
	out, err := h.uc.ListPayouts(c.UserContext(), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProcessPayout godoc
// @Summary      Marcar retiro como pagado o rechazado
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del retiro"
// @Param        body  body  dto.ProcessPayoutRequest  true  "paid | rejected"
// @Success      200   {object}  dto.PayoutResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/payouts/{id} [put]
func (h *ReferralHandler) ProcessPayout(c *fiber.Ctx) error {
	var in dto.ProcessPayoutRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ProcessPayout(c.UserContext(), param(c, "id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
