package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Vitrine-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints de resúmenes del vendedor y del back-office.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del catálogo y de indicaciones del vendedor.
// GET /api/dashboard/summary
//
// Respuesta: SellerDashboardDTO (products, active_products, images, price_tiers,
// categories, image_limit, referred_count y saldos de comisiones).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	summary, err := h.uc.GetSellerSummary(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetFinancial resumen global para el back-office.
// GET /api/admin/dashboard/financial
func (h *DashboardHandler) GetFinancial(c *fiber.Ctx) error {
	summary, err := h.uc.GetAdminSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
