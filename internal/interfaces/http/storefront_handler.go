package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/application/storefront"
	"github.com/jhoicas/Vitrine-api/internal/application/usecase"
)

// StorefrontHandler vitrina pública, feed, cotización por cantidad y perfil del vendedor.
type StorefrontHandler struct {
	uc        *storefront.UseCase
	quote     *usecase.PriceQuoteUseCase
	export    *catalog.ExportUseCase
	publicURL string
}

// NewStorefrontHandler construye el handler. publicURL vacío = se deriva del request.
func NewStorefrontHandler(
	uc *storefront.UseCase,
	quote *usecase.PriceQuoteUseCase,
	export *catalog.ExportUseCase,
	publicURL string,
) *StorefrontHandler {
	return &StorefrontHandler{uc: uc, quote: quote, export: export, publicURL: publicURL}
}

// GetBySlug godoc
// @Summary      Vitrina pública
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "Slug de la vitrina"
// @Success      200   {object}  dto.StorefrontResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/public/stores/{slug} [get]
func (h *StorefrontHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetBySlug(c.UserContext(), param(c, "slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Feed godoc
// @Summary      Feed XML de productos (RSS 2.0 + g:)
// @Tags         public
// @Produce      application/xml
// @Param        slug  path  string  true  "Slug de la vitrina"
// @Success      200
// @Router       /api/public/stores/{slug}/feed.xml [get]
func (h *StorefrontHandler) Feed(c *fiber.Ctx) error {
	base := h.publicURL
	if base == "" {
		base = c.BaseURL()
	}
	out, err := h.export.Feed(c.UserContext(), param(c, "slug"), base+"/loja")
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}

// Quote godoc
// @Summary      Precio por cantidad según las escalas del producto
// @Tags         public
// @Produce      json
// @Param        id        path   string  true  "ID del producto"
// @Param        quantity  query  int     true  "Cantidad (≥ 1)"
// @Success      200  {object}  dto.PriceQuoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/public/products/{id}/price [get]
func (h *StorefrontHandler) Quote(c *fiber.Ctx) error {
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil || quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un entero positivo"})
	}
	out, err := h.quote.Quote(c.UserContext(), param(c, "id"), quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Editar perfil de la vitrina
// @Tags         storefront
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *StorefrontHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateProfileRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
