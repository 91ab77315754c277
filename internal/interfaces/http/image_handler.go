package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/application/usecase"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
)

// ImageHandler galería de imágenes de los productos y validación del límite.
type ImageHandler struct {
	uc     *usecase.ImageUseCase
	limits *catalog.ImageLimitUseCase
}

// NewImageHandler construye el handler.
func NewImageHandler(uc *usecase.ImageUseCase, limits *catalog.ImageLimitUseCase) *ImageHandler {
	return &ImageHandler{uc: uc, limits: limits}
}

// Add godoc
// @Summary      Agregar imagen (ya subida al storage) a un producto
// @Tags         images
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AddImageRequest  true  "URL y hash del contenido"
// @Success      201   {object}  dto.ImageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/images [post]
func (h *ImageHandler) Add(c *fiber.Ctx) error {
	var in dto.AddImageRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Add(c.UserContext(), GetUserID(c), param(c, "id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Galería del producto ordenada
// @Tags         images
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.ImageResponse
// @Router       /api/products/{id}/images [get]
func (h *ImageHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c), param(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetFeatured godoc
// @Summary      Marcar imagen destacada
// @Tags         images
// @Security     Bearer
// @Param        id       path  string  true  "ID del producto"
// @Param        imageId  path  string  true  "ID de la imagen"
// @Success      204
// @Router       /api/products/{id}/images/{imageId}/featured [put]
func (h *ImageHandler) SetFeatured(c *fiber.Ctx) error {
	if err := h.uc.SetFeatured(c.UserContext(), GetUserID(c), param(c, "id"), param(c, "imageId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reorder godoc
// @Summary      Reordenar la galería
// @Tags         images
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ReorderImagesRequest  true  "Nuevas posiciones"
// @Success      200   {array}  dto.ImageResponse
// @Router       /api/products/{id}/images/order [put]
func (h *ImageHandler) Reorder(c *fiber.Ctx) error {
	var in dto.ReorderImagesRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Reorder(c.UserContext(), GetUserID(c), param(c, "id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar imagen
// @Tags         images
// @Security     Bearer
// @Param        id       path  string  true  "ID del producto"
// @Param        imageId  path  string  true  "ID de la imagen"
// @Success      204
// @Router       /api/products/{id}/images/{imageId} [delete]
func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), param(c, "id"), param(c, "imageId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ValidateLimit godoc
// @Summary      Validar si caben imageCount imágenes más
// @Description  Un vendedor solo puede consultar su propia cuenta; el admin cualquiera.
// @Tags         images
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateImageLimitRequest  true  "userId, productId opcional, imageCount"
// @Success      200   {object}  dto.ValidateImageLimitResponse
// @Failure      400   {object}  dto.ValidateImageLimitResponse
// @Failure      404   {object}  dto.ValidateImageLimitResponse
// @Router       /api/images/validate-limit [post]
func (h *ImageHandler) ValidateLimit(c *fiber.Ctx) error {
	var in dto.ValidateImageLimitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidateImageLimitResponse{Error: "cuerpo inválido"})
	}
	userID := strings.TrimSpace(in.UserID)
	if userID != "" && userID != GetUserID(c) && GetRole(c) != entity.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ValidateImageLimitResponse{
			Error: "no puede consultar otra cuenta", RequestedCount: in.ImageCount,
		})
	}
	res, err := h.limits.Validate(c.UserContext(), catalog.ImageLimitInput{
		UserID:     userID,
		ProductID:  in.ProductID,
		ImageCount: in.ImageCount,
	})
	if err != nil {
		status, _ := errorStatus(err)
		return c.Status(status).JSON(dto.ValidateImageLimitResponse{Error: err.Error(), RequestedCount: in.ImageCount})
	}
	return c.JSON(dto.ValidateImageLimitResponse{
		Valid:          res.Valid,
		Error:          res.Reason,
		Limit:          res.Limit,
		CurrentCount:   res.CurrentCount,
		RequestedCount: res.RequestedCount,
	})
}
