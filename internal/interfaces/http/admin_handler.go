package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/application/usecase"
	"github.com/jhoicas/Vitrine-api/internal/domain"
)

// AdminHandler back-office: copia de productos entre cuentas y gestión de usuarios.
type AdminHandler struct {
	copyUC *catalog.CopyUseCase
	users  *usecase.UserUseCase
	limits *catalog.ImageLimitUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(copyUC *catalog.CopyUseCase, users *usecase.UserUseCase, limits *catalog.ImageLimitUseCase) *AdminHandler {
	return &AdminHandler{copyUC: copyUC, users: users, limits: limits}
}

// CopyProducts godoc
// @Summary      Copiar productos de una cuenta a otra
// @Description  Duplica productos, imágenes, escalas y categorías faltantes. No es idempotente.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CopyProductsRequest  true  "sourceUserId, targetUserId, productIds"
// @Success      200   {object}  dto.CopyProductsResponse
// @Failure      400   {object}  dto.CopyErrorResponse
// @Failure      404   {object}  dto.CopyErrorResponse
// @Failure      500   {object}  dto.CopyErrorResponse
// @Router       /api/admin/copy-products [post]
func (h *AdminHandler) CopyProducts(c *fiber.Ctx) error {
	var in dto.CopyProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CopyErrorResponse{Error: "cuerpo inválido", Details: err.Error()})
	}
	stats, err := h.copyUC.Copy(c.UserContext(), catalog.CopyInput{
		SourceUserID:   in.SourceUserID,
		TargetUserID:   in.TargetUserID,
		ProductIDs:     in.ProductIDs,
		Atomic:         in.Atomic,
		SyncCategories: in.SyncCategories,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.CopyErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.CopyErrorResponse{Error: "No se encontraron productos para copiar"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.CopyErrorResponse{
			Error:   "Error al copiar productos",
			Details: err.Error(),
		})
	}
	return c.JSON(dto.CopyProductsResponse{
		Success: true,
		Message: fmt.Sprintf("%d producto(s) copiado(s) correctamente", stats.ProductsCreated),
		Stats: dto.CopyStatsResponse{
			Products:   stats.ProductsCreated,
			Images:     stats.ImagesCreated,
			PriceTiers: stats.TiersCreated,
			Categories: stats.CategoriesCreated,
		},
	})
}

// ListUsers godoc
// @Summary      Listar cuentas
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.users.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetUser godoc
// @Summary      Obtener cuenta
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), param(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateUser godoc
// @Summary      Cambiar rol o estado de una cuenta
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.AdminUpdateUserRequest  true  "role y/o status"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.AdminUpdateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.users.AdminUpdate(c.UserContext(), GetUserID(c), param(c, "id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetImageLimit godoc
// @Summary      Cambiar el máximo de imágenes por producto de una cuenta
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateImageLimitRequest  true  "limit (1..50)"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/image-limit [put]
func (h *AdminHandler) SetImageLimit(c *fiber.Ctx) error {
	var in dto.UpdateImageLimitRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	id := param(c, "id")
	if err := h.limits.SetLimit(c.UserContext(), id, in.Limit); err != nil {
		return respondError(c, err)
	}
	out, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
