package usecase

import (
	"encoding/json"

	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
)

// ToProductResponse arma la salida del producto con su galería y escalas.
func ToProductResponse(p *entity.Product, images []*entity.ProductImage, tiers []entity.PriceTier) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	attrs := p.Attributes
	if len(attrs) == 0 {
		attrs = json.RawMessage(`{}`)
	}
	out := &dto.ProductResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		Sizes:           nonNil(p.Sizes),
		Colors:          nonNil(p.Colors),
		Categories:      nonNil(p.Categories),
		VideoURL:        p.VideoURL,
		Attributes:      attrs,
		IsActive:        p.IsActive,
		Images:          make([]dto.ImageResponse, 0, len(images)),
		PriceTiers:      make([]dto.PriceTierResponse, 0, len(tiers)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	for _, img := range images {
		out.Images = append(out.Images, ToImageResponse(img))
	}
	for _, t := range tiers {
		out.PriceTiers = append(out.PriceTiers, ToPriceTierResponse(t))
	}
	return out
}

// ToProductResponses convierte los Items cargados por catalog.Loader.
func ToProductResponses(items []catalog.Item) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *ToProductResponse(it.Product, it.Images, it.Tiers))
	}
	return out
}

func ToImageResponse(img *entity.ProductImage) dto.ImageResponse {
	return dto.ImageResponse{
		ID:           img.ID,
		ProductID:    img.ProductID,
		URL:          img.URL,
		DisplayOrder: img.DisplayOrder,
		IsFeatured:   img.IsFeatured,
		CreatedAt:    img.CreatedAt,
	}
}

func ToPriceTierResponse(t entity.PriceTier) dto.PriceTierResponse {
	return dto.PriceTierResponse{
		ID:                  t.ID,
		MinQuantity:         t.MinQuantity,
		UnitPrice:           t.UnitPrice,
		DiscountedUnitPrice: t.DiscountedUnitPrice,
	}
}

// ToUserResponse salida de un usuario; nunca expone el hash ni la chave PIX completa.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		Role:                u.Role,
		Status:              u.Status,
		StoreName:           u.StoreName,
		StoreSlug:           u.StoreSlug,
		Bio:                 u.Bio,
		WhatsApp:            u.WhatsApp,
		AvatarURL:           u.AvatarURL,
		BannerURL:           u.BannerURL,
		MaxImagesPerProduct: u.ImageLimit(),
		ReferralCode:        u.ReferralCode,
		PixKeyType:          u.PixKeyType,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
