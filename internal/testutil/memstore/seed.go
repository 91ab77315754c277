package memstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SeedUser inserta un vendedor activo (sin contar llamadas). Campos vacíos reciben valores por defecto.
func (s *Store) SeedUser(u entity.User) *entity.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Email == "" {
		u.Email = u.ID + "@vitrine.test"
	}
	if u.Role == "" {
		u.Role = entity.RoleSeller
	}
	if u.Status == "" {
		u.Status = entity.UserStatusActive
	}
	if u.MaxImagesPerProduct == 0 {
		u.MaxImagesPerProduct = entity.DefaultMaxImagesPerProduct
	}
	if u.ReferralCode == "" {
		u.ReferralCode = u.ID
		if len(u.ReferralCode) > 8 {
			u.ReferralCode = u.ReferralCode[:8]
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
		u.UpdatedAt = u.CreatedAt
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := u
	s.users[u.ID] = &cp
	s.track(u.ID)
	out := u
	return &out
}

// SeedProduct inserta un producto activo de userID con precio price.
func (s *Store) SeedProduct(userID, name, price string, categories ...string) *entity.Product {
	now := time.Now().UTC()
	p := &entity.Product{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Sizes:      []string{"P", "M", "G"},
		Colors:     []string{"preto"},
		Categories: categories,
		Attributes: []byte(`{"material":"algodão"}`),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = cloneProduct(p)
	s.track(p.ID)
	return p
}

// SeedImage inserta una imagen del producto.
func (s *Store) SeedImage(productID, url string, order int, featured bool) *entity.ProductImage {
	now := time.Now().UTC()
	img := &entity.ProductImage{
		ID:           uuid.NewString(),
		ProductID:    productID,
		URL:          url,
		DisplayOrder: order,
		IsFeatured:   featured,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *img
	s.images[img.ID] = &cp
	s.track(img.ID)
	return img
}

// SeedTier inserta una escala del producto.
func (s *Store) SeedTier(productID string, minQuantity int, unitPrice string) entity.PriceTier {
	now := time.Now().UTC()
	t := entity.PriceTier{
		ID:          uuid.NewString(),
		ProductID:   productID,
		MinQuantity: minQuantity,
		UnitPrice:   decimal.RequireFromString(unitPrice),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers[t.ID] = t
	s.track(t.ID)
	return t
}

// SeedCategory inserta una categoría de userID.
func (s *Store) SeedCategory(userID, name string) *entity.Category {
	c := &entity.Category{ID: uuid.NewString(), UserID: userID, Name: name, CreatedAt: time.Now().UTC()}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.categories[c.ID] = &cp
	s.track(c.ID)
	return c
}

// SeedCommission inserta una comisión disponible para referrerID.
func (s *Store) SeedCommission(referrerID, referredID, amount string) *entity.Commission {
	c := &entity.Commission{
		ID:             uuid.NewString(),
		ReferrerID:     referrerID,
		ReferredUserID: referredID,
		BaseAmount:     decimal.RequireFromString(amount).Mul(decimal.NewFromInt(10)),
		Rate:           decimal.RequireFromString("0.10"),
		Amount:         decimal.RequireFromString(amount),
		Status:         entity.CommissionStatusAvailable,
		CreatedAt:      time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.commissions[c.ID] = &cp
	s.track(c.ID)
	return c
}
