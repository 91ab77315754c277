package analytics_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Vitrine-api/internal/application/analytics"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/testutil/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboard(s *memstore.Store) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(s.Analytics(), s.Users(), s.Referrals())
}

func TestSellerSummary(t *testing.T) {
	s := memstore.New()
	seller := s.SeedUser(entity.User{MaxImagesPerProduct: 20})
	referred := s.SeedUser(entity.User{ReferredBy: seller.ID})
	p := s.SeedProduct(seller.ID, "Vestido", "100", "festa")
	s.SeedProduct(seller.ID, "Saia", "80")
	s.SeedImage(p.ID, "https://cdn.vitrine.test/1.jpg", 0, true)
	s.SeedImage(p.ID, "https://cdn.vitrine.test/2.jpg", 1, false)
	s.SeedTier(p.ID, 10, "90")
	s.SeedCategory(seller.ID, "festa")
	s.SeedCommission(seller.ID, referred.ID, "12.50")

	out, err := newDashboard(s).GetSellerSummary(context.Background(), seller.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Products)
	assert.Equal(t, 2, out.ActiveProducts)
	assert.Equal(t, 2, out.Images)
	assert.Equal(t, 1, out.PriceTiers)
	assert.Equal(t, 1, out.Categories)
	assert.Equal(t, 20, out.ImageLimit)
	assert.Equal(t, 1, out.ReferredCount)
	assert.True(t, out.ReferralAvailable.Equal(decimal.RequireFromString("12.50")))
}

func TestSellerSummary_Errores(t *testing.T) {
	s := memstore.New()
	u := s.SeedUser(entity.User{})

	_, err := newDashboard(s).GetSellerSummary(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	s.Fail("analytics.GetSellerCounts", nil)
	_, err = newDashboard(s).GetSellerSummary(context.Background(), u.ID)
	assert.ErrorIs(t, err, memstore.ErrInjected)
}

func TestAdminSummary(t *testing.T) {
	s := memstore.New()
	s.SeedUser(entity.User{Role: entity.RoleAdmin})
	seller := s.SeedUser(entity.User{})
	referred := s.SeedUser(entity.User{ReferredBy: seller.ID, Status: entity.UserStatusSuspended})
	s.SeedProduct(seller.ID, "Vestido", "100")
	s.SeedCommission(seller.ID, referred.ID, "30")
	s.SeedCommission(seller.ID, referred.ID, "20")

	out, err := newDashboard(s).GetAdminSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, out.Users)
	assert.Equal(t, 1, out.ActiveSellers)
	assert.Equal(t, 1, out.Products)
	assert.True(t, out.CommissionsAvailable.Equal(decimal.NewFromInt(50)))
	assert.True(t, out.PayoutsPaid.IsZero())
}

func TestAdminSummary_FallaFinanciera(t *testing.T) {
	s := memstore.New()
	s.Fail("analytics.GetFinancialTotals", nil)

	_, err := newDashboard(s).GetAdminSummary(context.Background())
	assert.ErrorIs(t, err, memstore.ErrInjected)
}
