package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para los dashboards del vendedor y del back-office.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSellerCounts conteos del catálogo de un vendedor en un solo round-trip.
func (r *AnalyticsRepo) GetSellerCounts(ctx context.Context, userID string) (repository.SellerCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products p WHERE p.user_id = $1)                                  AS products,
	    (SELECT COUNT(*) FROM products p WHERE p.user_id = $1 AND p.is_active)                  AS active_products,
	    (SELECT COUNT(*) FROM product_images i JOIN products p ON p.id = i.product_id
	      WHERE p.user_id = $1)                                                                 AS images,
	    (SELECT COUNT(*) FROM product_price_tiers t JOIN products p ON p.id = t.product_id
	      WHERE p.user_id = $1)                                                                 AS price_tiers,
	    (SELECT COUNT(*) FROM user_product_categories c WHERE c.user_id = $1)                   AS categories`
	var c repository.SellerCounts
	if err := r.q.QueryRow(ctx, query, userID).Scan(
		&c.Products, &c.ActiveProducts, &c.Images, &c.PriceTiers, &c.Categories,
	); err != nil {
		return repository.SellerCounts{}, fmt.Errorf("seller counts: %w", err)
	}
	return c, nil
}

// GetPlatformTotals totales globales para el back-office.
func (r *AnalyticsRepo) GetPlatformTotals(ctx context.Context) (repository.PlatformTotals, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM users)                                                    AS users,
	    (SELECT COUNT(*) FROM users WHERE role = 'seller' AND status = 'active')        AS active_sellers,
	    (SELECT COUNT(*) FROM products)                                                 AS products,
	    (SELECT COUNT(*) FROM product_images)                                           AS images`
	var t repository.PlatformTotals
	if err := r.q.QueryRow(ctx, query).Scan(&t.Users, &t.ActiveSellers, &t.Products, &t.Images); err != nil {
		return repository.PlatformTotals{}, fmt.Errorf("platform totals: %w", err)
	}
	return t, nil
}

// GetFinancialTotals agregados de comisiones y retiros PIX.
func (r *AnalyticsRepo) GetFinancialTotals(ctx context.Context) (repository.FinancialTotals, error) {
	const query = `
	SELECT
	    COALESCE((SELECT SUM(amount) FROM referral_commissions WHERE status = 'pending'), 0),
	    COALESCE((SELECT SUM(amount) FROM referral_commissions WHERE status = 'available'), 0),
	    COALESCE((SELECT SUM(amount) FROM referral_commissions WHERE status = 'paid'), 0),
	    COALESCE((SELECT SUM(amount) FROM pix_payouts WHERE status = 'requested'), 0),
	    COALESCE((SELECT SUM(amount) FROM pix_payouts WHERE status = 'paid'), 0)`
	var f repository.FinancialTotals
	if err := r.q.QueryRow(ctx, query).Scan(
		&f.CommissionsPending, &f.CommissionsAvailable, &f.CommissionsPaid, &f.PayoutsRequested, &f.PayoutsPaid,
	); err != nil {
		return repository.FinancialTotals{}, fmt.Errorf("financial totals: %w", err)
	}
	return f, nil
}
