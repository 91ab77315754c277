package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// SellerCounts conteos del catálogo de un vendedor.
type SellerCounts struct {
	Products       int
	ActiveProducts int
	Images         int
	PriceTiers     int
	Categories     int
}

// PlatformTotals totales de la plataforma para el back-office.
type PlatformTotals struct {
	Users         int
	ActiveSellers int
	Products      int
	Images        int
}

// FinancialTotals agregados financieros del programa de indicación.
type FinancialTotals struct {
	CommissionsPending   decimal.Decimal
	CommissionsAvailable decimal.Decimal
	CommissionsPaid      decimal.Decimal
	PayoutsRequested     decimal.Decimal
	PayoutsPaid          decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para los dashboards.
type AnalyticsRepository interface {
	GetSellerCounts(ctx context.Context, userID string) (SellerCounts, error)
	GetPlatformTotals(ctx context.Context) (PlatformTotals, error)
	GetFinancialTotals(ctx context.Context) (FinancialTotals, error)
}
