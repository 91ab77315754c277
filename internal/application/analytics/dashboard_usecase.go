// Package analytics contiene los casos de uso de los dashboards del vendedor y del back-office.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

// DashboardUseCase arma los resúmenes de los dashboards.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) más los saldos de
// indicación del vendedor. Las consultas independientes corren en paralelo.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	userRepo      repository.UserRepository
	referralRepo  repository.ReferralRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	userRepo repository.UserRepository,
	referralRepo repository.ReferralRepository,
) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, userRepo: userRepo, referralRepo: referralRepo}
}

// GetSellerSummary resumen del catálogo y del programa de indicación del vendedor.
//
// Cuatro llamadas en paralelo:
//  1. GetSellerCounts  → productos, imágenes, escalas, categorías
//  2. Balance          → saldos de comisiones
//  3. CountReferredBy  → indicados
//  4. GetByID          → límite de imágenes de la cuenta
func (uc *DashboardUseCase) GetSellerSummary(ctx context.Context, userID string) (*dto.SellerDashboardDTO, error) {
	type countsResult struct {
		counts repository.SellerCounts
		err    error
	}
	type balanceResult struct {
		balance entity.ReferralBalance
		err     error
	}
	type referredResult struct {
		n   int
		err error
	}
	type userResult struct {
		user *entity.User
		err  error
	}

	countsCh := make(chan countsResult, 1)
	balanceCh := make(chan balanceResult, 1)
	referredCh := make(chan referredResult, 1)
	userCh := make(chan userResult, 1)

	go func() {
		c, err := uc.analyticsRepo.GetSellerCounts(ctx, userID)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		b, err := uc.referralRepo.Balance(ctx, userID)
		balanceCh <- balanceResult{b, err}
	}()
	go func() {
		n, err := uc.userRepo.CountReferredBy(ctx, userID)
		referredCh <- referredResult{n, err}
	}()
	go func() {
		u, err := uc.userRepo.GetByID(ctx, userID)
		userCh <- userResult{u, err}
	}()

	counts := <-countsCh
	balance := <-balanceCh
	referred := <-referredCh
	user := <-userCh

	if user.err != nil {
		return nil, fmt.Errorf("dashboard: usuario: %w", user.err)
	}
	if user.user == nil {
		return nil, domain.ErrUserNotFound
	}
	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos del catálogo: %w", counts.err)
	}
	if balance.err != nil {
		return nil, fmt.Errorf("dashboard: saldos de indicación: %w", balance.err)
	}
	if referred.err != nil {
		return nil, fmt.Errorf("dashboard: indicados: %w", referred.err)
	}

	return &dto.SellerDashboardDTO{
		Products:          counts.counts.Products,
		ActiveProducts:    counts.counts.ActiveProducts,
		Images:            counts.counts.Images,
		PriceTiers:        counts.counts.PriceTiers,
		Categories:        counts.counts.Categories,
		ImageLimit:        user.user.ImageLimit(),
		ReferredCount:     referred.n,
		ReferralPending:   balance.balance.Pending.Round(2),
		ReferralAvailable: balance.balance.Available.Round(2),
		ReferralPaid:      balance.balance.Paid.Round(2),
	}, nil
}

// GetAdminSummary totales de la plataforma y del programa de indicación (dos consultas en paralelo).
func (uc *DashboardUseCase) GetAdminSummary(ctx context.Context) (*dto.AdminDashboardDTO, error) {
	type platformResult struct {
		totals repository.PlatformTotals
		err    error
	}
	type financialResult struct {
		totals repository.FinancialTotals
		err    error
	}

	platformCh := make(chan platformResult, 1)
	financialCh := make(chan financialResult, 1)

	go func() {
		t, err := uc.analyticsRepo.GetPlatformTotals(ctx)
		platformCh <- platformResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.GetFinancialTotals(ctx)
		financialCh <- financialResult{t, err}
	}()

	platform := <-platformCh
	financial := <-financialCh

	if platform.err != nil {
		return nil, fmt.Errorf("dashboard: totales de la plataforma: %w", platform.err)
	}
	if financial.err != nil {
		return nil, fmt.Errorf("dashboard: totales financieros: %w", financial.err)
	}

	f := financial.totals
	return &dto.AdminDashboardDTO{
		Users:                platform.totals.Users,
		ActiveSellers:        platform.totals.ActiveSellers,
		Products:             platform.totals.Products,
		Images:               platform.totals.Images,
		CommissionsPending:   f.CommissionsPending.Round(2),
		CommissionsAvailable: f.CommissionsAvailable.Round(2),
		CommissionsPaid:      f.CommissionsPaid.Round(2),
		PayoutsRequested:     f.PayoutsRequested.Round(2),
		PayoutsPaid:          f.PayoutsPaid.Round(2),
	}, nil
}
