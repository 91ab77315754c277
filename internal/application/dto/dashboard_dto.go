package dto

import "github.com/shopspring/decimal"

// SellerDashboardDTO respuesta de GET /api/dashboard/summary.
type SellerDashboardDTO struct {
	Products       int `json:"products"`
	ActiveProducts int `json:"active_products"`
	Images         int `json:"images"`
	PriceTiers     int `json:"price_tiers"`
	Categories     int `json:"categories"`
	ImageLimit     int `json:"image_limit"`

	ReferredCount     int             `json:"referred_count"`
	ReferralPending   decimal.Decimal `json:"referral_pending"`
	ReferralAvailable decimal.Decimal `json:"referral_available"`
	ReferralPaid      decimal.Decimal `json:"referral_paid"`
}

// AdminDashboardDTO respuesta de GET /api/admin/dashboard/financial.
type AdminDashboardDTO struct {
	Users         int `json:"users"`
	ActiveSellers int `json:"active_sellers"`
	Products      int `json:"products"`
	Images        int `json:"images"`

	CommissionsPending   decimal.Decimal `json:"commissions_pending"`
	CommissionsAvailable decimal.Decimal `json:"commissions_available"`
	CommissionsPaid      decimal.Decimal `json:"commissions_paid"`
	PayoutsRequested     decimal.Decimal `json:"payouts_requested"`
	PayoutsPaid          decimal.Decimal `json:"payouts_paid"`
}
