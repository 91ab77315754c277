package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferralSummaryResponse resumen del programa de indicación del vendedor.
type ReferralSummaryResponse struct {
	ReferralCode  string          `json:"referral_code"`
	ReferredCount int             `json:"referred_count"`
	Pending       decimal.Decimal `json:"pending"`
	Available     decimal.Decimal `json:"available"`
	Paid          decimal.Decimal `json:"paid"`
	MinPayout     decimal.Decimal `json:"min_payout"`
}

// RecordReferralPaymentRequest el admin registra un pago de un usuario indicado.
type RecordReferralPaymentRequest struct {
	ReferredUserID string          `json:"referred_user_id" validate:"required"`
	Amount         decimal.Decimal `json:"amount"`
}

// CommissionResponse salida de una comisión.
type CommissionResponse struct {
	ID             string          `json:"id"`
	ReferrerID     string          `json:"referrer_id"`
	ReferredUserID string          `json:"referred_user_id"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	Rate           decimal.Decimal `json:"rate"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SetPixKeyRequest registro de la chave PIX del vendedor.
type SetPixKeyRequest struct {
	PixKey     string `json:"pix_key" validate:"required,max=100"`
	PixKeyType string `json:"pix_key_type" validate:"required,oneof=cpf cnpj email phone evp"`
}

// RequestPayoutRequest solicitud de retiro. Sin chave usa la registrada en el perfil.
type RequestPayoutRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	PixKey     string          `json:"pix_key" validate:"omitempty,max=100"`
	PixKeyType string          `json:"pix_key_type" validate:"omitempty,oneof=cpf cnpj email phone evp"`
}

// PayoutResponse salida de un retiro (chave enmascarada).
type PayoutResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	PixKey      string          `json:"pix_key"`
	PixKeyType  string          `json:"pix_key_type"`
	Status      string          `json:"status"`
	RequestedAt time.Time       `json:"requested_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}

// ProcessPayoutRequest decisión del admin sobre un retiro.
type ProcessPayoutRequest struct {
	Status string `json:"status" validate:"required,oneof=paid rejected"`
}
