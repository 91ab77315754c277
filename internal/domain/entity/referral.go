package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de comisión por indicación.
const (
	CommissionStatusPending   = "pending"
	CommissionStatusAvailable = "available"
	CommissionStatusPaid      = "paid"
)

// Estados de una solicitud de pago PIX.
const (
	PayoutStatusRequested = "requested"
	PayoutStatusPaid      = "paid"
	PayoutStatusRejected  = "rejected"
)

// Commission comisión generada para quien indicó a otro vendedor.
type Commission struct {
	ID             string
	ReferrerID     string
	ReferredUserID string
	BaseAmount     decimal.Decimal // valor pagado por el indicado
	Rate           decimal.Decimal // ej. 0.10
	Amount         decimal.Decimal // BaseAmount * Rate, redondeado a centavos
	Status         string
	CreatedAt      time.Time
}

// Payout solicitud de retiro de comisiones vía PIX.
type Payout struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	PixKey      string
	PixKeyType  string
	Status      string
	RequestedAt time.Time
	ProcessedAt *time.Time
}

// ReferralBalance saldos agregados de comisiones de un vendedor.
type ReferralBalance struct {
	Pending   decimal.Decimal
	Available decimal.Decimal // comisiones disponibles menos retiros solicitados o pagados
	Paid      decimal.Decimal
}
