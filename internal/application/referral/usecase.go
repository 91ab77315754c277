// Package referral implementa el programa de indicación: comisiones por vendedores
// indicados y retiros de saldo vía PIX.
package referral

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Vitrine-api/internal/application/dto"
	"github.com/jhoicas/Vitrine-api/internal/application/usecase"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
	"github.com/jhoicas/Vitrine-api/pkg/pix"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta fn en una transacción con los repos de usuarios e indicaciones.
type TxRunner interface {
	RunReferral(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		referralRepo repository.ReferralRepository,
	) error) error
}

// Config reglas del programa.
type Config struct {
	CommissionRate  decimal.Decimal // ej. 0.10
	PayoutMinAmount decimal.Decimal // retiro mínimo en BRL
}

// UseCase casos de uso de indicación y retiros.
type UseCase struct {
	users     repository.UserRepository
	referrals repository.ReferralRepository
	tx        TxRunner
	cfg       Config
	log       zerolog.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. Sin tx el retiro no bloquea la cuenta (solo tests).
func NewUseCase(
	users repository.UserRepository,
	referrals repository.ReferralRepository,
	tx TxRunner,
	cfg Config,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		users:     users,
		referrals: referrals,
		tx:        tx,
		cfg:       cfg,
		log:       log.With().Str("component", "referral").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Summary código, cantidad de indicados y saldos del vendedor.
func (uc *UseCase) Summary(ctx context.Context, userID string) (*dto.ReferralSummaryResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	count, err := uc.users.CountReferredBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	bal, err := uc.referrals.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ReferralSummaryResponse{
		ReferralCode:  user.ReferralCode,
		ReferredCount: count,
		Pending:       bal.Pending,
		Available:     bal.Available,
		Paid:          bal.Paid,
		MinPayout:     uc.cfg.PayoutMinAmount,
	}, nil
}

// RecordPayment registra un pago del usuario indicado y genera la comisión de quien lo indicó.
// La comisión es amount × tasa redondeada a centavos y queda disponible de inmediato.
func (uc *UseCase) RecordPayment(ctx context.Context, in dto.RecordReferralPaymentRequest) (*dto.CommissionResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser mayor que cero", domain.ErrInvalidInput)
	}
	referred, err := uc.users.GetByID(ctx, strings.TrimSpace(in.ReferredUserID))
	if err != nil {
		return nil, err
	}
	if referred == nil {
		return nil, domain.ErrUserNotFound
	}
	if referred.ReferredBy == "" {
		return nil, fmt.Errorf("%w: el usuario no llegó por indicación", domain.ErrInvalidInput)
	}
	c := &entity.Commission{
		ID:             uuid.New().String(),
		ReferrerID:     referred.ReferredBy,
		ReferredUserID: referred.ID,
		BaseAmount:     in.Amount,
		Rate:           uc.cfg.CommissionRate,
		Amount:         in.Amount.Mul(uc.cfg.CommissionRate).Round(2),
		Status:         entity.CommissionStatusAvailable,
		CreatedAt:      uc.now(),
	}
	if err := uc.referrals.CreateCommission(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("referrer_id", c.ReferrerID).
		Str("referred_user_id", c.ReferredUserID).
		Str("amount", c.Amount.StringFixed(2)).
		Msg("comisión de indicación registrada")
	out := toCommissionResponse(c)
	return &out, nil
}

// ListCommissions comisiones del vendedor, más recientes primero.
func (uc *UseCase) ListCommissions(ctx context.Context, userID string, page dto.PageRequest) ([]dto.CommissionResponse, error) {
	page.DefaultPage()
	list, err := uc.referrals.ListCommissions(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommissionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCommissionResponse(c))
	}
	return out, nil
}

// SetPixKey valida y guarda la chave PIX del vendedor.
func (uc *UseCase) SetPixKey(ctx context.Context, userID string, in dto.SetPixKeyRequest) (*dto.UserResponse, error) {
	key, err := pix.Normalize(in.PixKeyType, in.PixKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.PixKey = key
	user.PixKeyType = strings.ToLower(strings.TrimSpace(in.PixKeyType))
	user.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return usecase.ToUserResponse(user), nil
}

// RequestPayout solicita el retiro de amount. La fila del usuario queda bloqueada mientras
// se verifica el saldo, así dos solicitudes simultáneas no pueden gastar el mismo saldo.
func (uc *UseCase) RequestPayout(ctx context.Context, userID string, in dto.RequestPayoutRequest) (*dto.PayoutResponse, error) {
	if in.Amount.LessThan(uc.cfg.PayoutMinAmount) || !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el retiro mínimo es %s", domain.ErrInvalidInput, uc.cfg.PayoutMinAmount.StringFixed(2))
	}

	var payout *entity.Payout
	run := func(users repository.UserRepository, referrals repository.ReferralRepository) error {
		if err := referrals.LockUser(ctx, userID); err != nil {
			return err
		}
		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		keyType, key := in.PixKeyType, in.PixKey
		if strings.TrimSpace(key) == "" {
			keyType, key = user.PixKeyType, user.PixKey
		}
		if key == "" {
			return fmt.Errorf("%w: no hay chave PIX registrada", domain.ErrInvalidInput)
		}
		normalized, err := pix.Normalize(keyType, key)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		bal, err := referrals.Balance(ctx, userID)
		if err != nil {
			return err
		}
		if in.Amount.GreaterThan(bal.Available) {
			return fmt.Errorf("%w: disponible %s", domain.ErrInsufficientBalance, bal.Available.StringFixed(2))
		}
		payout = &entity.Payout{
			ID:          uuid.New().String(),
			UserID:      userID,
			Amount:      in.Amount,
			PixKey:      normalized,
			PixKeyType:  strings.ToLower(strings.TrimSpace(keyType)),
			Status:      entity.PayoutStatusRequested,
			RequestedAt: uc.now(),
		}
		return referrals.CreatePayout(ctx, payout)
	}

	var err error
	if uc.tx != nil {
		err = uc.tx.RunReferral(ctx, run)
	} else {
		err = run(uc.users, uc.referrals)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrInsufficientBalance) {
			uc.log.Error().Err(err).Str("user_id", userID).Msg("solicitud de retiro falló")
		}
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Str("payout_id", payout.ID).Str("amount", payout.Amount.StringFixed(2)).Msg("retiro PIX solicitado")
	out := toPayoutResponse(payout)
	return &out, nil
}

// ListPayouts retiros filtrados por estado (vacío = todos) para el back-office.
func (uc *UseCase) ListPayouts(ctx context.Context, status string, page dto.PageRequest) ([]dto.PayoutResponse, error) {
	switch status {
	case "", entity.PayoutStatusRequested, entity.PayoutStatusPaid, entity.PayoutStatusRejected:
	default:
		return nil, fmt.Errorf("%w: estado de retiro inválido", domain.ErrInvalidInput)
	}
	page.DefaultPage()
	list, err := uc.referrals.ListPayouts(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayoutResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPayoutResponse(p))
	}
	return out, nil
}

// ProcessPayout marca un retiro solicitado como pagado o rechazado.
// ErrConflict si ya fue procesado. Un retiro rechazado devuelve el monto al saldo disponible.
func (uc *UseCase) ProcessPayout(ctx context.Context, id string, in dto.ProcessPayoutRequest) (*dto.PayoutResponse, error) {
	if in.Status != entity.PayoutStatusPaid && in.Status != entity.PayoutStatusRejected {
		return nil, fmt.Errorf("%w: status debe ser paid o rejected", domain.ErrInvalidInput)
	}
	p, err := uc.referrals.GetPayout(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: retiro no encontrado", domain.ErrNotFound)
	}
	if p.Status != entity.PayoutStatusRequested {
		return nil, fmt.Errorf("%w: el retiro ya fue procesado", domain.ErrConflict)
	}
	now := uc.now()
	p.Status = in.Status
	p.ProcessedAt = &now
	if err := uc.referrals.UpdatePayoutStatus(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("payout_id", p.ID).Str("status", p.Status).Msg("retiro procesado")
	out := toPayoutResponse(p)
	return &out, nil
}

func toCommissionResponse(c *entity.Commission) dto.CommissionResponse {
	return dto.CommissionResponse{
		ID:             c.ID,
		ReferrerID:     c.ReferrerID,
		ReferredUserID: c.ReferredUserID,
		BaseAmount:     c.BaseAmount,
		Rate:           c.Rate,
		Amount:         c.Amount,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
	}
}

func toPayoutResponse(p *entity.Payout) dto.PayoutResponse {
	return dto.PayoutResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Amount:      p.Amount,
		PixKey:      pix.Mask(p.PixKey),
		PixKeyType:  p.PixKeyType,
		Status:      p.Status,
		RequestedAt: p.RequestedAt,
		ProcessedAt: p.ProcessedAt,
	}
}
