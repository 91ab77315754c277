package repository

import (
	"context"

	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
)

// ReferralRepository puerto de persistencia para comisiones y retiros PIX.
type ReferralRepository interface {
	CreateCommission(ctx context.Context, c *entity.Commission) error
	ListCommissions(ctx context.Context, referrerID string, limit, offset int) ([]*entity.Commission, error)
	Balance(ctx context.Context, userID string) (entity.ReferralBalance, error)
	CreatePayout(ctx context.Context, p *entity.Payout) error
	GetPayout(ctx context.Context, id string) (*entity.Payout, error)
	ListPayouts(ctx context.Context, status string, limit, offset int) ([]*entity.Payout, error)
	UpdatePayoutStatus(ctx context.Context, p *entity.Payout) error
	// LockUser bloquea la fila del usuario (SELECT FOR UPDATE) para serializar retiros.
	LockUser(ctx context.Context, userID string) error
}
