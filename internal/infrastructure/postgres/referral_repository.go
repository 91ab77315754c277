package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

var _ repository.ReferralRepository = (*ReferralRepo)(nil)

const payoutColumns = `id, user_id, amount, pix_key, pix_key_type, status, requested_at, processed_at`

// ReferralRepo comisiones por indicación y retiros PIX sobre PostgreSQL.
type ReferralRepo struct {
	q Querier
}

// NewReferralRepository construye el repositorio de indicaciones. Pasar pool o tx.
func NewReferralRepository(q Querier) *ReferralRepo {
	return &ReferralRepo{q: q}
}

func (r *ReferralRepo) CreateCommission(ctx context.Context, c *entity.Commission) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO referral_commissions (id, referrer_id, referred_user_id, base_amount, rate, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.ReferrerID, c.ReferredUserID, c.BaseAmount, c.Rate, c.Amount, c.Status, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert commission: %w", err)
	}
	return nil
}

func (r *ReferralRepo) ListCommissions(ctx context.Context, referrerID string, limit, offset int) ([]*entity.Commission, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, referrer_id, referred_user_id, base_amount, rate, amount, status, created_at
		FROM referral_commissions WHERE referrer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, referrerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Commission
	for rows.Next() {
		var c entity.Commission
		if err := rows.Scan(&c.ID, &c.ReferrerID, &c.ReferredUserID, &c.BaseAmount, &c.Rate, &c.Amount,
			&c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan commission: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commissions: %w", err)
	}
	return list, nil
}

// Balance: disponible = comisiones available − retiros requested/paid.
func (r *ReferralRepo) Balance(ctx context.Context, userID string) (entity.ReferralBalance, error) {
	const query = `
	SELECT
	    COALESCE((SELECT SUM(amount) FROM referral_commissions WHERE referrer_id = $1 AND status = 'pending'), 0),
	    COALESCE((SELECT SUM(amount) FROM referral_commissions WHERE referrer_id = $1 AND status = 'available'), 0)
	  - COALESCE((SELECT SUM(amount) FROM pix_payouts WHERE user_id = $1 AND status IN ('requested', 'paid')), 0),
	    COALESCE((SELECT SUM(amount) FROM pix_payouts WHERE user_id = $1 AND status = 'paid'), 0)`
	var b entity.ReferralBalance
	if err := r.q.QueryRow(ctx, query, userID).Scan(&b.Pending, &b.Available, &b.Paid); err != nil {
		return entity.ReferralBalance{}, fmt.Errorf("referral balance: %w", err)
	}
	return b, nil
}

func (r *ReferralRepo) CreatePayout(ctx context.Context, p *entity.Payout) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO pix_payouts (`+payoutColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.UserID, p.Amount, p.PixKey, p.PixKeyType, p.Status, p.RequestedAt, p.ProcessedAt)
	if err != nil {
		return fmt.Errorf("insert payout: %w", err)
	}
	return nil
}

func (r *ReferralRepo) GetPayout(ctx context.Context, id string) (*entity.Payout, error) {
	p, err := scanPayout(r.q.QueryRow(ctx, `SELECT `+payoutColumns+` FROM pix_payouts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payout: %w", err)
	}
	return p, nil
}

// ListPayouts lista retiros; status vacío = todos.
func (r *ReferralRepo) ListPayouts(ctx context.Context, status string, limit, offset int) ([]*entity.Payout, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+payoutColumns+`
		FROM pix_payouts
		WHERE ($1 = '' OR status = $1)
		ORDER BY requested_at DESC
		LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payout: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payouts: %w", err)
	}
	return list, nil
}

// UpdatePayoutStatus solo transiciona retiros que siguen en requested.
func (r *ReferralRepo) UpdatePayoutStatus(ctx context.Context, p *entity.Payout) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE pix_payouts SET status = $2, processed_at = $3
		WHERE id = $1 AND status = 'requested'`, p.ID, p.Status, p.ProcessedAt)
	if err != nil {
		return fmt.Errorf("update payout status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// LockUser bloquea la fila del usuario hasta el fin de la transacción.
func (r *ReferralRepo) LockUser(ctx context.Context, userID string) error {
	var id string
	err := r.q.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("lock user: %w", err)
	}
	return nil
}

func scanPayout(row pgx.Row) (*entity.Payout, error) {
	var p entity.Payout
	if err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.PixKey, &p.PixKeyType, &p.Status,
		&p.RequestedAt, &p.ProcessedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
