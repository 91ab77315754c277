package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

var _ repository.PriceTierRepository = (*PriceTierRepo)(nil)

const tierColumns = `id, product_id, min_quantity, unit_price, discounted_unit_price, created_at, updated_at`

const insertTier = `
	INSERT INTO product_price_tiers (` + tierColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// PriceTierRepo escalas de precio por cantidad sobre PostgreSQL.
type PriceTierRepo struct {
	q Querier
}

// NewPriceTierRepository construye el repositorio de escalas. Pasar pool o tx.
func NewPriceTierRepository(q Querier) *PriceTierRepo {
	return &PriceTierRepo{q: q}
}

func (r *PriceTierRepo) ListByProduct(ctx context.Context, productID string) ([]entity.PriceTier, error) {
	query := `
		SELECT ` + tierColumns + `
		FROM product_price_tiers WHERE product_id = $1
		ORDER BY min_quantity`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list price tiers: %w", err)
	}
	return collectTiers(rows)
}

func (r *PriceTierRepo) ListByProducts(ctx context.Context, productIDs []string) ([]entity.PriceTier, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + tierColumns + `
		FROM product_price_tiers WHERE product_id = ANY($1::uuid[])
		ORDER BY product_id, min_quantity`
	rows, err := r.q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list price tiers by products: %w", err)
	}
	return collectTiers(rows)
}

// ReplaceForProduct borra las escalas actuales del producto e inserta tiers.
// Llamar dentro de una transacción para que el reemplazo sea atómico.
func (r *PriceTierRepo) ReplaceForProduct(ctx context.Context, productID string, tiers []entity.PriceTier) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_price_tiers WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete price tiers: %w", err)
	}
	for i := range tiers {
		tiers[i].ProductID = productID
	}
	if _, err := r.CreateMany(ctx, tiers); err != nil {
		return err
	}
	return nil
}

// CreateMany inserta en lote y devuelve las filas insertadas.
func (r *PriceTierRepo) CreateMany(ctx context.Context, tiers []entity.PriceTier) (int, error) {
	b := &pgx.Batch{}
	for _, t := range tiers {
		b.Queue(insertTier, t.ID, t.ProductID, t.MinQuantity, t.UnitPrice, t.DiscountedUnitPrice, t.CreatedAt, t.UpdatedAt)
	}
	n, err := execBatch(ctx, r.q, b)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: escala de precio fuera de rango", domain.ErrInvalidInput)
		}
		return 0, fmt.Errorf("insert price tiers: %w", err)
	}
	return n, nil
}

func collectTiers(rows pgx.Rows) ([]entity.PriceTier, error) {
	defer rows.Close()
	var list []entity.PriceTier
	for rows.Next() {
		var t entity.PriceTier
		if err := rows.Scan(&t.ID, &t.ProductID, &t.MinQuantity, &t.UnitPrice, &t.DiscountedUnitPrice,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price tier: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price tiers: %w", err)
	}
	return list, nil
}
