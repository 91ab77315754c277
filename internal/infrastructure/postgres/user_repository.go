package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, name, role, status, store_name, COALESCE(store_slug, ''), bio,
		whatsapp, avatar_url, banner_url, max_images_per_product, referral_code, COALESCE(referred_by::text, ''),
		pix_key, pix_key_type, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, status, store_name, store_slug, bio, whatsapp,
		                   avatar_url, banner_url, max_images_per_product, referral_code, referred_by,
		                   pix_key, pix_key_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13, $14, NULLIF($15, '')::uuid,
		        $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.Status, u.StoreName, u.StoreSlug, u.Bio, u.WhatsApp,
		u.AvatarURL, u.BannerURL, u.MaxImagesPerProduct, u.ReferralCode, u.ReferredBy,
		u.PixKey, u.PixKeyType, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return mapUserWriteError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve nil, nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "get user", `WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `WHERE lower(email) = lower($1)`, email)
}

// GetBySlug obtiene la vitrina publicada con ese slug.
func (r *UserRepo) GetBySlug(ctx context.Context, slug string) (*entity.User, error) {
	return r.findOne(ctx, "get user by slug", `WHERE store_slug = $1`, slug)
}

// GetByReferralCode obtiene el dueño de un código de indicación.
func (r *UserRepo) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	return r.findOne(ctx, "get user by referral code", `WHERE referral_code = $1`, code)
}

// Update actualiza perfil, rol, estado y chave PIX.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, role = $3, status = $4, store_name = $5, store_slug = NULLIF($6, ''), bio = $7,
		    whatsapp = $8, avatar_url = $9, banner_url = $10, pix_key = $11, pix_key_type = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.Name, u.Role, u.Status, u.StoreName, u.StoreSlug, u.Bio,
		u.WhatsApp, u.AvatarURL, u.BannerURL, u.PixKey, u.PixKeyType, u.UpdatedAt,
	)
	if err != nil {
		return mapUserWriteError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateImageLimit cambia max_images_per_product; el CHECK de la tabla acota 1..50.
func (r *UserRepo) UpdateImageLimit(ctx context.Context, id string, limit int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET max_images_per_product = $2, updated_at = now() WHERE id = $1`, id, limit)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: límite de imágenes fuera de rango", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update image limit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List lista usuarios ordenados por fecha de alta.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return list, nil
}

// CountReferredBy cuenta los usuarios indicados por referrerID.
func (r *UserRepo) CountReferredBy(ctx context.Context, referrerID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE referred_by = $1`, referrerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count referred users: %w", err)
	}
	return n, nil
}

func (r *UserRepo) findOne(ctx context.Context, op, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.StoreName, &u.StoreSlug, &u.Bio,
		&u.WhatsApp, &u.AvatarURL, &u.BannerURL, &u.MaxImagesPerProduct, &u.ReferralCode, &u.ReferredBy,
		&u.PixKey, &u.PixKeyType, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func mapUserWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		switch violatedConstraint(err) {
		case "users_store_slug_key":
			return fmt.Errorf("%w: el slug de la vitrina ya está en uso", domain.ErrDuplicate)
		case "users_referral_code_key":
			return fmt.Errorf("%w: código de indicación", domain.ErrDuplicate)
		default:
			return domain.ErrEmailAlreadyExists
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
