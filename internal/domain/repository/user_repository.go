package repository

import (
	"context"

	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetBySlug(ctx context.Context, slug string) (*entity.User, error)
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateImageLimit(ctx context.Context, id string, limit int) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountReferredBy(ctx context.Context, referrerID string) (int, error)
}
