package repository

import (
	"context"

	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*entity.Category, error)
	ListNamesByUser(ctx context.Context, userID string) ([]string, error)
	// CreateMany inserta names para userID ignorando los ya existentes; devuelve cuántos creó.
	CreateMany(ctx context.Context, userID string, names []string) (int, error)
	Delete(ctx context.Context, userID, id string) error
}
