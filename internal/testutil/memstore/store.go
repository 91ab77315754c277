// Package memstore implementa los puertos de repositorio en memoria para tests.
// Permite inyectar fallas por operación ("images.CreateMany") y contar llamadas.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
)

// ErrInjected error por defecto de Fail.
var ErrInjected = errors.New("memstore: falla inyectada")

// Store estado compartido por todos los repos en memoria.
type Store struct {
	mu          sync.Mutex
	users       map[string]*entity.User
	products    map[string]*entity.Product
	images      map[string]*entity.ProductImage
	tiers       map[string]entity.PriceTier
	categories  map[string]*entity.Category
	commissions map[string]*entity.Commission
	payouts     map[string]*entity.Payout
	seq         int64 // orden de inserción para listados estables
	order       map[string]int64

	failures  map[string]error
	failItems map[string]int // op de lote → índice del ítem que falla
	calls     map[string]int
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		users:       map[string]*entity.User{},
		products:    map[string]*entity.Product{},
		images:      map[string]*entity.ProductImage{},
		tiers:       map[string]entity.PriceTier{},
		categories:  map[string]*entity.Category{},
		commissions: map[string]*entity.Commission{},
		payouts:     map[string]*entity.Payout{},
		order:       map[string]int64{},
		failures:    map[string]error{},
		failItems:   map[string]int{},
		calls:       map[string]int{},
	}
}

// Fail hace que op devuelva err (ErrInjected si err es nil) a partir de ahora.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		err = ErrInjected
	}
	s.failures[op] = err
}

// FailItem hace que el lote op falle en el ítem index con ErrInjected. Como en
// PostgreSQL, el lote completo se descarta.
func (s *Store) FailItem(op string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failItems[op] = index
}

// itemFails indica si el ítem i del lote op tiene una falla inyectada. Requiere s.mu tomado.
func (s *Store) itemFails(op string, i int) bool {
	idx, ok := s.failItems[op]
	return ok && idx == i
}

// Calls cantidad de invocaciones de op.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// TotalCalls suma de todas las invocaciones registradas.
func (s *Store) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// enter registra la llamada y devuelve la falla inyectada, si existe. Requiere s.mu tomado.
func (s *Store) enter(op string) error {
	s.calls[op]++
	return s.failures[op]
}

func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

// Users repo de usuarios sobre este Store.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Products repo de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }

// Images repo de imágenes.
func (s *Store) Images() repository.ProductImageRepository { return &imageRepo{s} }

// Tiers repo de escalas de precio.
func (s *Store) Tiers() repository.PriceTierRepository { return &tierRepo{s} }

// Categories repo de categorías.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s} }

// Referrals repo de comisiones y retiros.
func (s *Store) Referrals() repository.ReferralRepository { return &referralRepo{s} }

// Analytics repo de agregados para dashboards.
func (s *Store) Analytics() repository.AnalyticsRepository { return &analyticsRepo{s} }

// ── Lectura directa para asserts ───────────────────────────────────────────

// ProductsOf productos de userID ordenados por inserción.
func (s *Store) ProductsOf(userID string) []*entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Product
	for _, p := range s.products {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sortByInsertion(s, out, func(p *entity.Product) string { return p.ID })
	return out
}

// ImagesOf imágenes del producto ordenadas por display_order.
func (s *Store) ImagesOf(productID string) []*entity.ProductImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imagesOfLocked(productID)
}

// TiersOf escalas del producto ordenadas por min_quantity.
func (s *Store) TiersOf(productID string) []entity.PriceTier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tiersOfLocked(productID)
}

// CategoryNames nombres de categorías de userID ordenados.
func (s *Store) CategoryNames(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryNamesLocked(userID)
}

// Counts cantidad de filas por tabla.
func (s *Store) Counts() (products, images, tiers, categories int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products), len(s.images), len(s.tiers), len(s.categories)
}

func (s *Store) imagesOfLocked(productID string) []*entity.ProductImage {
	var out []*entity.ProductImage
	for _, img := range s.images {
		if img.ProductID == productID {
			cp := *img
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return s.order[out[i].ID] < s.order[out[j].ID]
	})
	return out
}

func (s *Store) tiersOfLocked(productID string) []entity.PriceTier {
	var out []entity.PriceTier
	for _, t := range s.tiers {
		if t.ProductID == productID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinQuantity < out[j].MinQuantity })
	return out
}

func (s *Store) categoryNamesLocked(userID string) []string {
	var out []string
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c.Name)
		}
	}
	sort.Strings(out)
	return out
}

func sortByInsertion[T any](s *Store, items []T, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool { return s.order[id(items[i])] < s.order[id(items[j])] })
}

// ── Transacciones ──────────────────────────────────────────────────────────

type snapshot struct {
	users       map[string]*entity.User
	products    map[string]*entity.Product
	images      map[string]*entity.ProductImage
	tiers       map[string]entity.PriceTier
	categories  map[string]*entity.Category
	commissions map[string]*entity.Commission
	payouts     map[string]*entity.Payout
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:       cloneMap(s.users, func(u *entity.User) *entity.User { c := *u; return &c }),
		products:    cloneMap(s.products, func(p *entity.Product) *entity.Product { c := *p; return &c }),
		images:      cloneMap(s.images, func(i *entity.ProductImage) *entity.ProductImage { c := *i; return &c }),
		tiers:       cloneMap(s.tiers, func(t entity.PriceTier) entity.PriceTier { return t }),
		categories:  cloneMap(s.categories, func(c *entity.Category) *entity.Category { x := *c; return &x }),
		commissions: cloneMap(s.commissions, func(c *entity.Commission) *entity.Commission { x := *c; return &x }),
		payouts:     cloneMap(s.payouts, func(p *entity.Payout) *entity.Payout { x := *p; return &x }),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.products = snap.products
	s.images = snap.images
	s.tiers = snap.tiers
	s.categories = snap.categories
	s.commissions = snap.commissions
	s.payouts = snap.payouts
}

func cloneMap[V any](m map[string]V, clone func(V) V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

// TxRunner simula transacciones con snapshot y restauración ante error.
type TxRunner struct {
	S *Store
	// Runs cantidad de transacciones iniciadas.
	Runs int
}

// RunCatalog implementa catalog.TxRunner (y el runner de escalas de producto).
func (t *TxRunner) RunCatalog(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	tierRepo repository.PriceTierRepository,
	categoryRepo repository.CategoryRepository,
) error) error {
	return t.run(func() error {
		return fn(t.S.Products(), t.S.Images(), t.S.Tiers(), t.S.Categories())
	})
}

// RunReferral implementa referral.TxRunner.
func (t *TxRunner) RunReferral(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	referralRepo repository.ReferralRepository,
) error) error {
	return t.run(func() error {
		return fn(t.S.Users(), t.S.Referrals())
	})
}

func (t *TxRunner) run(fn func() error) error {
	t.Runs++
	snap := t.S.snapshot()
	if err := fn(); err != nil {
		t.S.restore(snap)
		return err
	}
	return nil
}
