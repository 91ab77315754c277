package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ── Users ──────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("users.Create"); err != nil {
		return err
	}
	for _, o := range s.users {
		if strings.EqualFold(o.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
		if u.StoreSlug != "" && o.StoreSlug == u.StoreSlug {
			return domain.ErrDuplicate
		}
		if o.ReferralCode == u.ReferralCode {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	s.track(u.ID)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find("users.GetByID", func(u *entity.User) bool { return u.ID == id })
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find("users.GetByEmail", func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepo) GetBySlug(_ context.Context, slug string) (*entity.User, error) {
	return r.find("users.GetBySlug", func(u *entity.User) bool { return slug != "" && u.StoreSlug == slug })
}

func (r *userRepo) GetByReferralCode(_ context.Context, code string) (*entity.User, error) {
	return r.find("users.GetByReferralCode", func(u *entity.User) bool { return u.ReferralCode == code })
}

func (r *userRepo) find(op string, match func(*entity.User) bool) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(op); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("users.Update"); err != nil {
		return err
	}
	cur, ok := s.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.StoreSlug != "" {
		for _, o := range s.users {
			if o.ID != u.ID && o.StoreSlug == u.StoreSlug {
				return domain.ErrDuplicate
			}
		}
	}
	cp := *u
	cp.MaxImagesPerProduct = cur.MaxImagesPerProduct
	cp.Email, cp.PasswordHash, cp.ReferralCode, cp.ReferredBy = cur.Email, cur.PasswordHash, cur.ReferralCode, cur.ReferredBy
	s.users[u.ID] = &cp
	return nil
}

func (r *userRepo) UpdateImageLimit(_ context.Context, id string, limit int) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("users.UpdateImageLimit"); err != nil {
		return err
	}
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if limit < entity.MinImagesPerProduct || limit > entity.MaxImagesPerProduct {
		return domain.ErrInvalidInput
	}
	u.MaxImagesPerProduct = limit
	return nil
}

func (r *userRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("users.List"); err != nil {
		return nil, err
	}
	var out []*entity.User
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	sortByInsertion(s, out, func(u *entity.User) string { return u.ID })
	return page(out, limit, offset), nil
}

func (r *userRepo) CountReferredBy(_ context.Context, referrerID string) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("users.CountReferredBy"); err != nil {
		return 0, err
	}
	n := 0
	for _, u := range s.users {
		if u.ReferredBy == referrerID {
			n++
		}
	}
	return n, nil
}

// ── Products ───────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("products.Create"); err != nil {
		return err
	}
	if _, ok := s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	s.products[p.ID] = cloneProduct(p)
	s.track(p.ID)
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("products.GetByID"); err != nil {
		return nil, err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("products.Update"); err != nil {
		return err
	}
	if _, ok := s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("products.Delete"); err != nil {
		return err
	}
	if _, ok := s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.products, id)
	for k, img := range s.images {
		if img.ProductID == id {
			delete(s.images, k)
		}
	}
	for k, t := range s.tiers {
		if t.ProductID == id {
			delete(s.tiers, k)
		}
	}
	return nil
}

func (r *productRepo) ListByUser(_ context.Context, userID string, onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("products.ListByUser"); err != nil {
		return nil, err
	}
	var out []*entity.Product
	for _, p := range s.products {
		if p.UserID == userID && (!onlyActive || p.IsActive) {
			out = append(out, cloneProduct(p))
		}
	}
	// más recientes primero
	sort.SliceStable(out, func(i, j int) bool { return s.order[out[i].ID] > s.order[out[j].ID] })
	return page(out, limit, offset), nil
}

func (r *productRepo) CountByUser(_ context.Context, userID string) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("products.CountByUser"); err != nil {
		return 0, err
	}
	n := 0
	for _, p := range s.products {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *productRepo) ListByIDsAndOwner(_ context.Context, ids []string, userID string) ([]*entity.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("products.ListByIDsAndOwner"); err != nil {
		return nil, err
	}
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok && p.UserID == userID {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *productRepo) ListCategoriesInUse(_ context.Context, userID string) ([]string, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("products.ListCategoriesInUse"); err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var out []string
	for _, p := range s.products {
		if p.UserID != userID {
			continue
		}
		for _, c := range p.Categories {
			c = strings.TrimSpace(c)
			if _, ok := seen[c]; c == "" || ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ── Images ─────────────────────────────────────────────────────────────────

type imageRepo struct{ s *Store }

func (r *imageRepo) Create(_ context.Context, img *entity.ProductImage) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("images.Create"); err != nil {
		return err
	}
	return s.insertImageLocked(img)
}

func (r *imageRepo) CreateMany(_ context.Context, images []*entity.ProductImage) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("images.CreateMany"); err != nil {
		return 0, err
	}
	inserted := make([]string, 0, len(images))
	for i, img := range images {
		err := s.insertImageLocked(img)
		if err == nil && s.itemFails("images.CreateMany", i) {
			inserted = append(inserted, img.ID)
			err = ErrInjected
		}
		if err != nil {
			for _, id := range inserted {
				delete(s.images, id)
				delete(s.order, id)
			}
			return 0, err
		}
		inserted = append(inserted, img.ID)
	}
	return len(inserted), nil
}

func (s *Store) insertImageLocked(img *entity.ProductImage) error {
	if _, ok := s.images[img.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := s.products[img.ProductID]; !ok {
		return domain.ErrNotFound
	}
	cp := *img
	s.images[img.ID] = &cp
	s.track(img.ID)
	return nil
}

func (r *imageRepo) GetByID(_ context.Context, id string) (*entity.ProductImage, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("images.GetByID"); err != nil {
		return nil, err
	}
	img, ok := s.images[id]
	if !ok {
		return nil, nil
	}
	cp := *img
	return &cp, nil
}

func (r *imageRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductImage, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("images.ListByProduct"); err != nil {
		return nil, err
	}
	return s.imagesOfLocked(productID), nil
}

func (r *imageRepo) ListByProducts(_ context.Context, productIDs []string) ([]*entity.ProductImage, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("images.ListByProducts"); err != nil {
		return nil, err
	}
	var out []*entity.ProductImage
	for _, id := range productIDs {
		out = append(out, s.imagesOfLocked(id)...)
	}
	return out, nil
}

func (r *imageRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("images.CountByProduct"); err != nil {
		return 0, err
	}
	return len(s.imagesOfLocked(productID)), nil
}

func (r *imageRepo) SetFeatured(_ context.Context, productID, imageID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("images.SetFeatured"); err != nil {
		return err
	}
	found := false
	for _, img := range s.images {
		if img.ProductID == productID {
			found = true
			img.IsFeatured = img.ID == imageID
		}
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func (r *imageRepo) UpdateOrder(_ context.Context, imageID string, displayOrder int) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("images.UpdateOrder"); err != nil {
		return err
	}
	img, ok := s.images[imageID]
	if !ok {
		return domain.ErrNotFound
	}
	img.DisplayOrder = displayOrder
	return nil
}

func (r *imageRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("images.Delete"); err != nil {
		return err
	}
	if _, ok := s.images[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.images, id)
	return nil
}

// ── Price tiers ────────────────────────────────────────────────────────────

type tierRepo struct{ s *Store }

func (r *tierRepo) ListByProduct(_ context.Context, productID string) ([]entity.PriceTier, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("tiers.ListByProduct"); err != nil {
		return nil, err
	}
	return s.tiersOfLocked(productID), nil
}

func (r *tierRepo) ListByProducts(_ context.Context, productIDs []string) ([]entity.PriceTier, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("tiers.ListByProducts"); err != nil {
		return nil, err
	}
	var out []entity.PriceTier
	for _, id := range productIDs {
		out = append(out, s.tiersOfLocked(id)...)
	}
	return out, nil
}

func (r *tierRepo) ReplaceForProduct(_ context.Context, productID string, tiers []entity.PriceTier) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("tiers.ReplaceForProduct"); err != nil {
		return err
	}
	for k, t := range s.tiers {
		if t.ProductID == productID {
			delete(s.tiers, k)
		}
	}
	for _, t := range tiers {
		t.ProductID = productID
		if err := s.insertTierLocked(t); err != nil {
			return err
		}
	}
	return nil
}

func (r *tierRepo) CreateMany(_ context.Context, tiers []entity.PriceTier) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("tiers.CreateMany"); err != nil {
		return 0, err
	}
	inserted := make([]string, 0, len(tiers))
	for i, t := range tiers {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		err := s.insertTierLocked(t)
		if err == nil && s.itemFails("tiers.CreateMany", i) {
			inserted = append(inserted, t.ID)
			err = ErrInjected
		}
		if err != nil {
			for _, id := range inserted {
				delete(s.tiers, id)
				delete(s.order, id)
			}
			return 0, err
		}
		inserted = append(inserted, t.ID)
	}
	return len(inserted), nil
}

func (s *Store) insertTierLocked(t entity.PriceTier) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	for _, o := range s.tiers {
		if o.ProductID == t.ProductID && o.MinQuantity == t.MinQuantity {
			return domain.ErrDuplicate
		}
	}
	s.tiers[t.ID] = t
	s.track(t.ID)
	return nil
}

// ── Categories ─────────────────────────────────────────────────────────────

type categoryRepo struct{ s *Store }

func (r *categoryRepo) ListByUser(_ context.Context, userID string) ([]*entity.Category, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("categories.ListByUser"); err != nil {
		return nil, err
	}
	var out []*entity.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepo) ListNamesByUser(_ context.Context, userID string) ([]string, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("categories.ListNamesByUser"); err != nil {
		return nil, err
	}
	return s.categoryNamesLocked(userID), nil
}

func (r *categoryRepo) CreateMany(_ context.Context, userID string, names []string) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("categories.CreateMany"); err != nil {
		return 0, err
	}
	have := map[string]bool{}
	for _, n := range s.categoryNamesLocked(userID) {
		have[n] = true
	}
	created := 0
	for _, name := range names {
		if have[name] {
			continue
		}
		have[name] = true
		id := uuid.NewString()
		s.categories[id] = &entity.Category{ID: id, UserID: userID, Name: name}
		s.track(id)
		created++
	}
	return created, nil
}

func (r *categoryRepo) Delete(_ context.Context, userID, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("categories.Delete"); err != nil {
		return err
	}
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

// ── Referrals ──────────────────────────────────────────────────────────────

type referralRepo struct{ s *Store }

func (r *referralRepo) CreateCommission(_ context.Context, c *entity.Commission) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("referrals.CreateCommission"); err != nil {
		return err
	}
	cp := *c
	s.commissions[c.ID] = &cp
	s.track(c.ID)
	return nil
}

func (r *referralRepo) ListCommissions(_ context.Context, referrerID string, limit, offset int) ([]*entity.Commission, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("referrals.ListCommissions"); err != nil {
		return nil, err
	}
	var out []*entity.Commission
	for _, c := range s.commissions {
		if c.ReferrerID == referrerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return s.order[out[i].ID] > s.order[out[j].ID] })
	return page(out, limit, offset), nil
}

func (r *referralRepo) Balance(_ context.Context, userID string) (entity.ReferralBalance, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("referrals.Balance"); err != nil {
		return entity.ReferralBalance{}, err
	}
	b := entity.ReferralBalance{Pending: decimal.Zero, Available: decimal.Zero, Paid: decimal.Zero}
	for _, c := range s.commissions {
		if c.ReferrerID != userID {
			continue
		}
		switch c.Status {
		case entity.CommissionStatusPending:
			b.Pending = b.Pending.Add(c.Amount)
		case entity.CommissionStatusAvailable:
			b.Available = b.Available.Add(c.Amount)
		}
	}
	for _, p := range s.payouts {
		if p.UserID != userID {
			continue
		}
		switch p.Status {
		case entity.PayoutStatusRequested:
			b.Available = b.Available.Sub(p.Amount)
		case entity.PayoutStatusPaid:
			b.Available = b.Available.Sub(p.Amount)
			b.Paid = b.Paid.Add(p.Amount)
		}
	}
	return b, nil
}

func (r *referralRepo) CreatePayout(_ context.Context, p *entity.Payout) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("referrals.CreatePayout"); err != nil {
		return err
	}
	cp := *p
	s.payouts[p.ID] = &cp
	s.track(p.ID)
	return nil
}

func (r *referralRepo) GetPayout(_ context.Context, id string) (*entity.Payout, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("referrals.GetPayout"); err != nil {
		return nil, err
	}
	p, ok := s.payouts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *referralRepo) ListPayouts(_ context.Context, status string, limit, offset int) ([]*entity.Payout, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("referrals.ListPayouts"); err != nil {
		return nil, err
	}
	var out []*entity.Payout
	for _, p := range s.payouts {
		if status == "" || p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return s.order[out[i].ID] > s.order[out[j].ID] })
	return page(out, limit, offset), nil
}

func (r *referralRepo) UpdatePayoutStatus(_ context.Context, p *entity.Payout) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("referrals.UpdatePayoutStatus"); err != nil {
		return err
	}
	cur, ok := s.payouts[p.ID]
	if !ok || cur.Status != entity.PayoutStatusRequested {
		return domain.ErrConflict
	}
	cur.Status = p.Status
	cur.ProcessedAt = p.ProcessedAt
	return nil
}

func (r *referralRepo) LockUser(_ context.Context, userID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("referrals.LockUser"); err != nil {
		return err
	}
	if _, ok := s.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	return nil
}

// ── Analytics ──────────────────────────────────────────────────────────────

type analyticsRepo struct{ s *Store }

func (r *analyticsRepo) GetSellerCounts(_ context.Context, userID string) (repository.SellerCounts, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("analytics.GetSellerCounts"); err != nil {
		return repository.SellerCounts{}, err
	}
	var c repository.SellerCounts
	owned := map[string]bool{}
	for _, p := range s.products {
		if p.UserID == userID {
			owned[p.ID] = true
			c.Products++
			if p.IsActive {
				c.ActiveProducts++
			}
		}
	}
	for _, img := range s.images {
		if owned[img.ProductID] {
			c.Images++
		}
	}
	for _, t := range s.tiers {
		if owned[t.ProductID] {
			c.PriceTiers++
		}
	}
	c.Categories = len(s.categoryNamesLocked(userID))
	return c, nil
}

func (r *analyticsRepo) GetPlatformTotals(_ context.Context) (repository.PlatformTotals, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("analytics.GetPlatformTotals"); err != nil {
		return repository.PlatformTotals{}, err
	}
	t := repository.PlatformTotals{Users: len(s.users), Products: len(s.products), Images: len(s.images)}
	for _, u := range s.users {
		if u.Role == entity.RoleSeller && u.Status == entity.UserStatusActive {
			t.ActiveSellers++
		}
	}
	return t, nil
}

func (r *analyticsRepo) GetFinancialTotals(_ context.Context) (repository.FinancialTotals, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("analytics.GetFinancialTotals"); err != nil {
		return repository.FinancialTotals{}, err
	}
	f := repository.FinancialTotals{
		CommissionsPending:   decimal.Zero,
		CommissionsAvailable: decimal.Zero,
		CommissionsPaid:      decimal.Zero,
		PayoutsRequested:     decimal.Zero,
		PayoutsPaid:          decimal.Zero,
	}
	for _, c := range s.commissions {
		switch c.Status {
		case entity.CommissionStatusPending:
			f.CommissionsPending = f.CommissionsPending.Add(c.Amount)
		case entity.CommissionStatusAvailable:
			f.CommissionsAvailable = f.CommissionsAvailable.Add(c.Amount)
		case entity.CommissionStatusPaid:
			f.CommissionsPaid = f.CommissionsPaid.Add(c.Amount)
		}
	}
	for _, p := range s.payouts {
		switch p.Status {
		case entity.PayoutStatusRequested:
			f.PayoutsRequested = f.PayoutsRequested.Add(p.Amount)
		case entity.PayoutStatusPaid:
			f.PayoutsPaid = f.PayoutsPaid.Add(p.Amount)
		}
	}
	return f, nil
}

// ── helpers ────────────────────────────────────────────────────────────────

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Sizes = append([]string(nil), p.Sizes...)
	cp.Colors = append([]string(nil), p.Colors...)
	cp.Categories = append([]string(nil), p.Categories...)
	if p.DiscountedPrice != nil {
		d := *p.DiscountedPrice
		cp.DiscountedPrice = &d
	}
	if p.Attributes != nil {
		cp.Attributes = append([]byte(nil), p.Attributes...)
	}
	return &cp
}
