package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

// In-memory repository fakes. Each mirrors the Mongo-backed behavior
// the services rely on: site scoping on every lookup, NotFound on
// miss, Conflict on duplicate keys and insufficient stock.

// ─── Sites ───────────────────────────────────────────────────────────

type fakeSiteRepo struct {
	mu    sync.Mutex
	sites map[primitive.ObjectID]models.Site
}

func newFakeSiteRepo() *fakeSiteRepo {
	return &fakeSiteRepo{sites: map[primitive.ObjectID]models.Site{}}
}

func (r *fakeSiteRepo) Create(_ context.Context, s *models.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sites {
		if existing.Slug == s.Slug {
			return apperr.Newf(apperr.Conflict, "site slug %q already exists", s.Slug)
		}
	}
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	r.sites[s.ID] = *s
	return nil
}

func (r *fakeSiteRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sites[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "site not found")
	}
	return &s, nil
}

func (r *fakeSiteRepo) FindBySlug(_ context.Context, slug string) (*models.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sites {
		if s.Slug == slug {
			out := s
			return &out, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "site not found")
}

func (r *fakeSiteRepo) FirstActive(_ context.Context) (*models.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var active []models.Site
	for _, s := range r.sites {
		if s.IsActive {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return nil, apperr.New(apperr.NotFound, "no active site")
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.Before(active[j].CreatedAt) })
	return &active[0], nil
}

func (r *fakeSiteRepo) All(_ context.Context) ([]models.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Site, 0, len(r.sites))
	for _, s := range r.sites {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSiteRepo) Update(_ context.Context, s *models.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sites[s.ID]; !ok {
		return apperr.New(apperr.NotFound, "site not found")
	}
	r.sites[s.ID] = *s
	return nil
}

func (r *fakeSiteRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sites[id]; !ok {
		return apperr.New(apperr.NotFound, "site not found")
	}
	delete(r.sites, id)
	return nil
}

// ─── Products ────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[primitive.ObjectID]models.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, site, id primitive.ObjectID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Site != site {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	out := p
	return &out, nil
}

func (r *fakeProductRepo) Lookup(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	out := p
	return &out, nil
}

func (r *fakeProductRepo) BySite(_ context.Context, site primitive.ObjectID, f repositories.ProductFilter) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, p := range r.products {
		if p.Site != site {
			continue
		}
		if f.Category != nil && (p.Category == nil || *p.Category != *f.Category) {
			continue
		}
		if f.Brand != nil && (p.Brand == nil || *p.Brand != *f.Brand) {
			continue
		}
		if f.Featured != nil && p.IsFeatured != *f.Featured {
			continue
		}
		if f.Popular != nil && p.IsPopular != *f.Popular {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, p)
		if f.Limit > 0 && int64(len(out)) >= f.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountBySite(_ context.Context, site primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.Site == site {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[p.ID]
	if !ok || existing.Site != p.Site {
		return apperr.New(apperr.NotFound, "product not found")
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, site, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Site != site {
		return apperr.New(apperr.NotFound, "product not found")
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DeleteBySite(_ context.Context, site primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.products {
		if p.Site == site {
			delete(r.products, id)
		}
	}
	return nil
}

func (r *fakeProductRepo) ReserveStock(_ context.Context, site, id primitive.ObjectID, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Site != site {
		return apperr.New(apperr.NotFound, "product not found")
	}
	if p.CountInStock < qty {
		return apperr.Newf(apperr.Conflict, "insufficient stock for %q", p.Name)
	}
	p.CountInStock -= qty
	p.BookedCount += qty
	r.products[id] = p
	return nil
}

func (r *fakeProductRepo) ReleaseStock(_ context.Context, site, id primitive.ObjectID, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Site != site {
		return apperr.New(apperr.NotFound, "product not found")
	}
	p.CountInStock += qty
	p.BookedCount -= qty
	r.products[id] = p
	return nil
}

func (r *fakeProductRepo) IncrementViews(_ context.Context, site, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Site != site {
		return apperr.New(apperr.NotFound, "product not found")
	}
	p.Views++
	r.products[id] = p
	return nil
}

// stock reads the current stock level directly, bypassing the interface.
func (r *fakeProductRepo) stock(id primitive.ObjectID) (inStock, booked int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.products[id]
	return p.CountInStock, p.BookedCount
}

// ─── Categories and brands ───────────────────────────────────────────

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[primitive.ObjectID]models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[primitive.ObjectID]models.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Site == c.Site && existing.Name == c.Name {
			return apperr.Newf(apperr.Conflict, "category %q already exists", c.Name)
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, site, id primitive.ObjectID) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok || c.Site != site {
		return nil, apperr.New(apperr.NotFound, "category not found")
	}
	out := c
	return &out, nil
}

func (r *fakeCategoryRepo) Lookup(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "category not found")
	}
	out := c
	return &out, nil
}

func (r *fakeCategoryRepo) BySite(_ context.Context, site primitive.ObjectID) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Category
	for _, c := range r.categories {
		if c.Site == site {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.categories[c.ID]
	if !ok || existing.Site != c.Site {
		return apperr.New(apperr.NotFound, "category not found")
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, site, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok || c.Site != site {
		return apperr.New(apperr.NotFound, "category not found")
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) DeleteBySite(_ context.Context, site primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.categories {
		if c.Site == site {
			delete(r.categories, id)
		}
	}
	return nil
}

type fakeBrandRepo struct {
	mu     sync.Mutex
	brands map[primitive.ObjectID]models.Brand
}

func newFakeBrandRepo() *fakeBrandRepo {
	return &fakeBrandRepo{brands: map[primitive.ObjectID]models.Brand{}}
}

func (r *fakeBrandRepo) Create(_ context.Context, b *models.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.brands {
		if existing.Site == b.Site && existing.Name == b.Name {
			return apperr.Newf(apperr.Conflict, "brand %q already exists", b.Name)
		}
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	r.brands[b.ID] = *b
	return nil
}

func (r *fakeBrandRepo) FindByID(_ context.Context, site, id primitive.ObjectID) (*models.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.brands[id]
	if !ok || b.Site != site {
		return nil, apperr.New(apperr.NotFound, "brand not found")
	}
	out := b
	return &out, nil
}

func (r *fakeBrandRepo) Lookup(_ context.Context, id primitive.ObjectID) (*models.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.brands[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "brand not found")
	}
	out := b
	return &out, nil
}

func (r *fakeBrandRepo) BySite(_ context.Context, site primitive.ObjectID) ([]models.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Brand
	for _, b := range r.brands {
		if b.Site == site {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBrandRepo) Update(_ context.Context, b *models.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.brands[b.ID]
	if !ok || existing.Site != b.Site {
		return apperr.New(apperr.NotFound, "brand not found")
	}
	r.brands[b.ID] = *b
	return nil
}

func (r *fakeBrandRepo) Delete(_ context.Context, site, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.brands[id]
	if !ok || b.Site != site {
		return apperr.New(apperr.NotFound, "brand not found")
	}
	delete(r.brands, id)
	return nil
}

func (r *fakeBrandRepo) DeleteBySite(_ context.Context, site primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, b := range r.brands {
		if b.Site == site {
			delete(r.brands, id)
		}
	}
	return nil
}

// ─── Orders ──────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[primitive.ObjectID]models.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	o.CreatedAt = time.Now().UTC()
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, site, id primitive.ObjectID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Site != site {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	out := o
	return &out, nil
}

func (r *fakeOrderRepo) Lookup(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	out := o
	return &out, nil
}

func (r *fakeOrderRepo) BySite(_ context.Context, site primitive.ObjectID) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.Site == site {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ByUser(_ context.Context, site, user primitive.ObjectID) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.Site == site && o.User != nil && *o.User == user {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[o.ID]
	if !ok || existing.Site != o.Site {
		return apperr.New(apperr.NotFound, "order not found")
	}
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, site, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Site != site {
		return apperr.New(apperr.NotFound, "order not found")
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) DeleteBySite(_ context.Context, site primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, o := range r.orders {
		if o.Site == site {
			delete(r.orders, id)
		}
	}
	return nil
}

func (r *fakeOrderRepo) CountBySite(_ context.Context, site primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, o := range r.orders {
		if o.Site == site {
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) TotalSales(_ context.Context, site primitive.ObjectID) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, o := range r.orders {
		if o.Site == site && o.IsPaid {
			total += o.TotalPrice
		}
	}
	return total, nil
}

func (r *fakeOrderRepo) SalesSince(_ context.Context, _ primitive.ObjectID, _ time.Time) ([]repositories.SalesPoint, error) {
	return nil, nil
}

func (r *fakeOrderRepo) TopProducts(_ context.Context, _ primitive.ObjectID, _ int64) ([]repositories.TopProduct, error) {
	return nil, nil
}

// ─── Users ───────────────────────────────────────────────────────────

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperr.Newf(apperr.Conflict, "email %q already registered", u.Email)
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	out := u
	return &out, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) CountBySite(_ context.Context, site primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Site != nil && *u.Site == site {
			n++
		}
	}
	return n, nil
}

// ─── Admin users ─────────────────────────────────────────────────────

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]models.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[primitive.ObjectID]models.AdminUser{}}
}

func (r *fakeAdminRepo) Create(_ context.Context, a *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if existing.Email == a.Email {
			return apperr.Newf(apperr.Conflict, "email %q already registered", a.Email)
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	r.admins[a.ID] = *a
	return nil
}

func (r *fakeAdminRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "admin not found")
	}
	out := a
	return &out, nil
}

func (r *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			out := a
			return &out, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "admin not found")
}

func (r *fakeAdminRepo) BySite(_ context.Context, site *primitive.ObjectID) ([]models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AdminUser
	for _, a := range r.admins {
		if site == nil || (a.Site != nil && *a.Site == *site) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAdminRepo) Update(_ context.Context, a *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[a.ID]; !ok {
		return apperr.New(apperr.NotFound, "admin not found")
	}
	r.admins[a.ID] = *a
	return nil
}

func (r *fakeAdminRepo) TouchLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return apperr.New(apperr.NotFound, "admin not found")
	}
	a.LastLogin = &at
	r.admins[id] = a
	return nil
}

func (r *fakeAdminRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[id]; !ok {
		return apperr.New(apperr.NotFound, "admin not found")
	}
	delete(r.admins, id)
	return nil
}

// ─── Reviews ─────────────────────────────────────────────────────────

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[primitive.ObjectID]models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[primitive.ObjectID]models.Review{}}
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rv.ID.IsZero() {
		rv.ID = primitive.NewObjectID()
	}
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, site, id primitive.ObjectID) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok || rv.Site != site {
		return nil, apperr.New(apperr.NotFound, "review not found")
	}
	out := rv
	return &out, nil
}

func (r *fakeReviewRepo) Lookup(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "review not found")
	}
	out := rv
	return &out, nil
}

func (r *fakeReviewRepo) ByProduct(_ context.Context, site, product primitive.ObjectID, approvedOnly bool) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.Site != site || rv.Product != product {
			continue
		}
		if approvedOnly && rv.Status != models.ReviewApproved {
			continue
		}
		out = append(out, rv)
	}
	return out, nil
}

func (r *fakeReviewRepo) BySite(_ context.Context, site primitive.ObjectID, status string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.Site != site {
			continue
		}
		if status != "" && rv.Status != status {
			continue
		}
		out = append(out, rv)
	}
	return out, nil
}

func (r *fakeReviewRepo) SetStatus(_ context.Context, site, id primitive.ObjectID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok || rv.Site != site {
		return apperr.New(apperr.NotFound, "review not found")
	}
	rv.Status = status
	r.reviews[id] = rv
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, site, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok || rv.Site != site {
		return apperr.New(apperr.NotFound, "review not found")
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) DeleteBySite(_ context.Context, site primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rv := range r.reviews {
		if rv.Site == site {
			delete(r.reviews, id)
		}
	}
	return nil
}

// ─── Site content ────────────────────────────────────────────────────

type fakeContentRepo struct {
	mu     sync.Mutex
	blocks map[string]models.SiteContent
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{blocks: map[string]models.SiteContent{}}
}

func contentKey(site primitive.ObjectID, key string) string { return site.Hex() + "/" + key }

func (r *fakeContentRepo) Find(_ context.Context, site primitive.ObjectID, key string) (*models.SiteContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.blocks[contentKey(site, key)]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "content not found")
	}
	out := c
	return &out, nil
}

func (r *fakeContentRepo) Upsert(_ context.Context, c *models.SiteContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.UpdatedAt = time.Now().UTC()
	r.blocks[contentKey(c.Site, c.Key)] = *c
	return nil
}

func (r *fakeContentRepo) BySite(_ context.Context, site primitive.ObjectID) ([]models.SiteContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.SiteContent
	for _, c := range r.blocks {
		if c.Site == site {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) DeleteBySite(_ context.Context, site primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, c := range r.blocks {
		if c.Site == site {
			delete(r.blocks, k)
		}
	}
	return nil
}
