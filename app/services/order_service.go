package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	"github.com/shashiranjanraj/vastra/pkg/event"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
)

// OrderCreated is the payload fired on the order.created event.
type OrderCreated struct {
	Order          *models.Order
	SiteSlug       string
	Currency       string
	Email          string
	Name           string
	RelayWebhook   string
	WhatsAppNumber string
}

// OrderItemInput is one requested cart line.
type OrderItemInput struct {
	Product  string `json:"product" validate:"required"`
	Quantity int64  `json:"qty" validate:"required,gte=1"`
	AgeGroup string `json:"ageGroup"`
	Size     string `json:"size"`
}

// OrderInput is the checkout payload. User is empty for guest checkout.
type OrderInput struct {
	Items           []OrderItemInput       `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
}

// OrderService owns the order lifecycle: checkout with atomic stock
// reservation, the paid/delivered flips, admin line-item edits with
// per-product stock reconciliation, and deletion with restock.
type OrderService struct {
	orders   repositories.OrderRepository
	products repositories.ProductRepository
	sites    repositories.SiteRepository
	users    repositories.UserRepository
}

func NewOrderService(
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	sites repositories.SiteRepository,
	users repositories.UserRepository,
) *OrderService {
	return &OrderService{orders: orders, products: products, sites: sites, users: users}
}

// Create places an order. Each line's stock is reserved with an atomic
// conditional decrement; if any line fails, reservations made so far
// are rolled back and the whole checkout fails. Line items are stored
// as snapshots, so later catalog edits never change this order.
func (s *OrderService) Create(ctx context.Context, scope primitive.ObjectID, user *primitive.ObjectID, in OrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.New(apperr.Validation, "Order must contain at least one item")
	}

	site, err := s.sites.FindByID(ctx, scope)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	var itemsPrice float64
	for _, line := range in.Items {
		pid, perr := primitive.ObjectIDFromHex(line.Product)
		if perr != nil {
			return nil, apperr.New(apperr.Validation, "Invalid product id")
		}
		product, perr := s.products.FindByID(ctx, scope, pid)
		if perr != nil {
			return nil, perr
		}
		unit, perr := ResolveUnitPrice(product, PriceSelector{AgeGroup: line.AgeGroup, Size: line.Size})
		if perr != nil {
			return nil, perr
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		items = append(items, models.OrderItem{
			Product:  product.ID,
			Name:     product.Name,
			Image:    image,
			Price:    unit,
			Quantity: line.Quantity,
			AgeGroup: line.AgeGroup,
			Size:     line.Size,
		})
		itemsPrice += unit * float64(line.Quantity)
	}

	// Reserve stock line by line; undo on the first failure so a
	// rejected checkout leaves counters exactly as it found them.
	reserved := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		if rerr := s.products.ReserveStock(ctx, scope, it.Product, it.Quantity); rerr != nil {
			if apperr.Is(rerr, apperr.Conflict) {
				metrics.StockConflicts.Inc()
			}
			s.releaseAll(ctx, scope, reserved)
			return nil, rerr
		}
		reserved = append(reserved, it)
	}

	order := &models.Order{
		Site:            scope,
		User:            user,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		ItemsPrice:      itemsPrice,
		ShippingPrice:   site.Settings.ShippingPrice,
		TotalPrice:      itemsPrice + site.Settings.ShippingPrice,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		// Order insert failed after reservation: compensate.
		s.releaseAll(ctx, scope, reserved)
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues(site.Slug).Inc()

	payload := OrderCreated{
		Order:          order,
		SiteSlug:       site.Slug,
		Currency:       site.Settings.Currency,
		RelayWebhook:   site.Settings.RelayWebhook,
		WhatsAppNumber: site.Settings.WhatsAppNumber,
	}
	if user != nil {
		if u, uerr := s.users.FindByID(ctx, *user); uerr == nil {
			payload.Email = u.Email
			payload.Name = u.Name
		}
	}
	event.FireAsync("order.created", payload)

	return order, nil
}

func (s *OrderService) releaseAll(ctx context.Context, scope primitive.ObjectID, items []models.OrderItem) {
	for _, it := range items {
		if err := s.products.ReleaseStock(ctx, scope, it.Product, it.Quantity); err != nil {
			logger.Error("order: compensating stock release failed",
				"product", it.Product.Hex(), "qty", it.Quantity, "error", err)
		}
	}
}

func (s *OrderService) List(ctx context.Context, scope primitive.ObjectID) ([]models.Order, error) {
	return s.orders.BySite(ctx, scope)
}

func (s *OrderService) ListMine(ctx context.Context, scope, user primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ByUser(ctx, scope, user)
}

func (s *OrderService) Get(ctx context.Context, scope, id primitive.ObjectID) (*models.Order, error) {
	o, err := s.orders.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertScope(scope, o.Site); err != nil {
		return nil, err
	}
	return o, nil
}

// MarkPaid flips the paid flag. Idempotent: re-marking a paid order
// leaves the original PaidAt timestamp alone.
func (s *OrderService) MarkPaid(ctx context.Context, scope, id primitive.ObjectID) (*models.Order, error) {
	o, err := s.orders.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertScope(scope, o.Site); err != nil {
		return nil, err
	}
	if o.IsPaid {
		return o, nil
	}
	now := time.Now().UTC()
	o.IsPaid = true
	o.PaidAt = &now
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// MarkDelivered flips the delivered flag. Paid status is independent;
// a cash-on-delivery order may be delivered while still unpaid.
func (s *OrderService) MarkDelivered(ctx context.Context, scope, id primitive.ObjectID) (*models.Order, error) {
	o, err := s.orders.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertScope(scope, o.Site); err != nil {
		return nil, err
	}
	if o.IsDelivered {
		return o, nil
	}
	now := time.Now().UTC()
	o.IsDelivered = true
	o.DeliveredAt = &now
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// EditItems replaces an order's line items, reconciling stock as
// per-product deltas against the old set: increases reserve only the
// difference, decreases and removed lines release theirs. Working in
// deltas avoids the transient window a blind restock-then-rededuct
// would open. Prices are recomputed from the new lines plus the
// existing shipping price.
func (s *OrderService) EditItems(ctx context.Context, scope, id primitive.ObjectID, newItems []OrderItemInput) (*models.Order, error) {
	if len(newItems) == 0 {
		return nil, apperr.New(apperr.Validation, "Order must contain at least one item")
	}

	o, err := s.orders.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertScope(scope, o.Site); err != nil {
		return nil, err
	}

	oldQty := map[primitive.ObjectID]int64{}
	oldSnap := map[primitive.ObjectID]models.OrderItem{}
	for _, it := range o.Items {
		oldQty[it.Product] += it.Quantity
		oldSnap[it.Product] = it
	}

	items := make([]models.OrderItem, 0, len(newItems))
	newQty := map[primitive.ObjectID]int64{}
	var itemsPrice float64
	for _, line := range newItems {
		pid, perr := primitive.ObjectIDFromHex(line.Product)
		if perr != nil {
			return nil, apperr.New(apperr.Validation, "Invalid product id")
		}

		var snap models.OrderItem
		if prev, ok := oldSnap[pid]; ok {
			// Existing line keeps its frozen snapshot price.
			snap = prev
			snap.Quantity = line.Quantity
			if line.AgeGroup != "" || line.Size != "" {
				snap.AgeGroup = line.AgeGroup
				snap.Size = line.Size
			}
		} else {
			product, perr := s.products.FindByID(ctx, scope, pid)
			if perr != nil {
				return nil, perr
			}
			unit, perr := ResolveUnitPrice(product, PriceSelector{AgeGroup: line.AgeGroup, Size: line.Size})
			if perr != nil {
				return nil, perr
			}
			image := ""
			if len(product.Images) > 0 {
				image = product.Images[0]
			}
			snap = models.OrderItem{
				Product:  product.ID,
				Name:     product.Name,
				Image:    image,
				Price:    unit,
				Quantity: line.Quantity,
				AgeGroup: line.AgeGroup,
				Size:     line.Size,
			}
		}
		items = append(items, snap)
		newQty[pid] += line.Quantity
		itemsPrice += snap.Price * float64(line.Quantity)
	}

	// Apply deltas: reservations first so an insufficient-stock
	// failure aborts before anything was released.
	type release struct {
		product primitive.ObjectID
		qty     int64
	}
	var reservedDeltas []release
	var releases []release
	for pid, nq := range newQty {
		if delta := nq - oldQty[pid]; delta > 0 {
			if rerr := s.products.ReserveStock(ctx, scope, pid, delta); rerr != nil {
				if apperr.Is(rerr, apperr.Conflict) {
					metrics.StockConflicts.Inc()
				}
				for _, r := range reservedDeltas {
					_ = s.products.ReleaseStock(ctx, scope, r.product, r.qty)
				}
				return nil, rerr
			}
			reservedDeltas = append(reservedDeltas, release{pid, delta})
		} else if delta < 0 {
			releases = append(releases, release{pid, -delta})
		}
	}
	for pid, oq := range oldQty {
		if _, still := newQty[pid]; !still {
			releases = append(releases, release{pid, oq})
		}
	}
	for _, r := range releases {
		if rerr := s.products.ReleaseStock(ctx, scope, r.product, r.qty); rerr != nil {
			logger.Error("order: stock release failed during edit",
				"order", o.ID.Hex(), "product", r.product.Hex(), "error", rerr)
		}
	}

	o.Items = items
	o.ItemsPrice = itemsPrice
	o.TotalPrice = itemsPrice + o.ShippingPrice
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete removes an order and returns its reserved units to stock, so
// cancelling frees inventory instead of leaking it.
func (s *OrderService) Delete(ctx context.Context, scope, id primitive.ObjectID) error {
	o, err := s.orders.Lookup(ctx, id)
	if err != nil {
		return err
	}
	if err := assertScope(scope, o.Site); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, scope, id); err != nil {
		return err
	}
	s.releaseAll(ctx, scope, o.Items)
	return nil
}
