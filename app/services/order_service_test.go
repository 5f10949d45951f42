package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

type orderFixture struct {
	svc      *services.OrderService
	sites    *fakeSiteRepo
	products *fakeProductRepo
	orders   *fakeOrderRepo
	users    *fakeUserRepo
	site     *models.Site
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		sites:    newFakeSiteRepo(),
		products: newFakeProductRepo(),
		orders:   newFakeOrderRepo(),
		users:    newFakeUserRepo(),
	}
	f.site = &models.Site{
		Slug:     "demo",
		Name:     "Demo",
		IsActive: true,
		Settings: models.SiteSettings{Currency: "INR", ShippingPrice: 50},
	}
	require.NoError(t, f.sites.Create(context.Background(), f.site))
	f.svc = services.NewOrderService(f.orders, f.products, f.sites, f.users)
	return f
}

func (f *orderFixture) addProduct(t *testing.T, name string, price float64, stock int64) *models.Product {
	t.Helper()
	p := &models.Product{Site: f.site.ID, Name: name, Price: price, CountInStock: stock, IsActive: true}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func TestOrderLifecycle(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	frock := f.addProduct(t, "Cotton Frock", 100, 10)

	// Checkout reserves stock and snapshots the line.
	order, err := f.svc.Create(ctx, f.site.ID, nil, services.OrderInput{
		Items:         []services.OrderItemInput{{Product: frock.ID.Hex(), Quantity: 3}},
		PaymentMethod: "cod",
	})
	require.NoError(t, err)
	require.Equal(t, float64(300), order.ItemsPrice)
	require.Equal(t, float64(350), order.TotalPrice) // items + shipping

	inStock, booked := f.products.stock(frock.ID)
	require.Equal(t, int64(7), inStock)
	require.Equal(t, int64(3), booked)

	// Catalog edits after checkout never touch the stored snapshot.
	stored, _ := f.products.FindByID(ctx, f.site.ID, frock.ID)
	stored.Price = 999
	stored.Name = "Renamed Frock"
	require.NoError(t, f.products.Update(ctx, stored))

	got, err := f.svc.Get(ctx, f.site.ID, order.ID)
	require.NoError(t, err)
	require.Equal(t, "Cotton Frock", got.Items[0].Name)
	require.Equal(t, float64(100), got.Items[0].Price)

	// Editing the quantity reserves only the delta, at the frozen price.
	edited, err := f.svc.EditItems(ctx, f.site.ID, order.ID, []services.OrderItemInput{
		{Product: frock.ID.Hex(), Quantity: 5},
	})
	require.NoError(t, err)
	require.Equal(t, float64(100), edited.Items[0].Price)
	require.Equal(t, float64(500), edited.ItemsPrice)
	require.Equal(t, float64(550), edited.TotalPrice)

	inStock, booked = f.products.stock(frock.ID)
	require.Equal(t, int64(5), inStock)
	require.Equal(t, int64(5), booked)

	// Paid flip is idempotent: the first timestamp survives.
	paid, err := f.svc.MarkPaid(ctx, f.site.ID, order.ID)
	require.NoError(t, err)
	require.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidAt)
	firstPaidAt := *paid.PaidAt

	again, err := f.svc.MarkPaid(ctx, f.site.ID, order.ID)
	require.NoError(t, err)
	require.Equal(t, firstPaidAt, *again.PaidAt)

	// Delivery is independent of payment.
	delivered, err := f.svc.MarkDelivered(ctx, f.site.ID, order.ID)
	require.NoError(t, err)
	require.True(t, delivered.IsDelivered)
	require.True(t, delivered.IsPaid)

	// Deleting the order returns its units to stock.
	require.NoError(t, f.svc.Delete(ctx, f.site.ID, order.ID))
	inStock, booked = f.products.stock(frock.ID)
	require.Equal(t, int64(10), inStock)
	require.Equal(t, int64(0), booked)

	_, err = f.svc.Get(ctx, f.site.ID, order.ID)
	require.True(t, apperr.Is(err, apperr.NotFound))
}

func TestOrderCreateRollsBackOnConflict(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	plenty := f.addProduct(t, "In Stock", 100, 10)
	scarce := f.addProduct(t, "Nearly Gone", 200, 1)

	_, err := f.svc.Create(ctx, f.site.ID, nil, services.OrderInput{
		Items: []services.OrderItemInput{
			{Product: plenty.ID.Hex(), Quantity: 2},
			{Product: scarce.ID.Hex(), Quantity: 5},
		},
		PaymentMethod: "cod",
	})
	require.True(t, apperr.Is(err, apperr.Conflict))

	// The first line's reservation was undone.
	inStock, booked := f.products.stock(plenty.ID)
	require.Equal(t, int64(10), inStock)
	require.Equal(t, int64(0), booked)
	inStock, _ = f.products.stock(scarce.ID)
	require.Equal(t, int64(1), inStock)
}

func TestOrderCreateValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.site.ID, nil, services.OrderInput{PaymentMethod: "cod"})
	require.True(t, apperr.Is(err, apperr.Validation), "empty cart must be rejected")

	_, err = f.svc.Create(ctx, f.site.ID, nil, services.OrderInput{
		Items:         []services.OrderItemInput{{Product: "nope", Quantity: 1}},
		PaymentMethod: "cod",
	})
	require.True(t, apperr.Is(err, apperr.Validation), "malformed product id must be rejected")

	_, err = f.svc.Create(ctx, f.site.ID, nil, services.OrderInput{
		Items:         []services.OrderItemInput{{Product: primitive.NewObjectID().Hex(), Quantity: 1}},
		PaymentMethod: "cod",
	})
	require.True(t, apperr.Is(err, apperr.NotFound), "unknown product must be not found")
}

func TestOrderEditSwapsLines(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	frock := f.addProduct(t, "Frock", 100, 10)
	kurta := f.addProduct(t, "Kurta", 300, 4)

	order, err := f.svc.Create(ctx, f.site.ID, nil, services.OrderInput{
		Items:         []services.OrderItemInput{{Product: frock.ID.Hex(), Quantity: 2}},
		PaymentMethod: "cod",
	})
	require.NoError(t, err)

	// Swap the frock line for a kurta line: the removed line releases
	// its units, the new one reserves at the current price.
	edited, err := f.svc.EditItems(ctx, f.site.ID, order.ID, []services.OrderItemInput{
		{Product: kurta.ID.Hex(), Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, edited.Items, 1)
	require.Equal(t, "Kurta", edited.Items[0].Name)
	require.Equal(t, float64(300), edited.ItemsPrice)

	inStock, booked := f.products.stock(frock.ID)
	require.Equal(t, int64(10), inStock)
	require.Equal(t, int64(0), booked)
	inStock, booked = f.products.stock(kurta.ID)
	require.Equal(t, int64(3), inStock)
	require.Equal(t, int64(1), booked)
}

func TestOrderEditConflictLeavesStockUntouched(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	frock := f.addProduct(t, "Frock", 100, 5)

	order, err := f.svc.Create(ctx, f.site.ID, nil, services.OrderInput{
		Items:         []services.OrderItemInput{{Product: frock.ID.Hex(), Quantity: 2}},
		PaymentMethod: "cod",
	})
	require.NoError(t, err)

	// Asking for 9 needs a delta of 7 with only 3 left: refused, and
	// the original reservation survives.
	_, err = f.svc.EditItems(ctx, f.site.ID, order.ID, []services.OrderItemInput{
		{Product: frock.ID.Hex(), Quantity: 9},
	})
	require.True(t, apperr.Is(err, apperr.Conflict))

	inStock, booked := f.products.stock(frock.ID)
	require.Equal(t, int64(3), inStock)
	require.Equal(t, int64(2), booked)

	unchanged, err := f.svc.Get(ctx, f.site.ID, order.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), unchanged.Items[0].Quantity)
}

func TestOrderScopedToSite(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	frock := f.addProduct(t, "Frock", 100, 10)

	other := &models.Site{Slug: "other", Name: "Other", IsActive: true}
	require.NoError(t, f.sites.Create(ctx, other))

	order, err := f.svc.Create(ctx, f.site.ID, nil, services.OrderInput{
		Items:         []services.OrderItemInput{{Product: frock.ID.Hex(), Quantity: 1}},
		PaymentMethod: "cod",
	})
	require.NoError(t, err)

	// Another tenant is told it is out of bounds, not that the order
	// is missing, and none of its mutations land.
	_, err = f.svc.Get(ctx, other.ID, order.ID)
	require.True(t, apperr.Is(err, apperr.Forbidden))

	_, err = f.svc.MarkPaid(ctx, other.ID, order.ID)
	require.True(t, apperr.Is(err, apperr.Forbidden))

	err = f.svc.Delete(ctx, other.ID, order.ID)
	require.True(t, apperr.Is(err, apperr.Forbidden))

	kept, err := f.svc.Get(ctx, f.site.ID, order.ID)
	require.NoError(t, err)
	require.False(t, kept.IsPaid)
}
