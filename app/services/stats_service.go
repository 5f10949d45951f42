package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/repositories"
)

// Stats is the admin dashboard summary for one tenant.
type Stats struct {
	Orders      int64                     `json:"orders"`
	Products    int64                     `json:"products"`
	Users       int64                     `json:"users"`
	TotalSales  float64                   `json:"totalSales"`
	SalesChart  []repositories.SalesPoint `json:"salesChart"`
	TopProducts []repositories.TopProduct `json:"topProducts"`
}

// StatsService aggregates dashboard numbers from the order, product
// and user collections.
type StatsService struct {
	orders   repositories.OrderRepository
	products repositories.ProductRepository
	users    repositories.UserRepository
}

func NewStatsService(
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	users repositories.UserRepository,
) *StatsService {
	return &StatsService{orders: orders, products: products, users: users}
}

// Dashboard computes the summary for one tenant. The sales chart
// covers the trailing `days` window (default 30).
func (s *StatsService) Dashboard(ctx context.Context, scope primitive.ObjectID, days int) (*Stats, error) {
	if days <= 0 {
		days = 30
	}

	orders, err := s.orders.CountBySite(ctx, scope)
	if err != nil {
		return nil, err
	}
	products, err := s.products.CountBySite(ctx, scope)
	if err != nil {
		return nil, err
	}
	users, err := s.users.CountBySite(ctx, scope)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.TotalSales(ctx, scope)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	chart, err := s.orders.SalesSince(ctx, scope, since)
	if err != nil {
		return nil, err
	}
	top, err := s.orders.TopProducts(ctx, scope, 5)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Orders:      orders,
		Products:    products,
		Users:       users,
		TotalSales:  total,
		SalesChart:  chart,
		TopProducts: top,
	}, nil
}

// SalesChart returns only the per-day sales buckets for the trailing
// window.
func (s *StatsService) SalesChart(ctx context.Context, scope primitive.ObjectID, days int) ([]repositories.SalesPoint, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.orders.SalesSince(ctx, scope, since)
}

// TopProducts returns only the best-sellers list.
func (s *StatsService) TopProducts(ctx context.Context, scope primitive.ObjectID, limit int64) ([]repositories.TopProduct, error) {
	return s.orders.TopProducts(ctx, scope, limit)
}
