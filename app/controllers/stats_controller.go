package controllers

import (
	"strconv"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// StatsController serves the admin dashboard aggregations.
type StatsController struct {
	stats  *services.StatsService
	scopes *services.ScopeResolver
}

func NewStatsController(stats *services.StatsService, scopes *services.ScopeResolver) *StatsController {
	return &StatsController{stats: stats, scopes: scopes}
}

// Dashboard returns the full summary.
func (sc *StatsController) Dashboard(c *ctx.Context) {
	scope, ok := adminScope(c, sc.scopes)
	if !ok {
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	out, err := sc.stats.Dashboard(c.Context(), scope, days)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

// SalesChart returns just the per-day sales buckets.
func (sc *StatsController) SalesChart(c *ctx.Context) {
	scope, ok := adminScope(c, sc.scopes)
	if !ok {
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days <= 0 {
		days = 30
	}
	out, err := sc.stats.SalesChart(c.Context(), scope, days)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}

// TopProducts returns the best sellers.
func (sc *StatsController) TopProducts(c *ctx.Context) {
	scope, ok := adminScope(c, sc.scopes)
	if !ok {
		return
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "5"), 10, 64)
	out, err := sc.stats.TopProducts(c.Context(), scope, limit)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(out)
}
