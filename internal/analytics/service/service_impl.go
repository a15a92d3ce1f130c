package service

import (
	"context"
	"fmt"
	"time"

	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics/domain"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/cache"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/clock"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/config"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Config       config.Config
	Log          *zap.Logger
	Clock        clock.Clock
	Transactions txdomain.Service
}

type Service struct {
	log          *zap.Logger
	clk          clock.Clock
	transactions txdomain.Service
	snapshots    *cache.TTLCache[string, *domain.Snapshot]
	cacheTTL     time.Duration
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:          p.Log.Named("analytics.service"),
		clk:          p.Clock,
		transactions: p.Transactions,
		snapshots:    cache.NewTTLCache[string, *domain.Snapshot](),
		cacheTTL:     p.Config.Snapshot.CacheTTL,
	}
}

// Snapshot computes the metrics snapshot for the filter, serving from
// the TTL cache when the store has not changed since the last compute.
func (s *Service) Snapshot(ctx context.Context, f domain.Filter) (*domain.Snapshot, error) {
	if !domain.ValidRange(f.DateRange) {
		return nil, domain.ErrInvalidRange
	}

	key := filterKey(f)
	if cached, ok := s.snapshots.Get(key); ok {
		return cached, nil
	}

	txns, err := s.transactions.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	matched := analytics.ApplyFilter(txns, f, now)
	snapshot := analytics.Aggregate(matched, now)

	s.snapshots.Set(key, snapshot, s.cacheTTL)
	s.log.Debug("computed metrics snapshot",
		zap.String("filter", key),
		zap.Int("matched", len(matched)),
		zap.Int("total", len(txns)),
	)
	return snapshot, nil
}

// Transactions lists the filtered transactions in order-date order.
// limit <= 0 means no limit.
func (s *Service) Transactions(ctx context.Context, f domain.Filter, limit int) ([]txdomain.Transaction, error) {
	if !domain.ValidRange(f.DateRange) {
		return nil, domain.ErrInvalidRange
	}

	txns, err := s.transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := analytics.ApplyFilter(txns, f, s.clk.Now())
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Invalidate drops every cached snapshot. Called after any merge or
// store reset.
func (s *Service) Invalidate() {
	s.snapshots.Purge()
}

func filterKey(f domain.Filter) string {
	start, end := "", ""
	if f.Start != nil {
		start = f.Start.Format("2006-01-02")
	}
	if f.End != nil {
		end = f.End.Format("2006-01-02")
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s", f.DateRange, start, end, f.Location, f.Program)
}
