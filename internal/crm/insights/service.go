package insights

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/leads"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/orders"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/saleslog"
)

const (
	snapshotKey = "insights:snapshot"
	snapshotTTL = 5 * time.Minute
)

// Service computes and caches the dashboard snapshot. Cache invalidation is
// driven by store change notifications, not by polling.
type Service struct {
	leads  leads.Repository
	orders *orders.Service
	sales  *saleslog.Service
	cache  *redis.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the snapshot sources. cache may be nil; every Get then
// recomputes.
func NewService(leadsRepo leads.Repository, ordersSvc *orders.Service, salesSvc *saleslog.Service, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		leads:  leadsRepo,
		orders: ordersSvc,
		sales:  salesSvc,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the cached snapshot, rebuilding it on a miss.
func (s *Service) Get(ctx context.Context) (*Snapshot, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, snapshotKey).Bytes()
		if err == nil {
			var snap Snapshot
			if err := json.Unmarshal(data, &snap); err == nil {
				return &snap, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("insights cache read", slog.Any("error", err))
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the snapshot and stores it in the cache.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	var (
		allLeads   []leads.Lead
		orderStats *orders.Stats
		revenue    *saleslog.RevenueStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		allLeads, err = s.leads.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orderStats, err = s.orders.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		revenue, err = s.sales.Revenue(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := Snapshot{
		GeneratedAt:  s.now(),
		TotalLeads:   len(allLeads),
		LeadsByStage: make(map[string]int, 5),
		Orders:       *orderStats,
		Revenue:      *revenue,
	}
	converted := 0
	for _, l := range allLeads {
		snap.LeadsByStage[string(l.Status)]++
		switch l.Status {
		case leads.StatusNew, leads.StatusContacted, leads.StatusQuoted:
			snap.ActiveLeads++
			snap.PipelineValue += l.EstimatedValue
		case leads.StatusConverted:
			converted++
		}
	}
	if snap.TotalLeads > 0 {
		snap.ConversionRate = float64(converted) / float64(snap.TotalLeads) * 100
	}

	if s.cache != nil {
		if data, err := json.Marshal(snap); err == nil {
			if err := s.cache.Set(ctx, snapshotKey, data, snapshotTTL).Err(); err != nil {
				s.logger.Warn("insights cache write", slog.Any("error", err))
			}
		}
	}
	return &snap, nil
}

// Invalidate drops the cached snapshot.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, snapshotKey).Err(); err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn("insights cache invalidate", slog.Any("error", err))
	}
}

// WatchCollections drops the snapshot whenever one of the source collections
// changes. It blocks until ctx is cancelled.
func (s *Service) WatchCollections(ctx context.Context, notifier store.Notifier) {
	watched := []string{
		store.CollectionLeads,
		store.CollectionClients,
		store.CollectionSalesOrders,
		store.CollectionSales,
	}
	for _, name := range watched {
		ch, stop := notifier.Watch(ctx, name)
		defer stop()
		go func(name string, ch <-chan struct{}) {
			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-ch:
					if !ok {
						return
					}
					s.Invalidate(ctx)
				}
			}
		}(name, ch)
	}
	<-ctx.Done()
}
