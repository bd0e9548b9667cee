package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/resources"
	"github.com/spec-kit/resistance-admin/internal/session"
)

const statsPageSize = 100

// Viewer is the session the dashboard is computed for.
type Viewer interface {
	CurrentIdentity() (*session.Identity, bool)
	HasElevatedRole() bool
}

// DashboardStats are the landing page counters. PendingReports is only computed for
// elevated sessions.
type DashboardStats struct {
	TotalVictims   int  `json:"totalVictims"`
	ActiveAttempts int  `json:"activeAttempts"`
	PendingReports *int `json:"pendingReports,omitempty"`
	MyRewards      int  `json:"myRewards"`
}

// DashboardService aggregates counters across the resource clients.
type DashboardService struct {
	catalog *resources.Catalog
	viewer  Viewer
}

// NewDashboardService builds the service.
func NewDashboardService(catalog *resources.Catalog, viewer Viewer) *DashboardService {
	return &DashboardService{catalog: catalog, viewer: viewer}
}

// Stats loads every counter concurrently; the first failure cancels the rest.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	username := ""
	if identity, ok := s.viewer.CurrentIdentity(); ok {
		username = identity.Identifier
	}
	elevated := s.viewer.HasElevatedRole()
	ctx = resources.WithActor(ctx, username)

	stats := &DashboardStats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page, err := s.catalog.Victims.List(ctx, domain.ListParams{Page: 1, Limit: 1})
		if err != nil {
			return err
		}
		stats.TotalVictims = page.Pagination.TotalItems
		return nil
	})

	g.Go(func() error {
		params := domain.ListParams{}
		if !elevated {
			params.DaemonUsername = username
		}
		attempts, err := collect[domain.Attempt](ctx, s.catalog.Attempts, params)
		if err != nil {
			return err
		}
		for _, attempt := range attempts {
			if attempt.State == domain.AttemptStateInProgress {
				stats.ActiveAttempts++
			}
		}
		return nil
	})

	if elevated {
		g.Go(func() error {
			page, err := s.catalog.Reports.List(ctx, domain.ListParams{Page: 1, Limit: 1})
			if err != nil {
				return err
			}
			total := page.Pagination.TotalItems
			stats.PendingReports = &total
			return nil
		})
	}

	if username != "" {
		g.Go(func() error {
			rewards, err := collect[domain.Reward](ctx, s.catalog.Rewards, domain.ListParams{DaemonUsername: username})
			if err != nil {
				return err
			}
			for _, reward := range rewards {
				if reward.Type == domain.RewardTypeReward {
					stats.MyRewards++
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

type lister[T any] interface {
	List(ctx context.Context, params domain.ListParams) (*domain.Page[T], error)
}

// collect walks every page of a collection.
func collect[T any](ctx context.Context, svc lister[T], params domain.ListParams) ([]T, error) {
	params.Page = 1
	params.Limit = statsPageSize
	var all []T
	for {
		page, err := svc.List(ctx, params)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		if params.Page >= page.Pagination.TotalPages {
			return all, nil
		}
		params.Page++
	}
}
