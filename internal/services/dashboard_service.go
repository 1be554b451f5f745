package services

import (
	"context"
	"errors"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"golang.org/x/sync/errgroup"
)

// DashboardService computes the counters of the admin dashboard and the
// public profile page
type DashboardService struct {
	services domain.Table[domain.Service]
	projects domain.Table[domain.Project]
	blogs    domain.Table[domain.Blog]
	requests domain.Table[domain.HireRequest]
	profiles domain.ProfileRepository
	timeout  time.Duration
}

// NewDashboardService creates a DashboardService
func NewDashboardService(
	services domain.Table[domain.Service],
	projects domain.Table[domain.Project],
	blogs domain.Table[domain.Blog],
	requests domain.Table[domain.HireRequest],
	profiles domain.ProfileRepository,
	timeout time.Duration,
) *DashboardService {
	return &DashboardService{
		services: services,
		projects: projects,
		blogs:    blogs,
		requests: requests,
		profiles: profiles,
		timeout:  timeout,
	}
}

// Stats counts services, projects, blogs and pending hire requests
func (s *DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	ctx, cancel := within(ctx, s.timeout)
	defer cancel()

	var stats domain.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { stats.Services, err = s.services.Count(gctx); return })
	g.Go(func() (err error) { stats.Projects, err = s.projects.Count(gctx); return })
	g.Go(func() (err error) { stats.Blogs, err = s.blogs.Count(gctx); return })
	g.Go(func() (err error) {
		stats.PendingRequests, err = s.requests.Count(gctx, domain.Eq("status", string(domain.HireStatusPending)))
		return
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, err
	}
	return stats, nil
}

// PublicProfile returns the profile of userID, or the earliest profile when
// the visitor is anonymous or has none, with the public counters
func (s *DashboardService) PublicProfile(ctx context.Context, userID string) (*domain.PublicProfile, error) {
	ctx, cancel := within(ctx, s.timeout)
	defer cancel()

	profile, err := s.lookupProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &domain.PublicProfile{Profile: profile}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { out.Stats.Services, err = s.services.Count(gctx); return })
	g.Go(func() (err error) { out.Stats.Projects, err = s.projects.Count(gctx); return })
	g.Go(func() (err error) { out.Stats.PublishedBlogs, err = s.blogs.Count(gctx, domain.Eq("published", true)); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DashboardService) lookupProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID != "" {
		p, err := s.profiles.FindByUserID(ctx, userID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	p, err := s.profiles.FindFirst(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return p, err
}
