package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

// recentLimit is the number of rows in each "most recent" dashboard list.
const recentLimit = 5

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// StatsService assembles the dashboard aggregation views. Each view fans its
// sub-queries out concurrently; they share no state and no snapshot, so
// transient skew between counts is tolerated, but any sub-query failure
// fails the whole view.
type StatsService struct {
	stats     ports.StatsRepository
	companies ports.CompanyRepository
	now       func() time.Time
	logger    zerolog.Logger
}

func NewStatsService(stats ports.StatsRepository, companies ports.CompanyRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{stats: stats, companies: companies, now: time.Now, logger: logger}
}

// UserStats returns per-status application counts for one user plus the five
// most recent applications.
func (s *StatsService) UserStats(ctx context.Context, userID uuid.UUID) (*ports.UserStats, error) {
	var out ports.UserStats

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, status domain.ApplicationStatus) {
		g.Go(func() error {
			n, err := s.stats.CountApplicationsByUser(gctx, userID, status)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&out.Total, "")
	count(&out.Pending, domain.StatusPending)
	count(&out.Interviewing, domain.StatusInterviewing)
	count(&out.Offered, domain.StatusOffered)
	count(&out.Rejected, domain.StatusRejected)
	count(&out.Hired, domain.StatusHired)
	g.Go(func() error {
		recent, err := s.stats.RecentApplicationsByUser(gctx, userID, recentLimit)
		if err != nil {
			return err
		}
		out.Recent = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("user stats failed")
		return nil, err
	}
	return &out, nil
}

// EmployerStats returns job and application counters scoped to every company
// the employer belongs to.
func (s *StatsService) EmployerStats(ctx context.Context, employerID uuid.UUID) (*ports.EmployerStats, error) {
	companyIDs, err := s.companies.MemberCompanyIDs(ctx, employerID)
	if err != nil {
		return nil, err
	}

	var out ports.EmployerStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.stats.CountJobsByCompanies(gctx, companyIDs, false)
		out.TotalJobs = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountJobsByCompanies(gctx, companyIDs, true)
		out.ActiveJobs = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountApplicationsByCompanies(gctx, companyIDs, "")
		out.TotalApplications = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountApplicationsByCompanies(gctx, companyIDs, domain.StatusPending)
		out.PendingApplications = n
		return err
	})
	g.Go(func() error {
		recent, err := s.stats.RecentApplicationsByCompanies(gctx, companyIDs, recentLimit)
		out.Recent = recent
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("employer_id", employerID.String()).Msg("employer stats failed")
		return nil, err
	}
	return &out, nil
}

// MonthlyApplications buckets the user's applications by calendar month of
// the current wall-clock year, left-joined against a fixed 12-month template
// so empty months appear with count 0, January through December. The year
// boundary resets every January 1st rather than rolling back 12 months.
func (s *StatsService) MonthlyApplications(ctx context.Context, userID uuid.UUID) ([]ports.MonthlyCount, error) {
	year := s.now().Year()
	counts, err := s.stats.ApplicationsPerMonth(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	out := make([]ports.MonthlyCount, 12)
	for i, name := range monthNames {
		out[i] = ports.MonthlyCount{Month: name, Count: counts[i+1]}
	}
	return out, nil
}

// AdminStats returns system-wide totals plus the most recent users, jobs,
// and applications.
func (s *StatsService) AdminStats(ctx context.Context) (*ports.AdminStats, error) {
	var out ports.AdminStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.stats.CountUsers(gctx)
		out.TotalUsers = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountCompanies(gctx)
		out.TotalCompanies = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountJobs(gctx, false)
		out.TotalJobs = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountJobs(gctx, true)
		out.ActiveJobs = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountApplications(gctx, "")
		out.TotalApplications = n
		return err
	})
	g.Go(func() error {
		n, err := s.stats.CountApplications(gctx, domain.StatusPending)
		out.PendingApplications = n
		return err
	})
	g.Go(func() error {
		users, err := s.stats.RecentUsers(gctx, recentLimit)
		out.RecentUsers = users
		return err
	})
	g.Go(func() error {
		jobs, err := s.stats.RecentJobs(gctx, recentLimit)
		out.RecentJobs = jobs
		return err
	})
	g.Go(func() error {
		apps, err := s.stats.RecentApplications(gctx, recentLimit)
		out.RecentApplications = apps
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("admin stats failed")
		return nil, err
	}
	return &out, nil
}
