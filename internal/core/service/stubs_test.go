package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/pagination"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// stubStore is an in-memory implementation of every repository port. It
// mirrors the semantics of the real Postgres queries (filters, ordering,
// scoping) so service tests exercise the same contracts.
type stubStore struct {
	mu sync.Mutex

	users        map[uuid.UUID]*domain.User
	profiles     map[uuid.UUID]*domain.Profile // keyed by user id
	companies    map[uuid.UUID]*domain.Company
	members      []domain.CompanyMember
	jobs         map[uuid.UUID]*domain.Job
	resumes      map[uuid.UUID]*domain.Resume
	applications map[uuid.UUID]*domain.Application

	// forcedErr, when set, is returned by every stats query.
	forcedErr error
}

func newStubStore() *stubStore {
	return &stubStore{
		users:        make(map[uuid.UUID]*domain.User),
		profiles:     make(map[uuid.UUID]*domain.Profile),
		companies:    make(map[uuid.UUID]*domain.Company),
		jobs:         make(map[uuid.UUID]*domain.Job),
		resumes:      make(map[uuid.UUID]*domain.Resume),
		applications: make(map[uuid.UUID]*domain.Application),
	}
}

// --- UserRepository -------------------------------------------------------

func (s *stubStore) CreateAccount(_ context.Context, acc ports.NewAccount) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == acc.User.Email {
			return nil, domain.ErrUserExists
		}
	}

	user := *acc.User
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = &user

	if acc.Profile != nil {
		profile := *acc.Profile
		profile.ID = uuid.New()
		profile.UserID = user.ID
		s.profiles[user.ID] = &profile
	}
	if acc.Resume != nil {
		resume := *acc.Resume
		resume.ID = uuid.New()
		resume.UserID = user.ID
		s.resumes[resume.ID] = &resume
	}
	if acc.Company != nil {
		company := *acc.Company
		company.ID = uuid.New()
		s.companies[company.ID] = &company
		s.members = append(s.members, domain.CompanyMember{
			ID: uuid.New(), UserID: user.ID, CompanyID: company.ID, Role: domain.MemberRoleOwner,
		})
	}

	clone := user
	return &clone, nil
}

func (s *stubStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubStore) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubStore) Update(_ context.Context, id uuid.UUID, input ports.UpdateUserInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if input.Email != nil {
		u.Email = *input.Email
	}
	if input.Role != nil {
		u.Role = *input.Role
	}
	clone := *u
	return &clone, nil
}

func (s *stubStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// --- ProfileRepository ----------------------------------------------------

func (s *stubStore) FindByUserID(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *stubStore) Create(_ context.Context, p *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[p.UserID]; exists {
		return domain.ErrProfileExists
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	clone := *p
	s.profiles[p.UserID] = &clone
	return nil
}

func (s *stubStore) UpdateProfile(_ context.Context, p *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *p
	s.profiles[p.UserID] = &clone
	return nil
}

// profileRepo adapts stubStore to ports.ProfileRepository, whose Update
// method name collides with UserRepository's.
type profileRepo struct{ *stubStore }

func (r profileRepo) Update(ctx context.Context, p *domain.Profile) error {
	return r.UpdateProfile(ctx, p)
}

// --- CompanyRepository ----------------------------------------------------

type companyRepo struct{ *stubStore }

func (r companyRepo) Create(_ context.Context, c *domain.Company, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()
	clone := *c
	r.companies[c.ID] = &clone
	r.members = append(r.members, domain.CompanyMember{
		ID: uuid.New(), UserID: ownerID, CompanyID: c.ID, Role: domain.MemberRoleOwner,
	})
	return nil
}

func (r companyRepo) List(_ context.Context, p pagination.Params) ([]ports.CompanySummary, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]ports.CompanySummary, 0, len(r.companies))
	for _, c := range r.companies {
		var active int64
		for _, j := range r.jobs {
			if j.CompanyID == c.ID && j.IsActive {
				active++
			}
		}
		all = append(all, ports.CompanySummary{Company: *c, ActiveJobs: active})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	return pageSlice(all, p), total, nil
}

func (r companyRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (r companyRepo) Update(_ context.Context, c *domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[c.ID]; !ok {
		return domain.ErrCompanyNotFound
	}
	clone := *c
	r.companies[c.ID] = &clone
	return nil
}

func (r companyRepo) IsMember(_ context.Context, userID, companyID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.UserID == userID && m.CompanyID == companyID {
			return true, nil
		}
	}
	return false, nil
}

func (r companyRepo) MemberCompanyIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for _, m := range r.members {
		if m.UserID == userID {
			ids = append(ids, m.CompanyID)
		}
	}
	return ids, nil
}

// --- JobRepository --------------------------------------------------------

type jobRepo struct{ *stubStore }

func (r jobRepo) List(_ context.Context, f ports.JobFilter, p pagination.Params) ([]domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.Job
	for _, j := range r.jobs {
		if !jobMatches(j, f, r.companies) {
			continue
		}
		matched = append(matched, *j)
	}
	sortJobs(matched, f.SortBy, r.companies)
	total := int64(len(matched))
	return pageSlice(matched, p), total, nil
}

func (r jobRepo) Search(_ context.Context, keyword, sortBy string, p pagination.Params) ([]domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kw := strings.ToLower(keyword)
	var matched []domain.Job
	for _, j := range r.jobs {
		if !j.IsActive {
			continue
		}
		companyName := ""
		if c, ok := r.companies[j.CompanyID]; ok {
			companyName = c.Name
		}
		if kw != "" &&
			!strings.Contains(strings.ToLower(j.Title), kw) &&
			!strings.Contains(strings.ToLower(j.Location), kw) &&
			!strings.Contains(strings.ToLower(companyName), kw) {
			continue
		}
		matched = append(matched, *j)
	}
	sortJobs(matched, sortBy, r.companies)
	total := int64(len(matched))
	return pageSlice(matched, p), total, nil
}

func (r jobRepo) ListByCompanies(_ context.Context, companyIDs []uuid.UUID, f ports.MyJobsFilter, p pagination.Params) ([]domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idSet := make(map[uuid.UUID]struct{}, len(companyIDs))
	for _, id := range companyIDs {
		idSet[id] = struct{}{}
	}
	var matched []domain.Job
	for _, j := range r.jobs {
		if _, ok := idSet[j.CompanyID]; !ok {
			continue
		}
		if f.IsActive != nil && j.IsActive != *f.IsActive {
			continue
		}
		if f.Type != "" && j.Type != f.Type {
			continue
		}
		if f.SearchTerm != "" {
			kw := strings.ToLower(f.SearchTerm)
			if !strings.Contains(strings.ToLower(j.Title), kw) &&
				!strings.Contains(strings.ToLower(j.Description), kw) &&
				!strings.Contains(strings.ToLower(j.Location), kw) {
				continue
			}
		}
		matched = append(matched, *j)
	}
	sortJobs(matched, ports.SortByDate, r.companies)
	total := int64(len(matched))
	return pageSlice(matched, p), total, nil
}

func (r jobRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r jobRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || !j.IsActive {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r jobRepo) Create(_ context.Context, j *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	j.CreatedAt = time.Now().UTC()
	clone := *j
	r.jobs[j.ID] = &clone
	return nil
}

func (r jobRepo) Update(_ context.Context, j *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[j.ID]; !ok {
		return domain.ErrJobNotFound
	}
	clone := *j
	r.jobs[j.ID] = &clone
	return nil
}

func (r jobRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func jobMatches(j *domain.Job, f ports.JobFilter, companies map[uuid.UUID]*domain.Company) bool {
	if f.IsActive != nil && j.IsActive != *f.IsActive {
		return false
	}
	if f.SearchTerm != "" {
		kw := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(j.Title), kw) &&
			!strings.Contains(strings.ToLower(j.Location), kw) &&
			!strings.Contains(strings.ToLower(j.Description), kw) {
			return false
		}
	}
	if f.Title != "" && j.Title != f.Title {
		return false
	}
	if f.Location != "" && j.Location != f.Location {
		return false
	}
	if f.Type != "" && j.Type != f.Type {
		return false
	}
	if f.Salary != nil && (j.Salary == nil || *j.Salary != *f.Salary) {
		return false
	}
	if f.MinSalary != nil && (j.Salary == nil || *j.Salary < *f.MinSalary) {
		return false
	}
	if f.MaxSalary != nil && (j.Salary == nil || *j.Salary > *f.MaxSalary) {
		return false
	}
	if len(f.Skills) > 0 {
		overlap := false
		for _, want := range f.Skills {
			for _, have := range j.Skills {
				if want == have {
					overlap = true
				}
			}
		}
		if !overlap {
			return false
		}
	}
	if f.CompanyID != nil {
		c, ok := companies[j.CompanyID]
		if !ok || c.ID != *f.CompanyID {
			return false
		}
	}
	return true
}

func sortJobs(jobs []domain.Job, sortBy string, companies map[uuid.UUID]*domain.Company) {
	switch sortBy {
	case ports.SortBySalary:
		sort.Slice(jobs, func(i, k int) bool {
			a, b := float64(0), float64(0)
			if jobs[i].Salary != nil {
				a = *jobs[i].Salary
			}
			if jobs[k].Salary != nil {
				b = *jobs[k].Salary
			}
			return a > b
		})
	case ports.SortByCompany:
		name := func(j domain.Job) string {
			if c, ok := companies[j.CompanyID]; ok {
				return c.Name
			}
			return ""
		}
		sort.Slice(jobs, func(i, k int) bool { return name(jobs[i]) < name(jobs[k]) })
	default: // date, relevance, unrecognised
		sort.Slice(jobs, func(i, k int) bool { return jobs[i].CreatedAt.After(jobs[k].CreatedAt) })
	}
}

// --- ResumeRepository -----------------------------------------------------

type resumeRepo struct{ *stubStore }

func (r resumeRepo) Create(_ context.Context, resume *domain.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	resume.CreatedAt = time.Now().UTC()
	if resume.IsDefault {
		for _, other := range r.resumes {
			if other.UserID == resume.UserID {
				other.IsDefault = false
			}
		}
	}
	clone := *resume
	r.resumes[resume.ID] = &clone
	return nil
}

func (r resumeRepo) FindOwned(_ context.Context, userID, resumeID uuid.UUID) (*domain.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[resumeID]
	if !ok || resume.UserID != userID {
		return nil, domain.ErrResumeNotFound
	}
	clone := *resume
	return &clone, nil
}

func (r resumeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Resume
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, *resume)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r resumeRepo) Update(_ context.Context, resume *domain.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resumes[resume.ID]; !ok {
		return domain.ErrResumeNotFound
	}
	clone := *resume
	r.resumes[resume.ID] = &clone
	return nil
}

func (r resumeRepo) SetDefault(_ context.Context, userID, resumeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := r.resumes[resumeID]
	if !ok || target.UserID != userID {
		return domain.ErrResumeNotFound
	}
	for _, other := range r.resumes {
		if other.UserID == userID {
			other.IsDefault = false
		}
	}
	target.IsDefault = true
	return nil
}

func (r resumeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resumes[id]; !ok {
		return domain.ErrResumeNotFound
	}
	delete(r.resumes, id)
	return nil
}

// --- ApplicationRepository ------------------------------------------------

type applicationRepo struct{ *stubStore }

func (r applicationRepo) Create(_ context.Context, a *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	clone := *a
	r.applications[a.ID] = &clone
	return nil
}

func (r applicationRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r applicationRepo) FindByUserAndJob(_ context.Context, userID, jobID uuid.UUID) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.UserID == userID && a.JobID == jobID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r applicationRepo) ListByUser(_ context.Context, userID uuid.UUID, status domain.ApplicationStatus, p pagination.Params) ([]domain.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.Application
	for _, a := range r.applications {
		if a.UserID != userID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		matched = append(matched, *a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].AppliedAt.After(matched[j].AppliedAt) })
	total := int64(len(matched))
	return pageSlice(matched, p), total, nil
}

func (r applicationRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Application
	for _, a := range r.applications {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.Before(out[j].AppliedAt) })
	return out, nil
}

func (r applicationRepo) ListByCompanies(_ context.Context, companyIDs []uuid.UUID) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idSet := make(map[uuid.UUID]struct{}, len(companyIDs))
	for _, id := range companyIDs {
		idSet[id] = struct{}{}
	}
	var out []domain.Application
	for _, a := range r.applications {
		job, ok := r.jobs[a.JobID]
		if !ok {
			continue
		}
		if _, ok := idSet[job.CompanyID]; !ok {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (r applicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	a.Status = status
	clone := *a
	return &clone, nil
}

func (r applicationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.applications[id]; !ok {
		return domain.ErrApplicationNotFound
	}
	delete(r.applications, id)
	return nil
}

// --- StatsRepository ------------------------------------------------------

type statsRepo struct{ *stubStore }

func (r statsRepo) CountUsers(context.Context) (int64, error) {
	if r.forcedErr != nil {
		return 0, r.forcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r statsRepo) CountCompanies(context.Context) (int64, error) {
	if r.forcedErr != nil {
		return 0, r.forcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.companies)), nil
}

func (r statsRepo) CountJobs(_ context.Context, activeOnly bool) (int64, error) {
	if r.forcedErr != nil {
		return 0, r.forcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, j := range r.jobs {
		if !activeOnly || j.IsActive {
			n++
		}
	}
	return n, nil
}

func (r statsRepo) CountJobsByCompanies(_ context.Context, companyIDs []uuid.UUID, activeOnly bool) (int64, error) {
	if r.forcedErr != nil {
		return 0, r.forcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, j := range r.jobs {
		if !containsID(companyIDs, j.CompanyID) {
			continue
		}
		if !activeOnly || j.IsActive {
			n++
		}
	}
	return n, nil
}

func (r statsRepo) CountApplications(_ context.Context, status domain.ApplicationStatus) (int64, error) {
	if r.forcedErr != nil {
		return 0, r.forcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.applications {
		if status == "" || a.Status == status {
			n++
		}
	}
	return n, nil
}

func (r statsRepo) CountApplicationsByUser(_ context.Context, userID uuid.UUID, status domain.ApplicationStatus) (int64, error) {
	if r.forcedErr != nil {
		return 0, r.forcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.applications {
		if a.UserID != userID {
			continue
		}
		if status == "" || a.Status == status {
			n++
		}
	}
	return n, nil
}

func (r statsRepo) CountApplicationsByCompanies(_ context.Context, companyIDs []uuid.UUID, status domain.ApplicationStatus) (int64, error) {
	if r.forcedErr != nil {
		return 0, r.forcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.applications {
		job, ok := r.jobs[a.JobID]
		if !ok || !containsID(companyIDs, job.CompanyID) {
			continue
		}
		if status == "" || a.Status == status {
			n++
		}
	}
	return n, nil
}

func (r statsRepo) RecentApplicationsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Application, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	apps, _, err := applicationRepo{r.stubStore}.ListByUser(ctx, userID, "", pagination.Params{Page: 1, Limit: limit})
	return apps, err
}

func (r statsRepo) RecentApplicationsByCompanies(ctx context.Context, companyIDs []uuid.UUID, limit int) ([]domain.Application, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	apps, err := applicationRepo{r.stubStore}.ListByCompanies(ctx, companyIDs)
	if err != nil {
		return nil, err
	}
	if len(apps) > limit {
		apps = apps[:limit]
	}
	return apps, nil
}

func (r statsRepo) RecentApplications(_ context.Context, limit int) ([]domain.Application, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Application, 0, len(r.applications))
	for _, a := range r.applications {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r statsRepo) RecentUsers(_ context.Context, limit int) ([]domain.User, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r statsRepo) RecentJobs(_ context.Context, limit int) ([]domain.Job, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, *j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r statsRepo) ApplicationsPerMonth(_ context.Context, userID uuid.UUID, year int) (map[int]int64, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[int]int64)
	for _, a := range r.applications {
		if a.UserID != userID || a.AppliedAt.Year() != year {
			continue
		}
		counts[int(a.AppliedAt.Month())]++
	}
	return counts, nil
}

// --- TokenStore / FileStore ----------------------------------------------

type stubTokenStore struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]uuid.UUID)}
}

func (s *stubTokenStore) Store(_ context.Context, tokenID string, userID uuid.UUID, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenID] = userID
	return nil
}

func (s *stubTokenStore) Validate(_ context.Context, tokenID string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[tokenID]
	if !ok {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return userID, nil
}

func (s *stubTokenStore) Revoke(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tokenID)
	return nil
}

type stubFileStore struct {
	mu      sync.Mutex
	objects map[string]bool
	deleted []string
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{objects: make(map[string]bool)}
}

func (s *stubFileStore) Save(_ context.Context, folder, filename string, _ io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "/uploads/" + folder + "/" + filename
	s.objects[url] = true
	return url, nil
}

/// Delete is idempotent: deleting a missing object succeeds.
func (s *stubFileStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, url)
	s.deleted = append(s.deleted, url)
	return nil
}

// --- helpers --------------------------------------------------------------

func pageSlice[T any](items []T, p pagination.Params) []T {
	if p.Limit <= 0 {
		return items
	}
	if p.Skip >= len(items) {
		return []T{}
	}
	end := p.Skip + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Skip:end]
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

var errStorage = errors.New("storage unavailable")

// --- seed helpers ---------------------------------------------------------

func (s *stubStore) seedUser(role string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &domain.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	return u
}

func (s *stubStore) seedCompany(name string, memberIDs ...uuid.UUID) *domain.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &domain.Company{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC()}
	s.companies[c.ID] = c
	for _, userID := range memberIDs {
		s.members = append(s.members, domain.CompanyMember{
			ID: uuid.New(), UserID: userID, CompanyID: c.ID, Role: domain.MemberRoleOwner,
		})
	}
	return c
}

func (s *stubStore) seedJob(companyID uuid.UUID, title string, active bool) *domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := &domain.Job{
		ID:        uuid.New(),
		Title:     title,
		Location:  "Remote",
		Type:      "full-time",
		CompanyID: companyID,
		IsActive:  active,
		CreatedAt: time.Now().UTC(),
	}
	s.jobs[j.ID] = j
	return j
}

func (s *stubStore) seedResume(userID uuid.UUID, isDefault bool) *domain.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &domain.Resume{
		ID:        uuid.New(),
		Title:     "CV",
		FileURL:   "/uploads/resumes/" + uuid.NewString() + ".pdf",
		UserID:    userID,
		IsDefault: isDefault,
		CreatedAt: time.Now().UTC(),
	}
	s.resumes[r.ID] = r
	return r
}

func (s *stubStore) seedApplication(userID, jobID, resumeID uuid.UUID, status domain.ApplicationStatus, appliedAt time.Time) *domain.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &domain.Application{
		ID:        uuid.New(),
		JobID:     jobID,
		UserID:    userID,
		ResumeID:  resumeID,
		Status:    status,
		AppliedAt: appliedAt,
	}
	s.applications[a.ID] = a
	return a
}
