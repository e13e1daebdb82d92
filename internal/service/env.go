package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/repository"
)

// Repos bundles the gateway the services read and write, backed by either
// the SQL or the REST repositories.
type Repos struct {
	Users        repository.UserRepo
	Details      repository.UserDetailRepo
	Projects     repository.ProjectRepo
	Requirements repository.RequirementRepo
	Assignments  repository.AssignmentRepo
	Worklogs     repository.WorklogRepo
	Allocations  repository.AllocationRepo
	Requests     repository.ResourceRequestRepo
	UoW          repository.UnitOfWork
}

// Env is what every manager-scoped service shares.
type Env struct {
	Repos   Repos
	Manager *domain.User
	Cache   *ManagerCache
	Clock   func() time.Time
	Logger  *slog.Logger
}

func (e Env) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock()
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e Env) invalidate() {
	if e.Cache != nil {
		e.Cache.Invalidate()
	}
}

// Services is the full service set for one manager.
type Services struct {
	Manager    *domain.User
	Dashboard  DashboardService
	Allocation AllocationService
	Entries    EntryService
	Requests   ProjectRequestService
	Projects   ProjectService
}

// Factory builds manager-scoped services, keeping one cache per manager so
// that successive requests by the same manager share it.
type Factory struct {
	repos    Repos
	ttl      time.Duration
	clock    func() time.Time
	logger   *slog.Logger
	observer UseCaseObserver

	mu     sync.Mutex
	caches map[string]*ManagerCache
}

type FactoryOption func(*Factory)

func WithCacheTTL(ttl time.Duration) FactoryOption {
	return func(f *Factory) { f.ttl = ttl }
}

func WithClock(clock func() time.Time) FactoryOption {
	return func(f *Factory) { f.clock = clock }
}

func WithLogger(logger *slog.Logger) FactoryOption {
	return func(f *Factory) { f.logger = logger }
}

func WithObserver(obs UseCaseObserver) FactoryOption {
	return func(f *Factory) { f.observer = obs }
}

func NewFactory(repos Repos, opts ...FactoryOption) *Factory {
	f := &Factory{
		repos:  repos,
		ttl:    DefaultCacheTTL,
		clock:  time.Now,
		logger: slog.Default(),
		caches: make(map[string]*ManagerCache),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) Identity() IdentityService {
	return NewIdentityService(f.repos.Users, f.observer)
}

// For returns the services acting on behalf of manager.
func (f *Factory) For(manager *domain.User) *Services {
	f.mu.Lock()
	cache, ok := f.caches[manager.ID]
	if !ok {
		cache = NewManagerCache(f.ttl, f.clock)
		f.caches[manager.ID] = cache
	}
	f.mu.Unlock()

	env := Env{
		Repos:   f.repos,
		Manager: manager,
		Cache:   cache,
		Clock:   f.clock,
		Logger:  f.logger,
	}
	return &Services{
		Manager:    manager,
		Dashboard:  NewDashboardService(env, f.observer),
		Allocation: NewAllocationService(env, f.observer),
		Entries:    NewEntryService(env, f.observer),
		Requests:   NewProjectRequestService(env, f.observer),
		Projects:   NewProjectService(env, f.observer),
	}
}
