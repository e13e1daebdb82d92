package service

import (
	"sync"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// DefaultCacheTTL bounds how long a manager's projects and roster are reused.
const DefaultCacheTTL = 30 * time.Second

type cached[T any] struct {
	at    time.Time
	value T
	ok    bool
}

// ManagerCache holds one manager's project list and team roster. Entries
// expire after the TTL measured on the injected clock.
type ManagerCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	projects cached[[]*domain.Project]
	team     cached[[]domain.TeamMember]
}

// NewManagerCache returns an empty cache. A non-positive ttl uses
// DefaultCacheTTL and a nil clock uses time.Now.
func NewManagerCache(ttl time.Duration, now func() time.Time) *ManagerCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ManagerCache{ttl: ttl, now: now}
}

func (c *ManagerCache) fresh(at time.Time) bool {
	return c.now().Sub(at) < c.ttl
}

// Projects returns the cached project list when it has not expired.
func (c *ManagerCache) Projects() ([]*domain.Project, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.projects.ok || !c.fresh(c.projects.at) {
		return nil, false
	}
	return append([]*domain.Project(nil), c.projects.value...), true
}

func (c *ManagerCache) SetProjects(ps []*domain.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = cached[[]*domain.Project]{at: c.now(), value: append([]*domain.Project(nil), ps...), ok: true}
}

// TeamMembers returns the cached roster when it has not expired.
func (c *ManagerCache) TeamMembers() ([]domain.TeamMember, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.team.ok || !c.fresh(c.team.at) {
		return nil, false
	}
	return append([]domain.TeamMember(nil), c.team.value...), true
}

func (c *ManagerCache) SetTeamMembers(ms []domain.TeamMember) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.team = cached[[]domain.TeamMember]{at: c.now(), value: append([]domain.TeamMember(nil), ms...), ok: true}
}

// Invalidate drops every cached entry.
func (c *ManagerCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = cached[[]*domain.Project]{}
	c.team = cached[[]domain.TeamMember]{}
}
