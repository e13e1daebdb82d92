package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/session"
)

type identityService struct {
	users    repository.UserRepo
	observer UseCaseObserver
}

func NewIdentityService(users repository.UserRepo, observers ...UseCaseObserver) IdentityService {
	return &identityService{users: users, observer: useCaseObserverOrNoop(observers)}
}

func (s *identityService) Initialize(ctx context.Context, id session.Identity) (_ *domain.User, err error) {
	fields := map[string]any{"email": id.Email}
	defer observe(ctx, s.observer, "initialize-identity", nowUTC(), fields, &err)

	email := strings.TrimSpace(id.Email)
	if email == "" {
		return nil, ErrNotLoggedIn
	}
	u, err := s.users.GetByEmailAndRole(ctx, email, domain.RoleProjectManager)
	if err != nil {
		return nil, fmt.Errorf("resolving project manager %s: %w", email, err)
	}
	return u, nil
}
