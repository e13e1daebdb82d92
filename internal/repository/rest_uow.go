package repository

import (
	"context"

	"github.com/alexanderramin/rosterdesk/internal/postgrest"
)

// RESTUnitOfWork runs fn against the REST repositories. PostgREST offers no
// cross-request transactions, so a failing step leaves earlier steps applied.
type RESTUnitOfWork struct {
	repos TxRepos
}

func NewRESTUnitOfWork(client *postgrest.Client) *RESTUnitOfWork {
	return &RESTUnitOfWork{repos: TxRepos{
		Projects:    NewRESTProjectRepo(client),
		Assignments: NewRESTAssignmentRepo(client),
		Allocations: NewRESTAllocationRepo(client),
		Details:     NewRESTUserDetailRepo(client),
	}}
}

func (u *RESTUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error {
	return fn(ctx, u.repos)
}
