package repository

import (
	"context"

	"github.com/alexanderramin/rosterdesk/internal/db"
)

// SQLUnitOfWork binds the tracking repositories to one database transaction.
type SQLUnitOfWork struct {
	uow     db.UnitOfWork
	dialect db.Dialect
}

func NewSQLUnitOfWork(uow db.UnitOfWork, dialect db.Dialect) *SQLUnitOfWork {
	return &SQLUnitOfWork{uow: uow, dialect: dialect}
}

func (u *SQLUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error {
	return u.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, TxRepos{
			Projects:    NewSQLProjectRepo(tx, u.dialect),
			Assignments: NewSQLAssignmentRepo(tx, u.dialect),
			Allocations: NewSQLAllocationRepo(tx, u.dialect),
			Details:     NewSQLUserDetailRepo(tx, u.dialect),
		})
	})
}
