package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/rosterdesk/internal/cli"
	"github.com/alexanderramin/rosterdesk/internal/config"
	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/logging"
	"github.com/alexanderramin/rosterdesk/internal/postgrest"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/service"
	"github.com/alexanderramin/rosterdesk/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog := logging.New(cfg.Log, os.Stderr)
	defer closeLog.Close()

	repos, closeStore, err := openRepos(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []service.FactoryOption{
		service.WithCacheTTL(cfg.CacheTTL()),
		service.WithLogger(logger),
	}
	if cfg.LogUseCases {
		opts = append(opts, service.WithObserver(service.NewSlogUseCaseObserver(logger)))
	}

	app := &cli.App{
		Factory: service.NewFactory(repos, opts...),
		Session: session.NewStore(cfg.SessionPath()),
		HTTP:    cfg.HTTP,
		Logger:  logger,
		Now:     time.Now,
	}

	// Wizards and the week browser only run on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// openRepos wires the repositories for the configured backend. The returned
// func releases the underlying store.
func openRepos(cfg config.Config, logger *slog.Logger) (service.Repos, func(), error) {
	if cfg.Backend == config.BackendREST {
		pcfg := postgrest.DefaultConfig()
		pcfg.URL = cfg.REST.URL
		pcfg.APIKey = cfg.REST.APIKey
		pcfg.Timeout = time.Duration(cfg.REST.TimeoutMs) * time.Millisecond
		pcfg.BreakerTimeout = time.Duration(cfg.REST.BreakerTimeoutMs) * time.Millisecond
		client := postgrest.NewClient(pcfg, logger)

		return service.Repos{
			Users:        repository.NewRESTUserRepo(client),
			Details:      repository.NewRESTUserDetailRepo(client),
			Projects:     repository.NewRESTProjectRepo(client),
			Requirements: repository.NewRESTRequirementRepo(client),
			Assignments:  repository.NewRESTAssignmentRepo(client),
			Worklogs:     repository.NewRESTWorklogRepo(client),
			Allocations:  repository.NewRESTAllocationRepo(client),
			Requests:     repository.NewRESTResourceRequestRepo(client),
			UoW:          repository.NewRESTUnitOfWork(client),
		}, func() {}, nil
	}

	dsn := cfg.DBPath
	if cfg.DBDriver == config.DriverPostgres {
		dsn = cfg.DBDSN
	}
	database, dialect, err := db.Open(cfg.DBDriver, dsn)
	if err != nil {
		return service.Repos{}, nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("store_open", "driver", dialect.String())

	return sqlRepos(database, dialect), func() { database.Close() }, nil
}

func sqlRepos(database *sql.DB, d db.Dialect) service.Repos {
	return service.Repos{
		Users:        repository.NewSQLUserRepo(database, d),
		Details:      repository.NewSQLUserDetailRepo(database, d),
		Projects:     repository.NewSQLProjectRepo(database, d),
		Requirements: repository.NewSQLRequirementRepo(database, d),
		Assignments:  repository.NewSQLAssignmentRepo(database, d),
		Worklogs:     repository.NewSQLWorklogRepo(database, d),
		Allocations:  repository.NewSQLAllocationRepo(database, d),
		Requests:     repository.NewSQLResourceRequestRepo(database, d),
		UoW:          repository.NewSQLUnitOfWork(db.NewSQLUnitOfWork(database), d),
	}
}
