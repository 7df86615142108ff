package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/rs/zerolog"

	"github.com/dangolden/bidsmart/internal/client/config"
	"github.com/dangolden/bidsmart/internal/client/models"
	"github.com/dangolden/bidsmart/internal/client/repositories/session"
	"github.com/dangolden/bidsmart/internal/client/services"
	"github.com/dangolden/bidsmart/internal/client/storage"
	"github.com/dangolden/bidsmart/internal/client/validation"
	"github.com/dangolden/bidsmart/internal/client/verification"
	"github.com/dangolden/bidsmart/internal/client/workflow"
	"github.com/dangolden/bidsmart/internal/logging"
)

type App struct {
	config       *config.Config
	verification services.VerificationService
	submission   services.SubmissionService
	log          logging.Logger

	db      *sql.DB
	email   string
	lastJob *models.WorkflowJob
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	log := logging.NewZerologLogger(
		zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger())

	db, err := storage.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err.Error())
		return nil, err
	}

	sessions := session.NewSQLiteRepository(db, log)

	verifyClient := verification.NewHTTPClient(c.VerificationBaseURL, c.VerificationToken, c.VerificationAPIKey)
	vs := services.NewVerificationService(verifyClient, sessions, log, c.DevMode)

	wfClient := workflow.NewHTTPClient(c.WorkflowBaseURL, c.WorkflowID, c.WorkflowAPIKey)
	poller := workflow.NewPoller(wfClient, c.PollInterval, c.PollTimeout, log)
	validator := validation.New(c.Limits())
	ss := services.NewSubmissionService(validator, wfClient, poller, log)

	app := &App{
		config:       c,
		verification: vs,
		submission:   ss,
		log:          log,
		db:           db,
		reader:       bufio.NewReader(os.Stdin),
	}

	// A session cached by a previous run keeps the user verified.
	if cached := vs.Current(ctx); cached != nil {
		app.email = cached.Email
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.log.Info(ctx, "client started",
		"workflow_id", a.config.WorkflowID, "dev_mode", a.config.DevMode)
	a.Root(ctx)
}

func (a *App) isVerified() bool {
	return a.email != ""
}
