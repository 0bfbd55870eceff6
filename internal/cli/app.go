// Package cli implements the interactive relocost shell: login/logout,
// single estimates, batch uploads and job tracking.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dkaras/relocost/internal/api"
	"github.com/dkaras/relocost/internal/batch"
	"github.com/dkaras/relocost/internal/config"
	"github.com/dkaras/relocost/internal/logging"
	"github.com/dkaras/relocost/internal/services"
	"github.com/dkaras/relocost/internal/session"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	sessions  *session.Store
	auth      *services.AuthService
	estimates *services.EstimateService
	machine   *batch.Machine

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := session.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("init session database: %w", err)
	}

	sessions := session.NewStore(db)
	if err := sessions.Load(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	apiClient := api.NewHTTPClient(c.BaseURL,
		api.WithTokenSource(sessions),
		api.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		api.WithAuthRejectedHook(func() {
			// A 401 from any call ends the session for every consumer.
			if err := sessions.Clear(context.Background()); err != nil {
				logger.Error(context.Background(), "failed to clear rejected session", "error", err)
			}
		}),
	)

	return &App{
		config:    c,
		log:       logger,
		db:        db,
		sessions:  sessions,
		auth:      services.NewAuthService(apiClient, sessions),
		estimates: services.NewEstimateService(apiClient),
		machine:   batch.NewMachine(apiClient, sessions, logger, batch.WithPollInterval(c.PollInterval)),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	// Tell the user when the session disappears underneath them, e.g. after
	// a 401 triggered the global clear.
	wasAuthenticated := a.sessions.Get().Authenticated()
	unsubscribe := a.sessions.Subscribe(func(s session.Session) {
		if wasAuthenticated && !s.Authenticated() {
			fmt.Fprintln(a.out, "Session ended, please login again.")
		}
		wasAuthenticated = s.Authenticated()
	})
	defer unsubscribe()

	fmt.Fprintln(a.out, "relocost CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)

	a.machine.Reset()
}

func (a *App) Close() {
	_ = a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Get().Authenticated()
}

func (a *App) status() string {
	s := a.sessions.Get()
	if !s.Authenticated() {
		return "guest"
	}
	return s.User.Username
}
