package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/classifieds/internal/client/client"
	"github.com/dmitrijs2005/classifieds/internal/client/config"
	"github.com/dmitrijs2005/classifieds/internal/client/localdb"
	"github.com/dmitrijs2005/classifieds/internal/client/services"
	"github.com/dmitrijs2005/classifieds/internal/client/session"
	"github.com/dmitrijs2005/classifieds/internal/logging"
)

type App struct {
	config         *config.Config
	log            logging.Logger
	db             *sql.DB
	session        *session.Store
	authService    services.AuthService
	adService      services.AdService
	adminService   services.AdminService
	contactService services.ContactService
	images         client.ImageAPI
	reader         *bufio.Reader
	out            io.Writer
}

// NewApp opens the local database and wires the HTTP client and services.
// The session is not restored yet; Root does that before the first prompt.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	db, err := localdb.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", logging.Err(err))
		return nil, err
	}

	store := session.New(session.NewSQLiteStorage(db), log)

	api, err := client.NewHTTPClient(c.APIBaseURL, store,
		client.WithLogger(log),
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RateLimit, c.RateBurst),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:         c,
		log:            log,
		db:             db,
		session:        store,
		authService:    services.NewAuthService(api, store),
		adService:      services.NewAdService(api, store),
		adminService:   services.NewAdminService(api, store, log),
		contactService: services.NewContactService(api, store),
		images:         api,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close releases the local database.
func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing local database", logging.Err(err))
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.session.Hydrated() && a.session.IsAuthenticated() && a.session.IsAdmin()
}

// printf writes user-facing output.
func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
