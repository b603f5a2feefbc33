package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/ufmarketplace/ufmarket/internal/client/api"
	"github.com/ufmarketplace/ufmarket/internal/client/config"
	"github.com/ufmarketplace/ufmarket/internal/client/models"
	"github.com/ufmarketplace/ufmarket/internal/client/services"
	"github.com/ufmarketplace/ufmarket/internal/client/session"
	"github.com/ufmarketplace/ufmarket/internal/logging"
)

// App wires the marketplace CLI together: the session store, the REST
// gateway, and the auth/listing services on top of it.
type App struct {
	config   *config.Config
	log      logging.Logger
	auth     services.AuthService
	listings services.ListingService
	store    session.Store
	db       *sql.DB
	reader   *bufio.Reader

	// current mirrors the session store for prompt rendering. Refreshed
	// after every login/signup/logout.
	current models.Session

	// items is the last listing collection received from the server. Every
	// mutation replaces it wholesale.
	items []models.DisplayListing
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := session.Open(ctx, session.InMemoryDSN)
	if err != nil {
		log.Error(ctx, "error initializing session store", "error", err)
		return nil, err
	}

	store := session.NewSQLStore(db)
	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, store)

	as := services.NewAuthService(apiClient, store, c.EmailDomain, c.DomainMessage)
	ls := services.NewListingService(apiClient, store)

	return &App{
		config:   c,
		log:      log,
		auth:     as,
		listings: ls,
		store:    store,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the interactive loop and blocks until the user exits or stdin
// is closed.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	printlnFn("Welcome to UF MarketPlace CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) isLoggedIn() bool {
	return a.current.Authenticated()
}

// refreshSession reloads the prompt identity from the session store.
func (a *App) refreshSession(ctx context.Context) {
	sess, ok, err := a.store.Current(ctx)
	if err != nil {
		a.log.Error(ctx, "error reading session store", "error", err)
		return
	}
	if !ok {
		a.current = models.Session{}
		return
	}
	a.current = sess
}

func (a *App) getStatus() string {
	if a.current.Email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.current.Email)
}
