package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/s-r-jones/deep-dive-air/internal/client/client"
	"github.com/s-r-jones/deep-dive-air/internal/client/config"
	"github.com/s-r-jones/deep-dive-air/internal/client/services"
)

type App struct {
	config         *config.Config
	authService    services.AuthService
	bookingService services.BookingService
	email          string
	reader         *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	db, err := client.InitDatabase(ctx, c.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	apiClient, err := client.NewBookingClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:         c,
		authService:    services.NewAuthService(apiClient, db),
		bookingService: services.NewBookingService(apiClient, c.RequestTimeout),
		reader:         bufio.NewReader(os.Stdin),
	}, nil
}

// Run resumes a remembered session, if any, and serves the REPL until the
// user quits.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	printlnFn("Welcome to airctl (type 'help' for commands)")

	if email, err := a.authService.Resume(ctx); err == nil {
		a.email = email
		printlnFn("Resumed session for", email)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}
