package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/client/config"
	"github.com/dmitrijs2005/rentkeeper/internal/client/router"
	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/client/session"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
	"golang.org/x/term"
)

// nowFn is a test seam for the wizard's notion of "today".
var nowFn = time.Now

type authAPI interface {
	Init(ctx context.Context)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *models.User
}

type vehicleAPI interface {
	List(ctx context.Context, f services.VehicleFilter) ([]models.Vehicle, error)
	Create(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error)
	Update(ctx context.Context, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type reservationAPI interface {
	List(ctx context.Context, f services.ReservationFilter) ([]models.Reservation, error)
	Create(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error)
	Cancel(ctx context.Context, id string) (*models.Reservation, error)
	Complete(ctx context.Context, id string) (*models.Reservation, error)
}

type userAPI interface {
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)
	DeleteAccount(ctx context.Context) error
}

type navigator interface {
	Navigate(ctx context.Context, path string) (router.Result, error)
	Paths() []string
}

type App struct {
	auth         authAPI
	vehicles     vehicleAPI
	reservations reservationAPI
	users        userAPI
	nav          navigator
	notify       *Notifier
	logger       logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// page is the path the user is currently on.
	page string
	// termInput reports whether secrets can be read without echo.
	termInput bool

	closeFn func() error
}

// NewApp wires the API client, the session and its services, and the router.
func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	c, err := client.NewHTTPClient(cfg.APIURL, cfg.RequestTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}

	store, w := session.New()
	auth := services.NewAuthService(c, store, w, cfg.Interactive, logger)

	return &App{
		auth:         auth,
		vehicles:     services.NewVehicleService(c),
		reservations: services.NewReservationService(c),
		users:        services.NewUserService(c, auth),
		nav:          router.New(store, router.DefaultRoutes(), logger),
		notify:       NewNotifier(os.Stdout),
		logger:       logger.With("module", "cli"),
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		termInput:    term.IsTerminal(int(os.Stdin.Fd())),
		closeFn:      c.Close,
	}, nil
}

// Run starts the session check, opens the start page and serves commands
// until EOF, exit, or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.closeFn != nil {
			_ = a.closeFn()
		}
	}()

	// The first navigation waits for this to finish.
	go a.auth.Init(ctx)

	fmt.Fprintln(a.out, "Welcome to rentkeeper (type 'help' for commands)")
	_ = a.Go(ctx, "/")

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.auth.CurrentUser() != nil
}

// pages lists the paths "go" accepts.
func (a *App) pages() []string {
	return a.nav.Paths()
}

func (a *App) status() string {
	who := "guest"
	if u := a.auth.CurrentUser(); u != nil {
		who = u.Email
	}
	if a.page == "" {
		return who
	}
	return who + " " + a.page
}

// readSecret reads a password without echo when stdin is a terminal and as
// a plain line otherwise.
func (a *App) readSecret(prompt string) (string, error) {
	if !a.termInput {
		return GetSimpleText(a.reader, prompt, a.out)
	}
	b, err := GetPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(b)
	return string(b), nil
}

// failed reports err to the user and returns it.
func (a *App) failed(ctx context.Context, what string, err error) error {
	a.logger.Debug(ctx, what+" failed", "error", err)
	a.notify.Error(errMessage(err))
	return err
}

// errMessage picks the text to show for err: the backend's message when
// there is one.
func errMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		return "You need to log in first."
	case errors.Is(err, services.ErrInvalidDates):
		return "The end date must be after the start date."
	}
	return err.Error()
}
