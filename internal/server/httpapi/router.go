package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(ctx context.Context, token string) (*services.Principal, error)
	Logout(ctx context.Context, p *services.Principal) error
	Me(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error)
	Delete(ctx context.Context, userID string) error
}

type VehicleService interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Create(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error)
	Update(ctx context.Context, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type ReservationService interface {
	List(ctx context.Context, userID string) ([]models.Reservation, error)
	Create(ctx context.Context, userID string, req models.CreateReservationRequest) (*models.Reservation, error)
	Cancel(ctx context.Context, userID, id string) (*models.Reservation, error)
	Complete(ctx context.Context, userID, id string) (*models.Reservation, error)
}

// Options tune the cookie and the auth rate limit.
type Options struct {
	CookieSecure  bool
	AuthRateLimit float64
	AuthRateBurst int
}

// handler holds the dependencies shared by all endpoints.
type handler struct {
	users        UserService
	vehicles     VehicleService
	reservations ReservationService
	opts         Options
	logger       logging.Logger
	now          func() time.Time
}

// NewRouter builds the chi router with every endpoint and middleware. ctx
// bounds background work such as the rate limiter's sweeper.
func NewRouter(ctx context.Context, us UserService, vs VehicleService, rs ReservationService,
	opts Options, logger logging.Logger) *chi.Mux {
	h := &handler{users: us, vehicles: vs, reservations: rs, opts: opts, logger: logger, now: time.Now}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Use(RateLimit(ctx, opts.AuthRateLimit, opts.AuthRateBurst))
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
		r.With(RequireSession(us)).Get("/me", h.me)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireSession(us))

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", h.listVehicles)
			r.Post("/", h.createVehicle)
			r.Patch("/{id}", h.updateVehicle)
			r.Delete("/{id}", h.deleteVehicle)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", h.listReservations)
			r.Post("/", h.createReservation)
			r.Patch("/{id}/cancel", h.cancelReservation)
			r.Patch("/{id}/complete", h.completeReservation)
		})

		r.Route("/users", func(r chi.Router) {
			r.Patch("/", h.updateProfile)
			r.Delete("/", h.deleteAccount)
		})
	})

	return r
}

func paginated[T any](items []T) models.Paginated[T] {
	return models.Paginated[T]{Data: items, Total: len(items), Page: 1, Limit: len(items)}
}
