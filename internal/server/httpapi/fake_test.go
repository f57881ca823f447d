package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/auth"
	"github.com/dmitrijs2005/rentkeeper/internal/server/services"
)

// fakeUsers keeps accounts in memory; passwords are stored in clear.
type fakeUsers struct {
	mu        sync.Mutex
	users     map[string]*models.User
	passwords map[string]string
	revoked   map[string]bool
	logoutErr error
	deleted   []string
}

func newFakeUsers() *fakeUsers {
	f := &fakeUsers{
		users:     map[string]*models.User{},
		passwords: map[string]string{},
		revoked:   map[string]bool{},
	}
	f.users["u-1"] = &models.User{ID: "u-1", Email: "a@b.com", Name: "A"}
	f.passwords["a@b.com"] = "secret1"
	return f
}

var testSecret = []byte("test-secret")

func (f *fakeUsers) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.Name == "" {
		return nil, common.ErrorValidation
	}
	if _, ok := f.passwords[req.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := &models.User{ID: "u-new", Email: req.Email, Name: req.Name}
	f.users[u.ID] = u
	f.passwords[req.Email] = req.Password
	return u, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.passwords[email]; !ok || pw != password {
		return nil, common.ErrorUnauthorized
	}
	for _, u := range f.users {
		if u.Email == email {
			tok, err := auth.GenerateToken(u.ID, testSecret, time.Hour)
			if err != nil {
				return nil, err
			}
			return &services.Session{User: u, Token: tok}, nil
		}
	}
	return nil, common.ErrorUnauthorized
}

func (f *fakeUsers) Authenticate(ctx context.Context, token string) (*services.Principal, error) {
	claims, err := auth.ParseToken(token, testSecret)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.revoked[claims.ID] {
		return nil, common.ErrTokenRevoked
	}
	return &services.Principal{UserID: claims.Subject, TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (f *fakeUsers) Logout(ctx context.Context, p *services.Principal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.revoked[p.TokenID] = true
	return nil
}

func (f *fakeUsers) Me(ctx context.Context, userID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return u, nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.IsEmpty() {
		return nil, validation("nothing to update")
	}
	u := f.users[userID]
	if req.Name != nil {
		u.Name = *req.Name
	}
	return u, nil
}

func (f *fakeUsers) Delete(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, userID)
	f.deleted = append(f.deleted, userID)
	return nil
}

type fakeVehicles struct {
	list []models.Vehicle
	err  error
}

func (f *fakeVehicles) List(ctx context.Context) ([]models.Vehicle, error) { return f.list, f.err }

func (f *fakeVehicles) Create(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Vehicle{ID: "v-new", Name: req.Name, Size: req.Size}, nil
}

func (f *fakeVehicles) Update(ctx context.Context, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	v := &models.Vehicle{ID: id}
	if req.Name != nil {
		v.Name = *req.Name
	}
	return v, nil
}

func (f *fakeVehicles) Delete(ctx context.Context, id string) error { return f.err }

type fakeReservations struct {
	err     error
	lastFor string
}

func (f *fakeReservations) List(ctx context.Context, userID string) ([]models.Reservation, error) {
	f.lastFor = userID
	return []models.Reservation{{ID: "r-1", UserID: userID, Status: models.ReservationPending}}, f.err
}

func (f *fakeReservations) Create(ctx context.Context, userID string, req models.CreateReservationRequest) (*models.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Reservation{ID: "r-new", UserID: userID, VehicleID: req.VehicleID,
		StartDate: req.StartDate, EndDate: req.EndDate, Status: models.ReservationPending}, nil
}

func (f *fakeReservations) Cancel(ctx context.Context, userID, id string) (*models.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Reservation{ID: id, UserID: userID, Status: models.ReservationCancelled}, nil
}

func (f *fakeReservations) Complete(ctx context.Context, userID, id string) (*models.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Reservation{ID: id, UserID: userID, Status: models.ReservationCompleted}, nil
}

type testAPI struct {
	srv          *httptest.Server
	users        *fakeUsers
	vehicles     *fakeVehicles
	reservations *fakeReservations
}

func newTestAPI(t *testing.T, opts Options) *testAPI {
	t.Helper()
	if opts.AuthRateLimit == 0 {
		opts.AuthRateLimit, opts.AuthRateBurst = 1000, 1000
	}
	ctx, cancel := context.WithCancel(context.Background())
	api := &testAPI{
		users:        newFakeUsers(),
		vehicles:     &fakeVehicles{list: []models.Vehicle{{ID: "v-1", Name: "Civic"}}},
		reservations: &fakeReservations{},
	}
	r := NewRouter(ctx, api.users, api.vehicles, api.reservations, opts, logging.Discard())
	api.srv = httptest.NewServer(r)
	t.Cleanup(func() {
		api.srv.Close()
		cancel()
	})
	return api
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == common.SessionCookieName {
			return c
		}
	}
	return nil
}
