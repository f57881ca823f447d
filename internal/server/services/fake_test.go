package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
	srvmodels "github.com/dmitrijs2005/rentkeeper/internal/server/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/reservations"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/vehicles"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo is an in-memory users table keyed by id.
type fakeUsersRepo struct {
	mu     sync.Mutex
	rows   map[string]*srvmodels.User
	nextID int
	err    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{rows: map[string]*srvmodels.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *srvmodels.User) (*srvmodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.rows {
		if r.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	c := *u
	c.ID = fmt.Sprintf("u-%d", f.nextID)
	c.CreatedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	f.rows[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*srvmodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.rows {
		if r.Email == email {
			c := *r
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*srvmodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *r
	return &c, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, id string, upd users.Update) (*srvmodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Email != nil {
		for oid, o := range f.rows {
			if oid != id && o.Email == *upd.Email {
				return nil, common.ErrorAlreadyExists
			}
		}
		r.Email = *upd.Email
	}
	if upd.Name != nil {
		r.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		r.PasswordHash = *upd.PasswordHash
	}
	c := *r
	return &c, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeVehiclesRepo struct {
	list      []models.Vehicle
	listErr   error
	created   *models.CreateVehicleRequest
	updated   *models.UpdateVehicleRequest
	writeErr  error
	deletedID string
}

func (f *fakeVehiclesRepo) List(ctx context.Context) ([]models.Vehicle, error) {
	return f.list, f.listErr
}

func (f *fakeVehiclesRepo) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	for _, v := range f.list {
		if v.ID == id {
			c := v
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeVehiclesRepo) Create(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	f.created = &req
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &models.Vehicle{ID: "v-new", Name: req.Name, Size: req.Size}, nil
}

func (f *fakeVehiclesRepo) Update(ctx context.Context, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error) {
	f.updated = &req
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	v := &models.Vehicle{ID: id}
	if req.Name != nil {
		v.Name = *req.Name
	}
	return v, nil
}

func (f *fakeVehiclesRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.writeErr
}

type fakeReservationsRepo struct {
	rows       map[string]*models.Reservation
	lockErr    error
	overlap    int
	overlapErr error
	createErr  error
	updateErr  error
	listErr    error
	locked     []string
	nextID     int
}

func newFakeReservationsRepo(rows ...models.Reservation) *fakeReservationsRepo {
	f := &fakeReservationsRepo{rows: map[string]*models.Reservation{}}
	for i := range rows {
		r := rows[i]
		f.rows[r.ID] = &r
	}
	return f
}

func (f *fakeReservationsRepo) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Reservation, 0)
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReservationsRepo) Get(ctx context.Context, id string) (*models.Reservation, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *r
	return &c, nil
}

func (f *fakeReservationsRepo) LockVehicle(ctx context.Context, vehicleID string) error {
	f.locked = append(f.locked, vehicleID)
	return f.lockErr
}

func (f *fakeReservationsRepo) CountOverlapping(ctx context.Context, vehicleID, start, end string) (int, error) {
	return f.overlap, f.overlapErr
}

func (f *fakeReservationsRepo) Create(ctx context.Context, r *models.Reservation) (*models.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	c := *r
	c.ID = fmt.Sprintf("r-new-%d", f.nextID)
	f.rows[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeReservationsRepo) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	r, ok := f.rows[id]
	if !ok {
		return common.ErrorNotFound
	}
	r.Status = status
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	v *fakeVehiclesRepo
	r *fakeReservationsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository               { return m.u }
func (m *fakeRepoManager) Vehicles(db dbx.DBTX) vehicles.Repository         { return m.v }
func (m *fakeRepoManager) Reservations(db dbx.DBTX) reservations.Repository { return m.r }
