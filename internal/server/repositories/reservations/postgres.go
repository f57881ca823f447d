package reservations

import (
	"context"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/pgerr"
)

// A pending reservation whose start date has come is reported as active.
const selectReservation = `SELECT r.id, r.vehicle_id, r.user_id, r.start_date, r.end_date,
  CASE WHEN r.status = 'PENDING' AND r.start_date <= CURRENT_DATE THEN 'ACTIVE' ELSE r.status END,
  r.created_at, r.updated_at,
  v.name, v.year, v.type, v.engine, v.size
FROM reservations r
JOIN vehicles v ON v.id = r.vehicle_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReservation(row scanner) (*models.Reservation, error) {
	var (
		r                models.Reservation
		v                models.Vehicle
		start, end       time.Time
		created, updated time.Time
		status           string
	)
	err := row.Scan(&r.ID, &r.VehicleID, &r.UserID, &start, &end, &status, &created, &updated,
		&v.Name, &v.Year, &v.Type, &v.Engine, &v.Size)
	if err != nil {
		return nil, err
	}

	v.ID = r.VehicleID
	r.StartDate = start.Format(models.DateLayout)
	r.EndDate = end.Format(models.DateLayout)
	r.Status = models.ReservationStatus(status)
	r.CreatedAt, r.UpdatedAt, r.Vehicle = &created, &updated, &v
	return &r, nil
}

func (p *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	rows, err := p.db.QueryContext(ctx,
		selectReservation+` WHERE r.user_id = $1 ORDER BY r.start_date DESC, r.created_at DESC`, userID)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	result := make([]models.Reservation, 0)
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, pgerr.Wrap(err)
		}
		result = append(result, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}

func (p *PostgresRepository) Get(ctx context.Context, id string) (*models.Reservation, error) {
	r, err := scanReservation(p.db.QueryRowContext(ctx, selectReservation+` WHERE r.id = $1`, id))
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return r, nil
}

func (p *PostgresRepository) LockVehicle(ctx context.Context, vehicleID string) error {
	var id string
	err := p.db.QueryRowContext(ctx, `SELECT id FROM vehicles WHERE id = $1 FOR UPDATE`, vehicleID).Scan(&id)
	return pgerr.Wrap(err)
}

func (p *PostgresRepository) CountOverlapping(ctx context.Context, vehicleID, start, end string) (int, error) {
	query :=
		`SELECT COUNT(*) FROM reservations
		 WHERE vehicle_id = $1
		   AND status IN ('PENDING', 'ACTIVE')
		   AND start_date < $3::date
		   AND end_date > $2::date`

	var n int
	if err := p.db.QueryRowContext(ctx, query, vehicleID, start, end).Scan(&n); err != nil {
		return 0, pgerr.Wrap(err)
	}
	return n, nil
}

func (p *PostgresRepository) Create(ctx context.Context, r *models.Reservation) (*models.Reservation, error) {
	query :=
		`INSERT INTO reservations (vehicle_id, user_id, start_date, end_date, status)
		 VALUES ($1, $2, $3::date, $4::date, $5)
		 RETURNING id`

	var id string
	err := p.db.QueryRowContext(ctx, query, r.VehicleID, r.UserID, r.StartDate, r.EndDate, string(r.Status)).Scan(&id)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return p.Get(ctx, id)
}

func (p *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE reservations SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return pgerr.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pgerr.Wrap(err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
