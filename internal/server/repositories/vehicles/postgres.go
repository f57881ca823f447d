package vehicles

import (
	"context"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/pgerr"
)

// A vehicle is unavailable while an open reservation covers today.
const selectVehicle = `SELECT v.id, v.name, v.year, v.type, v.engine, v.size, v.created_at, v.updated_at,
  NOT EXISTS (
    SELECT 1 FROM reservations r
    WHERE r.vehicle_id = v.id
      AND r.status IN ('PENDING', 'ACTIVE')
      AND r.start_date <= CURRENT_DATE AND r.end_date > CURRENT_DATE
  ) AS available
FROM vehicles v`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row scanner) (*models.Vehicle, error) {
	var (
		v                models.Vehicle
		created, updated time.Time
		available        bool
	)
	if err := row.Scan(&v.ID, &v.Name, &v.Year, &v.Type, &v.Engine, &v.Size,
		&created, &updated, &available); err != nil {
		return nil, err
	}
	v.CreatedAt, v.UpdatedAt, v.Available = &created, &updated, &available
	return &v, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, selectVehicle+` ORDER BY v.created_at, v.id`)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	result := make([]models.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, pgerr.Wrap(err)
		}
		result = append(result, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRowContext(ctx, selectVehicle+` WHERE v.id = $1`, id))
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return v, nil
}

func (r *PostgresRepository) Create(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	query :=
		`INSERT INTO vehicles (name, year, type, engine, size)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`

	var created, updated time.Time
	v := &models.Vehicle{Name: req.Name, Year: req.Year, Type: req.Type, Engine: req.Engine, Size: req.Size}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Year, req.Type, req.Engine, req.Size).
		Scan(&v.ID, &created, &updated)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}

	available := true
	v.CreatedAt, v.UpdatedAt, v.Available = &created, &updated, &available
	return v, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error) {
	query :=
		`UPDATE vehicles SET
		   name = COALESCE($2, name),
		   year = COALESCE($3, year),
		   type = COALESCE($4, type),
		   engine = COALESCE($5, engine),
		   size = COALESCE($6, size),
		   updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, req.Name, req.Year, req.Type, req.Engine, req.Size)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, pgerr.Wrap(err)
	} else if n == 0 {
		return nil, common.ErrorNotFound
	}
	return r.Get(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
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
