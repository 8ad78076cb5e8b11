package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trailblazer-service/internal/domain"
	"trailblazer-service/internal/platform/db"
	"trailblazer-service/internal/platform/obs"
	"trailblazer-service/internal/ports"
)

const parkColumns = `id, external_code, name, region, lat, lon, description, url, designation`

// parkQueries holds the dialect-specific statements for the parks table.
type parkQueries struct {
	findByExternalCode string
	findByID           string
	insert             string
	update             string
	list               string
	listLocated        string
}

// sqlParkRepository implements ports.ParkRepository over database/sql.
// Each method is a single statement with its own implicit commit.
type sqlParkRepository struct {
	db                *sql.DB
	name              string
	q                 parkQueries
	insertReturningID bool
	isUniqueViolation func(error) bool
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPark(row rowScanner) (*domain.Park, error) {
	var (
		p        domain.Park
		lat, lon sql.NullFloat64
	)
	if err := row.Scan(&p.ID, &p.ExternalCode, &p.Name, &p.Region, &lat, &lon, &p.Description, &p.URL, &p.Designation); err != nil {
		return nil, err
	}
	if lat.Valid && lon.Valid {
		p.Location = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}
	return &p, nil
}

func locationArgs(p *domain.Park) (lat, lon sql.NullFloat64) {
	if p.Location == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: p.Location.Lat, Valid: true}, sql.NullFloat64{Float64: p.Location.Lon, Valid: true}
}

func (s *sqlParkRepository) findOne(ctx context.Context, query string, arg any) (*domain.Park, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%s park repository: DB is nil", s.name)
	}

	p, err := scanPark(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *sqlParkRepository) FindByExternalCode(ctx context.Context, externalCode string) (_ *domain.Park, err error) {
	defer obs.Time(ctx, "parks.FindByExternalCode")(&err)

	p, err := s.findOne(ctx, s.q.findByExternalCode, externalCode)
	if err != nil {
		return nil, fmt.Errorf("find park external_code=%q: %w", externalCode, err)
	}
	return p, nil
}

func (s *sqlParkRepository) FindByID(ctx context.Context, id int64) (_ *domain.Park, err error) {
	defer obs.Time(ctx, "parks.FindByID")(&err)

	p, err := s.findOne(ctx, s.q.findByID, id)
	if err != nil {
		return nil, fmt.Errorf("find park id=%d: %w", id, err)
	}
	return p, nil
}

func (s *sqlParkRepository) Insert(ctx context.Context, park *domain.Park) (_ int64, err error) {
	defer obs.Time(ctx, "parks.Insert")(&err)

	if s.db == nil {
		return 0, fmt.Errorf("%s park repository: DB is nil", s.name)
	}

	lat, lon := locationArgs(park)
	args := []any{park.ExternalCode, park.Name, park.Region, lat, lon, park.Description, park.URL, park.Designation}

	var id int64
	if s.insertReturningID {
		err = s.db.QueryRowContext(ctx, s.q.insert, args...).Scan(&id)
	} else {
		var res sql.Result
		res, err = s.db.ExecContext(ctx, s.q.insert, args...)
		if err == nil {
			id, err = res.LastInsertId()
		}
	}
	if err != nil {
		if s.isUniqueViolation(err) {
			return 0, fmt.Errorf("insert park external_code=%q: %w: %v", park.ExternalCode, domain.ErrStoreConflict, err)
		}
		return 0, fmt.Errorf("insert park external_code=%q: %w", park.ExternalCode, err)
	}

	return id, nil
}

func (s *sqlParkRepository) Update(ctx context.Context, park *domain.Park) (err error) {
	defer obs.Time(ctx, "parks.Update")(&err)

	if s.db == nil {
		return fmt.Errorf("%s park repository: DB is nil", s.name)
	}

	lat, lon := locationArgs(park)
	res, err := s.db.ExecContext(ctx, s.q.update,
		park.Name, park.Region, lat, lon, park.Description, park.URL, park.Designation, park.ID)
	if err != nil {
		return fmt.Errorf("update park id=%d: %w", park.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update park id=%d: rows affected: %w", park.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update park id=%d: %w", park.ID, domain.ErrNotFound)
	}

	return nil
}

func (s *sqlParkRepository) List(ctx context.Context, offset, limit int) (_ []*domain.Park, err error) {
	defer obs.Time(ctx, "parks.List")(&err)

	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("list parks: offset=%d limit=%d must not be negative", offset, limit)
	}

	parks, err := s.queryParks(ctx, s.q.list, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parks: %w", err)
	}
	return parks, nil
}

func (s *sqlParkRepository) ListLocated(ctx context.Context) (_ []*domain.Park, err error) {
	defer obs.Time(ctx, "parks.ListLocated")(&err)

	parks, err := s.queryParks(ctx, s.q.listLocated)
	if err != nil {
		return nil, fmt.Errorf("list located parks: %w", err)
	}
	return parks, nil
}

func (s *sqlParkRepository) queryParks(ctx context.Context, query string, args ...any) ([]*domain.Park, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%s park repository: DB is nil", s.name)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query parks table: %w", err)
	}
	defer rows.Close()

	parks := make([]*domain.Park, 0, 64)
	for rows.Next() {
		p, err := scanPark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		parks = append(parks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return parks, nil
}

// NewParkRepository returns the ParkRepository for an open connection of the given driver.
func NewParkRepository(conn *sql.DB, driver string) (ports.ParkRepository, error) {
	switch driver {
	case db.DriverSQLite:
		return NewSqliteParkRepository(conn), nil
	case db.DriverPostgres:
		return NewSQLParkRepository(conn), nil
	default:
		return nil, fmt.Errorf("park repository: unsupported driver %q", driver)
	}
}
