package repositories

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// SQLParkRepository is the Postgres (pgx) implementation of the ParkRepository port.
type SQLParkRepository struct {
	sqlParkRepository
}

func NewSQLParkRepository(db *sql.DB) *SQLParkRepository {
	return &SQLParkRepository{sqlParkRepository{
		db:   db,
		name: "postgres",
		q: parkQueries{
			findByExternalCode: `SELECT ` + parkColumns + ` FROM parks WHERE external_code = $1;`,
			findByID:           `SELECT ` + parkColumns + ` FROM parks WHERE id = $1;`,
			insert: `
			INSERT INTO parks (external_code, name, region, lat, lon, description, url, designation)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;
			`,
			update: `
			UPDATE parks
			SET name = $1, region = $2, lat = $3, lon = $4, description = $5, url = $6, designation = $7
			WHERE id = $8;
			`,
			list:        `SELECT ` + parkColumns + ` FROM parks ORDER BY id LIMIT $1 OFFSET $2;`,
			listLocated: `SELECT ` + parkColumns + ` FROM parks WHERE lat IS NOT NULL AND lon IS NOT NULL ORDER BY id;`,
		},
		insertReturningID: true,
		isUniqueViolation: isPostgresUniqueViolation,
	}}
}

func isPostgresUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
