package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLite-backed implementation of the ParkRepository port.
type SqliteParkRepository struct {
	sqlParkRepository
}

func NewSqliteParkRepository(db *sql.DB) *SqliteParkRepository {
	return &SqliteParkRepository{sqlParkRepository{
		db:   db,
		name: "sqlite",
		q: parkQueries{
			findByExternalCode: `SELECT ` + parkColumns + ` FROM parks WHERE external_code = ?;`,
			findByID:           `SELECT ` + parkColumns + ` FROM parks WHERE id = ?;`,
			insert: `
			INSERT INTO parks (external_code, name, region, lat, lon, description, url, designation)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?);
			`,
			update: `
			UPDATE parks
			SET name = ?, region = ?, lat = ?, lon = ?, description = ?, url = ?, designation = ?
			WHERE id = ?;
			`,
			list:        `SELECT ` + parkColumns + ` FROM parks ORDER BY id LIMIT ? OFFSET ?;`,
			listLocated: `SELECT ` + parkColumns + ` FROM parks WHERE lat IS NOT NULL AND lon IS NOT NULL ORDER BY id;`,
		},
		isUniqueViolation: isSqliteUniqueViolation,
	}}
}

func isSqliteUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	// Without extended result codes only the primary code is reported.
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
}
