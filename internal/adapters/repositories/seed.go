package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"trailblazer-service/internal/domain"
	"trailblazer-service/internal/platform/db"

	"github.com/goccy/go-json"
)

type ParkSeed struct {
	ExternalCode string   `json:"external_code"`
	Name         string   `json:"name"`
	Region       string   `json:"region"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	Designation  string   `json:"designation"`
}

// Populate the parks table from a JSON file. Rows are upserted by external code,
// so seeding twice leaves the table unchanged. Returns the number of seeded parks.
func SeedFromJSON(ctx context.Context, conn *sql.DB, driver, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed parks: read %q: %w", jsonPath, err)
	}

	var data []ParkSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed parks: parse json: %w", err)
	}

	parks := make([]domain.Park, 0, len(data))
	for i, item := range data {
		code := strings.TrimSpace(item.ExternalCode)
		if code == "" {
			return 0, fmt.Errorf("seed parks: item at index %d: external_code cannot be empty", i+1)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return 0, fmt.Errorf("seed parks: item %q: name cannot be empty", code)
		}

		region := domain.NormalizeRegion(item.Region)
		if !domain.ValidRegion(region) {
			return 0, fmt.Errorf("seed parks: item %q: invalid region %q", code, item.Region)
		}

		if (item.Lat == nil) != (item.Lon == nil) {
			return 0, fmt.Errorf("seed parks: item %q: lat and lon must both be set or both be omitted", code)
		}

		p := domain.Park{
			ExternalCode: code,
			Name:         name,
			Region:       region,
			Description:  item.Description,
			URL:          item.URL,
			Designation:  item.Designation,
		}
		if item.Lat != nil {
			p.Location = &domain.Coordinates{Lat: *item.Lat, Lon: *item.Lon}
		}
		parks = append(parks, p)
	}

	var query string
	switch driver {
	case db.DriverSQLite:
		query = `
		INSERT INTO parks (external_code, name, region, lat, lon, description, url, designation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (external_code) DO UPDATE
		SET name = excluded.name,
			region = excluded.region,
			lat = excluded.lat,
			lon = excluded.lon,
			description = excluded.description,
			url = excluded.url,
			designation = excluded.designation;
		`
	case db.DriverPostgres:
		query = `
		INSERT INTO parks (external_code, name, region, lat, lon, description, url, designation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (external_code) DO UPDATE
		SET name = EXCLUDED.name,
			region = EXCLUDED.region,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			description = EXCLUDED.description,
			url = EXCLUDED.url,
			designation = EXCLUDED.designation;
		`
	default:
		return 0, fmt.Errorf("seed parks: unsupported driver %q", driver)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed parks: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed parks: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range parks {
		p := &parks[i]
		lat, lon := locationArgs(p)
		if _, err := stmt.ExecContext(ctx, p.ExternalCode, p.Name, p.Region, lat, lon, p.Description, p.URL, p.Designation); err != nil {
			return 0, fmt.Errorf("seed parks: insert external_code=%q: %w", p.ExternalCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed parks: commit tx: %w", err)
	}

	return len(parks), nil
}
