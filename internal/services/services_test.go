package services

import (
	"context"
	"path/filepath"
	"testing"
	"trailblazer-service/internal/adapters/repositories"
	"trailblazer-service/internal/platform/db"
)

func newTestRepo(t *testing.T) *repositories.SqliteParkRepository {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.DriverSQLite, filepath.Join(t.TempDir(), "parks.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := repositories.InitSchema(ctx, conn, db.DriverSQLite); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return repositories.NewSqliteParkRepository(conn)
}
