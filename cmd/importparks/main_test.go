package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"trailblazer-service/internal/adapters/directory"
	"trailblazer-service/internal/adapters/repositories"
	"trailblazer-service/internal/domain"
	"trailblazer-service/internal/platform/db"
	"trailblazer-service/internal/ports"
)

func str(s string) *string { return &s }

func newTestRepo(t *testing.T) ports.ParkRepository {
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

func TestExecuteUsageErrors(t *testing.T) {
	called := false
	run := func(ctx context.Context, region string, out io.Writer) error {
		called = true
		return nil
	}

	for _, args := range [][]string{{}, {"NY", "NJ"}, {"NYC"}, {"1A"}} {
		var stdout, stderr bytes.Buffer
		code := execute(context.Background(), args, &stdout, &stderr, run)
		if code != ExitUsage {
			t.Fatalf("args %v: exit code got %d, want %d", args, code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "Usage:") {
			t.Fatalf("args %v: expected usage on stderr, got %q", args, stderr.String())
		}
	}
	if called {
		t.Fatal("import should not run on usage errors")
	}
}

func TestExecuteNormalizesRegion(t *testing.T) {
	var got string
	run := func(ctx context.Context, region string, out io.Writer) error {
		got = region
		return nil
	}

	var stdout, stderr bytes.Buffer
	if code := execute(context.Background(), []string{"ny"}, &stdout, &stderr, run); code != ExitSuccess {
		t.Fatalf("exit code got %d, want 0 (stderr %q)", code, stderr.String())
	}
	if got != "NY" {
		t.Fatalf("region got %q, want NY", got)
	}
}

func TestExecuteFailureExitCode(t *testing.T) {
	run := func(ctx context.Context, region string, out io.Writer) error {
		return WrapExitError(ExitFailure, "NPS import for NY failed", errors.New("directory down"))
	}

	var stdout, stderr bytes.Buffer
	if code := execute(context.Background(), []string{"NY"}, &stdout, &stderr, run); code != ExitFailure {
		t.Fatalf("exit code got %d, want %d", code, ExitFailure)
	}
	if !strings.Contains(stderr.String(), "directory down") {
		t.Fatalf("expected error on stderr, got %q", stderr.String())
	}
	if strings.Contains(stderr.String(), "Usage:") {
		t.Fatalf("unexpected usage text for an import failure: %q", stderr.String())
	}
}

func TestImportRegionPrintsSummary(t *testing.T) {
	repo := newTestRepo(t)
	dir := directory.NewMockDirectory(map[string][]ports.DirectoryRecord{"NY": {
		{ParkCode: str("afbg"), FullName: str("African Burial Ground"), Latitude: str("40.71452681"), Longitude: str("-74.00447358")},
		{ParkCode: str("appa"), FullName: str("Appalachian"), Latitude: str("40.41029575"), Longitude: str("-76.4337548")},
	}})

	var out bytes.Buffer
	if err := importRegion(context.Background(), "NY", dir, repo, &out); err != nil {
		t.Fatalf("import: %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), `{"inserted":2,"updated":0,"total":2}`; got != want {
		t.Fatalf("summary got %s, want %s", got, want)
	}

	out.Reset()
	if err := importRegion(context.Background(), "NY", dir, repo, &out); err != nil {
		t.Fatalf("second import: %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), `{"inserted":0,"updated":0,"total":2}`; got != want {
		t.Fatalf("summary got %s, want %s", got, want)
	}
}

func TestImportRegionFailurePrintsPartialSummary(t *testing.T) {
	repo := newTestRepo(t)
	dir := directory.NewMockDirectory(map[string][]ports.DirectoryRecord{"NY": {
		{ParkCode: str("afbg"), FullName: str("African Burial Ground")},
		{ParkCode: str("appa"), FullName: str("Appalachian")},
	}})
	dir.FailAfter = 1
	dir.Err = &domain.FetchError{Region: "NY", StatusCode: 403, Attempts: 1, Err: errors.New("forbidden")}

	var out bytes.Buffer
	err := importRegion(context.Background(), "NY", dir, repo, &out)
	if GetExitCode(err) != ExitFailure {
		t.Fatalf("exit code got %d, want %d (err %v)", GetExitCode(err), ExitFailure, err)
	}
	if !errors.Is(err, domain.ErrPermanentFetch) {
		t.Fatalf("expected permanent fetch failure, got %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), `{"inserted":1,"updated":0,"total":1}`; got != want {
		t.Fatalf("summary got %s, want %s", got, want)
	}
}
