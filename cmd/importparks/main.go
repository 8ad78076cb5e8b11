package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"trailblazer-service/internal/adapters/directory"
	"trailblazer-service/internal/app"
	"trailblazer-service/internal/config"
	"trailblazer-service/internal/domain"
	"trailblazer-service/internal/platform/logging"
	"trailblazer-service/internal/ports"
	"trailblazer-service/internal/services"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// main imports parks for one region from the park directory:
//
//	importparks NY
func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr, runWithConfig)
	stop()
	os.Exit(code)
}

// importFunc runs one import and writes the summary to out.
type importFunc func(ctx context.Context, region string, out io.Writer) error

func execute(ctx context.Context, args []string, stdout, stderr io.Writer, run importFunc) int {
	cmd := newRootCmd(run)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	code := GetExitCode(err)
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if code == ExitUsage {
		fmt.Fprintln(stderr, cmd.UsageString())
	}
	return code
}

func newRootCmd(run importFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "importparks <REGION>",
		Short: "Import parks for one two-letter region code from the park directory",
		Long: `Fetch every park the directory lists for REGION and upsert it by park code.

Re-running against unchanged directory data changes nothing. A failed run keeps
every park it already wrote and is safe to re-run.`,
		Example:       "  importparks NY",
		Args:          regionArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), domain.NormalizeRegion(args[0]), cmd.OutOrStdout())
		},
	}
}

func regionArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return NewExitError(ExitUsage, fmt.Sprintf("expected exactly one region code, got %d arguments", len(args)))
	}
	if !domain.ValidRegion(args[0]) {
		return NewExitError(ExitUsage, fmt.Sprintf("%q is not a two-letter region code (e.g. NY, NH, NJ)", args[0]))
	}
	return nil
}

func runWithConfig(ctx context.Context, region string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return WrapExitError(ExitFailure, "load config", err)
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if cfg.Directory.APIKey == "" {
		logging.L().Warn().Msg("NPS_API_KEY is not set; the directory may reject requests")
	}

	dir, err := directory.NewNPSClient(cfg.Directory)
	if err != nil {
		return WrapExitError(ExitFailure, "create directory client", err)
	}

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return WrapExitError(ExitFailure, "open store", err)
	}
	defer store.Close()

	return importRegion(ctx, region, dir, store.Repo, out)
}

// importRegion runs the import and prints the summary as JSON. On failure the
// summary holds what was committed before the error.
func importRegion(ctx context.Context, region string, dir ports.ParkDirectory, repo ports.ParkRepository, out io.Writer) error {
	summary, err := services.ImportByRegion(ctx, region, dir, repo)

	if encErr := json.NewEncoder(out).Encode(summary); encErr != nil && err == nil {
		return WrapExitError(ExitFailure, "write summary", encErr)
	}

	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return WrapExitError(ExitUsage, "invalid region", err)
		}
		return WrapExitError(ExitFailure, fmt.Sprintf("NPS import for %s failed", region), err)
	}
	return nil
}
