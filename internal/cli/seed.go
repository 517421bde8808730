package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/SolBenven/proyecto-final-prog-av/internal/seed"
)

var (
	seedWorkers int
	seedTimeout time.Duration
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load initial data from a YAML file",
	Long: `Seed applies a YAML seed file: departments, users and an optional
batch of claims. Without a file only the default department set is
created. Claims are classified concurrently with a worker pool.

Departments and users already present are skipped, so re-running a
seed is safe; claims are filed again on every run.

Example:
  reclamos seed
  reclamos seed datos.yaml --workers 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedWorkers, "workers", runtime.NumCPU(), "number of concurrent claim workers")
	seedCmd.Flags().DurationVar(&seedTimeout, "timeout", 10*time.Minute, "total timeout for seeding")
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	loader := seed.NewLoader(a.store, a.directory, a.users, a.claims, seedWorkers, nil, a.logger)

	var sum *seed.Summary
	if len(args) == 1 {
		sum, err = loader.LoadFile(ctx, args[0])
	} else {
		sum, err = loader.Load(ctx, &seed.File{})
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Departamentos creados: %d\n", sum.Departments)
	fmt.Printf("✓ Usuarios creados:      %d\n", sum.Users)
	fmt.Printf("✓ Reclamos creados:      %d\n", sum.Claims)
	for _, e := range sum.Errors {
		fmt.Fprintf(os.Stderr, "✗ %v\n", e)
	}
	if len(sum.Errors) > 0 {
		return fmt.Errorf("seed finished with %d errors", len(sum.Errors))
	}
	return nil
}
