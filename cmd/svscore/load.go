package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/svscore/internal/scores"
)

func newLoadCmd() *cobra.Command {
	var (
		inputPath string
		dbPath    string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Build a local score database from a per-base score file",
		Long: `Bulk-load a tab-delimited per-base score file into a DuckDB database.

The input has columns (chrom, start, stop, name, scores) where the scores
column is a comma-separated list of numeric values. Gzipped input is
supported. The resulting database is passed to "svscore score --scores".`,
		Example: `  svscore load --input scores.tsv.gz --db scores.duckdb`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(inputPath, dbPath, verbose)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Per-base score file (TSV, optionally gzipped)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Output DuckDB database path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runLoad(inputPath, dbPath string, verbose bool) error {
	logger := newLogger(verbose)
	defer logger.Sync()

	store, err := scores.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Info("loading score file",
		zap.String("input", inputPath),
		zap.String("db", dbPath))

	if err := store.Load(inputPath); err != nil {
		return err
	}

	count, err := store.Count()
	if err != nil {
		return err
	}
	logger.Info("score database ready", zap.Int64("rows", count))
	fmt.Printf("Loaded %d score rows into %s\n", count, dbPath)

	return nil
}
