// Package main provides the svscore command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svscore",
		Short: "Score structural variants in VCF files",
		Long: `svscore annotates structural variant records in a VCF stream with
interval-based pathogenicity scores and gene truncation analysis.

Records must carry SVTYPE (DEL, DUP, INV, BND, INS) and, where the
truncation analysis applies, gene/exon/intron annotations added by an
upstream annotation step.`,
		Example: `  # One-time: build a local score database from a per-base score file
  svscore load --input scores.tsv.gz --db scores.duckdb

  # Score a VCF against the local database
  svscore score --genes genes.txt --scores scores.duckdb input.vcf

  # Or query a tabix-indexed score file directly
  svscore score --genes genes.txt --scores scores.tsv.gz input.vcf`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newScoreCmd())
	cmd.AddCommand(newLoadCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("svscore version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// initConfig loads ~/.svscore.yaml and SVSCORE_* environment variables.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".svscore")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("SVSCORE")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// newLogger builds the stderr logger used for run diagnostics. Data
// output always goes to stdout untouched.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
