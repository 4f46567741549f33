package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/svscore/internal/genes"
	"github.com/inodb/svscore/internal/output"
	"github.com/inodb/svscore/internal/scores"
	"github.com/inodb/svscore/internal/svscore"
	"github.com/inodb/svscore/internal/vcf"
)

func newScoreCmd() *cobra.Command {
	var (
		genesPath  string
		scoresPath string
		outputFile string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "score [flags] <input.vcf>",
		Short: "Annotate structural variants with pathogenicity scores",
		Long: `Annotate structural variants in a VCF file with SVSCORE_* INFO fields.

Header lines pass through unchanged. Data lines are re-emitted sorted by
chromosome (string order) then position, with span, breakend and gene
truncation scores appended to INFO.`,
		Example: `  svscore score --genes genes.txt --scores scores.duckdb input.vcf
  cat input.vcf | svscore score --genes genes.txt --scores scores.tsv.gz -
  svscore score -o scored.vcf input.vcf.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if genesPath == "" {
				genesPath = viper.GetString("genes")
			}
			if scoresPath == "" {
				scoresPath = viper.GetString("scores")
			}
			return runScore(args[0], genesPath, scoresPath, outputFile, verbose)
		},
	}

	cmd.Flags().StringVar(&genesPath, "genes", "", "Gene coordinate table (chrom, start, stop, strand, symbol)")
	cmd.Flags().StringVar(&scoresPath, "scores", "", "Score source: DuckDB database (.duckdb/.db) or tabix-indexed score file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runScore(inputPath, genesPath, scoresPath, outputFile string, verbose bool) error {
	logger := newLogger(verbose)
	defer logger.Sync()

	if genesPath == "" {
		return fmt.Errorf("gene table required (--genes or `svscore config set genes <path>`)")
	}
	if scoresPath == "" {
		return fmt.Errorf("score source required (--scores or `svscore config set scores <path>`)")
	}

	parser, err := vcf.NewParser(inputPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	table, err := genes.Load(genesPath)
	if err != nil {
		return err
	}
	logger.Info("loaded gene table",
		zap.String("path", genesPath),
		zap.Int("genes", table.Len()))

	var source scores.Source
	if scores.IsStore(scoresPath) {
		store, err := scores.OpenStore(scoresPath)
		if err != nil {
			return err
		}
		if !store.Loaded() {
			store.Close()
			return fmt.Errorf("score database %s is empty; build it with `svscore load`", scoresPath)
		}
		source = store
	} else {
		source = scores.NewTabix(scoresPath)
	}
	defer source.Close()

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	writer := output.NewWriter(out)
	if err := writer.WriteHeader(parser.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	scorer := svscore.New(table, source)
	scorer.SetLogger(logger)

	variantCount := 0
	for {
		v, err := parser.Next()
		if err != nil {
			return err
		}
		if v == nil {
			break
		}
		variantCount++

		lines, err := scorer.Score(v)
		if err != nil {
			return err
		}
		writer.Add(lines...)
	}
	scorer.Finish()

	logger.Info("scored variants",
		zap.Int("variants", variantCount),
		zap.Int("lines", writer.Len()))

	return writer.Flush()
}
