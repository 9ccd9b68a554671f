// Package main provides the CLI entry point for tableparser-go.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser"
	"github.com/DemonDamon/tableparser-go/pkg/tableparser/mcpserver"
	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

var (
	configPath       string
	verbose          bool
	outputPath       string
	asJSON           bool
	format           string
	chunkRows        int
	encoding         string
	preserveStyles   bool
	includeEmptyRows bool
	showFormulas     bool
	keepIllegalChars bool
	previewRows      int
	previewCols      int
	batchWorkers     int
)

// fileConfig mirrors ParseOptions for the optional YAML config file.
type fileConfig struct {
	OutputFormat     string `yaml:"output_format"`
	ChunkRows        *int   `yaml:"chunk_rows"`
	Encoding         string `yaml:"encoding"`
	PreserveStyles   bool   `yaml:"preserve_styles"`
	IncludeEmptyRows bool   `yaml:"include_empty_rows"`
	ShowFormulas     bool   `yaml:"show_formulas"`
	KeepIllegalChars bool   `yaml:"keep_illegal_chars"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "tableparser",
		Short: "Convert spreadsheets to Markdown or HTML",
		Long: `tableparser converts Excel and CSV files into Markdown or HTML,
choosing the output format by an automated structural-complexity analysis:
simple sheets flatten to Markdown tables, sheets with merges, multi-level
headers, charts or macros keep their geometry in HTML.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with option defaults")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	parseCmd := &cobra.Command{
		Use:   "parse [input file]",
		Short: "Parse one file and print the rendered output",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	addParseFlags(parseCmd)
	parseCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result object as JSON")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [input file]",
		Short: "Score structural complexity without rendering",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [input file]",
		Short: "Print a bounded excerpt of every sheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	previewCmd.Flags().IntVar(&previewRows, "rows", 10, "Max preview rows per sheet")
	previewCmd.Flags().IntVar(&previewCols, "cols", 10, "Max preview columns per sheet")

	batchCmd := &cobra.Command{
		Use:   "batch [input files or globs...]",
		Short: "Parse multiple files on a worker pool",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}
	addParseFlags(batchCmd)
	batchCmd.Flags().IntVar(&batchWorkers, "workers", tableparser.DefaultBatchWorkers, "Worker pool size")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcpserver.ServeStdio()
		},
	}

	rootCmd.AddCommand(parseCmd, analyzeCmd, previewCmd, batchCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&format, "format", "f", string(models.FormatAuto), "Output format: auto, markdown, html")
	cmd.Flags().IntVar(&chunkRows, "chunk-rows", 256, "Max data rows per HTML table fragment (0 = unbounded)")
	cmd.Flags().StringVar(&encoding, "encoding", "", "CSV encoding (default: detect)")
	cmd.Flags().BoolVar(&preserveStyles, "preserve-styles", false, "Emit inline cell styles in HTML output")
	cmd.Flags().BoolVar(&includeEmptyRows, "include-empty-rows", false, "Keep rows whose cells are all blank")
	cmd.Flags().BoolVar(&showFormulas, "show-formulas", false, "Render formula text instead of cached results")
	cmd.Flags().BoolVar(&keepIllegalChars, "keep-illegal-chars", false, "Do not strip control characters")
}

// buildOptions layers config-file defaults under command-line flags.
func buildOptions(cmd *cobra.Command) (tableparser.ParseOptions, error) {
	opts := tableparser.DefaultParseOptions()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return opts, fmt.Errorf("read config: %w", err)
		}
		var cfg fileConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return opts, fmt.Errorf("parse config: %w", err)
		}
		if cfg.OutputFormat != "" {
			opts.OutputFormat = models.OutputFormat(cfg.OutputFormat)
		}
		if cfg.ChunkRows != nil {
			opts.ChunkRows = *cfg.ChunkRows
		}
		opts.Encoding = cfg.Encoding
		opts.PreserveStyles = cfg.PreserveStyles
		opts.IncludeEmptyRows = cfg.IncludeEmptyRows
		opts.ShowFormulas = cfg.ShowFormulas
		opts.CleanIllegalChars = !cfg.KeepIllegalChars
	}

	if cmd.Flags().Changed("format") {
		opts.OutputFormat = models.OutputFormat(format)
	}
	if cmd.Flags().Changed("chunk-rows") {
		opts.ChunkRows = chunkRows
	}
	if cmd.Flags().Changed("encoding") {
		opts.Encoding = encoding
	}
	if cmd.Flags().Changed("preserve-styles") {
		opts.PreserveStyles = preserveStyles
	}
	if cmd.Flags().Changed("include-empty-rows") {
		opts.IncludeEmptyRows = includeEmptyRows
	}
	if cmd.Flags().Changed("show-formulas") {
		opts.ShowFormulas = showFormulas
	}
	if cmd.Flags().Changed("keep-illegal-chars") {
		opts.CleanIllegalChars = !keepIllegalChars
	}
	return opts, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	result := tableparser.New().Parse(args[0], opts)

	var out string
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		out = string(data)
	} else {
		if !result.Success {
			return errors.New(result.Error)
		}
		out = strings.Join(result.Content, "\n")
	}

	if outputPath != "" {
		return os.WriteFile(outputPath, []byte(out), 0644)
	}
	fmt.Println(out)
	if !result.Success {
		return errors.New(result.Error)
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	score, err := tableparser.New().AnalyzeOnly(args[0])
	if err != nil {
		return err
	}
	return printJSON(score)
}

func runPreview(cmd *cobra.Command, args []string) error {
	previews, err := tableparser.New().Preview(args[0], previewRows, previewCols)
	if err != nil {
		return err
	}
	return printJSON(previews)
}

func runBatch(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	paths, err := expandGlobs(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := tableparser.ParseBatch(ctx, paths, opts, batchWorkers)
	return printJSON(results)
}

// expandGlobs resolves glob patterns in args. A pattern matching nothing is
// kept verbatim so the batch result reports it as a failed file.
func expandGlobs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
