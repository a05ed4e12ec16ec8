// Package main provides the CLI entry point for tablecalc-go.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ukaji3/tablecalc-go/internal/config"
	"github.com/ukaji3/tablecalc-go/internal/logging"
	"github.com/ukaji3/tablecalc-go/internal/server"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/calc"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/output"
)

var (
	configPath   string
	workbookPath string
	sheet        string
	charset      string
	separator    string
	outputPath   string
	pretty       bool
	logLevel     string
	logFormat    string

	opName      string
	rangeRef    string
	tableName   string
	columnLabel string
	rowLabel    string
	definedName string

	port int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tablecalc",
		Short: "Discover tables in a worksheet and aggregate over them",
		Long: `tablecalc-go reads a tab-separated (or xlsx) worksheet, discovers the
sub-tables laid out on it and computes sum/average/min/max/count over
explicit ranges, named tables, table rows and table columns.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Configuration file (default: "+config.DefaultPath+" if present)")
	pf.StringVarP(&workbookPath, "workbook", "w", "", "Workbook path (overrides config)")
	pf.StringVar(&sheet, "sheet", "", "Worksheet name for xlsx workbooks (default: first sheet)")
	pf.StringVar(&charset, "charset", "", "Charset of delimited files (default: utf-8)")
	pf.StringVar(&separator, "separator", "", "Field separator of delimited files: tab, comma, semicolon, pipe or a character")
	pf.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: console, text, json")

	rootCmd.AddCommand(newTablesCmd(), newTableCmd(), newCalcCmd(), newServeCmd(), newConfigCmd())
	return rootCmd
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables discovered in the workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd)
			if err != nil {
				return err
			}
			data, err := output.TablesToJSON(snap.Revision, snap.Tables(), pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(data)
		},
	}
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table NAME",
		Short: "Show one table with its column and row labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd)
			if err != nil {
				return err
			}
			details, err := snap.TableDetails(args[0])
			if err != nil {
				return err
			}
			data, err := output.ToJSON(details, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(data)
		},
	}
}

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute an aggregate over a range, a table, a table row/column or a defined name",
		Example: `  tablecalc -w capbudg.tsv calc --op sum --range B2:C3
  tablecalc -w capbudg.tsv calc --op average --table Revenue --column Q2
  tablecalc -w book.xlsx calc --op max --name Print_Area`,
		Args: cobra.NoArgs,
		RunE: runCalc,
	}
	f := cmd.Flags()
	f.StringVar(&opName, "op", "sum", "Aggregate: sum, average, min, max, count")
	f.StringVar(&rangeRef, "range", "", "Explicit A1 range, e.g. B2:D10")
	f.StringVar(&tableName, "table", "", "Table label")
	f.StringVar(&columnLabel, "column", "", "Column header label within --table")
	f.StringVar(&rowLabel, "row", "", "Row label (first column) within --table")
	f.StringVar(&definedName, "name", "", "Workbook defined name")
	cmd.MarkFlagsMutuallyExclusive("range", "table", "name")
	cmd.MarkFlagsOneRequired("range", "table", "name")
	for _, sel := range []string{"range", "name"} {
		cmd.MarkFlagsMutuallyExclusive(sel, "column")
		cmd.MarkFlagsMutuallyExclusive(sel, "row")
	}
	return cmd
}

func runCalc(cmd *cobra.Command, args []string) error {
	op, err := calc.ParseOperation(opName)
	if err != nil {
		return err
	}

	if (rangeRef != "" || definedName != "") && (columnLabel != "" || rowLabel != "") {
		return errors.New("--column and --row require --table")
	}

	var spec calc.Spec
	switch {
	case rangeRef != "":
		if spec, err = calc.RefSpec(rangeRef); err != nil {
			return err
		}
	case definedName != "":
		spec = calc.NameSpec(definedName)
	default:
		spec = calc.TableSpec(tableName, columnLabel, rowLabel)
	}

	snap, err := loadSnapshot(cmd)
	if err != nil {
		return err
	}
	res, err := snap.Calculate(spec, op)
	if err != nil {
		return err
	}
	data, err := output.ToJSON(res, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(data)
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workbook over HTTP (SIGHUP reloads it)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, opts, logger, err := settings(cmd.Flags())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = port
	}
	if cfg.Workbook.Path == "" {
		return errors.New("no workbook configured: use --workbook or [workbook] path")
	}

	store := tablecalc.NewStore(cfg.Workbook.Path, opts)
	if _, err := store.Reload(); err != nil {
		// Keep serving; /health reports loaded=false and /reload can retry.
		logger.Warn("workbook not loaded at startup", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				_, _ = store.Reload()
			}
		}
	}()

	srv := server.NewServer(store, logger, cfg.Server.Mode)
	return srv.Run(ctx, fmt.Sprintf(":%d", cfg.Server.Port))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := settings(cmd.Flags())
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			return writeOutput(data)
		},
	}
}

// settings loads the configuration file and applies command line overrides.
func settings(flags *pflag.FlagSet) (*config.AppConfig, tablecalc.Options, *slog.Logger, error) {
	cfg, info, err := config.LoadConfigWithInfo(configPath)
	if err != nil {
		return nil, tablecalc.Options{}, nil, fmt.Errorf("config: %w", err)
	}
	overrides := []struct {
		flag string
		dst  *string
		val  string
	}{
		{"workbook", &cfg.Workbook.Path, workbookPath},
		{"sheet", &cfg.Workbook.Sheet, sheet},
		{"charset", &cfg.Workbook.Charset, charset},
		{"separator", &cfg.Workbook.Separator, separator},
		{"log-level", &cfg.Log.Level, logLevel},
		{"log-format", &cfg.Log.Format, logFormat},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			*o.dst = o.val
		}
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)
	if info.Path != "" {
		logger.Debug("configuration loaded", "path", info.Path)
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, tablecalc.Options{}, nil, fmt.Errorf("config: %w", err)
	}
	opts.Logger = logger
	return cfg, opts, logger, nil
}

func loadSnapshot(cmd *cobra.Command) (*tablecalc.Snapshot, error) {
	cfg, opts, _, err := settings(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if cfg.Workbook.Path == "" {
		return nil, errors.New("no workbook given: use --workbook or [workbook] path")
	}
	return tablecalc.Load(cfg.Workbook.Path, opts)
}

func writeOutput(data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(data))
	return nil
}
