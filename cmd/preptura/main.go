package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderjulianmartinez/preptura/internal/config"
	"github.com/alexanderjulianmartinez/preptura/internal/diagnose"
	"github.com/alexanderjulianmartinez/preptura/internal/server"
	"github.com/alexanderjulianmartinez/preptura/internal/source"
	"github.com/alexanderjulianmartinez/preptura/internal/source/mysql"
	"github.com/alexanderjulianmartinez/preptura/pkg/tabular"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "preptura error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		printUsage()
		return nil
	}

	switch args[1] {
	case "ls":
		return runLs(args[2:])
	case "diag":
		return runDiag(args[2:])
	case "clean":
		return runClean(args[2:])
	case "serve":
		return runServe(args[2:])
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func runLs(args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the preferences file")
	folder := fs.String("folder", "", "folder to scan (default: configured default_folder, then .)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	dir := *folder
	if dir == "" {
		dir = cfg.DefaultFolder
	}
	if dir == "" {
		dir = "."
	}

	files, err := source.ListSupportedFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No supported files in %s\n", dir)
		return nil
	}
	for _, f := range files {
		fmt.Printf("%s\t%d bytes\n", f.Name, f.Size)
	}
	return nil
}

// loadDataset resolves the dataset either from a file path or, when a
// DSN is given, from a MySQL table.
func loadDataset(ctx context.Context, file, dsn, table string) (*tabular.Dataset, error) {
	if dsn != "" {
		if table == "" {
			return nil, fmt.Errorf("missing required flag: --table")
		}
		loader, err := mysql.NewLoader(dsn)
		if err != nil {
			return nil, err
		}
		defer loader.Close()
		return loader.Load(ctx, table)
	}
	if file == "" {
		return nil, fmt.Errorf("missing required flag: --file")
	}
	loader, err := source.ForPath(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return loader.Load(ctx, file)
}

func runDiag(args []string) error {
	fs := flag.NewFlagSet("diag", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the preferences file")
	file := fs.String("file", "", "tabular file to diagnose (.csv or .xlsx)")
	dsn := fs.String("dsn", "", "MySQL DSN; diagnose a database table instead of a file")
	table := fs.String("table", "", "table name when --dsn is set")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	ds, err := loadDataset(context.Background(), *file, *dsn, *table)
	if err != nil {
		return err
	}

	report := diagnose.Diagnose(ds, cfg.Checks)
	return report.WriteText(os.Stdout)
}

func runClean(args []string) error {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	file := fs.String("file", "", "tabular file to clean (.csv or .xlsx)")
	out := fs.String("out", "", "output path (required with --dsn)")
	dsn := fs.String("dsn", "", "MySQL DSN; clean a database table instead of a file")
	table := fs.String("table", "", "table name when --dsn is set")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ds, err := loadDataset(context.Background(), *file, *dsn, *table)
	if err != nil {
		return err
	}

	target := *out
	if target == "" {
		if *file == "" {
			return fmt.Errorf("missing required flag: --out")
		}
		target = *file
	}
	writer, err := source.WriterForPath(target)
	if err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}

	cleaned := diagnose.Clean(ds)
	if err := writer.Write(context.Background(), cleaned, target); err != nil {
		return err
	}

	fmt.Printf("Saved cleaned file to: %s (%d rows, %d columns)\n", target, cleaned.RowCount(), cleaned.ColumnCount())
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the preferences file")
	listen := fs.String("listen", "", "listen address (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	return server.New(cfg, path, slog.Default()).ListenAndServe()
}

func printUsage() {
	fmt.Print(`Preptura - tabular data preprocessor

Usage:
  preptura ls    [--folder <dir>]
  preptura diag  --file <path> | --dsn <dsn> --table <name>
  preptura clean --file <path> [--out <path>] | --dsn <dsn> --table <name> --out <path>
  preptura serve [--listen <addr>]
  preptura help

Commands:
  ls        List supported tabular files in a folder
  diag      Run data-quality diagnostics over one table
  clean     Drop fully-empty rows and columns and save the result
  serve     Start the local HTTP API
  help      Show this help message
`)
}
