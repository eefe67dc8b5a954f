// Package cli parses the command line and hands a resolved configuration to
// the TUI.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andyrewlee/cellgrid/internal/config"
	"github.com/andyrewlee/cellgrid/internal/logging"
)

var (
	cliStdout io.Writer = os.Stdout
	cliStderr io.Writer = os.Stderr

	loadConfig = config.Load
)

// BuildInfo is stamped into the binary at release time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Options is what the TUI needs to start.
type Options struct {
	Config *config.Config
	// Path is the file to open. It may not exist yet.
	Path string
	// SheetName picks a worksheet in workbook files.
	SheetName string
	Watch     bool
}

// Launcher starts the TUI.
type Launcher func(Options) error

type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit with code %d", e.code)
}

// Run executes the CLI and returns a process exit code.
func Run(args []string, info BuildInfo, launch Launcher) int {
	root := buildRootCommand(info, launch)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var exitErr exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintln(cliStderr, "Error:", err)
		return 1
	}
	return 0
}

func buildRootCommand(info BuildInfo, launch Launcher) *cobra.Command {
	var (
		sheetName   string
		logLevel    string
		columnWidth int
		noWatch     bool
	)

	root := &cobra.Command{
		Use:   "cellgrid [file]",
		Short: "Browse and edit CSV, TSV and XLSX files in the terminal",
		Long: `cellgrid - a spreadsheet grid for the terminal

Click and drag to select cells, click row numbers or column letters to
select whole rows or columns, and hold shift to extend a selection. Dragging
past the edge of the grid scrolls it.

Examples:
  cellgrid data.csv              Open a CSV file
  cellgrid report.xlsx -s Q3     Open the Q3 worksheet of a workbook
  cellgrid                       Start with an empty, unsaved sheet`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("log-level") {
				if _, err := logging.ParseLevel(logLevel); err != nil {
					return err
				}
				cfg.Grid.LogLevel = logLevel
			}
			if cmd.Flags().Changed("column-width") {
				if columnWidth < 3 {
					return fmt.Errorf("column width must be at least 3, got %d", columnWidth)
				}
				cfg.Grid.ColumnWidth = columnWidth
			}

			opts := Options{Config: cfg, SheetName: sheetName, Watch: !noWatch}
			if len(args) == 1 {
				opts.Path = args[0]
			}
			return launch(opts)
		},
	}
	root.Version = fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
	root.SetOut(cliStdout)
	root.SetErr(cliStderr)
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	root.CompletionOptions.DisableDefaultCmd = true

	root.Flags().StringVarP(&sheetName, "sheet", "s", "", "Worksheet to open in a workbook (default: the first one)")
	root.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	root.Flags().IntVarP(&columnWidth, "column-width", "w", 0, "Default column width in cells")
	root.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the file when it changes on disk")

	root.AddCommand(buildConfigCommand())
	root.AddCommand(buildKeysCommand())

	return root
}
