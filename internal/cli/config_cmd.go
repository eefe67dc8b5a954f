package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andyrewlee/cellgrid/internal/config"
	"github.com/andyrewlee/cellgrid/internal/keymap"
	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
)

func buildConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change grid settings",
	}
	cmd.AddCommand(buildConfigShowCommand())
	cmd.AddCommand(buildConfigSetCommand())
	return cmd
}

func buildConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective grid settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cliStdout, "config file:            %s\n", cfg.Paths.ConfigPath)
			fmt.Fprintf(cliStdout, "column_width:           %d\n", cfg.Grid.ColumnWidth)
			fmt.Fprintf(cliStdout, "autoscroll_interval_ms: %d\n", cfg.Grid.AutoScrollIntervalMs)
			fmt.Fprintf(cliStdout, "log_level:              %s\n", cfg.Grid.LogLevel)
			fmt.Fprintf(cliStdout, "theme:                  %s\n", cfg.Grid.Theme)
			return nil
		},
	}
}

func buildConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a grid setting in the config file",
		Long: `Change a grid setting in the config file.

Keys:
  column_width            default column width (at least 3)
  autoscroll_interval_ms  delay between auto-scroll steps
  log_level               debug, info, warn or error
  theme                   dark or light`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := applySetting(&cfg.Grid, args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.SaveGridSettings(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cliStdout, "%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func applySetting(g *config.GridSettings, key, value string) error {
	switch key {
	case "column_width":
		n, err := strconv.Atoi(value)
		if err != nil || n < 3 {
			return fmt.Errorf("column_width must be an integer of at least 3, got %q", value)
		}
		g.ColumnWidth = n
	case "autoscroll_interval_ms":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("autoscroll_interval_ms must be a positive integer, got %q", value)
		}
		g.AutoScrollIntervalMs = n
	case "log_level":
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
		g.LogLevel = strings.ToLower(value)
	case "theme":
		switch common.ThemeID(value) {
		case common.ThemeDark, common.ThemeLight:
			g.Theme = value
		default:
			return fmt.Errorf("theme must be dark or light, got %q", value)
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func buildKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List key bindings, including overrides from the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			km := keymap.New(cfg.KeyMap)

			byGroup := map[string][]keymap.ActionInfo{}
			var groups []string
			for _, info := range keymap.ActionInfos() {
				if _, ok := byGroup[info.Group]; !ok {
					groups = append(groups, info.Group)
				}
				byGroup[info.Group] = append(byGroup[info.Group], info)
			}
			sort.Strings(groups)
			for _, group := range groups {
				fmt.Fprintln(cliStdout, group)
				for _, info := range byGroup[group] {
					keys := keymap.BindingForAction(km, info.Action).Keys()
					fmt.Fprintf(cliStdout, "  %-22s %s\n", strings.Join(keys, ", "), info.Desc)
				}
			}
			return nil
		},
	}
}
