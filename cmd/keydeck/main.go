package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studiowebux/keydeck/internal/cli"
	"github.com/studiowebux/keydeck/internal/config"
	"github.com/studiowebux/keydeck/internal/keysource"
	"github.com/studiowebux/keydeck/internal/logging"
	"github.com/studiowebux/keydeck/internal/shortcuts"
	"github.com/studiowebux/keydeck/internal/tui"
	"github.com/studiowebux/keydeck/internal/usage"
	"github.com/studiowebux/keydeck/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "keydeck",
	Short: "keydeck - keyboard shortcut registry",
	Long: `keydeck manages keyboard shortcuts: built-in defaults, user overrides
and custom shortcuts, with a terminal browser and a WebSocket bridge for
browser front-ends.

Run without arguments to start the TUI.

Examples:
  keydeck                              # Browse and try shortcuts
  keydeck list -o json                 # Print all shortcuts as JSON
  keydeck list --query "[?enabled].id" # JMESPath query
  keydeck format ctrl shift z          # Prints Ctrl+Shift+Z
  keydeck validate my-shortcuts.yaml   # Check a shortcut file
  keydeck serve --addr 127.0.0.1:7331  # Bridge browser key events`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := keysource.NewTea()
		reg, err := cli.LoadRegistry(src, flagConfig, logging.Component("registry"))
		if err != nil {
			return err
		}
		defer reg.Destroy()

		if mgr := openUsage(); mgr != nil {
			defer mgr.Close()
			defer usage.Track(reg, mgr, "tui")()
		}

		return tui.Run(reg, src, version.Version)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered shortcuts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := cli.LoadRegistry(nil, flagConfig, logging.Component("registry"))
		if err != nil {
			return err
		}
		defer reg.Destroy()

		return cli.List(cmd.OutOrStdout(), reg, cli.ListOptions{
			Category: flagCategory,
			Output:   flagOutput,
			Query:    flagQuery,
		})
	},
}

var formatCmd = &cobra.Command{
	Use:   "format <tokens...>",
	Short: "Print the display label of a key combination",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Format(cmd.OutOrStdout(), args)
	},
}

var createCmd = &cobra.Command{
	Use:   "create <key>",
	Short: "Build the key list for a combination",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Create(cmd.OutOrStdout(), shortcuts.Combo{
			Ctrl:  flagCtrl,
			Shift: flagShift,
			Alt:   flagAlt,
			Meta:  flagMeta,
			Key:   args[0],
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a shortcut file, or the active shortcuts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := cli.LoadRegistry(nil, flagConfig, logging.Component("registry"))
		if err != nil {
			return err
		}
		defer reg.Destroy()

		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return cli.Validate(cmd.OutOrStdout(), reg, path)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the active shortcuts as an editable shortcut file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := cli.LoadRegistry(nil, flagConfig, logging.Component("registry"))
		if err != nil {
			return err
		}
		defer reg.Destroy()

		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return cli.Export(cmd.OutOrStdout(), reg, path)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the WebSocket key bridge for browser front-ends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := cli.ServeOptions{
			Addr:       flagAddr,
			ConfigPath: flagConfig,
			Log:        logging.Component("bridge"),
		}
		if mgr := openUsage(); mgr != nil {
			defer mgr.Close()
			opts.Usage = mgr
		}

		return cli.Serve(ctx, cmd.OutOrStdout(), opts)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often each shortcut fired",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := usage.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer mgr.Close()

		return cli.Stats(cmd.OutOrStdout(), mgr, cli.StatsOptions{Clear: flagClear, Recent: flagRecent})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Version(cmd.Context(), cmd.OutOrStdout(), version.NewChecker(), flagCheck)
	},
}

// Persistent flags
var (
	flagConfig   string
	flagLogPath  string
	flagLogLevel string
	flagNoUsage  bool
)

// Subcommand flags
var (
	flagCategory string
	flagOutput   string
	flagQuery    string
	flagCtrl     bool
	flagShift    bool
	flagAlt      bool
	flagMeta     bool
	flagAddr     string
	flagClear    bool
	flagRecent   int
	flagCheck    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Shortcut file (default .keydeck.yaml, then ~/.keydeck/shortcuts.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "logpath", "", "Diagnostics log directory (env "+logging.EnvLogPath+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Diagnostics level (debug/info/warn/error)")
	rootCmd.PersistentFlags().BoolVar(&flagNoUsage, "no-usage", false, "Do not record shortcut usage")

	listCmd.Flags().StringVar(&flagCategory, "category", "", "Only list one category (navigation/editing/global/custom)")
	listCmd.Flags().StringVarP(&flagOutput, "output", "o", "table", "Output format (table/json/yaml)")
	listCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query over the JSON listing")

	createCmd.Flags().BoolVar(&flagCtrl, "ctrl", false, "Add the ctrl modifier")
	createCmd.Flags().BoolVar(&flagShift, "shift", false, "Add the shift modifier")
	createCmd.Flags().BoolVar(&flagAlt, "alt", false, "Add the alt modifier")
	createCmd.Flags().BoolVar(&flagMeta, "meta", false, "Add the meta (Cmd) modifier")

	serveCmd.Flags().StringVar(&flagAddr, "addr", "127.0.0.1:7331", "Listen address")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded usage")
	statsCmd.Flags().IntVar(&flagRecent, "recent", 0, "List the N most recent fires instead of totals")
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check for a newer release")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup initializes configuration paths and diagnostics for every command
func setup(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	dir, err := logging.ResolveDir(flagLogPath, config.LogDir)
	if err != nil {
		return fmt.Errorf("failed to resolve log directory: %w", err)
	}
	logging.SetDir(dir)
	if err := logging.Init(logging.ParseLevel(flagLogLevel)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	log := logging.Logger()
	log.Debug().Str("command", cmd.Name()).Str("version", version.Version).Msg("start")
	return nil
}

// openUsage opens the usage store unless disabled. Failure only disables
// recording.
func openUsage() *usage.Manager {
	if flagNoUsage {
		return nil
	}
	mgr, err := usage.NewManager(config.DatabasePath)
	if err != nil {
		log := logging.Component("usage")
		log.Warn().Err(err).Msg("usage recording disabled")
		return nil
	}
	return mgr
}
