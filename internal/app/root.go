package app

import (
	"fmt"
	"io"
	"os"

	"github.com/blackwell-systems/bookcase/internal/catalog"
	"github.com/blackwell-systems/bookcase/internal/config"
	"github.com/blackwell-systems/bookcase/internal/library"
	"github.com/blackwell-systems/bookcase/internal/logging"
	"github.com/blackwell-systems/bookcase/internal/storage"
	"github.com/blackwell-systems/bookcase/internal/tui"
	"github.com/blackwell-systems/bookcase/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	store  *library.Store
	logger = zap.NewNop()

	// Set per invocation so commands can be run against buffers.
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	appVersion = "dev"

	flagNoColor       bool
	flagNoInteractive bool
	flagVerbose       bool
	flagEphemeral     bool
	flagConfig        string
	flagData          string
)

// SetVersion records the build version for the version command.
func SetVersion(v string) {
	appVersion = v
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookcase",
		Short: "Keep track of the books you own and the ones you have read",
		Long: `bookcase keeps a personal library: title, author, page count, cover and
whether you have read each book.

Every change is saved immediately to a local key-value file
(~/.local/share/bookcase/library.yml by default).

Run 'bookcase' with no arguments to open the interactive browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return tui.RunBrowser(store, tui.BrowserOptions{
					Placeholder: cfg.Display.EffectivePlaceholder(),
					Cards:       cfg.Display.CardView(),
				})
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode and prompts")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep the library in memory only (nothing is saved)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/bookcase/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "Library file path (overrides storage.path)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		stdin, stdout, stderr = cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()
		util.InitColor(flagNoColor)

		// These never touch the library.
		switch cmd.Name() {
		case "version", "completion", "help":
			return nil
		}

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagData != "" {
			cfg.Storage.Path = config.ExpandHome(flagData)
		}
		if flagEphemeral {
			cfg.Storage.Ephemeral = true
		}

		logger, err = logging.New(cfg.Log.Level, flagVerbose)
		if err != nil {
			return err
		}

		kv, err := openStorage(cfg.Storage)
		if err != nil {
			return err
		}

		adapter := catalog.NewAdapter(kv)
		adapter.DefaultSort = cfg.Display.EffectiveSort()
		store = library.New(adapter, library.WithLogger(logger))
		if err := store.Load(); err != nil {
			return fmt.Errorf("loading library: %w", err)
		}
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}

	rootCmd.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newListCmd(),
		newDeleteCmd(),
		newToggleCmd(),
		newSortCmd(),
		newThemeCmd(),
		newIndexCmd(),
		newCoversCmd(),
		newReadmeCmd(),
		newStatsCmd(),
		newResetCmd(),
		newInitCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)

	return rootCmd
}

// Execute is the entry point called from main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// openStorage opens the key-value store the library lives in.
func openStorage(sc config.StorageConfig) (storage.Store, error) {
	if sc.Ephemeral {
		logger.Debug("using in-memory storage")
		return storage.NewMemory(sc.QuotaBytes), nil
	}
	fs, err := storage.OpenFile(sc.Path, sc.QuotaBytes)
	if err != nil {
		return nil, fmt.Errorf("opening library: %w", err)
	}
	logger.Debug("using file storage", zap.String("path", fs.Path()))
	return fs, nil
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Fprintln(stdout, color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Fprintln(stdout, color.CyanString(fmt.Sprintf(format, a...)))
}

// interactive reports whether prompts and pickers may be shown.
func interactive() bool {
	return !flagNoInteractive && util.IsInteractive()
}
