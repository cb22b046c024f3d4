package patrule

import (
	"fmt"

	"github.com/arthur-debert/patrule/internal/version"
	"github.com/arthur-debert/patrule/pkg/config"
	"github.com/arthur-debert/patrule/pkg/database"
	"github.com/arthur-debert/patrule/pkg/logging"
	"github.com/arthur-debert/patrule/pkg/rules"
	"github.com/arthur-debert/patrule/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	verbosity      int
	configFile     string
	format         string
	noBuiltinRules bool
	files          []string

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "patrule",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but report incorrect usage
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&a.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&a.format, "format", "auto", MsgFlagFormat)
	flags.BoolVarP(&a.noBuiltinRules, "no-builtin-rules", "r", false, MsgFlagNoBuiltinRules)
	flags.StringArrayVarP(&a.files, "file", "f", nil, MsgFlagFile)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newPrintCmd(a))
	rootCmd.AddCommand(newLimitsCmd(a))
	rootCmd.AddCommand(newLookupCmd(a))
	rootCmd.AddCommand(newSuffixesCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// setup configures logging and loads the configuration. Flags that were
// set explicitly override the config file and environment.
func (a *app) setup(cmd *cobra.Command) error {
	logging.SetupLogger(a.verbosity)

	flags := cmd.Flags()
	overrides := map[string]interface{}{}
	if flags.Changed("verbose") {
		overrides["log.verbosity"] = a.verbosity
	}
	if flags.Changed("format") {
		overrides["output.format"] = a.format
	}
	if flags.Changed("no-builtin-rules") {
		overrides["rules.builtin"] = !a.noBuiltinRules
	}
	if flags.Changed("file") {
		overrides["rules.files"] = a.files
	}

	cfg, err := config.Load(config.Options{
		File:      a.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	a.cfg = cfg

	if cfg.Log.Verbosity != a.verbosity {
		logging.SetupLogger(cfg.Log.Verbosity)
	}

	log.Debug().
		Str("command", cmd.Name()).
		Str("config", cfg.Source).
		Msg("Command started")
	return nil
}

func (a *app) loadDatabase(cmd *cobra.Command) (*database.Database, error) {
	db, err := database.Load(cmd.Context(), database.Options{
		Builtin:     a.cfg.Rules.Builtin,
		Files:       a.cfg.Rules.Files,
		Concurrency: a.cfg.Rules.Concurrency,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadDatabase, err)
	}
	return db, nil
}

func (a *app) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf(MsgErrFormat, err)
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

func newPrintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "print",
		Short:   MsgPrintShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.loadDatabase(cmd)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderResult(newPrintResult(db.Rules))
		},
	}
}

func newLimitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "limits",
		Short:   MsgLimitsShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.loadDatabase(cmd)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderResult(newLimitsResult(db))
		},
	}
}

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "lookup PATTERN",
		Short:   MsgLookupShort,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.loadDatabase(cmd)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			pattern, _ := rules.FindPercent(args[0])
			res := newLookupResult(pattern, db.Rules.FindByTarget(pattern))
			if len(res.Rules) == 0 {
				return r.RenderMessage(fmt.Sprintf(MsgNoRulesForTarget, pattern))
			}
			return r.RenderResult(res)
		},
	}
}

func newSuffixesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "suffixes",
		Short:   MsgSuffixesShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.loadDatabase(cmd)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			suffixes := db.Targets.Suffixes()
			if len(suffixes) == 0 {
				return r.RenderMessage(MsgNoSuffixes)
			}
			return r.RenderResult(suffixesResult{Suffixes: suffixes})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
