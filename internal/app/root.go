package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cellworks/battctl/internal/config"
	"github.com/cellworks/battctl/internal/dataset"
	"github.com/cellworks/battctl/internal/fsh"
	"github.com/cellworks/battctl/internal/toolchain"
	"github.com/cellworks/battctl/internal/validator"
)

// Version is the current version of battctl, set at build time.
var Version = "dev"

const InitCmdName = "init"

// Banner with colour codes.
var Banner = "\033[32m" + `
    __          __  __       __  __
   / /_  ____ _/ /_/ /______/ /_/ /
  / __ \/ __ ` + "`" + `/ __/ __/ ___/ __/ /
 / /_/ / /_/ / /_/ /_/ /__/ /_/ /
/_.___/\__,_/\__/\__/\___/\__/_/
` + "\033[0m"

var LongDescription = `
battctl manages a battery-dataset research workspace: it creates the
isolated Python environment the analysis scripts run in, keeps the source
tree formatted, and explores the battery cycle data itself.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stderr io.Writer, envProvider fsh.EnvProvider) *cobra.Command {
	var debug bool
	var noColour bool
	var workspacePath string

	rootCmd := &cobra.Command{
		Use:           "battctl",
		Short:         "A workspace tool for battery dataset research",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          Banner + "\n" + LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help, completion and init commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) || cmd.Name() == InitCmdName {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				if debug {
					ll.Set(slog.LevelDebug)
				}
				return nil
			}

			// 1. Setup Logging
			if debug {
				ll.Set(slog.LevelDebug)
			}

			// 2. Resolve the workspace and its configuration
			pathResolver := fsh.NewPathResolver()
			root, err := config.FindWorkspaceRoot(workspacePath, pathResolver, envProvider)
			if err != nil {
				return err
			}
			cfg, err := config.New(root)
			if err != nil {
				return fmt.Errorf("workspace configuration failed: %w", err)
			}

			logger, _, err := setupLogger(stderr, ll, root)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}

			// 3. Build Dependencies
			ws := &Workspace{Root: root, Config: cfg}
			runner := toolchain.NewExecRunner()
			venv := toolchain.NewVenv(root, cfg, runner, logger)
			formatter := toolchain.NewFormatter(root, cfg, venv, runner, logger)

			loader, err := dataset.NewLoader(validator.NewSanthoshCompiler(), logger)
			if err != nil {
				return fmt.Errorf("dataset loader initialisation failed: %w", err)
			}
			explorer := dataset.NewExplorer(root, cfg, loader, logger)

			// 4. Hydrate the Lazy Wrapper
			realMgr := NewCLIManager(logger, ws, venv, formatter, explorer)
			lazy.SetInner(realMgr)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&workspacePath, "workspace", "w", "", "path to workspace (overrides env/search)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")

	// Subcommands
	rootCmd.AddCommand(NewInitCmd(fsh.NewPathResolver()))
	rootCmd.AddCommand(NewSetupCmd(lazy))
	rootCmd.AddCommand(NewFormatCmd(lazy))
	rootCmd.AddCommand(NewExploreCmd(lazy))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
