package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cellworks/battctl/internal/config"
	"github.com/cellworks/battctl/internal/dataset"
	"github.com/cellworks/battctl/internal/fsh"
)

// NewInitCmd returns a new cobra command for creating a workspace.
func NewInitCmd(pathResolver fsh.PathResolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   InitCmdName + " [dirpath]",
		Short: "Create a new battctl workspace",
		Long: `Create a new directory and initialise it with a default battctl configuration
file and the dataset directory layout.`,
		Args: cobra.ExactArgs(1),
		Example: `
battctl init ./my-workspace
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirpath := args[0]

			// 1. Create directory if it doesn't exist
			if err := os.MkdirAll(dirpath, 0o750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}

			configPath := filepath.Join(dirpath, config.WorkspaceConfigFile)

			// 2. Check if config file already exists
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("workspace already exists: %s", configPath)
			}

			// 3. Write default config
			if err := os.WriteFile(configPath, []byte(config.DefaultConfigContent), 0o600); err != nil {
				return fmt.Errorf("failed to write configuration file: %w", err)
			}

			// 4. Create the dataset directory layout
			cfg := &config.Config{}
			if err := cfg.Validate(); err != nil {
				return err
			}
			layout := []string{
				cfg.Dataset.OutputDir,
				cfg.Dataset.PlotsDir,
				filepath.Join(cfg.Dataset.DataRoot, string(dataset.CycleTypeCharge)),
				filepath.Join(cfg.Dataset.DataRoot, string(dataset.CycleTypePartialCharge)),
			}
			for _, dir := range layout {
				if err := os.MkdirAll(filepath.Join(dirpath, dir), 0o750); err != nil {
					return fmt.Errorf("failed to create %s: %w", dir, err)
				}
			}

			cmd.Printf("Successfully created new workspace at: %s\n", dirpath)
			cmd.Printf("%s", addEnvironmentVariableInstructions(pathResolver, dirpath))
			cmd.Println("\nTo create the Python environment, run:")
			cmd.Printf("  battctl setup\n")

			return nil
		},
	}

	return cmd
}

func addEnvironmentVariableInstructions(pathResolver fsh.PathResolver, dirpath string) string {
	return addEnvironmentVariableInstructionsForOS(pathResolver, dirpath, runtime.GOOS)
}

func addEnvironmentVariableInstructionsForOS(pathResolver fsh.PathResolver, dirpath, goos string) string {
	abs, err := pathResolver.Abs(dirpath)
	if err != nil {
		abs = dirpath
	}

	envVar := config.WorkspaceEnvVar
	instructions := "To use this workspace by default, we recommend you set an environment variable. Run:\n"

	switch goos {
	case "windows":
		instructions += fmt.Sprintf("\n  setx %s %q && set %q\n", envVar, abs, envVar+"="+abs)
	case "darwin":
		instructions += fmt.Sprintf("\n  echo 'export %s=%q' >> ~/.zshrc && source ~/.zshrc\n", envVar, abs)
	default:
		instructions += fmt.Sprintf("\n  echo 'export %s=%q' >> ~/.bashrc && source ~/.bashrc\n", envVar, abs)
	}

	return instructions
}
