package app

import (
	"github.com/spf13/cobra"
)

func NewSetupCmd(mgr Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the workspace's Python environment",
		Long: `Create the isolated Python environment for the workspace, pinned to the
configured interpreter version. If the environment directory already exists
nothing is created. The activation instruction is printed either way.`,
		Args: cobra.NoArgs,
		Example: `
battctl setup
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.SetupEnv(cmd.Context())
		},
	}

	return cmd
}
