package app

import (
	"github.com/spf13/cobra"
)

func NewFormatCmd(mgr Manager) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Format the workspace's source files",
		Long: `Run the configured formatter over every file matched by the include globs,
always with the fixed line length from battctl.yml. If the Python environment
exists, its bin directory is preferred when resolving the formatter binary;
otherwise the formatter is taken from PATH.`,
		Args: cobra.NoArgs,
		Example: `
battctl fmt
battctl fmt --watch
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.FormatSources(cmd.Context(), watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "W", false, "Watch for changes and reformat")

	return cmd
}
