package app

import (
	"github.com/spf13/cobra"
)

func NewExploreCmd(mgr Manager) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Load the battery dataset and summarise it",
		Long: `Load the charge and partial charge cycle histories from the dataset root,
print capacity statistics overall and per cycle type, and export the summary
CSVs into the output directory.`,
		Args: cobra.NoArgs,
		Example: `
battctl explore
battctl explore -o json
battctl explore -v
`,
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show per-battery capacity fade")
	outputVal := formatValue("text")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		noColour, _ := cmd.Flags().GetBool("nocolour")
		useColour := !noColour

		return mgr.Explore(cmd.Context(), string(outputVal), verbose, useColour)
	}

	return cmd
}
