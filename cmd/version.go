package cmd

import (
	"runtime"

	"github.com/huangsam/scorecard/schema"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of scorecard.",
	Long: `Display the release version, commit, build time and Go runtime.

Generated documents carry no version stamp, so record this output next to
exported models when a build must be reproduced.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("scorecard CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
		cmd.Printf("  PMML:    %s\n", schema.PMMLVersion)
	},
}
