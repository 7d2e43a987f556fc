package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tooldock version and build details",
	Long: `Print the tooldock release version together with the git commit, build
timestamp and Go runtime it was built with.

CI jobs should pin tooldock itself the same way they pin the tools it
installs; include this output when reporting resolution or cache issues
so the exact binary can be reproduced.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("tooldock CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
