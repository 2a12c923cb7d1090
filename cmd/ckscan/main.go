package main

import (
	"os"

	"github.com/ludo-technologies/ckscan/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ckscan",
	Short: "A CK Metrics Analyzer for Object-Oriented Code",
	Long: `ckscan computes the Chidamber & Kemerer object-oriented design
metrics over the classes of a codebase.

Metrics:
  • WMC  - Weighted Methods per Class
  • DIT  - Depth of Inheritance Tree
  • NOC  - Number of Children
  • CBO  - Coupling Between Objects
  • RFC  - Response For a Class
  • LCOM - Lack of Cohesion in Methods`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
