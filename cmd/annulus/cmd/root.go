package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "annulus",
	Short: "compute minimum-width annuli of planar point sets",
	Long: `This is the command-line application accompanying the annulus library:
	- solve the minimum-width annulus (roundness) of a planar site file,
	- easily tweak solver settings (YAML files).`,
}

// Execute runs the root command; child commands register themselves on it
// in their init functions. This is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
