package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arl/annulus/engine"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "create a solver settings file",
	Long: `Create a solver settings file in YAML format, prefilled with default values.

If FILE is not provided, 'annulus.yml' is used`,
	Run: func(cmd *cobra.Command, args []string) {
		// check user input
		path := "annulus.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		if ok, err := confirmIfExists(path,
			fmt.Sprintf("file name %s already exists, overwrite? [y/N]", path)); !ok {
			if err == nil {
				fmt.Println("aborted by user...")
			} else {
				fmt.Println("aborted,", err)
			}
			return
		}

		check(marshalYAMLFile(path, engine.NewSettings()))
		fmt.Printf("solver settings written to '%s'\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
