package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/annulus/engine"
	"github.com/arl/annulus/internal/siteio"
	"github.com/arl/annulus/model"
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve FILE",
	Short: "compute the minimum-width annulus of a site file",
	Long: `Compute the minimum-width annulus enclosing the planar point set
described by FILE: a first line with the number of sites, followed by one
"x y" line per site. The annulus width (roundness) is printed with two
decimals.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("error, there should be exactly 1 command-line argument")
			os.Exit(-1)
		}

		s := engine.NewSettings()
		if err := fileExists(cfgVal); err == nil {
			check(unmarshalYAMLFile(cfgVal, &s))
		}

		f, err := os.Open(args[0])
		check(err)
		defer f.Close()

		points, err := siteio.Read(f)
		check(err)
		if len(points) < 2 {
			check(fmt.Errorf("need at least 2 sites, got %d", len(points)))
		}

		m := model.New(points)
		ctx := model.NewBuildContext(s.Log)
		engine.Run(m, ctx, s)

		ann := m.Annulus()
		roundness := ann.Width()
		if roundness < 1e-6 {
			roundness = 0
		}
		fmt.Printf("Roundness = %.2f\n", roundness)
	},
}

var cfgVal string

func init() {
	RootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&cfgVal, "config", "annulus.yml", "solver settings")
}
