package cli

import (
	"fmt"

	"github.com/fanparts/fanbase/config"
	"github.com/fanparts/fanbase/footprint"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

func paramsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Print parameters and derived dimensions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.params(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if err := config.Save(w, p); err != nil {
				return err
			}
			centers, err := p.PostCenters()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "# inner ring radius:    %.4f\n", p.InnerRingRadius())
			fmt.Fprintf(w, "# post circle diameter: %.4f\n", p.PostCircleDiameter())
			fmt.Fprintf(w, "# outer ring thickness: %.4f\n", p.OuterRingThickness())
			for i, c := range centers {
				fmt.Fprintf(w, "# post %d center:        (%.4f, %.4f)\n", i+1, c.X, c.Y)
			}
			return nil
		},
	}
}

func footprintCmd(a *app) *cobra.Command {
	var (
		out  string
		size float64
	)
	c := &cobra.Command{
		Use:   "footprint",
		Short: "Draw the top view of the base",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.params(cmd.Context())
			if err != nil {
				return err
			}
			if err := footprint.Save(p, out, vg.Length(size)*vg.Centimeter); err != nil {
				return err
			}
			a.log.Info("wrote footprint", "path", out)
			return nil
		},
	}
	c.Flags().StringVarP(&out, "output", "o", "footprint.png", "output path; extension selects png, svg or pdf")
	c.Flags().Float64Var(&size, "size", 12, "drawing side length in centimeters")
	return c
}
