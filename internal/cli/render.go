package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fanparts/fanbase"
	"github.com/fanparts/fanbase/mesh"
	"github.com/fanparts/fanbase/preview"
	"github.com/spf13/cobra"
)

func renderCmd(a *app) *cobra.Command {
	var (
		out          string
		png          string
		cells        int
		color        string
		transparency float64
	)
	c := &cobra.Command{
		Use:   "render",
		Short: "Build the base and write it as binary STL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cells < fanbase.MinCells {
				return fmt.Errorf("--cells must be %d or larger, got %d", fanbase.MinCells, cells)
			}
			opts := preview.DefaultOptions
			if png != "" {
				col, err := parseHexColor(color)
				if err != nil {
					return err
				}
				opts.Color = col
				opts.Transparency = transparency
			}
			p, err := a.params(cmd.Context())
			if err != nil {
				return err
			}
			start := time.Now()
			s, err := fanbase.Build(p)
			if err != nil {
				return err
			}
			if err := fanbase.CreateSTL(out, s, cells); err != nil {
				return err
			}
			rep, err := mesh.Open(out)
			if err != nil {
				return fmt.Errorf("checking %s: %w", out, err)
			}
			size := rep.Size()
			a.log.Info("wrote model", "path", out, "triangles", rep.Triangles,
				"size", fmt.Sprintf("%.2fx%.2fx%.2f", size.X, size.Y, size.Z),
				"elapsed", time.Since(start).Round(time.Millisecond))
			if rep.Degenerate > 0 || rep.NormalMismatches > 0 {
				a.log.Debug("mesh irregularities", "degenerate", rep.Degenerate, "normal_mismatches", rep.NormalMismatches)
			}
			if png == "" {
				return nil
			}
			if err := preview.Render(out, png, preview.DefaultView, opts); err != nil {
				return err
			}
			a.log.Info("wrote preview", "path", png)
			return nil
		},
	}
	c.Flags().StringVarP(&out, "output", "o", "fanbase.stl", "STL output path")
	c.Flags().IntVar(&cells, "cells", fanbase.DefaultCells, "mesh cells along the longest axis")
	c.Flags().StringVar(&png, "png", "", "also write a PNG preview to this path")
	c.Flags().StringVar(&color, "color", "cccccc", "preview color as RRGGBB hex")
	c.Flags().Float64Var(&transparency, "transparency", 0, "preview transparency from 0 (opaque) to 1")
	return c
}

func parseHexColor(s string) (preview.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return preview.Color{}, fmt.Errorf("color %q must be 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return preview.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return preview.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
