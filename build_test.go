package fanbase_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fanparts/fanbase"
	"github.com/fanparts/fanbase/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBuildSolidRegions(t *testing.T) {
	for _, p := range []fanbase.Params{fanbase.Default, fanbase.Merox} {
		s, err := fanbase.Build(p)
		require.NoError(t, err)
		centers, err := p.PostCenters()
		require.NoError(t, err)
		post := centers[1]
		ringMid := (p.InnerRingRadius() + p.BodyDiameter/2) / 2
		wall := (p.PostInnerDiameter + p.PostOuterDiameter) / 4

		inside := map[string]r3.Vec{
			"disc center":  {Z: p.InnerThickness / 2},
			"post wall":    {X: post.X + wall, Y: post.Y, Z: -p.PostHeight / 2},
			"ring bottom":  {X: ringMid, Z: -p.OuterThickness / 2},
			"ring top":     {Y: -ringMid, Z: p.InnerThickness / 2},
			"disc by post": {X: post.X + p.PostOuterDiameter, Y: post.Y, Z: p.InnerThickness / 2},
		}
		outside := map[string]r3.Vec{
			"below center":    {Z: -0.5},
			"above disc":      {Z: p.InnerThickness + 0.5},
			"hole in post":    {X: post.X, Y: post.Y, Z: -p.PostHeight / 2},
			"hole in disc":    {X: post.X, Y: post.Y, Z: p.InnerThickness / 2},
			"below post":      {X: post.X + wall, Y: post.Y, Z: -p.PostHeight - 0.5},
			"outside body":    {X: p.BodyDiameter/2 + 1},
			"below ring":      {X: ringMid, Z: -p.OuterThickness - 0.5},
			"outside post":    {X: post.X + p.PostOuterDiameter, Y: post.Y, Z: -p.PostHeight / 2},
			"inside ring lip": {X: p.InnerRingRadius() - 0.5, Z: -p.OuterThickness / 2},
		}
		for name, pt := range inside {
			assert.Negative(t, s.Evaluate(pt), name)
		}
		for name, pt := range outside {
			assert.Positive(t, s.Evaluate(pt), name)
		}
	}
}

func TestBuildBounds(t *testing.T) {
	p := fanbase.Default
	s, err := fanbase.Build(p)
	require.NoError(t, err)
	bb := s.Bounds()
	r := p.BodyDiameter / 2
	assert.InDelta(t, -r, bb.Min.X, 1e-9)
	assert.InDelta(t, r, bb.Max.X, 1e-9)
	assert.InDelta(t, r, bb.Max.Y, 1e-9)
	assert.InDelta(t, -p.PostHeight, bb.Min.Z, 1e-9)
	assert.InDelta(t, p.InnerThickness, bb.Max.Z, 1e-9)
}

func TestBuildInvalid(t *testing.T) {
	p := fanbase.Default
	p.OuterRingWidth = 40
	s, err := fanbase.Build(p)
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, fanbase.ErrInvalidParams))
}

func TestWriteSTL(t *testing.T) {
	p := fanbase.Merox
	s, err := fanbase.Build(p)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, fanbase.WriteSTL(&buf, s, 120))

	report, err := mesh.ReadSTL(&buf)
	require.NoError(t, err)
	assert.Greater(t, report.Triangles, 1000)
	// Meshing resolution limits how close the surface gets to the true bounds.
	const res = 75.0 / 120 * 2
	r := p.BodyDiameter / 2
	assert.InDelta(t, -r, report.Bounds.Min.X, res)
	assert.InDelta(t, r, report.Bounds.Max.X, res)
	assert.InDelta(t, -p.PostHeight, report.Bounds.Min.Z, res)
	assert.InDelta(t, p.InnerThickness, report.Bounds.Max.Z, res)
}

func TestWriteSTLCells(t *testing.T) {
	s, err := fanbase.Build(fanbase.Merox)
	require.NoError(t, err)
	for _, cells := range []int{-5, 1} {
		var buf bytes.Buffer
		err := fanbase.WriteSTL(&buf, s, cells)
		assert.Error(t, err, "cells %d", cells)
		assert.Zero(t, buf.Len())
	}
	err = fanbase.CreateSTL(t.TempDir()+"/neg.stl", s, -1)
	assert.Error(t, err)
}
