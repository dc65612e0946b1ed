package fanbase_test

import (
	"errors"
	"math"
	"testing"

	"github.com/fanparts/fanbase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestTriangleCircumscribedDiameter(t *testing.T) {
	assert.InDelta(t, 51.9615, fanbase.TriangleCircumscribedDiameter(45), 1e-4)
	for _, side := range []float64{1e-3, 0.5, 1, 10, 45, 120, 1e4} {
		want := side / math.Cos(math.Pi/6)
		assert.InDelta(t, want, fanbase.TriangleCircumscribedDiameter(side), tol*want, "side %g", side)
		// Circumradius of an equilateral triangle is side/sqrt(3).
		assert.InDelta(t, 2*side/math.Sqrt(3), fanbase.TriangleCircumscribedDiameter(side), 1e-9*side)
	}
}

func TestInnerRingRadius(t *testing.T) {
	assert.Equal(t, 35.5, fanbase.InnerRingRadius(75, 2))
	for _, tc := range []struct{ body, ring float64 }{
		{75, 2}, {75, 0.1}, {10, 4.9}, {200, 50}, {1, 0.25},
	} {
		got := fanbase.InnerRingRadius(tc.body, tc.ring)
		assert.Greater(t, got, 0.0)
		assert.InDelta(t, (tc.body-2*tc.ring)/2, got, tol)
	}
}

func TestInnerRingRadiusMonotonic(t *testing.T) {
	const body = 75.0
	prev := fanbase.InnerRingRadius(body, 0)
	for w := 0.25; w < body/2; w += 0.25 {
		got := fanbase.InnerRingRadius(body, w)
		if got >= prev {
			t.Fatalf("ring width %g: radius %g not below %g", w, got, prev)
		}
		prev = got
	}
}

func TestPresetDerivedValues(t *testing.T) {
	p := fanbase.Default
	assert.Equal(t, 35.5, p.InnerRingRadius())
	assert.Equal(t, 5.0, p.OuterRingThickness())
	assert.Equal(t, 3.0, fanbase.Merox.OuterRingThickness())
	assert.InDelta(t, 51.9615, p.PostCircleDiameter(), 1e-4)
}

func TestPostCenters(t *testing.T) {
	centers, err := fanbase.Default.PostCenters()
	require.NoError(t, err)
	require.Len(t, centers, 3)
	r := fanbase.Default.PostCircleDiameter() / 2
	assert.InDelta(t, r, centers[0].X, 1e-9)
	assert.InDelta(t, 0, centers[0].Y, 1e-9)
	for i := range centers {
		assert.InDelta(t, r, math.Hypot(centers[i].X, centers[i].Y), 1e-9)
		next := centers[(i+1)%3]
		side := math.Hypot(next.X-centers[i].X, next.Y-centers[i].Y)
		assert.InDelta(t, fanbase.Default.TriangleSide, side, 1e-9)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, fanbase.Default.Validate())
	require.NoError(t, fanbase.Merox.Validate())

	for _, tc := range []struct {
		name   string
		modify func(p *fanbase.Params)
	}{
		{"zero body", func(p *fanbase.Params) { p.BodyDiameter = 0 }},
		{"negative post height", func(p *fanbase.Params) { p.PostHeight = -1 }},
		{"NaN thickness", func(p *fanbase.Params) { p.InnerThickness = math.NaN() }},
		{"infinite side", func(p *fanbase.Params) { p.TriangleSide = math.Inf(1) }},
		{"ring eats body", func(p *fanbase.Params) { p.OuterRingWidth = 37.5 }},
		{"hole wider than post", func(p *fanbase.Params) { p.PostInnerDiameter = 4 }},
		{"posts outside disc", func(p *fanbase.Params) { p.TriangleSide = 62 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := fanbase.Default
			tc.modify(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, fanbase.ErrInvalidParams))
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	p := fanbase.Default
	p.BodyDiameter = -1
	p.PostHeight = 0
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body diameter")
	assert.Contains(t, err.Error(), "post height")
}

func TestParamsIsValue(t *testing.T) {
	p := fanbase.Default
	p.BodyDiameter = 90
	assert.Equal(t, 75.0, fanbase.Default.BodyDiameter)
}
