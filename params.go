package fanbase

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/sdf/form2"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidParams is wrapped by every error returned from Params.Validate.
var ErrInvalidParams = errors.New("invalid fan base parameters")

// Params holds the nominal dimensions of a fan base plate in millimeters.
// It is a plain value: copies are independent and no method modifies it.
type Params struct {
	// Diameter of the whole base.
	BodyDiameter float64 `yaml:"body_diameter"`
	// Thickness of the inner disc.
	InnerThickness float64 `yaml:"inner_thickness"`
	// How far the outer ring protrudes below the inner disc.
	OuterThickness float64 `yaml:"outer_thickness"`
	// Radial width of the outer ring.
	OuterRingWidth float64 `yaml:"outer_ring_width"`
	// Screw post outer diameter.
	PostOuterDiameter float64 `yaml:"post_outer_diameter"`
	// Screw post hole diameter.
	PostInnerDiameter float64 `yaml:"post_inner_diameter"`
	// Height of the screw posts below the disc.
	PostHeight float64 `yaml:"post_height"`
	// Side length of the equilateral triangle the posts sit on.
	TriangleSide float64 `yaml:"triangle_side"`
}

var (
	// Default is the base plate for a generic 75mm fan.
	Default = Params{
		BodyDiameter:      75,
		InnerThickness:    2,
		OuterThickness:    3,
		OuterRingWidth:    2,
		PostOuterDiameter: 4,
		PostInnerDiameter: 2,
		PostHeight:        6,
		TriangleSide:      45,
	}
	// Merox is the lower profile front base for the Merox fan housing.
	Merox = Params{
		BodyDiameter:      75,
		InnerThickness:    2,
		OuterThickness:    1,
		OuterRingWidth:    2,
		PostOuterDiameter: 4,
		PostInnerDiameter: 2,
		PostHeight:        4,
		TriangleSide:      45,
	}
)

// TriangleCircumscribedDiameter returns the diameter of the circle an
// equilateral triangle of side sideLen is inscribed in. Polygon-in-circle
// primitives are sized by this circle, not by the side length.
func TriangleCircumscribedDiameter(sideLen float64) float64 {
	return sideLen / math.Cos(math.Pi/6)
}

// InnerRingRadius returns the radius of the inner disc once the outer ring
// width is taken off both sides of the body. The result is not checked;
// it must be positive for the geometry to make sense.
func InnerRingRadius(bodyDiam, outerRingWidth float64) float64 {
	return (bodyDiam - 2*outerRingWidth) / 2
}

// OuterRingThickness is the total height of the outer ring, which spans the
// inner disc and protrudes OuterThickness below it.
func (p Params) OuterRingThickness() float64 {
	return p.OuterThickness + p.InnerThickness
}

// InnerRingRadius is a shorthand for InnerRingRadius(p.BodyDiameter, p.OuterRingWidth).
func (p Params) InnerRingRadius() float64 {
	return InnerRingRadius(p.BodyDiameter, p.OuterRingWidth)
}

// PostCircleDiameter is the diameter of the circle the post centers lie on.
func (p Params) PostCircleDiameter() float64 {
	return TriangleCircumscribedDiameter(p.TriangleSide)
}

// PostCenters returns the triangle vertices the screw posts are centered on.
// The first vertex lies on the positive X axis.
func (p Params) PostCenters() ([]r2.Vec, error) {
	verts, err := form2.Nagon(3, p.PostCircleDiameter()/2)
	if err != nil {
		return nil, fmt.Errorf("locating post centers: %w", err)
	}
	return []r2.Vec(verts), nil
}

// Validate checks the dimensions describe buildable geometry. All problems
// found are reported together.
func (p Params) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"body diameter", p.BodyDiameter},
		{"inner thickness", p.InnerThickness},
		{"outer thickness", p.OuterThickness},
		{"outer ring width", p.OuterRingWidth},
		{"post outer diameter", p.PostOuterDiameter},
		{"post inner diameter", p.PostInnerDiameter},
		{"post height", p.PostHeight},
		{"triangle side", p.TriangleSide},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive number, got %g", f.name, f.v))
		}
	}
	if len(errs) > 0 {
		return invalid(errs)
	}
	if 2*p.OuterRingWidth >= p.BodyDiameter {
		errs = append(errs, fmt.Errorf("outer ring width %g leaves no inner ring in a %g body", p.OuterRingWidth, p.BodyDiameter))
	}
	if p.PostInnerDiameter >= p.PostOuterDiameter {
		errs = append(errs, fmt.Errorf("post hole %g must be smaller than post %g", p.PostInnerDiameter, p.PostOuterDiameter))
	}
	if reach := p.PostCircleDiameter()/2 + p.PostOuterDiameter/2; reach > p.InnerRingRadius() {
		errs = append(errs, fmt.Errorf("posts reach radius %.3f past inner ring radius %.3f", reach, p.InnerRingRadius()))
	}
	if len(errs) > 0 {
		return invalid(errs)
	}
	return nil
}

func invalid(errs []error) error {
	return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
}
