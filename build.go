package fanbase

import (
	"fmt"
	"runtime/debug"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2"
	"gonum.org/v1/gonum/spatial/r3"
)

// holeMargin extends post holes past the faces they cut through so the
// difference leaves no skin behind.
const holeMargin = 1.0

// KernelError is returned when the geometry kernel refuses to construct a shape.
type KernelError struct {
	Op       string
	panicObj interface{}
	stack    string
}

func (e *KernelError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.panicObj)
}

// Stack returns the stack trace captured when the kernel failed.
func (e *KernelError) Stack() string { return e.stack }

// Build constructs the fan base solid. z=0 is the bottom face of the inner
// disc; posts and the outer ring protrude towards negative z.
func Build(p Params) (sdf.SDF3, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	innerR := p.InnerRingRadius()
	bodyR := p.BodyDiameter / 2

	disc, err := form2.Circle(innerR)
	if err != nil {
		return nil, fmt.Errorf("inner disc: %w", err)
	}
	parts := []sdf.SDF3{slab(disc, 0, p.InnerThickness)}

	ring, err := annulus(innerR, bodyR)
	if err != nil {
		return nil, fmt.Errorf("outer ring: %w", err)
	}
	parts = append(parts, slab(ring, -p.OuterThickness, p.InnerThickness))

	centers, err := p.PostCenters()
	if err != nil {
		return nil, err
	}
	post, err := annulus(p.PostInnerDiameter/2, p.PostOuterDiameter/2)
	if err != nil {
		return nil, fmt.Errorf("screw post: %w", err)
	}
	hole, err := form2.Circle(p.PostInnerDiameter / 2)
	if err != nil {
		return nil, fmt.Errorf("screw hole: %w", err)
	}
	var holes []sdf.SDF3
	for _, c := range centers {
		at := sdf.Translate3D(r3.Vec{X: c.X, Y: c.Y})
		parts = append(parts, sdf.Transform3D(slab(post, -p.PostHeight, 0), at))
		holes = append(holes, sdf.Transform3D(slab(hole, -p.PostHeight-holeMargin, p.InnerThickness+holeMargin), at))
	}

	return kernel("fan base", func() sdf.SDF3 {
		return sdf.Difference3D(sdf.Union3D(parts...), sdf.Union3D(holes...))
	})
}

// slab extrudes shape between heights z0 and z1.
func slab(shape sdf.SDF2, z0, z1 float64) sdf.SDF3 {
	s := sdf.Extrude3D(shape, z1-z0)
	return sdf.Transform3D(s, sdf.Translate3D(r3.Vec{Z: (z0 + z1) / 2}))
}

// annulus returns the region between two concentric circles.
func annulus(r0, r1 float64) (sdf.SDF2, error) {
	inner, err := form2.Circle(r0)
	if err != nil {
		return nil, err
	}
	outer, err := form2.Circle(r1)
	if err != nil {
		return nil, err
	}
	return sdf.Difference2D(outer, inner), nil
}

// kernel runs a construction step and converts kernel panics into errors.
func kernel(op string, f func() sdf.SDF3) (s sdf.SDF3, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &KernelError{
				Op:       op,
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return f(), nil
}
