// Package mesh reads back binary STL output and summarizes it so generated
// parts can be checked against their nominal dimensions.
package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// Report summarizes a triangle mesh.
type Report struct {
	Triangles int
	// Bounds is the axis aligned box containing every vertex.
	Bounds r3.Box
	// NormalMismatches counts triangles whose stored normal disagrees with
	// the winding of their vertices. Octree meshes produce a few of these
	// near thin features; they do not make the mesh invalid.
	NormalMismatches int
	// Degenerate counts triangles with coincident vertices.
	Degenerate int
}

// Size returns the extent of the mesh along each axis.
func (r Report) Size() r3.Vec { return r.Bounds.Max.Sub(r.Bounds.Min) }

// Open reads the binary STL file at path.
func Open(path string) (Report, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Report{}, err
	}
	defer fp.Close()
	return ReadSTL(fp)
}

// stlHeader is the fixed binary STL preamble.
type stlHeader struct {
	_     [80]uint8
	Count uint32
}

// stlTriangle is a triangle record as stored in binary STL.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
}

var (
	errNormalMismatch = errors.New("stored normal does not match vertex winding")
	errDegenerate     = errors.New("triangle is degenerate")
)

// ReadSTL reads a binary STL stream and reports on it. Any NaN or infinite
// coordinate fails the read.
func ReadSTL(r io.Reader) (Report, error) {
	var rep Report
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Report{}, errors.New("encountered EOF while reading STL header")
		}
		return Report{}, fmt.Errorf("STL header read failed: %w", err)
	}
	if header.Count == 0 {
		return Report{}, errors.New("STL header indicates 0 triangles present")
	}
	inf := math.Inf(1)
	rep.Bounds = r3.Box{
		Min: r3.Vec{X: inf, Y: inf, Z: inf},
		Max: r3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
	var (
		buf [50]byte
		t   stlTriangle
	)
	for i := 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Report{}, fmt.Errorf("%d/%d STL triangles read: %w", i, header.Count, err)
		}
		t.get(buf[:])
		switch err := t.validate(); {
		case errors.Is(err, errNormalMismatch):
			rep.NormalMismatches++
		case errors.Is(err, errDegenerate):
			rep.Degenerate++
		case err != nil:
			return Report{}, fmt.Errorf("triangle %d: %w", i, err)
		}
		for _, v := range [3][3]float32{t.Vertex1, t.Vertex2, t.Vertex3} {
			rep.Bounds = extend(rep.Bounds, r3From3F32(v))
		}
		rep.Triangles++
	}
	return rep, nil
}

func extend(b r3.Box, v r3.Vec) r3.Box {
	b.Min = r3.Vec{X: math.Min(b.Min.X, v.X), Y: math.Min(b.Min.Y, v.Y), Z: math.Min(b.Min.Z, v.Z)}
	b.Max = r3.Vec{X: math.Max(b.Max.X, v.X), Y: math.Max(b.Max.Y, v.Y), Z: math.Max(b.Max.Z, v.Z)}
	return b
}

func (t *stlTriangle) get(b []byte) {
	_ = b[47] // early bounds check
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// 2 attribute bytes ignored.
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11]
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func (t stlTriangle) validate() error {
	const (
		epsilon = 1e-12
		normTol = 5e-2
	)
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.degenerate(epsilon) {
		return errDegenerate
	}
	if bad3F32(t.Normal) {
		return errNormalMismatch
	}
	n := t.normalFromVertices()
	neg := [3]float32{-n[0], -n[1], -n[2]}
	if !equalWithin3F32(n, t.Normal, normTol) && !equalWithin3F32(neg, t.Normal, normTol) {
		return errNormalMismatch
	}
	return nil
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func (t stlTriangle) normalFromVertices() [3]float32 {
	v1 := r3From3F32(t.Vertex1)
	e1 := r3.Sub(r3From3F32(t.Vertex2), v1)
	e2 := r3.Sub(r3From3F32(t.Vertex3), v1)
	n := r3.Unit(r3.Cross(e1, e2))
	return [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
}

// degenerate reports whether two of the vertices coincide.
func (t stlTriangle) degenerate(tol float32) bool {
	return equalWithin3F32(t.Vertex1, t.Vertex2, tol) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, tol) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, tol)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}
