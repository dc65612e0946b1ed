// Package preview shows generated parts by rendering their STL mesh to a
// shaded image with a fixed display configuration.
package preview

import (
	"errors"
	"fmt"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// Color is an 8 bit per channel RGB color.
type Color struct {
	R, G, B uint8
}

// DisplayOptions configure how a part is shown.
type DisplayOptions struct {
	Color Color
	// Transparency goes from 0 (opaque) to 1 (invisible).
	Transparency float64
}

// DefaultOptions shows parts solid grey with no transparency.
var DefaultOptions = DisplayOptions{
	Color:        Color{R: 204, G: 204, B: 204},
	Transparency: 0,
}

// View is a camera setup. The mesh is fit into a bi-unit cube centered at
// the origin before rendering, so positions are in that frame.
type View struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
	// Output size in pixels.
	Width, Height int
}

// DefaultView looks at the part from an isometric viewpoint below the base,
// where posts and outer ring are visible.
var DefaultView = View{
	Up:     r3.Vec{Z: 1},
	Eye:    r3.Vec{X: 2.4, Y: 2.4, Z: -2.4},
	Near:   1,
	Far:    10,
	Width:  768,
	Height: 432,
}

const (
	supersample = 2  // render at this multiple of the output size
	fovy        = 30 // vertical field of view in degrees
)

var background = fauxgl.HexColor("#FFF8E3")

// Render loads the binary STL at stlPath and writes a PNG preview to pngPath.
func Render(stlPath, pngPath string, view View, opts DisplayOptions) error {
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", stlPath, err)
	}
	img, err := Image(mesh, view, opts)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(pngPath, img)
}

// Image renders mesh. The mesh is rescaled in place to fit the view.
func Image(mesh *fauxgl.Mesh, view View, opts DisplayOptions) (image.Image, error) {
	if view.Width <= 0 || view.Height <= 0 {
		return nil, errors.New("view size must be positive")
	}
	if opts.Transparency < 0 || opts.Transparency > 1 {
		return nil, fmt.Errorf("transparency %g outside [0, 1]", opts.Transparency)
	}
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*supersample, view.Height*supersample)
	context.ClearColorBufferWith(background)
	context.AlphaBlend = opts.Transparency > 0

	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = opts.fauxglColor()
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	return resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear), nil
}

func (o DisplayOptions) fauxglColor() fauxgl.Color {
	return fauxgl.Color{
		R: float64(o.Color.R) / 255,
		G: float64(o.Color.G) / 255,
		B: float64(o.Color.B) / 255,
		A: 1 - o.Transparency,
	}
}
