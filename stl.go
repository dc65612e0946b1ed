package fanbase

import (
	"fmt"
	"io"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/render"
)

// DefaultCells is the default number of octree mesh cells along the longest
// axis of the model. It resolves the 2mm post holes cleanly on a 75mm base.
const DefaultCells = 200

// MinCells is the coarsest mesh the octree renderer accepts.
const MinCells = 2

// CreateSTL meshes s and writes it to a binary STL file at path.
// cells of 0 selects DefaultCells.
func CreateSTL(path string, s sdf.SDF3, cells int) error {
	cells, err := meshCells(cells)
	if err != nil {
		return err
	}
	if err := render.CreateSTL(path, render.NewOctreeRenderer(s, cells)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteSTL meshes s and writes binary STL to w. cells of 0 selects DefaultCells.
func WriteSTL(w io.Writer, s sdf.SDF3, cells int) error {
	cells, err := meshCells(cells)
	if err != nil {
		return err
	}
	model, err := render.RenderAll(render.NewOctreeRenderer(s, cells))
	if err != nil {
		return fmt.Errorf("meshing: %w", err)
	}
	return render.WriteSTL(w, model)
}

func meshCells(cells int) (int, error) {
	switch {
	case cells == 0:
		return DefaultCells, nil
	case cells < MinCells:
		return 0, fmt.Errorf("mesh cells must be %d or larger, got %d", MinCells, cells)
	}
	return cells, nil
}
