package grid

import "fmt"

// CellBytes is the size of one cell scalar on the GPU (f32).
const CellBytes = 4

// Config fixes the lattice and its seeding for the lifetime of a run.
type Config struct {
	// Rows is the side length of the square lattice.
	Rows int
	// GroupSize is the compute work-group size baked into the update program.
	GroupSize int
	// Seed feeds the deterministic generator used for the initial grid.
	Seed int64
	// Threshold marks a cell live iff its uniform sample is strictly greater.
	Threshold float32
}

// Validate reports configuration values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Rows <= 0 {
		return fmt.Errorf("grid: rows must be positive, got %d", c.Rows)
	}
	if c.GroupSize <= 0 {
		return fmt.Errorf("grid: group size must be positive, got %d", c.GroupSize)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("grid: threshold %v outside [0, 1]", c.Threshold)
	}
	return nil
}

// Cells returns the number of cells in the lattice.
func (c Config) Cells() int { return c.Rows * c.Rows }

// BufferSize returns the byte size of one cell buffer.
func (c Config) BufferSize() uint64 { return uint64(c.Cells()) * CellBytes }

// WorkGroups returns the number of compute groups covering the lattice.
func (c Config) WorkGroups() uint32 { return WorkGroups(c.Cells(), c.GroupSize) }

// WorkGroups returns ceil(cells / groupSize).
func WorkGroups(cells, groupSize int) uint32 {
	if cells <= 0 || groupSize <= 0 {
		return 0
	}
	return uint32((cells + groupSize - 1) / groupSize)
}

// QuadVertices returns the two-triangle unit quad for one cell in clip space.
// The side is 2/rows so rows quads span the [-1, 1] range exactly.
func QuadVertices(rows int) [12]float32 {
	d := float32(2) / float32(rows)
	return [12]float32{0, 0, d, 0, d, d, 0, 0, d, d, 0, d}
}

// VertexCount is the number of vertices drawn per cell instance.
const VertexCount = 6
