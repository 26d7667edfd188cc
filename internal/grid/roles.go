package grid

// Roles returns the indices of the current and next buffers for tick. The
// update stage reads current and writes next; the two never coincide.
func Roles(tick int) (cur, next int) {
	cur = tick % 2
	return cur, 1 - cur
}

// BindSet pairs the buffers one update reads and writes with the buffer the
// draw stage consumes once that update has run.
type BindSet struct {
	Read  int
	Write int
	Draw  int
}

var bindSets = [2]BindSet{
	{Read: 0, Write: 1, Draw: 1},
	{Read: 1, Write: 0, Draw: 0},
}

// BindSets returns both orderings, indexed by tick parity.
func BindSets() [2]BindSet { return bindSets }

// Active returns the bind set selected by the parity of tick.
func Active(tick int) BindSet { return bindSets[tick%2] }
