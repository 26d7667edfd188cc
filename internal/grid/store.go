package grid

// Store holds the two host-resident cell buffers of a run. Buffers are always
// addressed through tick parity so the read and write sides never alias.
type Store struct {
	cfg  Config
	bufs [2][]float32
}

// NewStore allocates both buffers and seeds them identically.
func NewStore(cfg Config) *Store {
	seeded := Seed(cfg.Cells(), cfg.Seed, cfg.Threshold)
	s := &Store{cfg: cfg}
	s.bufs[0] = seeded
	s.bufs[1] = append([]float32(nil), seeded...)
	return s
}

// Config returns the lattice configuration.
func (s *Store) Config() Config { return s.cfg }

// Buffer exposes buffer i (0 or 1).
func (s *Store) Buffer(i int) []float32 { return s.bufs[i] }

// Current returns the buffer the update at tick reads.
func (s *Store) Current(tick int) []float32 { return s.bufs[Active(tick).Read] }

// Next returns the buffer the update at tick writes.
func (s *Store) Next(tick int) []float32 { return s.bufs[Active(tick).Write] }

// Drawn returns the buffer presented after the update at tick.
func (s *Store) Drawn(tick int) []float32 { return s.bufs[Active(tick).Draw] }
