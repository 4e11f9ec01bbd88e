package sim

// GridConfig groups the dimensions and time-zero seeding of the grid.
// Seeding precedence: Pattern, then SeedCenter, then InfectedRatio.
type GridConfig struct {
	Width         int      // columns (must be > 0)
	Height        int      // rows (must be > 0)
	InfectedRatio float64  // per-cell infection probability at time 0, in [0,1]
	SeedCenter    bool     // infect only the centre cell
	Pattern       []string // explicit S/I rows; overrides Width/Height when set
}

// RunConfig groups run-loop controls.
type RunConfig struct {
	Seed     int64 // master seed for PartitionedRNG
	Horizon  int64 // max steps; 0 = run until no Infected remain
	TileRows int   // rows per parallel band; 0 = sequential Step
}

// SimConfig is everything NewSimulator needs.
type SimConfig struct {
	GridConfig
	RunConfig
	Params Parameters
}
