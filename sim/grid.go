// sim/grid.go
package sim

import (
	"fmt"
	"strings"
)

// Coord addresses a cell by zero-based row and column.
type Coord struct {
	Row int
	Col int
}

// Initializer returns the time-zero state of the cell at (row, col).
// It must return Susceptible or Infected.
type Initializer func(row, col int) HealthState

// Grid is a fixed-size rectangle of agents stored row-major in a flat slice.
// A Grid is never advanced in place: Step returns a new Grid.
type Grid struct {
	width  int
	height int
	cells  []HealthState // index = row*width + col
}

// NewGrid builds a width x height grid, calling init once per cell in
// row-major order. A nil init leaves every cell Susceptible.
func NewGrid(width, height int, init Initializer) (*Grid, error) {
	g, err := newBlankGrid(width, height)
	if err != nil {
		return nil, err
	}
	if init == nil {
		return g, nil
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			s := init(r, c)
			if s != Susceptible && s != Infected {
				return nil, fmt.Errorf("%w: %v at (%d,%d)", ErrInvalidInitialState, s, r, c)
			}
			g.cells[g.index(r, c)] = s
		}
	}
	return g, nil
}

// newBlankGrid allocates an all-Susceptible grid.
func newBlankGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d height=%d", ErrInvalidDimension, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]HealthState, width*height),
	}, nil
}

// ParseGrid builds a grid from rows of S/I symbols, one string per row.
// Whitespace inside a row is ignored so fixtures can be written as "S I S".
func ParseGrid(rows []string) (*Grid, error) {
	parsed := make([][]HealthState, 0, len(rows))
	for r, row := range rows {
		var states []HealthState
		for i := 0; i < len(row); i++ {
			if row[i] == ' ' || row[i] == '\t' {
				continue
			}
			s, ok := ParseHealthState(row[i])
			if !ok {
				return nil, fmt.Errorf("%w: unknown symbol %q in row %d", ErrInvalidInitialState, row[i], r)
			}
			states = append(states, s)
		}
		if r > 0 && len(states) != len(parsed[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimension, r, len(states), len(parsed[0]))
		}
		parsed = append(parsed, states)
	}
	width := 0
	if len(parsed) > 0 {
		width = len(parsed[0])
	}
	return NewGrid(width, len(parsed), func(row, col int) HealthState {
		return parsed[row][col]
	})
}

func (g *Grid) index(row, col int) int {
	return row*g.width + col
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

func (g *Grid) checkBounds(row, col int) error {
	if !g.inBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) not in [0,%d)x[0,%d)", ErrOutOfBounds, row, col, g.height, g.width)
	}
	return nil
}

// Get returns the state at (row, col).
func (g *Grid) Get(row, col int) (HealthState, error) {
	if err := g.checkBounds(row, col); err != nil {
		return 0, err
	}
	return g.cells[g.index(row, col)], nil
}

// Set overwrites the state at (row, col).
func (g *Grid) Set(row, col int, s HealthState) error {
	if err := g.checkBounds(row, col); err != nil {
		return err
	}
	if !s.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidInitialState, s)
	}
	g.cells[g.index(row, col)] = s
	return nil
}

// Neighbors returns the Moore neighborhood of (row, col) in row-major order,
// clipped at the edges: 8 for interior cells, 5 on edges, 3 in corners.
// There is no wraparound.
func (g *Grid) Neighbors(row, col int) ([]Coord, error) {
	if err := g.checkBounds(row, col); err != nil {
		return nil, err
	}
	out := make([]Coord, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := row+dr, col+dc
			if g.inBounds(nr, nc) {
				out = append(out, Coord{Row: nr, Col: nc})
			}
		}
	}
	return out, nil
}

// InfectedNeighbors counts Infected cells in the clipped neighborhood of
// (row, col). The coordinate must be in range.
func (g *Grid) InfectedNeighbors(row, col int) int {
	k := 0
	for dr := -1; dr <= 1; dr++ {
		nr := row + dr
		if nr < 0 || nr >= g.height {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			nc := col + dc
			if (dr == 0 && dc == 0) || nc < 0 || nc >= g.width {
				continue
			}
			if g.cells[g.index(nr, nc)] == Infected {
				k++
			}
		}
	}
	return k
}

// Count returns how many cells are currently in state s.
func (g *Grid) Count(s HealthState) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Counts tallies all three states in one pass.
func (g *Grid) Counts() PopulationStats {
	var stats PopulationStats
	for _, c := range g.cells {
		switch c {
		case Susceptible:
			stats.Susceptible++
		case Infected:
			stats.Infected++
		case Recovered:
			stats.Recovered++
		}
	}
	return stats
}

// Dimensions returns (width, height).
func (g *Grid) Dimensions() (width, height int) {
	return g.width, g.height
}

// Size is width*height.
func (g *Grid) Size() int {
	return len(g.cells)
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	cells := make([]HealthState, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// String renders one line per row using S/I/R symbols.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			b.WriteByte(g.cells[g.index(r, c)].Symbol())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
