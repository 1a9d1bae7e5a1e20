package universe

import (
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"
)

//Grid owns the 49 cells of the panel
//cells are kept in the canonical order: x-major, then y; the grid code relies on this order
type Grid struct {
	cells []*Cell
}

//NewGrid creates the grid with all cells dead
func NewGrid() *Grid {
	g := &Grid{cells: make([]*Cell, 0, CellCount)}
	for x := 1; x <= GridSize; x++ {
		for y := 1; y <= GridSize; y++ {
			g.cells = append(g.cells, newCell(x, y, Dead))
		}
	}
	return g
}

//Cells returns the cells in canonical order
func (g *Grid) Cells() []*Cell {
	return g.cells
}

//Cell returns the cell at x, y or nil if the position is outside the grid
func (g *Grid) Cell(x, y int) *Cell {
	if x < 1 || x > GridSize || y < 1 || y > GridSize {
		return nil
	}
	return g.cells[(x-1)*GridSize+(y-1)]
}

//Neighbors returns the cells around c, the grid edges are not wrapped
func (g *Grid) Neighbors(c *Cell) mapset.Set[*Cell] {
	neighbors := mapset.New[*Cell]()
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if n := g.Cell(c.X+dx, c.Y+dy); n != nil {
				neighbors.Put(n)
			}
		}
	}
	return neighbors
}

//LivingNeighbors counts the neighbors of c whose committed state is Alive
func (g *Grid) LivingNeighbors(c *Cell) int {
	living := 0
	g.Neighbors(c).Each(func(n *Cell) {
		if n.State == Alive {
			living++
		}
	})
	return living
}

//LiveCells counts the cells whose committed state is Alive
func (g *Grid) LiveCells() int {
	live := 0
	for _, c := range g.cells {
		if c.State == Alive {
			live++
		}
	}
	return live
}

//States returns a copy of the committed states in canonical order
func (g *Grid) States() []CellState {
	states := make([]CellState, len(g.cells))
	for i, c := range g.cells {
		states[i] = c.State
	}
	return states
}

//Seed makes every cell alive with the probability chance/100, dead otherwise
func (g *Grid) Seed(rng *rand.Rand, chance int) {
	for _, c := range g.cells {
		state := Dead
		if rng.IntN(100) < chance {
			state = Alive
		}
		c.State = state
		c.Pending = state
	}
}

//Fill sets the committed and pending state of all cells
func (g *Grid) Fill(state CellState) {
	for _, c := range g.cells {
		c.State = state
		c.Pending = state
	}
}
