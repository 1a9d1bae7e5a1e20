package universe

import "fmt"

//CellState is the state of a single cell, each state has exactly one display color
type CellState int

const (
	Dead CellState = iota
	Alive
	Dying
	Zombie
	Off
)

//Color is the RGB color of a single pixel
type Color struct {
	R, G, B uint8
}

var (
	White  = Color{255, 255, 255}
	Red    = Color{255, 0, 0}
	Blue   = Color{0, 0, 255}
	Green  = Color{0, 255, 0}
	Yellow = Color{255, 255, 0}
	Purple = Color{255, 0, 255}
	Cyan   = Color{0, 255, 255}
	Orange = Color{255, 165, 0}
	Black  = Color{0, 0, 0}
)

//status pixel colors
var (
	StatusMenu     = Purple
	StatusRunning  = Green
	StatusTerminal = Red
)

func (s CellState) String() string {
	switch s {
	case Dead:
		return "dead"
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	case Zombie:
		return "zombie"
	case Off:
		return "off"
	}
	return fmt.Sprintf("CellState(%d)", int(s))
}

//Color returns the display color of the state
func (s CellState) Color() Color {
	switch s {
	case Dead:
		return Orange
	case Alive:
		return Blue
	case Dying:
		return Red
	case Zombie:
		return Green
	case Off:
		return Black
	}
	panic(fmt.Sprintf("universe: no color for %v", s))
}

//Scale dims the color to brightness/255, the way the strip driver does
func (c Color) Scale(brightness int) Color {
	if brightness >= 255 {
		return c
	}
	if brightness <= 0 {
		return Black
	}
	b := uint16(brightness)
	return Color{
		R: uint8(uint16(c.R) * b / 255),
		G: uint8(uint16(c.G) * b / 255),
		B: uint8(uint16(c.B) * b / 255),
	}
}

//Cell is a single position of the grid
//State is the committed state, Pending is the state computed for the next generation
type Cell struct {
	X       int
	Y       int
	State   CellState
	Pending CellState
}

func newCell(x, y int, state CellState) *Cell {
	return &Cell{X: x, Y: y, State: state, Pending: state}
}

//Commit moves the pending state into the committed state
func (c *Cell) Commit() {
	c.State = c.Pending
}

//Index returns the strip index the cell is wired to
func (c *Cell) Index() int {
	return MustToDevice(c.X, c.Y)
}
