package universe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidLength    = errors.New("invalid code length")
	ErrInvalidCharacter = errors.New("invalid code character")
)

//Encode returns the grid code: one '1' (alive) or '0' (any other state) per cell in canonical order
func Encode(g *Grid) string {
	var b strings.Builder
	b.Grow(CellCount)
	for _, c := range g.cells {
		if c.State == Alive {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

//Decode builds a new grid from the code
func Decode(code string) (*Grid, error) {
	g := NewGrid()
	if err := g.Load(code); err != nil {
		return nil, err
	}
	return g, nil
}

//Load replaces the committed states with the ones in code and resets all pending states to Dead
//the grid is left untouched when the code is not valid
func (g *Grid) Load(code string) error {
	states, err := parseCode(code)
	if err != nil {
		return err
	}
	for i, c := range g.cells {
		c.State = states[i]
		c.Pending = Dead
	}
	return nil
}

func parseCode(code string) ([]CellState, error) {
	if len(code) != CellCount {
		return nil, fmt.Errorf("%w: got %d characters, want %d", ErrInvalidLength, len(code), CellCount)
	}
	states := make([]CellState, CellCount)
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '0':
			states[i] = Dead
		case '1':
			states[i] = Alive
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, code[i], i+1)
		}
	}
	return states, nil
}
