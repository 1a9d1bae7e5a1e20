package universe

import (
	"errors"
	"fmt"
)

const (
	GridSize    = 7
	CellCount   = GridSize * GridSize
	StatusIndex = CellCount //the extra pixel after the grid shows the operating mode
	StripLength = CellCount + 1
)

var ErrOutOfRange = errors.New("coordinate out of range")

//ToDevice converts the grid position x, y (both 1..7) to the index on the led strip
//the strip runs up the odd columns and down the even ones
func ToDevice(x, y int) (int, error) {
	if x < 1 || x > GridSize || y < 1 || y > GridSize {
		return 0, fmt.Errorf("map (%d,%d): %w", x, y, ErrOutOfRange)
	}
	if y%2 == 0 {
		return GridSize*y - x, nil
	}
	return GridSize*y - GridSize + x - 1, nil
}

//MustToDevice is ToDevice for positions known to be on the grid
func MustToDevice(x, y int) int {
	i, err := ToDevice(x, y)
	if err != nil {
		panic(err)
	}
	return i
}

//FromDevice is the inverse of ToDevice
func FromDevice(index int) (x int, y int, err error) {
	if index < 0 || index >= CellCount {
		return 0, 0, fmt.Errorf("unmap %d: %w", index, ErrOutOfRange)
	}
	y = index/GridSize + 1
	offset := index % GridSize
	if y%2 == 0 {
		x = GridSize - offset
	} else {
		x = offset + 1
	}
	return x, y, nil
}
