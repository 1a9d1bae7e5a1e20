package universe

//NextState applies the life rule to a cell with the given committed state and count of living neighbors
//every case not covered by the rule ends dead
func NextState(current CellState, living int) CellState {
	if living < 2 || living > 3 {
		return Dead
	} else if living == 3 {
		return Alive
	} else if living == 2 && current == Alive {
		return Alive
	}
	return Dead
}
