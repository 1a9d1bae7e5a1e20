package universe

import "testing"

func TestNextState(t *testing.T) {
	cases := []struct {
		current CellState
		living  int
		want    CellState
	}{
		{Dead, 0, Dead},
		{Dead, 1, Dead},
		{Dead, 2, Dead},
		{Dead, 3, Alive},
		{Dead, 4, Dead},
		{Dead, 8, Dead},
		{Alive, 0, Dead},
		{Alive, 1, Dead},
		{Alive, 2, Alive},
		{Alive, 3, Alive},
		{Alive, 4, Dead},
		{Alive, 8, Dead},
		{Zombie, 2, Dead},
		{Zombie, 3, Alive},
		{Off, 2, Dead},
	}
	for _, c := range cases {
		if got := NextState(c.current, c.living); got != c.want {
			t.Errorf("NextState(%v, %d) = %v, want %v", c.current, c.living, got, c.want)
		}
	}
}

func TestStateColors(t *testing.T) {
	want := map[CellState]Color{
		Dead:   Orange,
		Alive:  Blue,
		Dying:  Red,
		Zombie: Green,
		Off:    Black,
	}
	for s, c := range want {
		if got := s.Color(); got != c {
			t.Errorf("%v.Color() = %v, want %v", s, got, c)
		}
	}
}

func TestColorScale(t *testing.T) {
	if got := Orange.Scale(255); got != Orange {
		t.Fatalf("full brightness changed the color: %v", got)
	}
	if got := White.Scale(51); got != (Color{51, 51, 51}) {
		t.Fatalf("White.Scale(51) = %v", got)
	}
	if got := Blue.Scale(0); got != Black {
		t.Fatalf("Blue.Scale(0) = %v", got)
	}
}
