package view

import (
	"bytes"
	"fmt"
	"io"
	"ledlife/src/universe"
	"sync"

	"github.com/logrusorgru/aurora"
)

//ConsoleStrip prints the strip to a terminal, one line per changed frame
//the line shows the panel column by column (strip segments), followed by the status pixel
type ConsoleStrip struct {
	mu         sync.Mutex
	w          io.Writer
	au         aurora.Aurora
	pixels     [universe.StripLength]universe.Color
	shown      [universe.StripLength]universe.Color
	brightness int
	shownLevel int
	printed    bool
}

func NewConsoleStrip(w io.Writer, colors bool) *ConsoleStrip {
	return &ConsoleStrip{
		w:          w,
		au:         aurora.NewAurora(colors),
		brightness: universe.DefBrightness,
	}
}

func (s *ConsoleStrip) SetPixel(index int, c universe.Color) {
	if index < 0 || index >= universe.StripLength {
		return
	}
	s.mu.Lock()
	s.pixels[index] = c
	s.mu.Unlock()
}

func (s *ConsoleStrip) SetBrightness(brightness int) {
	s.mu.Lock()
	s.brightness = brightness
	s.mu.Unlock()
}

func (s *ConsoleStrip) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.printed && s.pixels == s.shown && s.brightness == s.shownLevel {
		return nil
	}
	s.shown = s.pixels
	s.shownLevel = s.brightness
	s.printed = true

	var b bytes.Buffer
	for y := 1; y <= universe.GridSize; y++ {
		if y != 1 {
			b.WriteByte(' ')
		}
		for x := 1; x <= universe.GridSize; x++ {
			b.WriteString(s.pixel(universe.MustToDevice(x, y)))
		}
	}
	b.WriteString(" | ")
	b.WriteString(s.pixel(universe.StatusIndex))
	_, err := fmt.Fprintln(s.w, b.String())
	return err
}

func (s *ConsoleStrip) pixel(index int) string {
	c := s.shown[index].Scale(s.shownLevel)
	glyph := "o"
	if c == universe.Black {
		glyph = "."
	}
	return s.au.Index(colorIndex(c), glyph).String()
}

//colorIndex returns the closest color of the xterm 256 color cube
func colorIndex(c universe.Color) uint8 {
	q := func(v uint8) uint8 {
		return uint8((int(v)*5 + 127) / 255)
	}
	return 16 + 36*q(c.R) + 6*q(c.G) + q(c.B)
}
