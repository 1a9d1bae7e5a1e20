package view

import (
	"fmt"
	"io"
	"ledlife/src/universe"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"
)

const (
	MessageAllDead = "All cells are dead. How about some more?"
	MessageLocked  = "This grid is locked down. Have a new one!"
)

//ConsoleOut prints the universe events to the console
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	au        aurora.Aurora
	startTime time.Time
	lastIter  int
	finished  bool
}

func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors)}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.RunningMode == universe.RunningStateFinished {
		if c.finished {
			return
		}
		c.finished = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Grids":          st.Epoch,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		fmt.Fprintln(c.w, "\nFinished:")
		c.printHashData(resultData)
		return
	}
	if st.IterationNum == c.lastIter {
		return
	}
	c.lastIter = st.IterationNum
	if st.Muted {
		return
	}
	switch st.LastEvent {
	case universe.EventAllDead:
		fmt.Fprintln(c.w, c.au.Red(MessageAllDead))
	case universe.EventLocked:
		fmt.Fprintln(c.w, c.au.Red(MessageLocked))
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Grid":           fmt.Sprintf("%v x %v", universe.GridSize, universe.GridSize),
		"Interval":       o.Interval,
		"Start chance":   fmt.Sprintf("%v%%", o.ChanceInit),
		"Brightness":     o.Brightness,
		"Muted":          o.Muted,
		"Max iterations": o.MaxSteps,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started, press Ctrl+C to open the menu...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", c.au.Green(propName), d[propName])
	}
}
