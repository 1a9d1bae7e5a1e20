package universe

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"
)

//Event is the outcome of one tick
type Event int

const (
	EventAdvanced Event = iota
	EventAllDead
	EventLocked
)

//LockThreshold is the number of ticks without any change after which the grid is considered locked
const LockThreshold = 3

var ErrInvalidBrightness = errors.New("brightness must be between 1 and 255")

func (e Event) String() string {
	switch e {
	case EventAdvanced:
		return "advanced"
	case EventAllDead:
		return "all dead"
	case EventLocked:
		return "locked"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

//SimulationContext is the mutable state of a simulation
//LockCounter goes back to 0 whenever the grid is regenerated or replaced
type SimulationContext struct {
	Grid        *Grid
	LockCounter int
	Muted       bool
	Brightness  int
	ChanceInit  int
}

//Engine advances the grid generation by generation and pushes every committed generation to the renderer
//Engine is not safe for concurrent use, Universe serializes the access to it
type Engine struct {
	ctx          SimulationContext
	renderer     Renderer
	rng          *rand.Rand
	shutdownStep time.Duration
}

//NewEngine creates the engine with an empty (all dead) grid, call Generate to seed it
func NewEngine(o *Options, r Renderer) *Engine {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	if r == nil {
		r = Discard
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		ctx: SimulationContext{
			Grid:       NewGrid(),
			Muted:      o.Muted,
			Brightness: o.Brightness,
			ChanceInit: o.ChanceInit,
		},
		renderer:     r,
		rng:          rand.New(rand.NewPCG(uint64(seed), 0)),
		shutdownStep: o.ShutdownStep,
	}
	if d, ok := r.(Dimmer); ok {
		d.SetBrightness(e.ctx.Brightness)
	}
	return e
}

//Context exposes the simulation state
func (e *Engine) Context() *SimulationContext {
	return &e.ctx
}

//Generate reseeds the grid, resets the lock counter and renders the new grid
func (e *Engine) Generate() {
	e.ctx.Grid.Seed(e.rng, e.ctx.ChanceInit)
	e.ctx.LockCounter = 0
	e.Render()
}

//Tick does one generation
//on extinction or lock the grid is regenerated and nothing is committed, otherwise all cells commit at once
func (e *Engine) Tick() Event {
	g := e.ctx.Grid
	e.SetStatus(StatusRunning)

	for _, c := range g.cells {
		c.Pending = NextState(c.State, g.LivingNeighbors(c))
	}

	if g.all(func(c *Cell) bool { return c.State == Dead }) {
		e.regenerate()
		return EventAllDead
	}
	if g.all(func(c *Cell) bool { return c.State == c.Pending }) {
		e.ctx.LockCounter++
		if e.ctx.LockCounter >= LockThreshold {
			e.regenerate()
			return EventLocked
		}
	}

	for _, c := range g.cells {
		c.Commit()
	}
	e.Render()
	return EventAdvanced
}

//Render pushes all cells to the renderer
func (e *Engine) Render() {
	for _, c := range e.ctx.Grid.cells {
		e.renderer.SetPixel(c.Index(), c.State.Color())
	}
	e.flush()
}

//SetStatus shows c on the status pixel
func (e *Engine) SetStatus(c Color) {
	e.renderer.SetPixel(StatusIndex, c)
	e.flush()
}

//Load replaces the grid with the grid code and renders it
func (e *Engine) Load(code string) error {
	if err := e.ctx.Grid.Load(code); err != nil {
		return err
	}
	e.ctx.LockCounter = 0
	e.Render()
	return nil
}

//Code returns the grid code of the current grid
func (e *Engine) Code() string {
	return Encode(e.ctx.Grid)
}

//SetBrightness applies the new brightness and renders the grid again
func (e *Engine) SetBrightness(brightness int) error {
	if brightness < 1 || brightness > 255 {
		return fmt.Errorf("%w: got %d", ErrInvalidBrightness, brightness)
	}
	e.ctx.Brightness = brightness
	if d, ok := e.renderer.(Dimmer); ok {
		d.SetBrightness(brightness)
	}
	e.Render()
	return nil
}

//ToggleMute flips the mute flag and returns the new value
func (e *Engine) ToggleMute() bool {
	e.ctx.Muted = !e.ctx.Muted
	return e.ctx.Muted
}

//Shutdown switches every cell off and plays the closing sequence on the status pixel
func (e *Engine) Shutdown() {
	for _, c := range e.ctx.Grid.cells {
		c.State = Off
		c.Pending = Off
		e.renderer.SetPixel(c.Index(), c.State.Color())
		e.flush()
	}
	for _, c := range []Color{Yellow, Orange, Red, Black} {
		e.SetStatus(c)
		if e.shutdownStep > 0 {
			time.Sleep(e.shutdownStep)
		}
	}
}

func (e *Engine) regenerate() {
	e.SetStatus(StatusTerminal)
	e.Generate()
}

func (e *Engine) flush() {
	if err := e.renderer.Flush(); err != nil {
		log.Printf("renderer flush: %v", err)
	}
}

func (g *Grid) all(pred func(c *Cell) bool) bool {
	for _, c := range g.cells {
		if !pred(c) {
			return false
		}
	}
	return true
}
