package universe

import (
	"sync"
	"time"
)

//Options represents the Universe's configurable options
type Options struct {
	Interval      time.Duration //pause between two ticks
	TerminalPause time.Duration //pause after the grid died or locked
	ShutdownStep  time.Duration //delay between the colors of the closing sequence
	MaxSteps      int           //0 is unlimited
	ChanceInit    int           //chance in percent for a cell to be alive on generation
	Brightness    int
	Muted         bool
	Seed          int64 //0 seeds from the clock
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	Epoch         int //number of grids generated so far
	RunningMode   RunningState
	LiveCells     int
	LockCounter   int
	LastEvent     Event
	IterationTime time.Duration
	Muted         bool
	Brightness    int
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 500
	DefTerminalPause      = time.Second
	DefShutdownStep       = time.Millisecond * 100
	DefChanceInit         = 20
	DefBrightness         = 255
)

const (
	RunningStateMenu     = 0x0
	RunningStateStep     = 0x1
	RunningStateRun      = 0x2
	RunningStateFinished = 0x3
)

var DefaultUniverseOptions = Options{
	Interval:      DefSimulationInterval,
	TerminalPause: DefTerminalPause,
	ShutdownStep:  DefShutdownStep,
	ChanceInit:    DefChanceInit,
	Brightness:    DefBrightness,
	Muted:         true,
}

//BaseUniverse drives the Engine
//implements Universe interface
//every access to the engine goes through the main loop, so the grid has a single owner
type BaseUniverse struct {
	options Options
	engine  *Engine
	state   struct {
		Status
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan bool
	done      chan struct{}
	runID     int
}

//NewBaseUniverse creates the BaseUniverse instance with a freshly generated grid
//the universe starts in the menu mode, call Run to start the simulation
func NewBaseUniverse(o *Options, r Renderer, stateCh chan Status) *BaseUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	u := BaseUniverse{
		options:   *o,
		engine:    NewEngine(o, r),
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
		stateCh:   stateCh,
	}
	u.engine.SetStatus(StatusMenu)
	u.engine.Generate()
	u.state.Epoch = 1
	u.syncStatus()
	go u.mainLoop()
	return &u
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.send(u.run)
}

//Pause stops the simulation between two ticks and switches to the menu mode
//returns when the running tick (if any) has been committed
func (u *BaseUniverse) Pause() {
	u.call(u.pause)
}

//Step do one simulation step, returns immediately
func (u *BaseUniverse) Step() {
	u.send(func() { u.step() })
}

//Generate seeds a new grid
func (u *BaseUniverse) Generate() {
	u.call(func() {
		u.engine.Generate()
		u.state.Lock()
		u.state.Epoch++
		u.state.Unlock()
		u.publish()
	})
}

//LoadCode replaces the grid with the grid code
func (u *BaseUniverse) LoadCode(code string) (err error) {
	u.call(func() {
		if err = u.engine.Load(code); err == nil {
			u.publish()
		}
	})
	return
}

//Code returns the grid code of the current grid
func (u *BaseUniverse) Code() (code string) {
	u.call(func() { code = u.engine.Code() })
	return
}

//SetBrightness changes the strip brightness
func (u *BaseUniverse) SetBrightness(brightness int) (err error) {
	u.call(func() {
		if err = u.engine.SetBrightness(brightness); err == nil {
			u.publish()
		}
	})
	return
}

//ToggleMute switches the terminal messages on or off, returns the new mute state
func (u *BaseUniverse) ToggleMute() (muted bool) {
	u.call(func() {
		muted = u.engine.ToggleMute()
		u.publish()
	})
	return
}

//Shutdown stops the simulation and plays the closing sequence on the strip
func (u *BaseUniverse) Shutdown() {
	u.call(func() {
		u.runID++
		u.engine.Shutdown()
		u.switchRunningState(RunningStateFinished)
	})
}

//Close stops the main loop, returns immediately
func (u *BaseUniverse) Close() {
	select {
	case u.closeCh <- true:
	default:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case c = <-u.closeCh:

		}
	}
	close(u.done)
}

//send queues the command for the main loop
func (u *BaseUniverse) send(cmd func()) bool {
	select {
	case u.controlCh <- cmd:
		return true
	case <-u.done:
		return false
	}
}

//call queues the command and waits for it to finish
func (u *BaseUniverse) call(cmd func()) bool {
	finished := make(chan struct{})
	if !u.send(func() {
		cmd()
		close(finished)
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-u.done:
		return false
	}
}

//syncStatus copies the engine state to the status
func (u *BaseUniverse) syncStatus() {
	ctx := u.engine.Context()
	u.state.Lock()
	u.state.LiveCells = ctx.Grid.LiveCells()
	u.state.LockCounter = ctx.LockCounter
	u.state.Muted = ctx.Muted
	u.state.Brightness = ctx.Brightness
	u.state.Unlock()
}

//publish refreshes the status and notifies the views
func (u *BaseUniverse) publish() {
	u.syncStatus()
	u.refreshView()
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		u.stateCh <- st
	}
}

func (u *BaseUniverse) mode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//run starts the universe simulation
//simulation will stop on Pause() or when MaxSteps is reached
func (u *BaseUniverse) run() {
	if u.mode() == RunningStateRun {
		return
	}
	u.runID++
	id := u.runID
	u.switchRunningState(RunningStateRun)
	go func() {
		for {
			var ev Event
			ticked := false
			u.call(func() {
				if u.runID != id || u.mode() != RunningStateRun {
					return
				}
				ev, ticked = u.step(), true
			})
			if !ticked {
				return
			}
			pause := u.options.Interval
			if ev != EventAdvanced {
				pause = u.options.TerminalPause
			}
			if pause > 0 {
				time.Sleep(pause)
			}
		}
	}()
}

//pause switches to the menu mode, the running cycle exits before its next tick
func (u *BaseUniverse) pause() {
	u.runID++
	u.engine.SetStatus(StatusMenu)
	u.switchRunningState(RunningStateMenu)
}

//step does one tick of the engine
func (u *BaseUniverse) step() Event {
	rm := u.mode()
	maxIter := u.options.MaxSteps
	if maxIter != 0 && u.Status().IterationNum >= maxIter {
		u.switchRunningState(RunningStateFinished)
		u.refreshView()
		return EventAdvanced
	}

	u.switchRunningState(RunningStateStep)
	start := time.Now()
	ev := u.engine.Tick()

	u.state.Lock()
	u.state.IterationNum++
	u.state.LastEvent = ev
	u.state.IterationTime = time.Since(start)
	if ev != EventAdvanced {
		u.state.Epoch++
	}
	u.state.Unlock()
	u.syncStatus()
	u.switchRunningState(rm)
	u.refreshView()
	return ev
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
