package view

import (
	"bytes"
	"fmt"
	"ledlife/src/universe"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal front end
//it is both a Viewer and a Renderer: the strip is drawn as the physical panel
type ConsoleUI struct {
	u universe.Universe
	g *gocui.Gui
	k []keyBindings

	mu         sync.Mutex
	pixels     [universe.StripLength]universe.Color
	shown      [universe.StripLength]universe.Color
	brightness int

	message   string
	lastIter  int
	prompting func(input string) error
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateMenu:     aurora.Colorize("menu", aurora.MagentaFg).String(),
		universe.RunningStateStep:     "do the step",
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

func NewViewTerminal() *ConsoleUI {

	var err error
	t := ConsoleUI{brightness: universe.DefBrightness}

	t.g, err = gocui.NewGui(gocui.Output256)
	if err != nil {
		log.Panicln(err)
	}

	t.k = t.keyBindingTable()
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

//keyBindingTable lists the commands, ^C opens the menu like SPACE and only Q quits
func (t *ConsoleUI) keyBindingTable() []keyBindings {
	return []keyBindings{
		{gocui.KeyCtrlC, "^C", "Menu", t.cmdPause, ""},
		{'q', "Q", "Quit", t.cmdQuit, ""},
		{'c', "C", "Continue", t.cmdRun, ""},
		{gocui.KeySpace, "SPACE", "Menu", t.cmdPause, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'g', "G", "Code", t.cmdCode, ""},
		{'e', "E", "Enter code", t.cmdEnterCode, ""},
		{'r', "R", "New grid", t.cmdGenerate, ""},
		{'x', "X", "New grid and continue", t.cmdGenerateAndRun, ""},
		{'b', "B", "Brightness", t.cmdBrightness, ""},
		{'m', "M", "Mute", t.cmdMute, ""},
		{gocui.KeyEnter, "ENTER", "Submit", t.cmdSubmit, "prompt"},
		{gocui.KeyEsc, "ESC", "Abort", t.cmdAbort, "prompt"},
	}
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		global := kb.viewName == ""
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error {
			//letters typed into the prompt are not commands
			if global && t.prompting != nil {
				return nil
			}
			return h(view)
		}); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	st := t.u.Status()
	if msg, ok := t.eventMessage(st); ok {
		t.setMessage(msg)
	}
	t.renderConfiguration()
	t.renderStatus(st)
}

//eventMessage reports the terminal event of a new iteration only, so later refreshes keep other messages
func (t *ConsoleUI) eventMessage(st universe.Status) (string, bool) {
	if st.IterationNum == t.lastIter {
		return "", false
	}
	t.lastIter = st.IterationNum
	if st.Muted {
		return "", false
	}
	switch st.LastEvent {
	case universe.EventAllDead:
		return MessageAllDead, true
	case universe.EventLocked:
		return MessageLocked, true
	}
	return "", false
}

func (t *ConsoleUI) SetPixel(index int, c universe.Color) {
	if index < 0 || index >= universe.StripLength {
		return
	}
	t.mu.Lock()
	t.pixels[index] = c
	t.mu.Unlock()
}

func (t *ConsoleUI) SetBrightness(brightness int) {
	t.mu.Lock()
	t.brightness = brightness
	t.mu.Unlock()
}

func (t *ConsoleUI) Flush() error {
	t.mu.Lock()
	t.shown = t.pixels
	t.mu.Unlock()
	t.renderStrip()
	return nil
}

func (t *ConsoleUI) setMessage(msg string) {
	t.mu.Lock()
	t.message = msg
	t.mu.Unlock()
}

func (t *ConsoleUI) renderStrip() {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("strip")
		if e != nil {
			return nil
		}
		v.Clear()

		t.mu.Lock()
		shown, brightness := t.shown, t.brightness
		t.mu.Unlock()

		var b bytes.Buffer
		//every strip segment is one column of the panel
		for x := 1; x <= universe.GridSize; x++ {
			b.WriteByte(' ')
			for y := 1; y <= universe.GridSize; y++ {
				b.WriteString(block(shown[universe.MustToDevice(x, y)], brightness))
			}
			b.WriteByte('\n')
		}
		b.WriteString("\n status ")
		b.WriteString(block(shown[universe.StatusIndex], brightness))
		_, _ = fmt.Fprint(v, b.String())
		return nil
	})
}

func block(c universe.Color, brightness int) string {
	return aurora.BgIndex(colorIndex(c.Scale(brightness)), "  ").String()
}

func (t *ConsoleUI) renderStatus(s universe.Status) {
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := t.g.View("status"); e == nil {
			v.Clear()
			t.mu.Lock()
			msg := t.message
			t.mu.Unlock()
			_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, t.renderProp("Grid", "%v", s.Epoch))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Unchanged", "%v", s.LockCounter))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
			_, _ = fmt.Fprintln(v, t.renderProp("Brightness", "%v", s.Brightness))
			_, _ = fmt.Fprintln(v, t.renderProp("Muted", "%v", s.Muted))
			if msg != "" {
				_, _ = fmt.Fprintln(v, "\n "+msg)
			}
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", universe.GridSize, universe.GridSize))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Start chance", "%v%%", c.ChanceInit))
			_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("strip")
		return nil

	} else {
		if _, err := t.headerLayout(g, 3, "Game of Life on a 7x7 led panel"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/3+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		if t.u != nil {
			t.renderStatus(t.u.Status())
		}
	}

	if v, err := g.SetView("strip", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Panel"
		v.Frame = true
		t.renderStrip()
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if k.viewName != "" {
				continue
			}
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			panic(fmt.Sprintf("Terminal width is too small: %v", maxX))
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

//openPrompt shows the input line, submit is called with the entered text on Enter
func (t *ConsoleUI) openPrompt(title string, submit func(input string) error) error {
	maxX, maxY := t.g.Size()
	v, err := t.g.SetView("prompt", maxX/2-30, maxY/2-1, maxX/2+30, maxY/2+1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = title
	v.Editable = true
	v.Clear()
	_ = v.SetCursor(0, 0)
	if _, err := t.g.SetCurrentView("prompt"); err != nil {
		return err
	}
	t.g.Cursor = true
	t.prompting = submit
	return nil
}

func (t *ConsoleUI) closePrompt() error {
	t.prompting = nil
	t.g.Cursor = false
	if err := t.g.DeleteView("prompt"); err != nil && err != gocui.ErrUnknownView {
		return err
	}
	if _, err := t.g.SetCurrentView("strip"); err != nil && err != gocui.ErrUnknownView {
		return err
	}
	return nil
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	t.u.Pause()
	t.u.Shutdown()
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.u.Run()
	return nil
}

func (t *ConsoleUI) cmdPause(_ *gocui.View) error {
	t.u.Pause()
	return nil
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdCode(_ *gocui.View) error {
	t.setMessage("Code: " + t.u.Code())
	t.renderStatus(t.u.Status())
	return nil
}

func (t *ConsoleUI) cmdGenerate(_ *gocui.View) error {
	t.u.Generate()
	return nil
}

func (t *ConsoleUI) cmdGenerateAndRun(_ *gocui.View) error {
	t.u.Generate()
	t.u.Run()
	return nil
}

func (t *ConsoleUI) cmdMute(_ *gocui.View) error {
	t.u.ToggleMute()
	return nil
}

func (t *ConsoleUI) cmdEnterCode(_ *gocui.View) error {
	t.u.Pause()
	return t.openPrompt("Grid code (49 x 0/1)", t.u.LoadCode)
}

func (t *ConsoleUI) cmdBrightness(_ *gocui.View) error {
	t.u.Pause()
	return t.openPrompt("Brightness (1-255)", func(input string) error {
		brightness, err := strconv.Atoi(input)
		if err != nil {
			return fmt.Errorf("%q is not a number", input)
		}
		return t.u.SetBrightness(brightness)
	})
}

func (t *ConsoleUI) cmdSubmit(v *gocui.View) error {
	if t.prompting == nil {
		return nil
	}
	done := t.submit(v.Buffer())
	t.renderStatus(t.u.Status())
	if !done {
		v.Clear()
		_ = v.SetCursor(0, 0)
		return nil
	}
	return t.closePrompt()
}

//submit passes the input to the open prompt, a rejected input keeps the prompt open until it is valid or aborted
func (t *ConsoleUI) submit(input string) bool {
	if err := t.prompting(strings.TrimSpace(input)); err != nil {
		t.setMessage(aurora.Red(err.Error()).String())
		return false
	}
	t.setMessage("")
	return true
}

func (t *ConsoleUI) cmdAbort(_ *gocui.View) error {
	return t.closePrompt()
}
