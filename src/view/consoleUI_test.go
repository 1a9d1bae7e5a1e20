package view

import (
	"errors"
	"ledlife/src/universe"
	"strings"
	"testing"

	"github.com/jroimartin/gocui"
)

func newKeyTestUniverse() *universe.BaseUniverse {
	o := universe.DefaultUniverseOptions
	o.Seed = 7
	o.Interval = 0
	o.TerminalPause = 0
	o.ShutdownStep = 0
	return universe.NewBaseUniverse(&o, nil, nil)
}

func findBinding(t *testing.T, k []keyBindings, key interface{}) keyBindings {
	t.Helper()
	for _, kb := range k {
		if kb.key == key {
			return kb
		}
	}
	t.Fatalf("no binding for %v", key)
	return keyBindings{}
}

func TestConsoleUICtrlCOpensMenu(t *testing.T) {
	u := newKeyTestUniverse()
	defer u.Close()
	ui := &ConsoleUI{u: u}
	k := ui.keyBindingTable()

	u.Run()
	if err := findBinding(t, k, gocui.KeyCtrlC).handler(nil); err != nil {
		t.Fatalf("^C returned %v", err)
	}
	if st := u.Status(); st.RunningMode != universe.RunningStateMenu {
		t.Fatalf("mode after ^C = %v, want menu", st.RunningMode)
	}

	if err := findBinding(t, k, 'q').handler(nil); !errors.Is(err, gocui.ErrQuit) {
		t.Fatalf("q returned %v, want ErrQuit", err)
	}
	if st := u.Status(); st.RunningMode != universe.RunningStateFinished {
		t.Fatalf("mode after q = %v, want finished", st.RunningMode)
	}
}

func TestConsoleUIBindingsAreUnique(t *testing.T) {
	ui := &ConsoleUI{}
	seen := map[string]bool{}
	for _, kb := range ui.keyBindingTable() {
		if seen[kb.name+"/"+kb.viewName] {
			t.Errorf("key %s bound twice in %q", kb.name, kb.viewName)
		}
		seen[kb.name+"/"+kb.viewName] = true
		if kb.handler == nil {
			t.Errorf("key %s has no handler", kb.name)
		}
	}
}

func TestConsoleUISubmitKeepsPromptOnBadInput(t *testing.T) {
	u := newKeyTestUniverse()
	defer u.Close()
	ui := &ConsoleUI{u: u, prompting: u.LoadCode}

	if ui.submit("101") {
		t.Fatal("short code accepted")
	}
	if !strings.Contains(ui.message, universe.ErrInvalidLength.Error()) {
		t.Fatalf("message = %q", ui.message)
	}

	code := " " + strings.Repeat("1", universe.CellCount) + "\n"
	if !ui.submit(code) {
		t.Fatalf("valid code rejected: %q", ui.message)
	}
	if ui.message != "" {
		t.Fatalf("message kept after valid input: %q", ui.message)
	}
	if got := u.Code(); got != strings.Repeat("1", universe.CellCount) {
		t.Fatalf("code not loaded: %q", got)
	}
}

func TestConsoleUIEventMessageOncePerIteration(t *testing.T) {
	ui := &ConsoleUI{}
	st := universe.Status{IterationNum: 4, LastEvent: universe.EventLocked}
	if msg, ok := ui.eventMessage(st); !ok || msg != MessageLocked {
		t.Fatalf("eventMessage = %q, %v", msg, ok)
	}
	//a later refresh of the same iteration keeps whatever message is shown
	st.RunningMode = universe.RunningStateMenu
	if _, ok := ui.eventMessage(st); ok {
		t.Fatal("event reported twice")
	}

	st.IterationNum, st.LastEvent, st.Muted = 5, universe.EventAllDead, true
	if _, ok := ui.eventMessage(st); ok {
		t.Fatal("muted event reported")
	}
}
