package universe

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestUniverse(stateCh chan Status) (*BaseUniverse, *recordingStrip) {
	o := DefaultUniverseOptions
	o.Seed = 3
	o.Interval = time.Millisecond
	o.TerminalPause = time.Millisecond
	o.ShutdownStep = 0
	r := &recordingStrip{}
	return NewBaseUniverse(&o, r, stateCh), r
}

func TestUniverseStartsInMenu(t *testing.T) {
	u, r := newTestUniverse(nil)
	defer u.Close()
	st := u.Status()
	if st.RunningMode != RunningStateMenu {
		t.Fatalf("mode = %v, want menu", st.RunningMode)
	}
	if st.Epoch != 1 {
		t.Fatalf("epoch = %d, want 1", st.Epoch)
	}
	if r.statuses[0] != StatusMenu {
		t.Fatalf("first status = %v, want menu", r.statuses[0])
	}
}

func TestUniverseStepIsSerialized(t *testing.T) {
	u, _ := newTestUniverse(nil)
	defer u.Close()
	u.Step()
	u.Step()
	u.Pause()
	if st := u.Status(); st.IterationNum != 2 {
		t.Fatalf("iterations = %d, want 2", st.IterationNum)
	}
}

func TestUniverseCodeAndLoad(t *testing.T) {
	u, _ := newTestUniverse(nil)
	defer u.Close()
	code := strings.Repeat("0", 20) + "111" + strings.Repeat("0", 26)
	if err := u.LoadCode(code); err != nil {
		t.Fatalf("LoadCode: %v", err)
	}
	if got := u.Code(); got != code {
		t.Fatalf("Code() = %q, want %q", got, code)
	}
	if st := u.Status(); st.LiveCells != 3 || st.LockCounter != 0 {
		t.Fatalf("status after load: %+v", st)
	}
	if err := u.LoadCode("2" + strings.Repeat("0", 48)); !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("LoadCode(invalid) err = %v", err)
	}
	if got := u.Code(); got != code {
		t.Fatal("invalid code changed the grid")
	}
}

func TestUniverseSettings(t *testing.T) {
	u, r := newTestUniverse(nil)
	defer u.Close()
	if err := u.SetBrightness(300); !errors.Is(err, ErrInvalidBrightness) {
		t.Fatalf("SetBrightness(300) err = %v", err)
	}
	if err := u.SetBrightness(128); err != nil {
		t.Fatalf("SetBrightness(128): %v", err)
	}
	if u.Status().Brightness != 128 || r.brightness != 128 {
		t.Fatal("brightness not applied")
	}
	if u.ToggleMute() || u.Status().Muted {
		t.Fatal("ToggleMute did not unmute")
	}
	epoch := u.Status().Epoch
	u.Generate()
	if u.Status().Epoch != epoch+1 {
		t.Fatal("Generate did not start a new epoch")
	}
}

func TestUniverseRunAndPause(t *testing.T) {
	stateCh := make(chan Status, 10)
	u, _ := newTestUniverse(stateCh)
	defer u.Close()

	u.Run()
	waitFor(t, stateCh, func(st Status) bool { return st.IterationNum >= 3 })
	stop := drain(stateCh)
	u.Pause()
	close(stop)

	st := u.Status()
	if st.RunningMode != RunningStateMenu {
		t.Fatalf("mode = %v after pause", st.RunningMode)
	}
	time.Sleep(10 * time.Millisecond)
	if got := u.Status().IterationNum; got != st.IterationNum {
		t.Fatalf("simulation went on in the menu: %d -> %d", st.IterationNum, got)
	}
}

func TestUniverseMaxSteps(t *testing.T) {
	stateCh := make(chan Status, 10)
	o := DefaultUniverseOptions
	o.Seed = 11
	o.Interval = 0
	o.TerminalPause = 0
	o.MaxSteps = 5
	u := NewBaseUniverse(&o, nil, stateCh)
	defer u.Close()

	u.Run()
	waitFor(t, stateCh, func(st Status) bool { return st.RunningMode == RunningStateFinished })
	if got := u.Status().IterationNum; got != 5 {
		t.Fatalf("iterations = %d, want 5", got)
	}
}

func TestUniverseShutdown(t *testing.T) {
	u, r := newTestUniverse(nil)
	defer u.Close()
	u.Shutdown()
	if u.Status().RunningMode != RunningStateFinished {
		t.Fatal("universe not finished after shutdown")
	}
	if r.pixels[StatusIndex] != Black {
		t.Fatalf("status pixel = %v after shutdown", r.pixels[StatusIndex])
	}
}

func TestUniverseClosed(t *testing.T) {
	u, _ := newTestUniverse(nil)
	u.Close()
	<-u.done
	if code := u.Code(); code != "" {
		t.Fatalf("closed universe answered %q", code)
	}
}

func waitFor(t *testing.T, stateCh chan Status, cond func(Status) bool) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case st := <-stateCh:
			if cond(st) {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for the universe")
		}
	}
}

//drain keeps reading the channel until stop is closed so the main loop can't block on it
func drain(stateCh chan Status) chan struct{} {
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stateCh:
			case <-stop:
				return
			}
		}
	}()
	return stop
}
