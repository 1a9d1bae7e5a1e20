package view

import (
	"bytes"
	"errors"
	"ledlife/src/universe"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/snappy"
	"github.com/gorilla/websocket"
)

func TestConsoleStripLine(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleStrip(&buf, false)
	s.SetPixel(universe.MustToDevice(1, 1), universe.Blue)
	s.SetPixel(universe.MustToDevice(7, 2), universe.Orange)
	s.SetPixel(universe.StatusIndex, universe.Green)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "o...... ......o" + strings.Repeat(" .......", 5) + " | o\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}

	_ = s.Flush()
	if buf.String() != want {
		t.Fatal("unchanged frame printed again")
	}

	s.SetBrightness(0)
	_ = s.Flush()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || strings.Contains(lines[1], "o") {
		t.Fatalf("dark frame not printed: %q", buf.String())
	}
}

func TestParseChannelOrder(t *testing.T) {
	o, err := ParseChannelOrder("GRB")
	if err != nil || o != OrderGRB {
		t.Fatalf("ParseChannelOrder(GRB) = %v, %v", o, err)
	}
	for _, bad := range []string{"", "rg", "rgg", "rgbx", "xyz"} {
		if _, err := ParseChannelOrder(bad); err == nil {
			t.Errorf("ParseChannelOrder(%q) accepted", bad)
		}
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	kind, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", kind)
	}
	frame, err := snappy.Decode(nil, msg)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if len(frame) != 3*universe.StripLength {
		t.Fatalf("frame length = %d", len(frame))
	}
	return frame
}

func TestWebsocketStripBroadcast(t *testing.T) {
	s := NewWebsocketStrip(OrderGRB)
	s.SetPixel(0, universe.Orange)
	_ = s.Flush()

	srv := httptest.NewServer(s)
	defer srv.Close()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	//a new strip gets the last frame right away
	frame := readFrame(t, conn)
	if !bytes.Equal(frame[:3], []byte{165, 255, 0}) {
		t.Fatalf("pixel 0 = %v, want green-red-blue orange", frame[:3])
	}
	if s.Clients() != 1 {
		t.Fatalf("clients = %d, want 1", s.Clients())
	}

	s.SetBrightness(51)
	s.SetPixel(universe.StatusIndex, universe.White)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	frame = readFrame(t, conn)
	last := frame[3*universe.StatusIndex:]
	if !bytes.Equal(last, []byte{51, 51, 51}) {
		t.Fatalf("status pixel = %v, want dimmed white", last)
	}

	conn.Close()
	deadline := time.Now().Add(5 * time.Second)
	for s.Clients() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("disconnected strip still registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

type failingStrip struct {
	recordingStrip
}

func (failingStrip) Flush() error { return errors.New("strip unplugged") }

type recordingStrip struct {
	pixels     map[int]universe.Color
	brightness int
	flushes    int
}

func (r *recordingStrip) SetPixel(i int, c universe.Color) {
	if r.pixels == nil {
		r.pixels = map[int]universe.Color{}
	}
	r.pixels[i] = c
}
func (r *recordingStrip) Flush() error         { r.flushes++; return nil }
func (r *recordingStrip) SetBrightness(b int) { r.brightness = b }

func TestTee(t *testing.T) {
	a, b := &recordingStrip{}, &recordingStrip{}
	r := Tee(a, b)
	r.SetPixel(3, universe.Blue)
	r.(universe.Dimmer).SetBrightness(9)
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}
	for _, s := range []*recordingStrip{a, b} {
		if s.pixels[3] != universe.Blue || s.brightness != 9 || s.flushes != 1 {
			t.Fatalf("renderer not fed: %+v", s)
		}
	}

	f := &failingStrip{}
	if err := Tee(a, f).Flush(); err == nil || !strings.Contains(err.Error(), "unplugged") {
		t.Fatalf("Flush() err = %v", err)
	}
	if Tee(a) != universe.Renderer(a) {
		t.Fatal("single renderer was wrapped")
	}
}
