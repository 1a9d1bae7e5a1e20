package view

import (
	"fmt"
	"ledlife/src/universe"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/golang/snappy"
	"github.com/gorilla/websocket"
)

//ChannelOrder is the order the color channels are sent to the strip
//ws2811 strips expect green first
type ChannelOrder [3]int

var (
	OrderRGB = ChannelOrder{0, 1, 2}
	OrderGRB = ChannelOrder{1, 0, 2}
)

//ParseChannelOrder parses a permutation of "rgb", e.g. "grb"
func ParseChannelOrder(s string) (ChannelOrder, error) {
	var o ChannelOrder
	s = strings.ToLower(s)
	if len(s) != 3 {
		return o, fmt.Errorf("channel order %q: want a permutation of rgb", s)
	}
	seen := [3]bool{}
	for i := 0; i < 3; i++ {
		ch := strings.IndexByte("rgb", s[i])
		if ch < 0 || seen[ch] {
			return o, fmt.Errorf("channel order %q: want a permutation of rgb", s)
		}
		seen[ch] = true
		o[i] = ch
	}
	return o, nil
}

func (o ChannelOrder) put(dst []byte, c universe.Color) {
	rgb := [3]uint8{c.R, c.G, c.B}
	for i, ch := range o {
		dst[i] = rgb[ch]
	}
}

//WebsocketStrip drives strips connected over websocket
//every flush broadcasts one snappy compressed frame: 3 bytes per pixel in the channel order, brightness applied
type WebsocketStrip struct {
	upgrader   websocket.Upgrader
	order      ChannelOrder
	mu         sync.Mutex
	clients    map[*websocket.Conn]bool
	pixels     [universe.StripLength]universe.Color
	brightness int
	last       []byte
}

func NewWebsocketStrip(order ChannelOrder) *WebsocketStrip {
	return &WebsocketStrip{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		order:      order,
		clients:    make(map[*websocket.Conn]bool),
		brightness: universe.DefBrightness,
	}
}

func (s *WebsocketStrip) SetPixel(index int, c universe.Color) {
	if index < 0 || index >= universe.StripLength {
		return
	}
	s.mu.Lock()
	s.pixels[index] = c
	s.mu.Unlock()
}

func (s *WebsocketStrip) SetBrightness(brightness int) {
	s.mu.Lock()
	s.brightness = brightness
	s.mu.Unlock()
}

//Flush sends the frame to all clients, clients failing to receive it are dropped
func (s *WebsocketStrip) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = snappy.Encode(nil, s.frame())
	for client := range s.clients {
		if err := client.WriteMessage(websocket.BinaryMessage, s.last); err != nil {
			log.Println("Error writing frame to strip:", err)
			client.Close()
			delete(s.clients, client)
		}
	}
	return nil
}

func (s *WebsocketStrip) frame() []byte {
	frame := make([]byte, 3*universe.StripLength)
	for i, c := range s.pixels {
		s.order.put(frame[3*i:], c.Scale(s.brightness))
	}
	return frame
}

//Clients returns the number of connected strips
func (s *WebsocketStrip) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

//ServeHTTP upgrades the connection and keeps the strip registered until it disconnects
func (s *WebsocketStrip) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Error upgrading websocket:", err)
		return
	}

	s.mu.Lock()
	s.clients[ws] = true
	if s.last != nil {
		if err := ws.WriteMessage(websocket.BinaryMessage, s.last); err != nil {
			delete(s.clients, ws)
			s.mu.Unlock()
			ws.Close()
			return
		}
	}
	s.mu.Unlock()

	//strips only listen, reading just detects the disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	s.mu.Lock()
	if s.clients[ws] {
		delete(s.clients, ws)
		ws.Close()
	}
	s.mu.Unlock()
}

//Close disconnects all strips
func (s *WebsocketStrip) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
}
