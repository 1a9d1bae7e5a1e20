package universe

//Renderer is the led strip the universe is displayed on
//SetPixel only buffers the color, Flush pushes the buffered pixels to the device
type Renderer interface {
	SetPixel(index int, c Color)
	Flush() error
}

//Dimmer is implemented by renderers supporting brightness (1..255)
type Dimmer interface {
	SetBrightness(brightness int)
}

type discard struct{}

func (discard) SetPixel(int, Color) {}
func (discard) Flush() error       { return nil }

//Discard is the renderer which drops everything
var Discard Renderer = discard{}
