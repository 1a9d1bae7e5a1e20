package view

import (
	"errors"
	"ledlife/src/universe"
)

type tee []universe.Renderer

//Tee returns the renderer which forwards every pixel to all renderers
func Tee(renderers ...universe.Renderer) universe.Renderer {
	if len(renderers) == 1 {
		return renderers[0]
	}
	return tee(renderers)
}

func (t tee) SetPixel(index int, c universe.Color) {
	for _, r := range t {
		r.SetPixel(index, c)
	}
}

func (t tee) SetBrightness(brightness int) {
	for _, r := range t {
		if d, ok := r.(universe.Dimmer); ok {
			d.SetBrightness(brightness)
		}
	}
}

func (t tee) Flush() error {
	var errs []error
	for _, r := range t {
		if err := r.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
