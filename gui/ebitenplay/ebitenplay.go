// This file is part of GopherNES.
//
// GopherNES is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherNES is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherNES.  If not, see <https://www.gnu.org/licenses/>.

// Package ebitenplay is a front end for the emulation built with the
// Ebitengine game library. Unlike the sdlplay package, the emulation is driven
// by the game loop of Ebitengine: one frame is run for every call to
// Update().
//
// There is no sound output in the ebitenplay front end. Use the wav writer if
// audio is required.
package ebitenplay

import (
	"errors"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/govern"
	"github.com/jetsetilly/gophernes/gui"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/ppu/palette"
	"github.com/jetsetilly/gophernes/logger"
	"github.com/jetsetilly/gophernes/userinput"
)

const windowTitle = "GopherNES"

// EbitenPlay implements the ebiten.Game and output.VideoRenderer interfaces.
type EbitenPlay struct {
	nes *hardware.NES

	// the frame is converted to RGBA in NewFrame() and copied to the image
	// in Draw()
	crit   sync.Mutex
	pixels []byte
	dirty  bool
	image  *ebiten.Image

	input       input
	controllers userinput.Controllers

	// called after every frame. the game loop ends when the Ending state is
	// returned
	continueCheck func() (govern.State, error)

	// the error that ended the game loop. ebiten.Termination is not an error
	// for the purposes of Run()
	err error
}

// NewEbitenPlay is the preferred method of initialisation for the EbitenPlay
// type. The EbitenPlay instance is added to the NES as a video renderer.
func NewEbitenPlay(nes *hardware.NES, scale int) *EbitenPlay {
	eb := &EbitenPlay{
		nes:    nes,
		pixels: gui.NewPixels(),
		image:  ebiten.NewImage(gui.Width, gui.Height),
		input:  newInput(),
	}
	nes.AddVideoRenderer(eb)

	w, h := gui.Scale(scale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// one emulated frame per tick
	ebiten.SetTPS(int(math.Round(nes.Spec().FrameRate)))

	return eb
}

// Run the game loop. Does not return until the window is closed, the
// continueCheck function returns the Ending state or the emulation ends with
// an error. The continueCheck function can be nil. MUST be called from the
// main thread.
func (eb *EbitenPlay) Run(continueCheck func() (govern.State, error)) error {
	eb.continueCheck = continueCheck
	if eb.continueCheck == nil {
		eb.continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	err := ebiten.RunGame(eb)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return curated.Errorf("ebitenplay: %v", err)
	}
	return eb.err
}

// Update implements the ebiten.Game interface.
func (eb *EbitenPlay) Update() error {
	for _, ev := range eb.input.poll() {
		if err := eb.controllers.HandleUserInput(ev, eb.nes.Pads); err != nil {
			eb.err = err
			return ebiten.Termination
		}
	}

	if eb.controllers.Quit {
		logger.Logf(logger.Allow, "ebitenplay", "quit")
		return ebiten.Termination
	}

	state, err := eb.continueCheck()
	if err != nil {
		eb.err = err
		return ebiten.Termination
	}

	switch state {
	case govern.Ending:
		return ebiten.Termination
	case govern.Paused:
		return nil
	}

	if err := eb.nes.RunFrame(); err != nil {
		eb.err = err
		return ebiten.Termination
	}

	return nil
}

// Draw implements the ebiten.Game interface.
func (eb *EbitenPlay) Draw(screen *ebiten.Image) {
	eb.crit.Lock()
	if eb.dirty {
		eb.image.WritePixels(eb.pixels)
		eb.dirty = false
	}
	eb.crit.Unlock()

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := math.Min(float64(sw)/gui.Width, float64(sh)/gui.Height)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(sw)-gui.Width*scale)/2, (float64(sh)-gui.Height*scale)/2)
	screen.DrawImage(eb.image, op)
}

// Layout implements the ebiten.Game interface.
func (eb *EbitenPlay) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// NewFrame implements the output.VideoRenderer interface.
func (eb *EbitenPlay) NewFrame(frame []uint16, p *palette.Palette) error {
	eb.crit.Lock()
	defer eb.crit.Unlock()
	gui.Pixels(frame, p, eb.pixels)
	eb.dirty = true
	return nil
}

// EndRendering implements the output.VideoRenderer interface.
func (eb *EbitenPlay) EndRendering() error {
	return nil
}
