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

// Package sdlplay is a simple SDL front end for the emulation. It implements
// the output.VideoRenderer and output.AudioMixer interfaces.
//
// All SDL functions must be called from the main thread. The emulation should
// therefore be run from the main thread too, calling Service() once per frame
// from the continue check of hardware.NES.Run().
package sdlplay

import (
	"unsafe"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/gui"
	"github.com/jetsetilly/gophernes/hardware/output"
	"github.com/jetsetilly/gophernes/hardware/ppu/palette"
	"github.com/jetsetilly/gophernes/logger"
	"github.com/jetsetilly/gophernes/performance/limiter"
	"github.com/jetsetilly/gophernes/userinput"
	"github.com/veandco/go-sdl2/sdl"
)

const windowTitle = "GopherNES"

// SdlPlay is a simple SDL implementation of the output.VideoRenderer and
// output.AudioMixer interfaces.
type SdlPlay struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// pixels is the byte array that is copied to the texture every frame
	pixels []byte

	// all audio is handled by the sound type
	snd *sound

	// limit screen updates to a fixed fps
	lmtr *limiter.FpsLimiter

	// real gamepads, indexed by joystick instance
	gamepads map[sdl.JoystickID]gamepad

	controllers userinput.Controllers
}

type gamepad struct {
	controller *sdl.GameController
	player     int
}

// NewSdlPlay is the preferred method of initialisation for SdlPlay. The
// frameRate argument is used to limit the speed of the emulation. A frameRate
// of zero means the speed is not limited. No audio is played if the audio
// spec has a rate of zero.
func NewSdlPlay(scale int, frameRate float64, spec output.AudioSpec) (*SdlPlay, error) {
	scr := &SdlPlay{
		pixels:   gui.NewPixels(),
		lmtr:     limiter.NewFPSLimiter(frameRate),
		gamepads: make(map[sdl.JoystickID]gamepad),
	}

	var err error

	err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_GAMECONTROLLER)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	w, h := gui.Scale(scale)

	scr.window, err = sdl.CreateWindow(windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(w), int32(h),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		scr.destroy()
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	// the renderer scales the texture to fit the window
	err = scr.renderer.SetLogicalSize(gui.Width, gui.Height)
	if err != nil {
		scr.destroy()
		return nil, curated.Errorf("sdlplay: %v", err)
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	// the byte order of ABGR8888 on a little endian machine is R, G, B, A
	scr.texture, err = scr.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		gui.Width, gui.Height)
	if err != nil {
		scr.destroy()
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.snd, err = newSound(spec)
	if err != nil {
		scr.destroy()
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.openGamepads()

	logger.Logf(logger.Allow, "sdlplay", "window opened (%dx%d)", w, h)

	return scr, nil
}

func (scr *SdlPlay) destroy() {
	for _, g := range scr.gamepads {
		g.controller.Close()
	}
	if scr.texture != nil {
		_ = scr.texture.Destroy()
	}
	if scr.renderer != nil {
		_ = scr.renderer.Destroy()
	}
	if scr.window != nil {
		_ = scr.window.Destroy()
	}
	sdl.Quit()
}

// NewFrame implements the output.VideoRenderer interface.
func (scr *SdlPlay) NewFrame(frame []uint16, p *palette.Palette) error {
	gui.Pixels(frame, p, scr.pixels)

	err := scr.texture.Update(nil, unsafe.Pointer(&scr.pixels[0]), gui.Width*gui.PixelDepth)
	if err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	err = scr.renderer.Clear()
	if err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	scr.renderer.Present()

	// the audio queue regulates the speed of the emulation if audio is
	// playing. otherwise the frame limiter is used
	if !scr.snd.enabled() {
		scr.lmtr.Wait()
	}

	return nil
}

// EndRendering implements the output.VideoRenderer interface.
func (scr *SdlPlay) EndRendering() error {
	scr.snd.end()
	scr.destroy()
	return nil
}

// SetAudio implements the output.AudioMixer interface.
func (scr *SdlPlay) SetAudio(samples []int16) error {
	if err := scr.snd.queue(samples); err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}
	return nil
}

// EndMixing implements the output.AudioMixer interface. The SDL audio device
// is closed by EndRendering().
func (scr *SdlPlay) EndMixing() error {
	return nil
}
