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

package hardware

import (
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/govern"
	"github.com/jetsetilly/gophernes/hardware/output"
)

// AddVideoRenderer attaches a renderer that will receive every completed
// frame.
func (nes *NES) AddVideoRenderer(r output.VideoRenderer) {
	nes.video = append(nes.video, r)
}

// AddAudioMixer attaches a mixer that will receive the samples of every
// completed frame.
func (nes *NES) AddAudioMixer(m output.AudioMixer) {
	nes.audio = append(nes.audio, m)
}

// SetInputSource sets the source of controller input. A nil value removes
// the current source.
func (nes *NES) SetInputSource(in output.InputSource) {
	nes.input = in
}

// RunFrame runs the emulation until the PPU completes the next frame. The
// frame and the audio samples are then sent to the attached renderers and
// mixers.
//
// Any error from the CPU ends the frame early. The frame is not sent to the
// renderers in that case.
func (nes *NES) RunFrame() error {
	if nes.input != nil {
		if err := nes.input.Tick(nes.frameNum, nes.Pads); err != nil {
			return curated.Errorf("nes: %v", err)
		}
	}
	nes.Pads.HandlePushedEvents()

	nes.APU.ClearSamples()

	nes.frameDone = false
	for !nes.frameDone {
		if err := nes.CPU.ExecuteInstruction(nes.cycle); err != nil {
			return curated.Errorf("nes: %v", err)
		}
	}

	nes.frameNum++

	for _, r := range nes.video {
		if err := r.NewFrame(nes.PPU.Framebuffer(), nes.PPU.Palette); err != nil {
			return curated.Errorf("nes: %v", err)
		}
	}

	samples := nes.APU.Samples()
	for _, m := range nes.audio {
		if err := m.SetAudio(samples); err != nil {
			return curated.Errorf("nes: %v", err)
		}
	}

	return nil
}

// Run sets the emulation running frame by frame until the continueCheck()
// function returns the Ending state. The function is called after every
// frame.
//
// The Paused state stops the emulation from advancing but continueCheck()
// will still be called.
func (nes *NES) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		switch state {
		case govern.Running:
			if err := nes.RunFrame(); err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf("nes: unsupported emulation state (%d) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount sets emulator running for the specified number of frames.
// Useful for FPS and regression tests.
func (nes *NES) RunForFrameCount(numFrames int, continueCheck func(frame int) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(frame int) (govern.State, error) { return govern.Running, nil }
	}

	targetFrame := nes.frameNum + numFrames

	state := govern.Running
	for nes.frameNum != targetFrame && state != govern.Ending {
		err := nes.RunFrame()
		if err != nil {
			return err
		}

		state, err = continueCheck(nes.frameNum)
		if err != nil {
			return err
		}
	}

	return nil
}

// End the emulation. Attached renderers and mixers are told to conclude and
// battery RAM is saved if a battery store has been set.
func (nes *NES) End() error {
	var firstErr error

	if err := nes.SaveBattery(); err != nil {
		firstErr = err
	}

	for _, r := range nes.video {
		if err := r.EndRendering(); err != nil && firstErr == nil {
			firstErr = curated.Errorf("nes: %v", err)
		}
	}
	for _, m := range nes.audio {
		if err := m.EndMixing(); err != nil && firstErr == nil {
			firstErr = curated.Errorf("nes: %v", err)
		}
	}

	return firstErr
}

// SetBatteryStore sets the store used for battery backed cartridge RAM. If
// the cartridge has a battery the RAM is loaded from the store immediately.
func (nes *NES) SetBatteryStore(store output.BatteryStore) error {
	nes.battery = store
	if store == nil || !nes.Cart.HasBattery() {
		return nil
	}

	data, err := store.LoadBattery(nes.Cart.ShortName)
	if err != nil {
		return curated.Errorf("nes: %v", err)
	}
	if data == nil {
		return nil
	}

	if err := nes.Cart.LoadBatteryRAM(data); err != nil {
		return curated.Errorf("nes: %v", err)
	}

	return nil
}

// SaveBattery writes the battery backed RAM of the cartridge to the battery
// store. Does nothing if there is no store or if the cartridge has no
// battery.
func (nes *NES) SaveBattery() error {
	if nes.battery == nil || !nes.Cart.HasBattery() {
		return nil
	}
	if err := nes.battery.SaveBattery(nes.Cart.ShortName, nes.Cart.BatteryRAM()); err != nil {
		return curated.Errorf("nes: %v", err)
	}
	return nil
}
