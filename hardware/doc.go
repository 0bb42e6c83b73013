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

// Package hardware is the base package for the NES emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The NES type is the root of the emulation and contains external references
// to all the console sub-components. The CPU drives the emulation: every CPU
// cycle, including DMA cycles, the cycle callback runs the PPU, the APU and
// the cartridge mapper. At the end of each cycle the NMI and IRQ lines of
// the CPU are updated from the PPU, the APU and the cartridge.
//
// The NES is created with a cartridge. The cartridge can be replaced with
// AttachCartridge(), which always resets the console:
//
//	nes, err := hardware.NewNES(env, cartridgeloader.NewLoader("game.nes"))
//	if err != nil {
//		return err
//	}
//
//	err = nes.RunForFrameCount(60, nil)
//
// Output from the console is sent to implementations of the interfaces in the
// output package. Renderers and mixers are attached with AddVideoRenderer()
// and AddAudioMixer(). The controllers are set by an InputSource once per
// frame, before the frame is run.
package hardware
