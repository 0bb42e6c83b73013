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
	"fmt"

	"github.com/jetsetilly/gophernes/cartridgeloader"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/apu"
	"github.com/jetsetilly/gophernes/hardware/clocks"
	"github.com/jetsetilly/gophernes/hardware/controller"
	"github.com/jetsetilly/gophernes/hardware/cpu"
	"github.com/jetsetilly/gophernes/hardware/memory"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge"
	"github.com/jetsetilly/gophernes/hardware/output"
	"github.com/jetsetilly/gophernes/hardware/ppu"
	"github.com/jetsetilly/gophernes/hardware/ppu/palette"
	"github.com/jetsetilly/gophernes/logger"
)

// NES is the emulated console and everything associated with the hardware.
type NES struct {
	env *environment.Environment

	CPU  *cpu.CPU
	PPU  *ppu.PPU
	APU  *apu.APU
	Mem  *memory.Memory
	Cart *cartridge.Cartridge
	Pads *controller.Pads

	// the clock specification for the region of the console
	spec clocks.Spec

	// cycle counts since reset
	clocks clocks.Counters

	// the remainder of PPU dots that have not yet been run. only used for PAL
	// timing, where there is not a whole number of dots per CPU cycle
	dotRemainder int

	// the number of frames completed since reset
	frameNum int

	// set by the cycle callback when the PPU has completed a frame
	frameDone bool

	// output is attached to the console but is not part of it
	input   output.InputSource
	video   []output.VideoRenderer
	audio   []output.AudioMixer
	battery output.BatteryStore
}

// NewNES creates a new NES and everything associated with the hardware. The
// cartridge is attached and the console reset.
func NewNES(env *environment.Environment, cartload cartridgeloader.Loader) (*NES, error) {
	if env == nil {
		env = environment.NewEnvironment(environment.MainEmulation, nil)
	}

	nes := &NES{
		env:  env,
		Cart: cartridge.NewCartridge(env),
		Pads: controller.NewPads(),
	}

	nes.Mem = memory.NewMemory(env, nes.Cart, nes.Pads)
	nes.CPU = cpu.NewCPU(env, nes.Mem)
	nes.PPU = ppu.NewPPU(env, nes.Cart)
	nes.APU = apu.NewAPU(env, nes.Mem)
	nes.Mem.Plumb(nes.PPU, nes.APU)

	if err := nes.AttachCartridge(cartload); err != nil {
		return nil, err
	}

	return nes, nil
}

func (nes *NES) String() string {
	return fmt.Sprintf("%s frame=%d cpu=%d ppu=%d apu=%d", nes.spec.ID, nes.frameNum, nes.clocks.CPU, nes.clocks.PPU, nes.clocks.APU)
}

// AttachCartridge loads the iNES data in the cartridge loader and resets the
// console.
func (nes *NES) AttachCartridge(cartload cartridgeloader.Loader) error {
	if err := nes.Cart.Attach(cartload); err != nil {
		return curated.Errorf("nes: %v", err)
	}
	return nes.Reset()
}

// Reset the console. The order of the reset is the CPU, APU, PPU, cartridge
// and controllers, after which the CPU runs the reset sequence and loads the
// PC from the reset vector.
func (nes *NES) Reset() error {
	if nes.env.Prefs.IsPAL() {
		nes.spec = clocks.SpecPAL
	} else {
		nes.spec = clocks.SpecNTSC
	}

	nes.CPU.Reset()
	nes.APU.Reset()
	nes.PPU.Reset()
	nes.Cart.Reset()
	nes.Pads.Reset()
	nes.Mem.Reset()

	nes.clocks = clocks.Counters{}
	nes.dotRemainder = 0
	nes.frameNum = 0
	nes.frameDone = false

	if err := nes.CPU.Boot(nes.cycle); err != nil {
		return curated.Errorf("nes: %v", err)
	}

	logger.Logf(nes.env, "nes", "reset %s (%s) PC=%s", nes.Cart.ShortName, nes.spec.ID, nes.CPU.PC)

	return nil
}

// the cycle callback for the CPU. called once for every CPU cycle, including
// DMA cycles, and is the only place where the other clocked units are run
func (nes *NES) cycle() error {
	nes.clocks.CPU++

	dots := nes.spec.Dots
	if nes.spec.Cycles > 1 {
		nes.dotRemainder += nes.spec.Dots
		dots = nes.dotRemainder / nes.spec.Cycles
		nes.dotRemainder %= nes.spec.Cycles
	}

	for i := 0; i < dots; i++ {
		nes.PPU.Step()
		nes.clocks.PPU++
		if nes.PPU.FrameComplete() {
			nes.frameDone = true
		}
	}

	nes.APU.Step()
	nes.clocks.APU = nes.clocks.CPU / 2

	nes.Cart.Step()

	nes.CPU.SetNMILine(nes.PPU.NMI())
	nes.CPU.SetIRQLine(nes.APU.IRQ() || nes.Cart.IRQ())

	return nil
}

// Clocks returns the cycle counts of the CPU, PPU and APU since the last
// reset.
//
// For NTSC consoles the PPU count is always three times the CPU count. The
// APU count is always half the CPU count.
func (nes *NES) Clocks() clocks.Counters {
	return nes.clocks
}

// CPUCycles returns the number of CPU cycles since the last reset. It
// satisfies the random.Clock interface (see random.Plumb()).
func (nes *NES) CPUCycles() uint64 {
	return nes.clocks.CPU
}

// Spec returns the clock specification of the console.
func (nes *NES) Spec() clocks.Spec {
	return nes.spec
}

// FrameNum returns the number of frames completed since the last reset.
func (nes *NES) FrameNum() int {
	return nes.frameNum
}

// Framebuffer returns the most recent frame. The slice is the PPU's own
// buffer and will change as the emulation continues.
func (nes *NES) Framebuffer() []uint16 {
	return nes.PPU.Framebuffer()
}

// Palette returns the palette used to convert framebuffer values to RGB.
func (nes *NES) Palette() *palette.Palette {
	return nes.PPU.Palette
}

// AudioSamples returns the samples produced during the most recent frame.
// The slice belongs to the APU and is cleared at the start of the next frame.
func (nes *NES) AudioSamples() []int16 {
	return nes.APU.Samples()
}

// AudioSpec returns the format of the samples returned by AudioSamples().
func (nes *NES) AudioSpec() output.AudioSpec {
	return output.AudioSpec{
		Rate: nes.env.Prefs.AudioRate.Get().(int),
		Bits: nes.env.Prefs.AudioBits.Get().(int),
	}
}
