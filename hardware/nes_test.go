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

package hardware_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/govern"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/controller"
	"github.com/jetsetilly/gophernes/hardware/cpu"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/cartridgetest"
	"github.com/jetsetilly/gophernes/hardware/ppu/palette"
	"github.com/jetsetilly/gophernes/test"
)

// the number of PPU dots in an NTSC frame when rendering is disabled
const ntscFrameDots = 341 * 262

func newEnv(pal bool) *environment.Environment {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	env.Quiet = true
	if pal {
		env.Prefs.Region.Set("PAL")
	}
	return env
}

func newNES(t *testing.T, env *environment.Environment, img cartridgetest.Image) *hardware.NES {
	t.Helper()
	nes, err := hardware.NewNES(env, img.Loader("test.nes"))
	test.DemandSuccess(t, err)
	return nes
}

type captureVideo struct {
	frames int
	last   []uint16
	ended  bool
}

func (c *captureVideo) NewFrame(frame []uint16, _ *palette.Palette) error {
	c.frames++
	c.last = append(c.last[:0], frame...)
	return nil
}

func (c *captureVideo) EndRendering() error {
	c.ended = true
	return nil
}

type captureAudio struct {
	samples []int16
	calls   int
	ended   bool
}

func (c *captureAudio) SetAudio(samples []int16) error {
	c.calls++
	c.samples = append(c.samples, samples...)
	return nil
}

func (c *captureAudio) EndMixing() error {
	c.ended = true
	return nil
}

func TestClockRatio(t *testing.T) {
	nes := newNES(t, newEnv(false), cartridgetest.NOPLoop())

	// the reset sequence takes seven cycles
	c := nes.Clocks()
	test.ExpectEquality(t, c.CPU, 7)
	test.ExpectEquality(t, c.PPU, 21)

	test.DemandSuccess(t, nes.RunForFrameCount(1, nil))
	c = nes.Clocks()
	test.ExpectEquality(t, c.PPU, c.CPU*3)
	test.ExpectEquality(t, c.APU, c.CPU/2)
	test.ExpectEquality(t, nes.CPU.Cycles(), c.CPU)
	test.ExpectEquality(t, nes.CPUCycles(), c.CPU)
}

func TestClockRatioPAL(t *testing.T) {
	nes := newNES(t, newEnv(true), cartridgetest.NOPLoop())
	test.ExpectEquality(t, nes.Spec().ID, "PAL")
	test.ExpectEquality(t, nes.PPU.Scanlines(), 312)

	test.DemandSuccess(t, nes.RunForFrameCount(2, nil))
	c := nes.Clocks()
	test.ExpectEquality(t, c.PPU, c.CPU*16/5)
	test.ExpectEquality(t, c.APU, c.CPU/2)
	test.ExpectEquality(t, nes.PPU.Frame, 2)
}

func TestNOPLoop(t *testing.T) {
	nes := newNES(t, newEnv(false), cartridgetest.NOPLoop())

	vid := &captureVideo{}
	aud := &captureAudio{}
	nes.AddVideoRenderer(vid)
	nes.AddAudioMixer(aud)

	test.DemandSuccess(t, nes.RunForFrameCount(2, nil))
	test.ExpectEquality(t, nes.FrameNum(), 2)
	test.ExpectEquality(t, nes.PPU.Frame, 2)
	test.ExpectApproximate(t, int(nes.Clocks().PPU), 2*ntscFrameDots, 0.001)

	// the PC never leaves the loop
	pc := nes.CPU.PC.Address()
	test.ExpectSuccess(t, pc >= 0x8000 && pc <= 0x8004)

	test.ExpectEquality(t, vid.frames, 2)
	test.DemandEquality(t, len(vid.last), 256*240)
	for _, px := range vid.last {
		if !test.ExpectEquality(t, px, 0x09) {
			break
		}
	}

	// two frames of audio at 44.1kHz and roughly 60 frames per second
	test.ExpectEquality(t, aud.calls, 2)
	test.ExpectApproximate(t, len(aud.samples), 1468, 0.01)
	for _, s := range aud.samples {
		if !test.ExpectEquality(t, s, 0) {
			break
		}
	}

	test.ExpectSuccess(t, nes.End())
	test.ExpectSuccess(t, vid.ended)
	test.ExpectSuccess(t, aud.ended)
}

func TestNoAudio(t *testing.T) {
	env := newEnv(false)
	test.DemandSuccess(t, env.Prefs.AudioRate.Set(0))

	nes := newNES(t, env, cartridgetest.NOPLoop())
	aud := &captureAudio{}
	nes.AddAudioMixer(aud)

	test.DemandSuccess(t, nes.RunForFrameCount(1, nil))
	test.ExpectEquality(t, aud.calls, 1)
	test.ExpectEquality(t, len(aud.samples), 0)
	test.ExpectEquality(t, nes.AudioSpec().Rate, 0)
}

func TestNMI(t *testing.T) {
	img := cartridgetest.NROM([]uint8{
		0xa9, 0x80, // LDA #$80
		0x8d, 0x00, 0x20, // STA $2000
		0x4c, 0x05, 0x80, // JMP $8005
		0xe6, 0x10, // INC $10
		0x40, // RTI
	})
	cartridgetest.SetVectors(img.PRG, 0x8008, 0x8000, 0x8000)

	nes := newNES(t, newEnv(false), img)
	test.DemandSuccess(t, nes.RunForFrameCount(3, nil))
	test.ExpectEquality(t, nes.Mem.RAM.Peek(0x10), 3)
}

func TestOpenBus(t *testing.T) {
	// LDA $4000 is an unmapped read. the value is the high byte of the
	// operand, which is the last value on the data bus
	img := cartridgetest.NROM([]uint8{
		0xad, 0x00, 0x40, // LDA $4000
		0x85, 0x10, // STA $10
		0x4c, 0x05, 0x80, // JMP $8005
	})

	nes := newNES(t, newEnv(false), img)
	test.DemandSuccess(t, nes.RunForFrameCount(1, nil))
	test.ExpectEquality(t, nes.Mem.RAM.Peek(0x10), 0x40)
}

func TestMMC3IRQ(t *testing.T) {
	prg := make([]uint8, 0x8000)

	// the program is in the fixed bank at $e000
	copy(prg[0x6000:], []uint8{
		0xa9, 0x40, // LDA #$40 ; inhibit the frame counter IRQ
		0x8d, 0x17, 0x40, // STA $4017
		0xa9, 0x08, // LDA #$08 ; sprites use the pattern table at $1000
		0x8d, 0x00, 0x20, // STA $2000
		0xa9, 0x18, // LDA #$18 ; rendering enabled
		0x8d, 0x01, 0x20, // STA $2001
		0xa9, 0x10, // LDA #$10
		0x8d, 0x00, 0xc0, // STA $C000 ; latch
		0x8d, 0x01, 0xc0, // STA $C001 ; reload
		0x8d, 0x01, 0xe0, // STA $E001 ; enable
		0x58,             // CLI
		0x4c, 0x1b, 0xe0, // JMP $E01B
	})
	copy(prg[0x6020:], []uint8{
		0xe6, 0x10, // INC $10
		0x8d, 0x00, 0xe0, // STA $E000 ; acknowledge
		0x8d, 0x01, 0xe0, // STA $E001
		0x40, // RTI
	})
	cartridgetest.SetVectors(prg, 0xe028, 0xe000, 0xe020)

	img := cartridgetest.Image{
		Mapper: 4,
		PRG:    prg,
		CHR:    make([]uint8, 0x2000),
	}

	nes := newNES(t, newEnv(false), img)
	test.DemandSuccess(t, nes.RunForFrameCount(2, nil))

	// the counter is clocked once per rendered scanline and there is an
	// interrupt every seventeen clocks (one to reload and sixteen to count
	// down)
	test.ExpectEquality(t, nes.Mem.RAM.Peek(0x10), 28)
	test.ExpectFailure(t, nes.APU.IRQ())
}

func TestIllegalOpcode(t *testing.T) {
	img := cartridgetest.NROM([]uint8{0xea, 0x02})

	nes := newNES(t, newEnv(false), img)
	err := nes.RunFrame()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Has(err, cpu.IllegalOpcode))
	test.ExpectSuccess(t, nes.CPU.Killed)

	// frame is not completed
	test.ExpectEquality(t, nes.FrameNum(), 0)
}

type memoryStore struct {
	data map[string][]byte
}

func (s *memoryStore) LoadBattery(name string) ([]byte, error) {
	return s.data[name], nil
}

func (s *memoryStore) SaveBattery(name string, data []byte) error {
	s.data[name] = append([]byte{}, data...)
	return nil
}

func TestBattery(t *testing.T) {
	store := &memoryStore{data: make(map[string][]byte)}

	img := cartridgetest.NROM([]uint8{
		0xa9, 0x42, // LDA #$42
		0x8d, 0x00, 0x60, // STA $6000
		0x4c, 0x05, 0x80, // JMP $8005
	})
	img.Battery = true

	nes := newNES(t, newEnv(false), img)
	test.DemandSuccess(t, nes.SetBatteryStore(store))
	test.DemandSuccess(t, nes.RunForFrameCount(1, nil))
	test.DemandSuccess(t, nes.End())

	test.DemandEquality(t, len(store.data["test"]), 0x2000)
	test.ExpectEquality(t, store.data["test"][0], 0x42)

	img = cartridgetest.NOPLoop()
	img.Battery = true

	nes = newNES(t, newEnv(false), img)
	test.DemandSuccess(t, nes.SetBatteryStore(store))
	d, err := nes.Mem.Read(0x6000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d, 0x42)
}

type pressA struct{}

func (pressA) Tick(frame int, pads *controller.Pads) error {
	pads.Pad(0).Press(controller.A)
	return nil
}

func TestInputSource(t *testing.T) {
	// strobe the controller and read the first button
	img := cartridgetest.NROM([]uint8{
		0xa9, 0x01, // LDA #$01
		0x8d, 0x16, 0x40, // STA $4016
		0xa9, 0x00, // LDA #$00
		0x8d, 0x16, 0x40, // STA $4016
		0xad, 0x16, 0x40, // LDA $4016
		0x85, 0x10, // STA $10
		0x4c, 0x00, 0x80, // JMP $8000
	})

	nes := newNES(t, newEnv(false), img)
	nes.SetInputSource(pressA{})
	test.DemandSuccess(t, nes.RunForFrameCount(1, nil))
	test.ExpectEquality(t, nes.Mem.RAM.Peek(0x10)&0x01, 0x01)
}

func TestRun(t *testing.T) {
	nes := newNES(t, newEnv(false), cartridgetest.NOPLoop())

	var n int
	err := nes.Run(func() (govern.State, error) {
		n++
		if n == 3 {
			return govern.Ending, nil
		}
		if n == 2 {
			return govern.Paused, nil
		}
		return govern.Running, nil
	})
	test.ExpectSuccess(t, err)

	// the paused iteration does not run a frame
	test.ExpectEquality(t, nes.FrameNum(), 2)
}

func TestReset(t *testing.T) {
	nes := newNES(t, newEnv(false), cartridgetest.NOPLoop())
	test.DemandSuccess(t, nes.RunForFrameCount(1, nil))
	test.DemandSuccess(t, nes.Reset())
	test.ExpectEquality(t, nes.FrameNum(), 0)
	test.ExpectEquality(t, nes.Clocks().CPU, 7)
	test.ExpectEquality(t, nes.CPU.PC.Address(), 0x8000)
}
