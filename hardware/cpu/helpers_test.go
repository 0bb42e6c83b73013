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

package cpu_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/gophernes/hardware/cpu"
	"github.com/jetsetilly/gophernes/hardware/cpu/execution"
)

// access records a single write made by the CPU
type access struct {
	address uint16
	data    uint8
}

func (a access) String() string {
	return fmt.Sprintf("%04x=%02x", a.address, a.data)
}

type mockMem struct {
	internal []uint8
	writes   []access
}

func newMockMem() *mockMem {
	return &mockMem{
		internal: make([]uint8, 0x10000),
	}
}

// putInstructions places bytes into memory without recording the writes
func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.internal[origin+uint16(i)] = b
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) put16(address uint16, value uint16) {
	mem.internal[address] = uint8(value)
	mem.internal[address+1] = uint8(value >> 8)
}

func (mem *mockMem) assert(t *testing.T, address uint16, value uint8) {
	t.Helper()
	if mem.internal[address] != value {
		t.Errorf("memory assertion failed (%#02x - wanted %#02x at address %04x)", mem.internal[address], value, address)
	}
}

func (mem *mockMem) clear() {
	for i := range mem.internal {
		mem.internal[i] = 0
	}
	mem.writes = mem.writes[:0]
}

func (mem *mockMem) Read(address uint16) (uint8, error) {
	return mem.internal[address], nil
}

func (mem *mockMem) Write(address uint16, data uint8) error {
	mem.internal[address] = data
	mem.writes = append(mem.writes, access{address: address, data: data})
	return nil
}

// dmaMem adds the DMA interface to mockMem. a write to 0x4014 begins OAM DMA
type dmaMem struct {
	*mockMem
	oamPage    uint8
	oamPending bool
	stall      int
}

func (mem *dmaMem) Write(address uint16, data uint8) error {
	if address == 0x4014 {
		mem.oamPage = data
		mem.oamPending = true
	}
	return mem.mockMem.Write(address, data)
}

func (mem *dmaMem) OAMDMA() (uint8, bool) {
	p := mem.oamPending
	mem.oamPending = false
	return mem.oamPage, p
}

func (mem *dmaMem) StallCycles() int {
	n := mem.stall
	mem.stall = 0
	return n
}

// newCPU returns a CPU in its power-on state with the PC set to origin
func newCPU(mem *mockMem, origin uint16) *cpu.CPU {
	mc := cpu.NewCPU(nil, mem)
	mc.Reset()
	mc.SP.Load(0xfd)
	mc.LoadPC(origin)
	return mc
}

// step executes a single instruction and checks that the result is
// consistent with the instruction definition
func step(t *testing.T, mc *cpu.CPU) execution.Result {
	t.Helper()
	err := mc.ExecuteInstruction(cpu.NilCycleCallback)
	if err != nil {
		t.Fatal(err)
	}
	err = mc.LastResult.IsValid()
	if err != nil {
		t.Fatal(err)
	}
	return mc.LastResult
}
