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

package cpubus

// Memory defines the operations for the memory system when accessed from the
// CPU. The NES memory type implements this interface and maps the read/write
// address to the correct memory area, meaning that CPU access need not care
// which part of memory it is accessing.
//
// Every call to Read() or Write() represents exactly one bus cycle.
type Memory interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// DMA is implemented by memory that can halt the CPU in order to take over
// the bus. The CPU checks for DMA requests at the end of every instruction.
type DMA interface {
	// OAMDMA returns the page that has been written to the OAMDMA register.
	// The request is cleared by this call.
	OAMDMA() (page uint8, pending bool)

	// StallCycles returns the number of cycles the CPU must be halted for by
	// the DMC sample reader. The count is cleared by this call.
	StallCycles() int
}
