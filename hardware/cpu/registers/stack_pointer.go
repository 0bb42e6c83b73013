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

package registers

import "fmt"

// the stack always lives in page one
const stackPage = 0x0100

// StackPointer is the SP register. It is an 8 bit register whose address is
// always in page one of memory.
type StackPointer struct {
	Register
}

// NewStackPointer is the preferred method of initialisation for the
// StackPointer type.
func NewStackPointer(val uint8) *StackPointer {
	return &StackPointer{
		Register: Register{value: val, label: "SP"},
	}
}

func (sp StackPointer) String() string {
	return fmt.Sprintf("SP=%#02x", sp.value)
}

// Address returns the address in page one that the stack pointer points to.
func (sp StackPointer) Address() uint16 {
	return stackPage | uint16(sp.value)
}

// Decrement the stack pointer, wrapping within page one.
func (sp *StackPointer) Decrement() {
	sp.value--
}

// Increment the stack pointer, wrapping within page one.
func (sp *StackPointer) Increment() {
	sp.value++
}
