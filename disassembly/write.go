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

package disassembly

import (
	"fmt"
	"io"
)

// Write the entries to the output. A bank heading is written whenever the
// bank changes. The bytecode of each instruction is included if bytecode is
// true.
func Write(output io.Writer, entries []Entry, bytecode bool) error {
	bank := -1

	for _, e := range entries {
		if e.Bank != bank {
			bank = e.Bank
			if _, err := fmt.Fprintf(output, "--- bank %d ---\n", bank); err != nil {
				return err
			}
		}

		var err error
		if bytecode {
			_, err = fmt.Fprintln(output, e.String())
		} else {
			_, err = fmt.Fprintf(output, "$%04x  %s\n", e.Address, e.Instruction())
		}
		if err != nil {
			return err
		}
	}

	return nil
}
