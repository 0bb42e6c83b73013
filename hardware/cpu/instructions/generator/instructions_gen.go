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

// instructions_gen creates the Definitions table in the instructions package
// from the instructions.csv file.
package main

import (
	"encoding/csv"
	"fmt"
	"go/format"
	"io"
	"os"
	"strconv"
	"strings"
)

const definitionsCSVFile = "./generator/instructions.csv"
const generatedGoFile = "./table.go"

const leadingBoilerPlate = "// generated code - do not change\n\n" +
	"package instructions\n\n" +
	"// Definitions is the table of instruction definitions for the 2A03, indexed by\n" +
	"// opcode.\n" +
	"var Definitions = [256]Definition{\n"

const trailingBoilerPlate = "}\n"

// addressing modes as they appear in the CSV file and the number of bytes an
// instruction using the mode requires
var addressingModes = map[string]struct {
	ident string
	bytes int
}{
	"IMPLIED":             {"Implied", 1},
	"IMMEDIATE":           {"Immediate", 2},
	"RELATIVE":            {"Relative", 2},
	"ABSOLUTE":            {"Absolute", 3},
	"ZERO_PAGE":           {"ZeroPage", 2},
	"INDIRECT":            {"Indirect", 3},
	"INDEXED_INDIRECT":    {"IndexedIndirect", 2},
	"INDIRECT_INDEXED":    {"IndirectIndexed", 2},
	"ABSOLUTE_INDEXED_X":  {"AbsoluteIndexedX", 3},
	"ABSOLUTE_INDEXED_Y":  {"AbsoluteIndexedY", 3},
	"ZERO_PAGE_INDEXED_X": {"ZeroPageIndexedX", 2},
	"ZERO_PAGE_INDEXED_Y": {"ZeroPageIndexedY", 2},
}

var effects = map[string]string{
	"READ":       "Read",
	"WRITE":      "Write",
	"RMW":        "RMW",
	"FLOW":       "Flow",
	"SUBROUTINE": "Subroutine",
	"INTERRUPT":  "Interrupt",
}

func parseCSV() (string, error) {
	df, err := os.Open(definitionsCSVFile)
	if err != nil {
		return "", fmt.Errorf("error opening instruction definitions (%w)", err)
	}
	defer df.Close()

	csvr := csv.NewReader(df)
	csvr.Comment = rune('#')
	csvr.TrimLeadingSpace = true
	csvr.ReuseRecord = true

	// instruction effect field is optional (defaulting to READ)
	csvr.FieldsPerRecord = -1

	deftable := make(map[uint8]string)

	line := 0
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		if !(len(rec) == 5 || len(rec) == 6) {
			return "", fmt.Errorf("wrong number of fields in instruction definition (%s) [line %d]", rec, line)
		}

		for i := 0; i < len(rec); i++ {
			rec[i] = strings.TrimSpace(rec[i])
		}

		n, err := strconv.ParseUint(strings.TrimPrefix(rec[0], "0x"), 16, 8)
		if err != nil {
			return "", fmt.Errorf("invalid opcode (%s) [line %d]", rec[0], line)
		}
		opcode := uint8(n)

		if _, ok := deftable[opcode]; ok {
			return "", fmt.Errorf("duplicate opcode (%#02x) [line %d]", opcode, line)
		}

		operator := rec[1]

		cycles, err := strconv.Atoi(rec[2])
		if err != nil {
			return "", fmt.Errorf("invalid cycle count for %#02x (%s) [line %d]", opcode, rec[2], line)
		}

		am, ok := addressingModes[strings.ToUpper(rec[3])]
		if !ok {
			return "", fmt.Errorf("invalid addressing mode for %#02x (%s) [line %d]", opcode, rec[3], line)
		}

		// BRK is followed by a padding byte
		bytes := am.bytes
		if operator == "Brk" {
			bytes++
		}

		var pageSensitive bool
		switch strings.ToUpper(rec[4]) {
		case "TRUE":
			pageSensitive = true
		case "FALSE":
			pageSensitive = false
		default:
			return "", fmt.Errorf("invalid page sensitivity switch for %#02x (%s) [line %d]", opcode, rec[4], line)
		}

		effect := "Read"
		if len(rec) == 6 {
			effect, ok = effects[strings.ToUpper(rec[5])]
			if !ok {
				return "", fmt.Errorf("unknown category for %#02x (%s) [line %d]", opcode, rec[5], line)
			}
		}

		deftable[opcode] = fmt.Sprintf("{OpCode: 0x%02x, Operator: %s, Bytes: %d, Cycles: %d, AddressingMode: %s, PageSensitive: %v, Effect: %s},",
			opcode, operator, bytes, cycles, am.ident, pageSensitive, effect)
	}

	// the 2A03 decodes every opcode. a missing definition is an error in the
	// CSV file
	var missing []string
	for i := 0; i <= 255; i++ {
		if _, ok := deftable[uint8(i)]; !ok {
			missing = append(missing, fmt.Sprintf("%#02x", i))
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing opcodes: %s", strings.Join(missing, " "))
	}

	s := strings.Builder{}
	for i := 0; i <= 255; i++ {
		s.WriteString(deftable[uint8(i)])
		s.WriteString("\n")
	}

	return s.String(), nil
}

func main() {
	output, err := parseCSV()
	if err != nil {
		fmt.Printf("error during instruction table generation: %s\n", err)
		os.Exit(10)
	}

	output = fmt.Sprintf("%s%s%s", leadingBoilerPlate, output, trailingBoilerPlate)

	formattedOutput, err := format.Source([]byte(output))
	if err != nil {
		fmt.Printf("error during instruction table generation: %s\n", err)
		os.Exit(10)
	}

	err = os.WriteFile(generatedGoFile, formattedOutput, 0o644)
	if err != nil {
		fmt.Printf("error during instruction table generation: %s\n", err)
		os.Exit(10)
	}
}
