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

package recorder

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware"
)

const (
	fieldFrame int = iota
	fieldPad0
	fieldPad1
	fieldHash
	numFields
)

const fieldSep = ", "

// playback file header format
// ---------------------------
//
// gophernes transcript
// <cartridge filename>
// <cartridge hash>
// <region>

const magicString = "gophernes transcript"

const (
	lineMagicString int = iota
	lineCartName
	lineCartHash
	lineRegion
	numHeaderLines
)

func writeHeader(output io.Writer, nes *hardware.NES) error {
	lines := make([]string, numHeaderLines)

	lines[lineMagicString] = magicString
	lines[lineCartName] = nes.Cart.Filename
	lines[lineCartHash] = nes.Cart.Hash
	lines[lineRegion] = nes.Spec().ID

	line := fmt.Sprintf("%s\n", strings.Join(lines, "\n"))

	n, err := io.WriteString(output, line)
	if err != nil {
		return curated.Errorf("recorder: %v", err)
	}
	if n != len(line) {
		return curated.Errorf("recorder: output truncated")
	}

	return nil
}

func (plb *Playback) readHeader(lines []string) error {
	if len(lines) < numHeaderLines {
		return curated.Errorf("playback: not a valid transcript (%s)", plb.transcript)
	}
	if lines[lineMagicString] != magicString {
		return curated.Errorf("playback: not a valid transcript (%s)", plb.transcript)
	}

	plb.CartName = lines[lineCartName]
	plb.CartHash = lines[lineCartHash]
	plb.Region = lines[lineRegion]

	return nil
}
