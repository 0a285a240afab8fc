// This file is part of lc3sim.
//
// lc3sim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// lc3sim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with lc3sim.  If not, see <https://www.gnu.org/licenses/>.

package imageloader

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/isa"
)

// FormatError is returned when image data can not be decoded.
const FormatError = "imageloader: %s: %v"

// Format is the encoding of an image.
type Format string

// List of valid Format values.
const (
	FormatAuto  Format = "AUTO"
	FormatPairs Format = "PAIRS"
	FormatObj   Format = "OBJ"
	FormatText  Format = "TEXT"
)

// DecodePairs decodes a sequence of big-endian (address, word) pairs.
func DecodePairs(label string, data []byte) (*Image, error) {
	if len(data)%4 != 0 {
		return nil, curated.Errorf(FormatError, label, fmt.Sprintf("pairs data is %d bytes, not a multiple of four", len(data)))
	}
	img := NewImage(label)
	for i := 0; i < len(data); i += 4 {
		img.Pairs = append(img.Pairs, Pair{
			Addr: isa.Addr(binary.BigEndian.Uint16(data[i:])),
			Word: isa.Word(binary.BigEndian.Uint16(data[i+2:])),
		})
	}
	return img, nil
}

// DecodeObj decodes an origin-then-words blob.
func DecodeObj(label string, data []byte) (*Image, error) {
	if len(data) < 2 {
		return nil, curated.Errorf(FormatError, label, "obj data has no origin")
	}
	if len(data)%2 != 0 {
		return nil, curated.Errorf(FormatError, label, "obj data has an odd number of bytes")
	}
	origin := isa.Addr(binary.BigEndian.Uint16(data))
	data = data[2:]
	if len(data)/2 > 0x10000-int(origin) {
		return nil, curated.Errorf(FormatError, label, "obj data extends beyond the end of memory")
	}
	img := NewImage(label)
	for i := 0; i < len(data); i += 2 {
		img.Pairs = append(img.Pairs, Pair{
			Addr: origin + isa.Addr(i/2),
			Word: isa.Word(binary.BigEndian.Uint16(data[i:])),
		})
	}
	return img, nil
}

func parseHex(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	s = strings.TrimPrefix(s, "x")
	v, err := strconv.ParseUint(s, 16, 16)
	return uint16(v), err
}

// DecodeText decodes the text form of a pairs image.
func DecodeText(label string, data []byte) (*Image, error) {
	img := NewImage(label)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	var line int
	for scanner.Scan() {
		line++
		s, _, _ := strings.Cut(scanner.Text(), ";")
		f := strings.Fields(s)
		if len(f) == 0 {
			continue
		}
		if len(f) != 2 {
			return nil, curated.Errorf(FormatError, label, fmt.Sprintf("line %d: expected address and word", line))
		}
		a, err := parseHex(f[0])
		if err != nil {
			return nil, curated.Errorf(FormatError, label, fmt.Sprintf("line %d: %v", line, err))
		}
		w, err := parseHex(f[1])
		if err != nil {
			return nil, curated.Errorf(FormatError, label, fmt.Sprintf("line %d: %v", line, err))
		}
		img.Pairs = append(img.Pairs, Pair{Addr: isa.Addr(a), Word: isa.Word(w)})
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(FormatError, label, err)
	}

	return img, nil
}

// isText returns true if the data looks like the text format.
func isText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, b := range data {
		if b >= 0x80 || (!unicode.IsPrint(rune(b)) && !unicode.IsSpace(rune(b))) {
			return false
		}
	}
	return true
}

// Decode the data in the specified format.
func Decode(label string, format Format, data []byte) (*Image, error) {
	switch format {
	case FormatPairs:
		return DecodePairs(label, data)
	case FormatObj:
		return DecodeObj(label, data)
	case FormatText:
		return DecodeText(label, data)
	case FormatAuto, "":
		if isText(data) {
			return DecodeText(label, data)
		}
		return DecodeObj(label, data)
	}
	return nil, curated.Errorf(FormatError, label, fmt.Sprintf("unknown format (%s)", format))
}

// WritePairs encodes the image in the pairs format.
func (img *Image) WritePairs(w io.Writer) error {
	b := make([]byte, 4)
	for _, p := range img.Pairs {
		binary.BigEndian.PutUint16(b, uint16(p.Addr))
		binary.BigEndian.PutUint16(b[2:], uint16(p.Word))
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// WriteText encodes the image in the text format.
func (img *Image) WriteText(w io.Writer) error {
	for _, p := range img.Pairs {
		if _, err := fmt.Fprintln(w, p.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteObj encodes the image as an origin-then-words blob. The image must be
// a single contiguous run of addresses in ascending order.
func (img *Image) WriteObj(w io.Writer) error {
	if len(img.Pairs) == 0 {
		return curated.Errorf(FormatError, img.Label, "empty image")
	}
	b := make([]byte, 2, 2+len(img.Pairs)*2)
	origin := img.Pairs[0].Addr
	binary.BigEndian.PutUint16(b, uint16(origin))
	for i, p := range img.Pairs {
		if p.Addr != origin+isa.Addr(i) {
			return curated.Errorf(FormatError, img.Label, fmt.Sprintf("image is not contiguous at %s", p.Addr))
		}
		b = binary.BigEndian.AppendUint16(b, uint16(p.Word))
	}
	_, err := w.Write(b)
	return err
}
