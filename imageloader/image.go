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
	"fmt"
	"sort"

	"github.com/jetsetilly/lc3sim/hardware/isa"
)

// Pair is a single word of an image and the address it is loaded to.
type Pair struct {
	Addr isa.Addr
	Word isa.Word
}

func (p Pair) String() string {
	return fmt.Sprintf("x%04X x%04X", uint16(p.Addr), uint16(p.Word))
}

// Image is a sparse memory image. Pairs are kept in the order they were
// added. A later pair for the same address replaces the earlier value when
// the image is installed.
type Image struct {
	Label string
	Pairs []Pair
}

// NewImage is the preferred method of initialisation for the Image type.
func NewImage(label string) *Image {
	return &Image{Label: label}
}

func (img *Image) String() string {
	if len(img.Pairs) == 0 {
		return fmt.Sprintf("%s: empty", img.Label)
	}
	lo, hi := img.Bounds()
	return fmt.Sprintf("%s: %d words %s to %s", img.Label, len(img.Pairs), lo, hi)
}

// Add consecutive words starting at the origin.
func (img *Image) Add(origin isa.Addr, words ...isa.Word) {
	for i, w := range words {
		img.Pairs = append(img.Pairs, Pair{Addr: origin + isa.Addr(i), Word: w})
	}
}

// Bounds returns the lowest and highest address in the image.
func (img *Image) Bounds() (isa.Addr, isa.Addr) {
	if len(img.Pairs) == 0 {
		return 0, 0
	}
	lo := img.Pairs[0].Addr
	hi := lo
	for _, p := range img.Pairs[1:] {
		lo = min(lo, p.Addr)
		hi = max(hi, p.Addr)
	}
	return lo, hi
}

// Origin returns the address of the first pair in the image. For an image
// decoded from an obj file this is the origin of the file.
func (img *Image) Origin() isa.Addr {
	if len(img.Pairs) == 0 {
		return 0
	}
	return img.Pairs[0].Addr
}

// Words returns the image as a map of address to word.
func (img *Image) Words() map[isa.Addr]isa.Word {
	m := make(map[isa.Addr]isa.Word, len(img.Pairs))
	for _, p := range img.Pairs {
		m[p.Addr] = p.Word
	}
	return m
}

// Sorted returns a copy of the image with the pairs in address order and
// with duplicate addresses removed.
func (img *Image) Sorted() *Image {
	m := img.Words()
	s := &Image{Label: img.Label, Pairs: make([]Pair, 0, len(m))}
	for a, w := range m {
		s.Pairs = append(s.Pairs, Pair{Addr: a, Word: w})
	}
	sort.Slice(s.Pairs, func(i, j int) bool {
		return s.Pairs[i].Addr < s.Pairs[j].Addr
	})
	return s
}

// Merge appends the pairs of another image.
func (img *Image) Merge(other *Image) {
	img.Pairs = append(img.Pairs, other.Pairs...)
}

// Installer is the part of the memory system used to install an image. Writes
// are privileged.
type Installer interface {
	Poke(addr isa.Addr, data isa.Word)
}

// Install every pair of the image into memory.
func (img *Image) Install(mem Installer) {
	for _, p := range img.Pairs {
		mem.Poke(p.Addr, p.Word)
	}
}
