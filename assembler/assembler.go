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

package assembler

import (
	"fmt"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/cpu/instructions"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/imageloader"
)

// Sentinel error patterns.
const (
	UndefinedLabel = "assembler: undefined label (%s)"
	DuplicateLabel = "assembler: duplicate label (%s)"
	OffsetRange    = "assembler: %s is out of range of %v"
	ImmediateRange = "assembler: immediate value %d out of range at %v"
)

// a reference to a label that is resolved by Assemble()
type fixup struct {
	// index into the image's pairs
	idx int

	ins   instructions.Instruction
	label string

	// width of the offset field. zero for an absolute address
	bits uint
}

type poolEntry struct {
	label string
	value isa.Word
}

// Program is an LC-3 program under construction.
type Program struct {
	img    *imageloader.Image
	pc     isa.Addr
	labels map[string]isa.Addr
	fixups []fixup

	pool      []poolEntry
	poolCount int

	// first error encountered
	err error
}

// NewProgram is the preferred method of initialisation for the Program type.
// The origin is 0x3000 until changed with Orig().
func NewProgram(label string) *Program {
	return &Program{
		img:    imageloader.NewImage(label),
		pc:     0x3000,
		labels: make(map[string]isa.Addr),
	}
}

func (p *Program) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Orig sets the address of the next word.
func (p *Program) Orig(addr isa.Addr) {
	p.pc = addr
}

// PC returns the address of the next word.
func (p *Program) PC() isa.Addr {
	return p.pc
}

// Label the address of the next word.
func (p *Program) Label(name string) {
	if _, ok := p.labels[name]; ok {
		p.fail(curated.Errorf(DuplicateLabel, name))
		return
	}
	p.labels[name] = p.pc
}

// Address returns the address of a label defined so far.
func (p *Program) Address(name string) (isa.Addr, bool) {
	a, ok := p.labels[name]
	return a, ok
}

func (p *Program) emit(w isa.Word) {
	p.img.Add(p.pc, w)
	p.pc++
}

func (p *Program) emitIns(ins instructions.Instruction) {
	p.emit(ins.Encode())
}

func (p *Program) emitRef(ins instructions.Instruction, label string, bits uint) {
	p.fixups = append(p.fixups, fixup{
		idx:   len(p.img.Pairs),
		ins:   ins,
		label: label,
		bits:  bits,
	})
	p.emit(0)
}

// Fill emits the words.
func (p *Program) Fill(words ...isa.Word) {
	for _, w := range words {
		p.emit(w)
	}
}

// FillLabel emits the address of the label.
func (p *Program) FillLabel(label string) {
	p.emitRef(instructions.Instruction{}, label, 0)
}

// Stringz emits one word per byte of the string followed by a zero word.
func (p *Program) Stringz(s string) {
	for i := 0; i < len(s); i++ {
		p.emit(isa.Word(s[i]))
	}
	p.emit(0)
}

// Blkw emits n copies of the value.
func (p *Program) Blkw(n int, v isa.Word) {
	for i := 0; i < n; i++ {
		p.emit(v)
	}
}

// Const returns the label of a literal pool entry holding the value. Entries
// are shared until the pool is emitted.
func (p *Program) Const(v isa.Word) string {
	for _, e := range p.pool {
		if e.value == v {
			return e.label
		}
	}
	l := fmt.Sprintf("__pool%d", p.poolCount)
	p.poolCount++
	p.pool = append(p.pool, poolEntry{label: l, value: v})
	return l
}

// Pool emits every pending literal pool entry.
func (p *Program) Pool() {
	for _, e := range p.pool {
		p.Label(e.label)
		p.emit(e.value)
	}
	p.pool = p.pool[:0]
}

func fits(v int, bits uint) bool {
	lim := 1 << (bits - 1)
	return v >= -lim && v < lim
}

// Assemble resolves label references and returns the image. Pending literal
// pool entries are emitted at the end of the program.
func (p *Program) Assemble() (*imageloader.Image, error) {
	p.Pool()

	for _, f := range p.fixups {
		t, ok := p.labels[f.label]
		if !ok {
			p.fail(curated.Errorf(UndefinedLabel, f.label))
			continue
		}

		pr := &p.img.Pairs[f.idx]
		if f.bits == 0 {
			pr.Word = isa.Word(t)
			continue
		}

		off := int(int16(t - (pr.Addr + 1)))
		if !fits(off, f.bits) {
			p.fail(curated.Errorf(OffsetRange, f.label, pr.Addr))
			continue
		}
		ins := f.ins
		ins.Offset = isa.SignedWord(off)
		pr.Word = ins.Encode()
	}

	if p.err != nil {
		return nil, p.err
	}
	return p.img, nil
}
