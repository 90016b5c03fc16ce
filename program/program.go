// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package program

import (
	"github.com/0xsoniclabs/apitester/tuple"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/slices"
)

// Program is the ordered instruction list of one client thread, split into
// setup, main and finalization phases by two markers.
type Program struct {
	instructions      []Instruction
	setupEnd          int
	finalizationStart int
}

// New creates an empty program with no phase markers set.
func New() *Program {
	return &Program{finalizationStart: -1}
}

// Append appends a named operation.
func (p *Program) Append(op string) {
	p.instructions = append(p.instructions, NewOp(op))
}

// Push appends one push per argument in reverse order, so the first
// argument ends up on top of the stack.
func (p *Program) Push(args ...tuple.Element) {
	for i := len(args) - 1; i >= 0; i-- {
		p.instructions = append(p.instructions, NewPush(args[i]))
	}
}

// ToFront moves the stack item at the given depth to the top, keeping the
// relative order of the items above it. It is expressed with SWAP.
func (p *Program) ToFront(depth int) {
	switch {
	case depth <= 0:
	case depth == 1:
		p.swap(1)
	case depth == 2:
		p.swap(1)
		p.swap(2)
	default:
		p.swap(depth - 1)
		p.swap(depth)
		p.swap(depth - 1)
		p.ToFront(depth - 1)
	}
}

func (p *Program) swap(depth int) {
	p.Push(depth)
	p.Append(OpSwap)
}

// BlockingCommit commits the current transaction, waits for the commit and resets it.
func (p *Program) BlockingCommit() {
	p.Append(OpCommit)
	p.Append(OpWaitFuture)
	p.Append(OpReset)
}

// SetupComplete marks the end of the setup phase at the current length.
func (p *Program) SetupComplete() {
	p.setupEnd = len(p.instructions)
}

// BeginFinalization marks the beginning of the finalization phase at the current length.
func (p *Program) BeginFinalization() {
	p.finalizationStart = len(p.instructions)
}

// SetupEnd is the index of the first main-phase instruction.
func (p *Program) SetupEnd() int {
	return p.setupEnd
}

// FinalizationStart is the index of the first finalization instruction, or
// the program length when finalization has not begun.
func (p *Program) FinalizationStart() int {
	if p.finalizationStart < 0 {
		return len(p.instructions)
	}
	return p.finalizationStart
}

func (p *Program) Len() int {
	return len(p.instructions)
}

func (p *Program) At(i int) Instruction {
	return p.instructions[i]
}

// Last returns the index of the last instruction.
func (p *Program) Last() int {
	return len(p.instructions) - 1
}

// Instructions returns a copy of all instructions.
func (p *Program) Instructions() []Instruction {
	return slices.Clone(p.instructions)
}

// Core returns a copy of the main-phase instructions.
func (p *Program) Core() []Instruction {
	return slices.Clone(p.instructions[p.SetupEnd():p.FinalizationStart()])
}

// Digest fingerprints the program including its phase markers.
func (p *Program) Digest() [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write(tuple.Tuple{int64(p.SetupEnd()), int64(p.FinalizationStart())}.Pack())
	for _, in := range p.instructions {
		v := in.Value()
		h.Write(tuple.Tuple{v}.Pack())
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
