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
	"fmt"

	"github.com/0xsoniclabs/apitester/tuple"
	"github.com/cockroachdb/errors"
)

// Opcodes the program itself emits. Every other opcode name is chosen by the generator.
const (
	OpPush       = "PUSH"
	OpSwap       = "SWAP"
	OpWaitFuture = "WAIT_FUTURE"
	OpCommit     = "COMMIT"
	OpReset      = "RESET"
)

// Instruction is a single opcode, or a push of a literal operand.
type Instruction struct {
	Op  string
	Arg tuple.Element
}

// NewOp creates a named operation.
func NewOp(op string) Instruction {
	return Instruction{Op: op}
}

// NewPush creates a push of arg.
func NewPush(arg tuple.Element) Instruction {
	return Instruction{Op: OpPush, Arg: arg}
}

// IsPush reports whether the instruction pushes a literal.
func (i Instruction) IsPush() bool {
	return i.Op == OpPush
}

// Value returns the instruction encoded as a tuple: (op,) or ("PUSH", arg).
func (i Instruction) Value() []byte {
	if i.IsPush() {
		return tuple.Tuple{i.Op, i.Arg}.Pack()
	}
	return tuple.Tuple{i.Op}.Pack()
}

func (i Instruction) String() string {
	if i.IsPush() {
		return fmt.Sprintf("%s %s", i.Op, tuple.Format(i.Arg))
	}
	return i.Op
}

// ParseInstruction decodes a value produced by Instruction.Value.
func ParseInstruction(value []byte) (Instruction, error) {
	t, err := tuple.Unpack(value)
	if err != nil {
		return Instruction{}, errors.Wrap(err, "cannot unpack instruction")
	}
	if len(t) == 0 {
		return Instruction{}, errors.New("empty instruction")
	}
	op, ok := t[0].(string)
	if !ok {
		return Instruction{}, errors.Newf("opcode must be a string, got %T", t[0])
	}
	switch {
	case op == OpPush && len(t) == 2:
		return NewPush(t[1]), nil
	case op != OpPush && len(t) == 1:
		return NewOp(op), nil
	}
	return Instruction{}, errors.Newf("instruction %s has %d operands", op, len(t)-1)
}
