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

package apigen

import (
	"bytes"
	"math/big"

	"github.com/0xsoniclabs/apitester/program"
	"github.com/0xsoniclabs/apitester/tuple"
)

const logStack = "LOG_STACK"

// Atomic mutation types. The idempotent ones may safely be applied twice.
var (
	idempotentAtomicOps = []string{"BIT_AND", "BIT_OR", "MAX", "MIN"}
	allAtomicOps        = append(append([]string(nil), idempotentAtomicOps...), "ADD", "BIT_XOR")
)

const (
	setVersionstampedValue = "SET_VERSIONSTAMPED_VALUE"
	setVersionstampedKey   = "SET_VERSIONSTAMPED_KEY"
	versionstampTagLen     = 100
	versionstampPadding    = 20
	versionstampMaxSplit   = 70
)

// versionstampPlaceholder marks where the store substitutes the commit versionstamp.
var versionstampPlaceholder = []byte("XXXXXXXXXX")

func (f *txFlags) beginTransaction() {
	f.isCommitted = false
	f.canSetVersion = true
	f.canUseSelectors = true
}

func (g *Generator) emitPlain(op Op, _ int) bool {
	g.prog.Append(op.String())
	return true
}

func (g *Generator) emitNewTransaction(op Op, _ int) bool {
	g.prog.Append(op.String())
	g.flags.beginTransaction()
	return true
}

func (g *Generator) emitReset(op Op, _ int) bool {
	g.prog.Append(op.String())
	g.flags.beginTransaction()
	return true
}

func (g *Generator) emitCancel(op Op, _ int) bool {
	g.prog.Append(op.String())
	g.flags.isCommitted = false
	g.flags.canSetVersion = false
	return true
}

// emitOnError retries with a random error code; the returned future is
// waited on in sequential mode before a new transaction starts.
func (g *Generator) emitOnError(op Op, _ int) bool {
	g.prog.Push(g.rnd.IntRange(0, g.cfg.Tunables.MaxErrorCode))
	g.prog.Append(op.String())
	g.futures.add(g.stack.size, g.prog.Last())
	if g.sequential() {
		g.waitForReads()
	}
	g.prog.Append(NewTransaction.String())
	g.flags.beginTransaction()
	g.stack.addStrings(1)
	return true
}

func (g *Generator) emitCommit(op Op, iteration int) bool {
	blocking := g.sequential() ||
		iteration < g.maxKeys ||
		g.rnd.Float64() < 1-g.cfg.Tunables.NonBlockingCommitProb
	if !blocking {
		g.prog.Append(op.String())
		g.stack.addStrings(1)
		return true
	}
	if g.sequential() {
		g.waitForReads()
	}
	g.prog.BlockingCommit()
	g.stack.addItems(1)
	g.flags.isCommitted = true
	g.flags.canSetVersion = true
	g.flags.canUseSelectors = true
	return true
}

func (g *Generator) emitGet(op Op, _ int) bool {
	g.ensureKey(1)
	g.prog.Append(op.String())
	g.stack.addStrings(1)
	g.flags.canSetVersion = false
	return true
}

func (g *Generator) emitGetKey(op Op, _ int) bool {
	if op.selectorRead() && !g.flags.canUseSelectors {
		return false
	}
	g.ensureKey(1)
	g.prog.Push(g.layout.Workspace.Bytes())
	g.prog.Push(g.rnd.RandomSelectorParams().Args()...)
	g.prog.ToFront(3)
	g.prog.Append(op.String())
	// the resolved key may lie outside the workspace, so it is only a string
	g.stack.addStrings(1)
	g.flags.canSetVersion = false
	return true
}

func (g *Generator) emitGetRange(op Op, _ int) bool {
	g.ensureKey(2)
	params := g.rnd.RandomRangeParams()
	g.prog.Push(params.Args()...)
	g.prog.ToFront(4)
	g.prog.ToFront(4)
	g.prog.Append(op.String())
	g.addRangeResult(params.Limit)
	return true
}

func (g *Generator) emitGetRangeStartsWith(op Op, _ int) bool {
	g.ensureKey(1)
	params := g.rnd.RandomRangeParams()
	g.prog.Push(params.Args()...)
	g.prog.ToFront(3)
	g.prog.Append(op.String())
	g.addRangeResult(params.Limit)
	return true
}

func (g *Generator) emitGetRangeSelector(op Op, _ int) bool {
	if op.selectorRead() && !g.flags.canUseSelectors {
		return false
	}
	g.ensureKey(2)
	g.prog.Push(g.layout.Workspace.Bytes())
	params := g.rnd.RandomRangeParams()
	g.prog.Push(params.Args()...)
	g.prog.Push(g.rnd.RandomSelectorParams().Args()...)
	g.prog.ToFront(6)
	g.prog.Push(g.rnd.RandomSelectorParams().Args()...)
	g.prog.ToFront(9)
	g.prog.Append(op.String())
	g.addRangeResult(params.Limit)
	return true
}

// addRangeResult accounts for a range read result; large limits may produce
// results too big to be used as a string operand.
func (g *Generator) addRangeResult(limit int) {
	if limit >= 1 && limit <= g.cfg.Tunables.LimitStringBound {
		g.stack.addStrings(1)
	} else {
		g.stack.addItems(1)
	}
	g.flags.canSetVersion = false
}

func (g *Generator) emitGetReadVersion(op Op, _ int) bool {
	g.prog.Append(op.String())
	g.flags.hasVersion = g.flags.canSetVersion
	g.stack.addStrings(1)
	return true
}

func (g *Generator) emitSetReadVersion(op Op, _ int) bool {
	if !g.flags.hasVersion || !g.flags.canSetVersion {
		return false
	}
	g.prog.Append(op.String())
	g.flags.canSetVersion = false
	return true
}

func (g *Generator) emitGetCommittedVersion(op Op, _ int) bool {
	if !g.flags.isCommitted {
		return false
	}
	g.prog.Append(op.String())
	g.flags.hasVersion = true
	g.stack.addStrings(1)
	return true
}

func (g *Generator) emitSet(op Op, _ int) bool {
	g.ensureKeyValue()
	g.prog.Append(op.String())
	g.addMutationResult(op)
	return true
}

// emitClear serves CLEAR and CLEAR_RANGE_STARTS_WITH, which both take one key.
func (g *Generator) emitClear(op Op, _ int) bool {
	g.ensureKey(1)
	g.prog.Append(op.String())
	g.addMutationResult(op)
	return true
}

// emitClearRange clears between two fresh keys, ordered so the range is never inverted.
func (g *Generator) emitClearRange(op Op, _ int) bool {
	low := g.layout.Workspace.Pack(g.rnd.RandomTuple(g.cfg.Tunables.MaxKeyTupleLen))
	high := g.layout.Workspace.Pack(g.rnd.RandomTuple(g.cfg.Tunables.MaxKeyTupleLen))
	if bytes.Compare(low, high) > 0 {
		low, high = high, low
	}
	g.prog.Push(low, high)
	g.prog.Append(op.String())
	g.addMutationResult(op)
	return true
}

func (g *Generator) emitAtomicOp(op Op, _ int) bool {
	g.ensureKeyValue()
	g.prog.Push(g.chooseAtomicOp())
	g.prog.Append(op.String())
	g.addMutationResult(op)
	return true
}

// chooseAtomicOp restricts sequential programs to idempotent mutations,
// since a single client may have to replay a commit whose outcome is unknown.
func (g *Generator) chooseAtomicOp() string {
	if g.sequential() {
		return idempotentAtomicOps[g.rnd.Intn(len(idempotentAtomicOps))]
	}
	return allAtomicOps[g.rnd.Intn(len(allAtomicOps))]
}

// addMutationResult accounts for the future a database mutation leaves on the stack.
func (g *Generator) addMutationResult(op Op) {
	if op.Scope == Database {
		g.stack.addItems(1)
	}
}

// emitVersionstamp writes a random tag under versionstamped_values with the
// placeholder in its value, and the tag under a versionstamped key whose
// placeholder offset is appended as two little-endian bytes.
func (g *Generator) emitVersionstamp(_ Op, _ int) bool {
	tag := g.rnd.RandomString(versionstampTagLen)
	valueKey := g.layout.VersionstampedValues.Pack(tuple.Tuple{tag})

	split := g.rnd.IntRange(0, versionstampMaxSplit)
	body := make([]byte, 0, versionstampPadding+versionstampMaxSplit+len(versionstampPlaceholder))
	body = append(body, g.rnd.RandomString(versionstampPadding+split)...)
	body = append(body, versionstampPlaceholder...)
	body = append(body, g.rnd.RandomString(versionstampMaxSplit-split)...)

	prefix := g.layout.VersionstampedKeys.Bytes()
	offset := len(prefix) + bytes.Index(body, versionstampPlaceholder)
	stampedKey := append(append(prefix, body...), byte(offset%256), byte(offset/256))

	value := append(append([]byte(nil), versionstampPlaceholder...), body...)
	g.prog.Push(setVersionstampedValue, valueKey, value)
	g.prog.Append(AtomicOp.String())
	g.prog.Push(setVersionstampedKey, stampedKey, tag)
	g.prog.Append(AtomicOp.String())
	g.flags.canUseSelectors = false
	return true
}

func (g *Generator) emitConflictRange(op Op, _ int) bool {
	g.ensureKey(2)
	g.prog.Append(op.String())
	g.stack.addStrings(1)
	return true
}

func (g *Generator) emitConflictKey(op Op, _ int) bool {
	g.ensureKey(1)
	g.prog.Append(op.String())
	g.stack.addStrings(1)
	return true
}

// emitTuplePack serves TUPLE_PACK and TUPLE_RANGE, which differ only in the
// number of strings they leave.
func (g *Generator) emitTuplePack(op Op, _ int) bool {
	tup := g.rnd.RandomTuple(g.cfg.Tunables.MaxEncodeTupleLen)
	g.pushTuple(tup)
	g.prog.Append(op.String())
	if op.Kind == TupleRange {
		g.stack.addStrings(2)
	} else {
		g.stack.addStrings(1)
	}
	return true
}

func (g *Generator) emitTupleUnpack(op Op, _ int) bool {
	tup := g.rnd.RandomTuple(g.cfg.Tunables.MaxEncodeTupleLen)
	g.pushTuple(tup)
	g.prog.Append(TuplePack.String())
	g.prog.Append(op.String())
	g.stack.addStrings(len(tup))
	return true
}

func (g *Generator) pushTuple(tup tuple.Tuple) {
	args := make([]tuple.Element, 0, len(tup)+1)
	args = append(args, len(tup))
	g.prog.Push(append(args, tup...)...)
}

// emitSub chains two subtractions over large random integers and packs the
// result, so a binding that decodes integers wrongly leaves a different value.
func (g *Generator) emitSub(op Op, _ int) bool {
	two := big.NewInt(2)
	a := new(big.Int).Div(g.rnd.RandomInt(), two)
	b := new(big.Int).Div(g.rnd.RandomInt(), two)
	g.prog.Push(0, a, b)
	g.prog.Append(op.String())
	g.prog.Push(1)
	g.prog.Append(program.OpSwap)
	g.prog.Append(op.String())
	g.prog.Push(1)
	g.prog.Append(TuplePack.String())
	g.stack.addItems(1)
	return true
}
