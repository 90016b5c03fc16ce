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

// Kind is the base operation of an opcode, independent of isolation and scope.
type Kind int

const (
	NewTransaction Kind = iota
	Commit
	Get
	GetKey
	GetRange
	GetRangeStartsWith
	GetRangeSelector
	Set
	Clear
	ClearRange
	ClearRangeStartsWith
	AtomicOp
	Versionstamp
	GetReadVersion
	SetReadVersion
	GetCommittedVersion
	TuplePack
	TupleUnpack
	TupleRange
	Sub
	ReadConflictRange
	ReadConflictKey
	WriteConflictRange
	WriteConflictKey
	DisableWriteConflict
	OnError
	Reset
	Cancel
	numKinds
)

var kindNames = [numKinds]string{
	NewTransaction:       "NEW_TRANSACTION",
	Commit:               "COMMIT",
	Get:                  "GET",
	GetKey:               "GET_KEY",
	GetRange:             "GET_RANGE",
	GetRangeStartsWith:   "GET_RANGE_STARTS_WITH",
	GetRangeSelector:     "GET_RANGE_SELECTOR",
	Set:                  "SET",
	Clear:                "CLEAR",
	ClearRange:           "CLEAR_RANGE",
	ClearRangeStartsWith: "CLEAR_RANGE_STARTS_WITH",
	AtomicOp:             "ATOMIC_OP",
	Versionstamp:         "VERSIONSTAMP",
	GetReadVersion:       "GET_READ_VERSION",
	SetReadVersion:       "SET_READ_VERSION",
	GetCommittedVersion:  "GET_COMMITTED_VERSION",
	TuplePack:            "TUPLE_PACK",
	TupleUnpack:          "TUPLE_UNPACK",
	TupleRange:           "TUPLE_RANGE",
	Sub:                  "SUB",
	ReadConflictRange:    "READ_CONFLICT_RANGE",
	ReadConflictKey:      "READ_CONFLICT_KEY",
	WriteConflictRange:   "WRITE_CONFLICT_RANGE",
	WriteConflictKey:     "WRITE_CONFLICT_KEY",
	DisableWriteConflict: "DISABLE_WRITE_CONFLICT",
	OnError:              "ON_ERROR",
	Reset:                "RESET",
	Cancel:               "CANCEL",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// Isolation selects between serializable and snapshot reads.
type Isolation int

const (
	Serializable Isolation = iota
	Snapshot
)

// Scope selects between running inside the current transaction and running
// directly against the database in an implicit transaction of its own.
type Scope int

const (
	Transactional Scope = iota
	Database
)

// Op is a fully qualified opcode.
type Op struct {
	Kind      Kind
	Isolation Isolation
	Scope     Scope
}

// String returns the opcode name understood by the interpreter, e.g. GET_RANGE_SNAPSHOT.
func (o Op) String() string {
	name := o.Kind.String()
	if o.Isolation == Snapshot {
		name += "_SNAPSHOT"
	}
	if o.Scope == Database {
		name += "_DATABASE"
	}
	return name
}

// family groups kinds that share sequencing rules.
type family int

const (
	familyControl family = iota
	familyBoundary
	familyRead
	familyMutation
	familyVersion
	familyTuple
	familyConflict
)

type variant struct {
	isolation Isolation
	scope     Scope
}

var (
	plain            = []variant{{Serializable, Transactional}}
	readVariants     = []variant{{Serializable, Transactional}, {Snapshot, Transactional}, {Serializable, Database}}
	mutationVariants = []variant{{Serializable, Transactional}, {Serializable, Database}}
	versionVariants  = []variant{{Serializable, Transactional}, {Snapshot, Transactional}}
)

// opSpec describes how a kind is emitted. emit appends the instructions of
// one operation and reports whether anything was emitted.
type opSpec struct {
	family   family
	variants []variant
	emit     func(g *Generator, op Op, iteration int) bool
}

var opSpecs = [numKinds]opSpec{
	NewTransaction:       {familyBoundary, plain, (*Generator).emitNewTransaction},
	Commit:               {familyControl, plain, (*Generator).emitCommit},
	Get:                  {familyRead, readVariants, (*Generator).emitGet},
	GetKey:               {familyRead, readVariants, (*Generator).emitGetKey},
	GetRange:             {familyRead, readVariants, (*Generator).emitGetRange},
	GetRangeStartsWith:   {familyRead, readVariants, (*Generator).emitGetRangeStartsWith},
	GetRangeSelector:     {familyRead, readVariants, (*Generator).emitGetRangeSelector},
	Set:                  {familyMutation, mutationVariants, (*Generator).emitSet},
	Clear:                {familyMutation, mutationVariants, (*Generator).emitClear},
	ClearRange:           {familyMutation, mutationVariants, (*Generator).emitClearRange},
	ClearRangeStartsWith: {familyMutation, mutationVariants, (*Generator).emitClear},
	AtomicOp:             {familyMutation, mutationVariants, (*Generator).emitAtomicOp},
	Versionstamp:         {familyMutation, plain, (*Generator).emitVersionstamp},
	GetReadVersion:       {familyVersion, versionVariants, (*Generator).emitGetReadVersion},
	SetReadVersion:       {familyVersion, plain, (*Generator).emitSetReadVersion},
	GetCommittedVersion:  {familyVersion, plain, (*Generator).emitGetCommittedVersion},
	TuplePack:            {familyTuple, plain, (*Generator).emitTuplePack},
	TupleUnpack:          {familyTuple, plain, (*Generator).emitTupleUnpack},
	TupleRange:           {familyTuple, plain, (*Generator).emitTuplePack},
	Sub:                  {familyTuple, plain, (*Generator).emitSub},
	ReadConflictRange:    {familyConflict, plain, (*Generator).emitConflictRange},
	ReadConflictKey:      {familyConflict, plain, (*Generator).emitConflictKey},
	WriteConflictRange:   {familyConflict, plain, (*Generator).emitConflictRange},
	WriteConflictKey:     {familyConflict, plain, (*Generator).emitConflictKey},
	DisableWriteConflict: {familyConflict, plain, (*Generator).emitPlain},
	OnError:              {familyBoundary, plain, (*Generator).emitOnError},
	Reset:                {familyBoundary, plain, (*Generator).emitReset},
	Cancel:               {familyBoundary, plain, (*Generator).emitCancel},
}

// Choices returns every opcode the main loop picks from, in a fixed order.
func Choices() []Op {
	var ops []Op
	for k := Kind(0); k < numKinds; k++ {
		for _, v := range opSpecs[k].variants {
			ops = append(ops, Op{Kind: k, Isolation: v.isolation, Scope: v.scope})
		}
	}
	return ops
}

// selectorRead reports whether the op resolves key selectors inside the current transaction.
func (o Op) selectorRead() bool {
	return (o.Kind == GetKey || o.Kind == GetRangeSelector) && o.Scope == Transactional
}
