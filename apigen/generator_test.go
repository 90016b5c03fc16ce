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
	"strings"
	"testing"

	"github.com/0xsoniclabs/apitester/logger"
	"github.com/0xsoniclabs/apitester/program"
	"github.com/0xsoniclabs/apitester/randgen"
	"github.com/0xsoniclabs/apitester/tuple"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testLayout = NewLayout([]byte("test"))

func testConfig(numOps, concurrency int) Config {
	return Config{NumOps: numOps, Concurrency: concurrency, Tunables: DefaultTunables()}
}

func newTestGenerator(t *testing.T, cfg Config, seed uint64) *Generator {
	t.Helper()
	rnd, err := randgen.New(seed, 64)
	require.NoError(t, err)
	g, err := NewGenerator(cfg, testLayout, rnd, logger.NewLogger("critical", "Generator"))
	require.NoError(t, err)
	return g
}

// ops returns the instructions without pushes and swaps.
func ops(instructions []program.Instruction) []string {
	var out []string
	for _, in := range instructions {
		if !in.IsPush() && in.Op != program.OpSwap {
			out = append(out, in.Op)
		}
	}
	return out
}

func TestNewGenerator_RejectsInvalidConfig(t *testing.T) {
	rnd, err := randgen.New(1, 64)
	require.NoError(t, err)
	log := logger.NewLogger("critical", "Generator")

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"NegativeOps", func(c *Config) { c.NumOps = -1 }, "number of operations"},
		{"NoClients", func(c *Config) { c.Concurrency = 0 }, "concurrency"},
		{"PrefixProbability", func(c *Config) { c.Tunables.PrefixReuseProb = 1.5 }, "prefix reuse probability"},
		{"CommitProbability", func(c *Config) { c.Tunables.NonBlockingCommitProb = -0.1 }, "non-blocking commit probability"},
		{"RecencyRate", func(c *Config) { c.Tunables.RecencyRate = -1 }, "recency rate"},
		{"CommitEvery", func(c *Config) { c.Tunables.CommitEvery = 0 }, "commit interval"},
		{"TupleLength", func(c *Config) { c.Tunables.MaxKeyTupleLen = 0 }, "tuple lengths"},
		{"KeyBounds", func(c *Config) { c.Tunables.MinKeys = 20000 }, "key bounds"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := testConfig(10, 1)
			test.modify(&cfg)
			_, err := NewGenerator(cfg, testLayout, rnd, log)
			assert.ErrorContains(t, err, test.wantErr)
		})
	}

	_, err = NewGenerator(testConfig(10, 1), testLayout, nil, log)
	assert.ErrorContains(t, err, "random source")
}

func TestGenerator_NoOperationsProducesOnlySetupAndFinalization(t *testing.T) {
	cfg := testConfig(0, 1)
	cfg.MaxKeys = 250
	g := newTestGenerator(t, cfg, 1)
	p := g.Generate(0)

	var want []string
	want = append(want, "NEW_TRANSACTION", "GET_READ_VERSION")
	blockingCommit := []string{"COMMIT", "WAIT_FUTURE", "RESET"}
	for i := 0; i < 250; i++ {
		want = append(want, "SET")
		if i%100 == 99 {
			want = append(want, blockingCommit...)
		}
	}
	want = append(want, blockingCommit...)
	want = append(want, blockingCommit...)
	want = append(want, "NEW_TRANSACTION", "LOG_STACK")
	want = append(want, blockingCommit...)

	assert.Equal(t, want, ops(p.Instructions()))
	assert.Equal(t, p.SetupEnd(), p.FinalizationStart())
	assert.Empty(t, p.Core())

	// every preloaded SET gets a fresh value and key pushed in front of it
	setup := p.Instructions()[:p.SetupEnd()]
	for i, in := range setup {
		if in.Op == "SET" {
			require.True(t, setup[i-1].IsPush() && setup[i-2].IsPush())
			assert.True(t, testLayout.Workspace.Contains(setup[i-1].Arg.([]byte)))
		}
	}
	// the stack log goes to the stack subspace
	fin := p.Instructions()[p.FinalizationStart():]
	assert.Contains(t, fin, program.NewPush(testLayout.Stack.Bytes()))
}

func TestGenerator_DrawsMaxKeysPerMode(t *testing.T) {
	for _, concurrency := range []int{1, 3} {
		for seed := uint64(0); seed < 5; seed++ {
			g := newTestGenerator(t, testConfig(0, concurrency), seed)
			g.Generate(0)
			assert.GreaterOrEqual(t, g.MaxKeys(), 100)
			if concurrency == 1 {
				assert.LessOrEqual(t, g.MaxKeys(), 10000)
			} else {
				assert.LessOrEqual(t, g.MaxKeys(), 1000)
			}
		}
	}
}

func TestGenerator_IsDeterministic(t *testing.T) {
	for _, concurrency := range []int{1, 4} {
		cfg := testConfig(2000, concurrency)
		a := newTestGenerator(t, cfg, 99).Generate(0)
		b := newTestGenerator(t, cfg, 99).Generate(0)
		c := newTestGenerator(t, cfg, 100).Generate(0)
		assert.Equal(t, a.Digest(), b.Digest())
		assert.Equal(t, a.Len(), b.Len())
		assert.NotEqual(t, a.Digest(), c.Digest())
	}
}

func TestGenerator_StackDepthInvariant(t *testing.T) {
	for _, concurrency := range []int{1, 2} {
		g := newTestGenerator(t, testConfig(0, concurrency), 7)
		g.cfg.MaxKeys = 300
		g.start()
		g.setup()
		for i := 0; i < 5000; i++ {
			g.step(g.choices[g.rnd.Intn(len(g.choices))], i)
			s := g.stack
			require.GreaterOrEqual(t, s.keyDepth, 0)
			require.LessOrEqual(t, s.keyDepth, s.stringDepth)
			require.LessOrEqual(t, s.stringDepth, s.size)
			for _, f := range g.futures.pending {
				require.LessOrEqual(t, f.depth, s.size)
			}
		}
	}
}

func TestGenerator_ClearRangeOrdersKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	rnd := randgen.NewMockRandomGenerator(ctrl)
	cfg := testConfig(0, 2)
	cfg.MaxKeys = 100
	g, err := NewGenerator(cfg, testLayout, rnd, logger.NewLogger("critical", "Generator"))
	require.NoError(t, err)
	g.start()

	gomock.InOrder(
		rnd.EXPECT().RandomTuple(5).Return(tuple.Tuple{[]byte("b")}),
		rnd.EXPECT().RandomTuple(5).Return(tuple.Tuple{[]byte("a")}),
	)
	g.step(Op{Kind: ClearRange}, 0)

	in := g.prog.Instructions()
	require.Len(t, in, 3)
	// pushed high first, so the low key ends on top
	assert.Equal(t, program.NewPush(testLayout.Workspace.Pack(tuple.Tuple{[]byte("b")})), in[0])
	assert.Equal(t, program.NewPush(testLayout.Workspace.Pack(tuple.Tuple{[]byte("a")})), in[1])
	assert.Equal(t, program.NewOp("CLEAR_RANGE"), in[2])
}

func TestGenerator_ClearRangePairsAreOrdered(t *testing.T) {
	g := newTestGenerator(t, testConfig(0, 1), 3)
	g.cfg.MaxKeys = 100
	g.start()
	for i := 0; i < 500; i++ {
		before := g.prog.Len()
		g.step(Op{Kind: ClearRange, Scope: Scope(i % 2)}, i)
		in := g.prog.Instructions()[before:]
		for j, instruction := range in {
			if instruction.Op == "CLEAR_RANGE" || instruction.Op == "CLEAR_RANGE_DATABASE" {
				low, high := in[j-1].Arg.([]byte), in[j-2].Arg.([]byte)
				assert.LessOrEqual(t, bytes.Compare(low, high), 0)
			}
		}
	}
}

func TestGenerator_SequentialModeResolvesFutures(t *testing.T) {
	g := newTestGenerator(t, testConfig(0, 1), 11)
	g.cfg.MaxKeys = 200
	g.start()
	g.setup()
	for i := 0; i < 5000; i++ {
		op := g.choices[g.rnd.Intn(len(g.choices))]
		g.step(op, i)
		family := opSpecs[op.Kind].family
		if family == familyBoundary || (family == familyMutation && op.Scope == Database) {
			require.Zero(t, g.futures.len(), "pending futures after %s", op)
		}
	}
	g.finalize()
	assert.Zero(t, g.futures.len())
}

func TestGenerator_WaitForReadsMovesFutureToTop(t *testing.T) {
	g := newTestGenerator(t, testConfig(0, 1), 1)
	g.start()
	g.stack.addStrings(5)
	g.futures.add(2, 10)
	g.futures.add(4, 20)
	g.futures.add(5, 30)
	g.waitForReads()

	assert.Zero(t, g.futures.len())
	want := program.New()
	want.ToFront(0)
	want.Append(program.OpWaitFuture)
	want.ToFront(1)
	want.Append(program.OpWaitFuture)
	want.ToFront(3)
	want.Append(program.OpWaitFuture)
	assert.Equal(t, want.Instructions(), g.prog.Instructions())
}

func TestGenerator_WaitForReadsStopsAtUnreachableFuture(t *testing.T) {
	g := newTestGenerator(t, testConfig(0, 1), 1)
	g.start()
	g.stack.addStrings(2)
	g.futures.add(1, 10)
	g.futures.pending = append(g.futures.pending, future{depth: 3, index: 20})
	g.waitForReads()
	assert.Equal(t, 2, g.futures.len())
	assert.Zero(t, g.prog.Len())
}

func TestGenerator_VersionstampDisablesSelectors(t *testing.T) {
	for _, concurrency := range []int{1, 3} {
		g := newTestGenerator(t, testConfig(20000, concurrency), 5)
		p := g.Generate(0)

		core := p.Core()
		stamped := false
		for i, in := range core {
			switch in.Op {
			case "NEW_TRANSACTION", "RESET":
				stamped = false
			case "ATOMIC_OP":
				if prev := core[i-1]; prev.IsPush() && prev.Arg == setVersionstampedKey {
					stamped = true
				}
			case "GET_KEY", "GET_KEY_SNAPSHOT", "GET_RANGE_SELECTOR", "GET_RANGE_SELECTOR_SNAPSHOT":
				require.False(t, stamped, "selector read %s at %d after a versionstamp", in.Op, i)
			}
		}
	}
}

func TestGenerator_AtomicOpsPerMode(t *testing.T) {
	collect := func(concurrency int) map[string]int {
		p := newTestGenerator(t, testConfig(5000, concurrency), 8).Generate(0)
		seen := map[string]int{}
		in := p.Core()
		for i, instruction := range in {
			if instruction.Op == "ATOMIC_OP" || instruction.Op == "ATOMIC_OP_DATABASE" {
				seen[in[i-1].Arg.(string)]++
			}
		}
		return seen
	}

	for op := range collect(1) {
		assert.Contains(t, append([]string{setVersionstampedKey, setVersionstampedValue}, idempotentAtomicOps...), op)
	}
	concurrent := collect(4)
	assert.Positive(t, concurrent["ADD"]+concurrent["BIT_XOR"])
}

func TestGenerator_SelectorReadsAreSkippedWhenDisabled(t *testing.T) {
	g := newTestGenerator(t, testConfig(0, 2), 1)
	g.cfg.MaxKeys = 100
	g.start()
	g.flags.canUseSelectors = false
	g.step(Op{Kind: GetKey}, 0)
	g.step(Op{Kind: GetRangeSelector, Isolation: Snapshot}, 1)
	assert.Zero(t, g.prog.Len())
	assert.Zero(t, g.futures.len())

	g.step(Op{Kind: GetKey, Scope: Database}, 2)
	assert.Equal(t, "GET_KEY_DATABASE", g.prog.At(g.prog.Last()).Op)
}

func TestGenerator_VersionGating(t *testing.T) {
	g := newTestGenerator(t, testConfig(0, 2), 1)
	g.cfg.MaxKeys = 100
	g.start()

	g.flags = txFlags{}
	g.step(Op{Kind: SetReadVersion}, 0)
	g.step(Op{Kind: GetCommittedVersion}, 1)
	assert.Zero(t, g.prog.Len())

	g.step(Op{Kind: Reset}, 2)
	g.step(Op{Kind: GetReadVersion}, 3)
	assert.True(t, g.flags.hasVersion)
	g.step(Op{Kind: SetReadVersion}, 4)
	assert.False(t, g.flags.canSetVersion)
	assert.Equal(t, []string{"RESET", "GET_READ_VERSION", "SET_READ_VERSION"}, ops(g.prog.Instructions()))

	g.step(Op{Kind: Cancel}, 5)
	assert.False(t, g.flags.isCommitted)
	g.step(Op{Kind: Commit}, 6)
	assert.True(t, g.flags.isCommitted)
	g.step(Op{Kind: GetCommittedVersion}, 7)
	assert.Equal(t, "GET_COMMITTED_VERSION", g.prog.At(g.prog.Last()).Op)
}

func TestGenerator_NonBlockingCommitOnlyAfterPreload(t *testing.T) {
	ctrl := gomock.NewController(t)
	rnd := randgen.NewMockRandomGenerator(ctrl)
	cfg := testConfig(0, 2)
	cfg.MaxKeys = 10
	g, err := NewGenerator(cfg, testLayout, rnd, logger.NewLogger("critical", "Generator"))
	require.NoError(t, err)
	g.start()

	g.step(Op{Kind: Commit}, 9)
	assert.Equal(t, []string{"COMMIT", "WAIT_FUTURE", "RESET"}, ops(g.prog.Instructions()))

	rnd.EXPECT().Float64().Return(0.95)
	g.step(Op{Kind: Commit}, 10)
	assert.Equal(t, "COMMIT", g.prog.At(g.prog.Last()).Op)
	assert.Equal(t, 1, g.stack.stringDepth)
}

func TestGenerator_OnErrorStartsNewTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	rnd := randgen.NewMockRandomGenerator(ctrl)
	cfg := testConfig(0, 1)
	cfg.MaxKeys = 10
	g, err := NewGenerator(cfg, testLayout, rnd, logger.NewLogger("critical", "Generator"))
	require.NoError(t, err)
	g.start()
	g.flags.canUseSelectors = false

	rnd.EXPECT().IntRange(0, 5000).Return(1020)
	g.step(Op{Kind: OnError}, 0)

	assert.Equal(t, []program.Instruction{
		program.NewPush(1020),
		program.NewOp("ON_ERROR"),
		program.NewOp(program.OpWaitFuture),
		program.NewOp("NEW_TRANSACTION"),
	}, g.prog.Instructions())
	assert.True(t, g.flags.canUseSelectors)
	assert.Equal(t, stackModel{size: 1, stringDepth: 1}, g.stack)
	assert.Zero(t, g.futures.len())
}

func TestGenerator_ReadsRecordFuturesInTransactionsOnly(t *testing.T) {
	g := newTestGenerator(t, testConfig(0, 2), 4)
	g.cfg.MaxKeys = 100
	g.start()

	g.step(Op{Kind: Get}, 0)
	g.step(Op{Kind: GetRange, Isolation: Snapshot}, 1)
	require.Equal(t, 2, g.futures.len())
	assert.Equal(t, g.prog.Last(), g.futures.pending[1].index)
	assert.Equal(t, g.stack.size, g.futures.pending[1].depth)

	g.step(Op{Kind: Get, Scope: Database}, 2)
	assert.Equal(t, 2, g.futures.len())
}

func TestGenerator_DatabaseOpsWaitInSequentialMode(t *testing.T) {
	g := newTestGenerator(t, testConfig(0, 1), 4)
	g.cfg.MaxKeys = 100
	g.start()

	g.step(Op{Kind: Get}, 0)
	g.step(Op{Kind: Set, Scope: Database}, 1)
	assert.Equal(t, []string{"GET", "WAIT_FUTURE", "COMMIT", "WAIT_FUTURE", "RESET", "SET_DATABASE", "WAIT_FUTURE"}, ops(g.prog.Instructions()))
}

func TestGenerator_VersionstampLayout(t *testing.T) {
	g := newTestGenerator(t, testConfig(0, 1), 12)
	g.cfg.MaxKeys = 100
	g.start()
	g.step(Op{Kind: Versionstamp}, 0)

	in := g.prog.Instructions()
	require.Len(t, in, 8)
	assert.Equal(t, program.NewPush(setVersionstampedValue), in[2])
	assert.Equal(t, program.NewPush(setVersionstampedKey), in[6])

	value := in[0].Arg.([]byte)
	valueKey := in[1].Arg.([]byte)
	tag := in[4].Arg.([]byte)
	stampedKey := in[5].Arg.([]byte)

	unpacked, err := testLayout.VersionstampedValues.Unpack(valueKey)
	require.NoError(t, err)
	assert.Equal(t, tuple.Tuple{tag}, unpacked)
	assert.Len(t, tag, versionstampTagLen)
	assert.True(t, bytes.HasPrefix(value, versionstampPlaceholder))

	offset := int(stampedKey[len(stampedKey)-2]) + 256*int(stampedKey[len(stampedKey)-1])
	assert.Equal(t, versionstampPlaceholder, stampedKey[offset:offset+len(versionstampPlaceholder)])
	assert.Equal(t, append(testLayout.VersionstampedKeys.Bytes(), value[len(versionstampPlaceholder):]...), stampedKey[:len(stampedKey)-2])
	assert.False(t, g.flags.canUseSelectors)
}

func TestGenerator_LogsPhases(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	rnd, err := randgen.New(1, 64)
	require.NoError(t, err)
	cfg := testConfig(5, 1)
	cfg.MaxKeys = 100
	g, err := NewGenerator(cfg, testLayout, rnd, log)
	require.NoError(t, err)

	log.EXPECT().Debugf("Thread %d: preloading %d keys", 3, 100)
	log.EXPECT().Debugf(gomock.Any(), gomock.Any()).Times(3)
	g.Generate(3)
}

// packedTuple stands in for the result of TUPLE_PACK on the simulated stack.
type packedTuple struct{ size int }

type resultItem struct{}

// stackEffects lists how many items an opcode pops and pushes.
var stackEffects = map[string][2]int{
	"WAIT_FUTURE":             {1, 1},
	"NEW_TRANSACTION":         {0, 0},
	"RESET":                   {0, 0},
	"CANCEL":                  {0, 0},
	"DISABLE_WRITE_CONFLICT":  {0, 0},
	"SET_READ_VERSION":        {0, 0},
	"COMMIT":                  {0, 1},
	"GET_READ_VERSION":        {0, 1},
	"GET_COMMITTED_VERSION":   {0, 1},
	"GET":                     {1, 1},
	"GET_KEY":                 {4, 1},
	"GET_RANGE":               {5, 1},
	"GET_RANGE_STARTS_WITH":   {4, 1},
	"GET_RANGE_SELECTOR":      {10, 1},
	"SET":                     {2, 0},
	"CLEAR":                   {1, 0},
	"CLEAR_RANGE":             {2, 0},
	"CLEAR_RANGE_STARTS_WITH": {1, 0},
	"ATOMIC_OP":               {3, 0},
	"READ_CONFLICT_RANGE":     {2, 1},
	"WRITE_CONFLICT_RANGE":    {2, 1},
	"READ_CONFLICT_KEY":       {1, 1},
	"WRITE_CONFLICT_KEY":      {1, 1},
	"SUB":                     {2, 1},
	"ON_ERROR":                {1, 1},
}

// stackMachine replays the stack effects of instructions.
type stackMachine struct {
	t     *testing.T
	items []tuple.Element
}

func (m *stackMachine) pop() tuple.Element {
	m.t.Helper()
	require.NotEmpty(m.t, m.items, "stack underflow")
	top := m.items[len(m.items)-1]
	m.items = m.items[:len(m.items)-1]
	return top
}

func (m *stackMachine) popN(n int) {
	m.t.Helper()
	for i := 0; i < n; i++ {
		m.pop()
	}
}

func (m *stackMachine) pushN(n int) {
	for i := 0; i < n; i++ {
		m.items = append(m.items, resultItem{})
	}
}

func (m *stackMachine) run(instructions []program.Instruction) {
	m.t.Helper()
	for _, in := range instructions {
		switch {
		case in.IsPush():
			m.items = append(m.items, in.Arg)
		case in.Op == program.OpSwap:
			depth, ok := m.pop().(int)
			require.True(m.t, ok, "swap index must be an int")
			require.Less(m.t, depth, len(m.items))
			top := len(m.items) - 1
			m.items[top], m.items[top-depth] = m.items[top-depth], m.items[top]
		case in.Op == "TUPLE_PACK" || in.Op == "TUPLE_RANGE":
			count, ok := m.pop().(int)
			require.True(m.t, ok, "tuple size must be an int")
			m.popN(count)
			if in.Op == "TUPLE_PACK" {
				m.items = append(m.items, packedTuple{count})
			} else {
				m.pushN(2)
			}
		case in.Op == "TUPLE_UNPACK":
			packed, ok := m.pop().(packedTuple)
			require.True(m.t, ok, "unpacking requires a packed tuple")
			m.pushN(packed.size)
		case in.Op == logStack:
			m.pop()
			m.items = m.items[:0]
		default:
			name, database := strings.CutSuffix(in.Op, "_DATABASE")
			name = strings.TrimSuffix(name, "_SNAPSHOT")
			effect, found := stackEffects[name]
			require.True(m.t, found, "unknown opcode %s", in.Op)
			m.popN(effect[0])
			m.pushN(effect[1])
			if database && effect[1] == 0 {
				// database mutations leave a future
				m.pushN(1)
			}
		}
	}
}

func TestGenerator_StackModelTracksInterpreter(t *testing.T) {
	for _, concurrency := range []int{1, 2} {
		for seed := uint64(0); seed < 3; seed++ {
			g := newTestGenerator(t, testConfig(0, concurrency), seed)
			g.cfg.MaxKeys = 250
			m := &stackMachine{t: t}

			g.start()
			g.setup()
			m.run(g.prog.Instructions())
			offset := len(m.items) - g.stack.size
			require.GreaterOrEqual(t, offset, 0)

			for i := 0; i < 3000; i++ {
				before := g.prog.Len()
				op := g.choices[g.rnd.Intn(len(g.choices))]
				g.step(op, i)
				m.run(g.prog.Instructions()[before:])
				require.Equal(t, offset, len(m.items)-g.stack.size, "stack model diverged after %s", op)
			}

			before := g.prog.Len()
			g.finalize()
			m.run(g.prog.Instructions()[before:])
			assert.Equal(t, []tuple.Element{resultItem{}}, m.items)
		}
	}
}
