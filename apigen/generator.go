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
	"github.com/0xsoniclabs/apitester/logger"
	"github.com/0xsoniclabs/apitester/program"
	"github.com/0xsoniclabs/apitester/randgen"
	"github.com/cockroachdb/errors"
)

// Tunables are the empirically chosen knobs of the generator.
type Tunables struct {
	// PrefixReuseProb is the chance that a reused key is truncated to a prefix.
	PrefixReuseProb float64
	// NonBlockingCommitProb is the chance that a commit in concurrent mode does not wait.
	NonBlockingCommitProb float64
	// RecencyRate biases key reuse towards recently generated keys; zero is uniform.
	RecencyRate float64
	// CommitEvery is the number of preloaded writes per commit.
	CommitEvery int
	// MaxKeyTupleLen is the maximum length of a generated key tuple.
	MaxKeyTupleLen int
	// MaxEncodeTupleLen is the maximum length of a tuple handed to the tuple opcodes.
	MaxEncodeTupleLen int
	// MaxStringLen is the maximum length of a random value.
	MaxStringLen int
	// MaxErrorCode is the largest error code handed to ON_ERROR.
	MaxErrorCode int
	// MinKeys, MaxKeysSequential and MaxKeysConcurrent bound the drawn number of preloaded keys.
	MinKeys           int
	MaxKeysSequential int
	MaxKeysConcurrent int
	// LimitStringBound is the largest range read limit whose result is treated as a string.
	LimitStringBound int
}

// DefaultTunables returns the standard tuning.
func DefaultTunables() Tunables {
	return Tunables{
		PrefixReuseProb:       0.3,
		NonBlockingCommitProb: 0.1,
		RecencyRate:           0,
		CommitEvery:           100,
		MaxKeyTupleLen:        5,
		MaxEncodeTupleLen:     10,
		MaxStringLen:          100,
		MaxErrorCode:          5000,
		MinKeys:               100,
		MaxKeysSequential:     10000,
		MaxKeysConcurrent:     1000,
		LimitStringBound:      1000,
	}
}

// Config configures a generator.
type Config struct {
	// NumOps is the number of main loop iterations.
	NumOps int
	// Concurrency is the number of clients running programs at once; 1 is sequential mode.
	Concurrency int
	// MaxKeys is the number of preloaded keys and the cap of the key reuse
	// probability. Zero or less draws it from the tunables.
	MaxKeys  int
	Tunables Tunables
}

func (c Config) validate() error {
	t := c.Tunables
	switch {
	case c.NumOps < 0:
		return errors.Newf("number of operations must not be negative, got %d", c.NumOps)
	case c.Concurrency < 1:
		return errors.Newf("concurrency must be at least 1, got %d", c.Concurrency)
	case t.PrefixReuseProb < 0 || t.PrefixReuseProb > 1:
		return errors.Newf("prefix reuse probability must be within [0, 1], got %v", t.PrefixReuseProb)
	case t.NonBlockingCommitProb < 0 || t.NonBlockingCommitProb > 1:
		return errors.Newf("non-blocking commit probability must be within [0, 1], got %v", t.NonBlockingCommitProb)
	case t.RecencyRate < 0:
		return errors.Newf("recency rate must not be negative, got %v", t.RecencyRate)
	case t.CommitEvery < 1:
		return errors.Newf("commit interval must be at least 1, got %d", t.CommitEvery)
	case t.MaxKeyTupleLen < 1 || t.MaxEncodeTupleLen < 1:
		return errors.New("tuple lengths must be at least 1")
	case t.MaxStringLen < 0 || t.MaxErrorCode < 0:
		return errors.New("string length and error code bounds must not be negative")
	case t.MinKeys < 1 || t.MinKeys > t.MaxKeysSequential || t.MinKeys > t.MaxKeysConcurrent:
		return errors.Newf("key bounds [%d, %d|%d] are empty", t.MinKeys, t.MaxKeysSequential, t.MaxKeysConcurrent)
	}
	return nil
}

// txFlags track what the current transaction still permits.
type txFlags struct {
	hasVersion      bool
	canSetVersion   bool
	isCommitted     bool
	canUseSelectors bool
}

// Generator builds the program of one client thread. It owns all of its
// state and must not be shared between goroutines.
type Generator struct {
	cfg     Config
	layout  Layout
	rnd     randgen.RandomGenerator
	log     logger.Logger
	choices []Op

	prog    *program.Program
	stack   stackModel
	futures futureTracker
	keys    keyRegistry
	flags   txFlags
	maxKeys int
}

// NewGenerator creates a generator; it rejects configurations that cannot produce a program.
func NewGenerator(cfg Config, layout Layout, rnd randgen.RandomGenerator, log logger.Logger) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid generator configuration")
	}
	if rnd == nil || log == nil {
		return nil, errors.New("generator needs a random source and a logger")
	}
	return &Generator{
		cfg:     cfg,
		layout:  layout,
		rnd:     rnd,
		log:     log,
		choices: Choices(),
	}, nil
}

// Generate produces a complete program for the given client thread.
func (g *Generator) Generate(thread int) *program.Program {
	g.start()
	g.log.Debugf("Thread %d: preloading %d keys", thread, g.maxKeys)
	g.setup()
	g.log.Debugf("Thread %d: setup complete after %d instructions", thread, g.prog.Len())
	for i := 0; i < g.cfg.NumOps; i++ {
		g.step(g.choices[g.rnd.Intn(len(g.choices))], i)
	}
	g.log.Debugf("Thread %d: main phase complete after %d instructions", thread, g.prog.Len())
	g.finalize()
	g.log.Debugf("Thread %d: generated %d instructions", thread, g.prog.Len())
	return g.prog
}

// MaxKeys is the number of keys preloaded by the last generated program.
func (g *Generator) MaxKeys() int {
	return g.maxKeys
}

func (g *Generator) start() {
	g.prog = program.New()
	g.stack = stackModel{}
	g.futures = futureTracker{}
	g.keys = keyRegistry{rate: g.cfg.Tunables.RecencyRate}
	g.flags = txFlags{canSetVersion: true, isCommitted: true, canUseSelectors: true}

	t := g.cfg.Tunables
	switch {
	case g.cfg.MaxKeys > 0:
		g.maxKeys = g.cfg.MaxKeys
	case g.concurrent():
		g.maxKeys = g.rnd.IntRange(t.MinKeys, t.MaxKeysConcurrent)
	default:
		g.maxKeys = g.rnd.IntRange(t.MinKeys, t.MaxKeysSequential)
	}
}

func (g *Generator) setup() {
	g.prog.Append(NewTransaction.String())
	g.prog.Append(GetReadVersion.String())
	for i := 0; i < g.maxKeys; i++ {
		g.ensureKeyValue()
		g.prog.Append(Set.String())
		if i%g.cfg.Tunables.CommitEvery == g.cfg.Tunables.CommitEvery-1 {
			g.prog.BlockingCommit()
		}
	}
	g.prog.BlockingCommit()
	g.stack.addItems(1)
	g.prog.SetupComplete()
}

// step emits one main loop operation together with the sequencing it requires.
func (g *Generator) step(op Op, iteration int) {
	spec := opSpecs[op.Kind]
	database := op.Scope == Database

	if g.sequential() && database && spec.family == familyMutation {
		g.waitForReads()
		g.prog.BlockingCommit()
		g.stack.addItems(1)
	}
	if spec.family == familyBoundary {
		if g.sequential() {
			g.waitForReads()
		}
		g.futures.clear()
	}

	emitted := spec.emit(g, op, iteration)

	if emitted && spec.family == familyRead && !database {
		g.futures.add(g.stack.size, g.prog.Last())
	}
	if g.sequential() && database && (spec.family == familyRead || spec.family == familyMutation) {
		g.prog.Append(program.OpWaitFuture)
	}
}

func (g *Generator) finalize() {
	g.prog.BeginFinalization()
	if g.sequential() {
		g.waitForReads()
		g.prog.BlockingCommit()
		g.stack.addItems(1)
	}
	g.prog.Append(NewTransaction.String())
	g.prog.Push(g.layout.Stack.Bytes())
	g.prog.Append(logStack)
	g.prog.BlockingCommit()
}

// waitForReads resolves, newest first, every pending future whose result is
// still on the stack by moving it to the top and waiting on it.
func (g *Generator) waitForReads() {
	for {
		f, ok := g.futures.last()
		if !ok || f.depth > g.stack.size {
			return
		}
		g.futures.pop()
		g.prog.ToFront(g.stack.size - f.depth)
		g.prog.Append(program.OpWaitFuture)
	}
}

// remove pops n items off the model and forgets futures that were popped with them.
func (g *Generator) remove(n int) {
	g.stack.remove(n)
	g.futures.prune(g.stack.size)
}

func (g *Generator) sequential() bool {
	return g.cfg.Concurrency == 1
}

func (g *Generator) concurrent() bool {
	return g.cfg.Concurrency > 1
}
