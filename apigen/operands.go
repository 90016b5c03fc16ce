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

// ensureString makes sure the top n items are strings, pushing random ones
// as needed, and consumes them.
func (g *Generator) ensureString(n int) {
	for g.stack.stringDepth < n {
		g.prog.Push(g.randomValue())
		g.stack.addStrings(1)
	}
	g.remove(n)
}

// chooseKey returns a workspace key. With probability keys/maxKeys it reuses
// a registered tuple, sometimes truncated to a prefix; otherwise it
// registers a fresh tuple.
func (g *Generator) chooseKey() []byte {
	t := g.cfg.Tunables
	if g.rnd.Float64() < float64(g.keys.size())/float64(g.maxKeys) {
		tup := g.keys.choose(g.rnd)
		if g.rnd.Float64() < t.PrefixReuseProb {
			return g.layout.Workspace.Pack(tup[:g.rnd.IntRange(0, len(tup))])
		}
		return g.layout.Workspace.Pack(tup)
	}
	tup := g.rnd.RandomTuple(t.MaxKeyTupleLen)
	g.keys.add(tup)
	return g.layout.Workspace.Pack(tup)
}

// ensureKey makes sure the top n items are keys, pushing chosen keys as
// needed, and consumes them.
func (g *Generator) ensureKey(n int) {
	for g.stack.keyDepth < n {
		g.prog.Push(g.chooseKey())
		g.stack.addKeys(1)
	}
	g.remove(n)
}

// ensureKeyValue provides a key on top of a string value and consumes both,
// reusing strings that are already on the stack.
func (g *Generator) ensureKeyValue() {
	switch {
	case g.stack.stringDepth == 0:
		g.ensureString(1)
		g.prog.Push(g.chooseKey())
	case g.stack.stringDepth >= 2 && g.stack.keyDepth >= 1:
		g.remove(2)
	default:
		g.prog.Push(g.chooseKey())
		g.stack.addKeys(1)
		g.remove(2)
	}
}

func (g *Generator) randomValue() []byte {
	return g.rnd.RandomString(g.rnd.IntRange(0, g.cfg.Tunables.MaxStringLen))
}
