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

// future is an unresolved read: the stack size after its result was pushed
// and the index of the instruction that issued it.
type future struct {
	depth int
	index int
}

// futureTracker keeps pending futures in the order they were issued.
type futureTracker struct {
	pending []future
}

func (f *futureTracker) add(depth, index int) {
	f.pending = append(f.pending, future{depth: depth, index: index})
}

// prune drops futures whose stack slot was popped.
func (f *futureTracker) prune(size int) {
	kept := f.pending[:0]
	for _, p := range f.pending {
		if p.depth <= size {
			kept = append(kept, p)
		}
	}
	f.pending = kept
}

func (f *futureTracker) clear() {
	f.pending = f.pending[:0]
}

func (f *futureTracker) last() (future, bool) {
	if len(f.pending) == 0 {
		return future{}, false
	}
	return f.pending[len(f.pending)-1], true
}

func (f *futureTracker) pop() future {
	last := f.pending[len(f.pending)-1]
	f.pending = f.pending[:len(f.pending)-1]
	return last
}

func (f *futureTracker) len() int {
	return len(f.pending)
}
