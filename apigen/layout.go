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

// Package apigen generates random, well-typed instruction programs that
// exercise the client API of a transactional key-value store.
package apigen

import "github.com/0xsoniclabs/apitester/tuple"

// Layout partitions the key space of one test run.
type Layout struct {
	Root tuple.Subspace
	// Workspace holds keys and values that must match between runs of the same seed.
	Workspace tuple.Subspace
	// Scratch holds data that may differ between runs.
	Scratch tuple.Subspace
	// Stack receives the logged operand stack at the end of a program.
	Stack                tuple.Subspace
	VersionstampedValues tuple.Subspace
	VersionstampedKeys   tuple.Subspace
}

// NewLayout derives the layout of a run from its key prefix.
func NewLayout(prefix []byte) Layout {
	root := tuple.NewSubspace(tuple.Tuple{prefix})
	scratch := root.Sub("scratch")
	return Layout{
		Root:                 root,
		Workspace:            root.Sub("workspace"),
		Scratch:              scratch,
		Stack:                root.Sub("stack"),
		VersionstampedValues: scratch.Sub("versionstamped_values"),
		VersionstampedKeys:   scratch.Sub("versionstamped_keys"),
	}
}

// Instructions is the subspace the program of the given thread is inserted under.
func (l Layout) Instructions(thread int) tuple.Subspace {
	return l.Root.Sub("instructions", int64(thread))
}
