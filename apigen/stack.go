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

// stackModel tracks the operand stack a program builds on its interpreter.
// The top stringDepth items are byte strings and the top keyDepth items are
// keys of the workspace, so keyDepth <= stringDepth <= size always holds.
type stackModel struct {
	size        int
	stringDepth int
	keyDepth    int
}

// addItems accounts for n items of unknown type.
func (s *stackModel) addItems(n int) {
	s.size += n
	s.stringDepth = 0
	s.keyDepth = 0
}

// addStrings accounts for n byte strings that are not keys.
func (s *stackModel) addStrings(n int) {
	s.size += n
	s.stringDepth += n
	s.keyDepth = 0
}

// addKeys accounts for n keys.
func (s *stackModel) addKeys(n int) {
	s.size += n
	s.stringDepth += n
	s.keyDepth += n
}

// remove accounts for n popped items.
func (s *stackModel) remove(n int) {
	s.size -= n
	s.stringDepth = max(0, s.stringDepth-n)
	s.keyDepth = max(0, s.keyDepth-n)
}
