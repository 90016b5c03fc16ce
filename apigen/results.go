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
	"github.com/0xsoniclabs/apitester/kvstore"
	"github.com/0xsoniclabs/apitester/tuple"
)

// ResultSpecification tells a differential comparison which part of the
// final database state must agree between interpreters.
type ResultSpecification struct {
	Name     string
	Subspace tuple.Subspace
	// KeyStartIndex is the first tuple element of a key that is compared.
	KeyStartIndex int
	// OrderingIndex, if set, is the key element results are ordered by.
	OrderingIndex *int
	// GlobalErrorFilter lists store errors that are ignored when comparing.
	GlobalErrorFilter []kvstore.ErrorCode
}

// transientErrors are errors whose occurrence depends on timing rather than on the interpreter.
var transientErrors = []kvstore.ErrorCode{kvstore.TransactionTooOld, kvstore.CommitUnknownResult}

// ResultSpecifications returns the regions compared after a run: the
// workspace, and the logged stack without its leading depth marker.
func ResultSpecifications(l Layout) []ResultSpecification {
	ordering := 1
	return []ResultSpecification{
		{
			Name:              "workspace",
			Subspace:          l.Workspace,
			GlobalErrorFilter: transientErrors,
		},
		{
			Name:              "stack",
			Subspace:          l.Stack,
			KeyStartIndex:     1,
			OrderingIndex:     &ordering,
			GlobalErrorFilter: transientErrors,
		},
	}
}
