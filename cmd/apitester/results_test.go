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

package main

import (
	"fmt"
	"testing"

	"github.com/0xsoniclabs/apitester/apigen"
	"github.com/stretchr/testify/assert"
)

func TestResults_TableListsComparedRanges(t *testing.T) {
	layout := apigen.NewLayout([]byte("run"))
	text := resultsTable(apigen.ResultSpecifications(layout))

	assert.Contains(t, text, "workspace")
	assert.Contains(t, text, "stack")
	assert.Contains(t, text, fmt.Sprintf("%x", layout.Workspace.Bytes()))
	assert.Contains(t, text, "transaction_too_old")
	assert.Contains(t, text, "commit_unknown_result")
}
