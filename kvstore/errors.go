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

package kvstore

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorCode is a numeric store error.
type ErrorCode int

const (
	TransactionTooOld   ErrorCode = 1007
	NotCommitted        ErrorCode = 1020
	CommitUnknownResult ErrorCode = 1021
	TransactionTimedOut ErrorCode = 1031
)

var errorNames = map[ErrorCode]string{
	TransactionTooOld:   "transaction_too_old",
	NotCommitted:        "not_committed",
	CommitUnknownResult: "commit_unknown_result",
	TransactionTimedOut: "transaction_timed_out",
}

func (c ErrorCode) Error() string {
	if name, ok := errorNames[c]; ok {
		return fmt.Sprintf("%s (%d)", name, int(c))
	}
	return fmt.Sprintf("store error %d", int(c))
}

// Retryable reports whether a transaction failing with this code may simply be run again.
func (c ErrorCode) Retryable() bool {
	_, ok := errorNames[c]
	return ok
}

// IsRetryable reports whether err wraps a retryable ErrorCode.
func IsRetryable(err error) bool {
	var code ErrorCode
	return errors.As(err, &code) && code.Retryable()
}
