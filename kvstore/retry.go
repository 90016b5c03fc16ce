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
	"context"

	"github.com/cockroachdb/errors"
)

// MaxRetries bounds how often a transactional function is re-run.
const MaxRetries = 10

// retry runs fn until it succeeds, fails with a non-retryable error or the
// retry budget is exhausted.
func retry(ctx context.Context, fn func() error) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt > MaxRetries {
			return errors.Wrapf(err, "giving up after %d attempts", attempt)
		}
	}
}
