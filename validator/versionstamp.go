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

// Package validator checks the database state left behind by generated programs.
package validator

import (
	"bytes"
	"context"
	"fmt"

	"github.com/0xsoniclabs/apitester/apigen"
	"github.com/0xsoniclabs/apitester/kvstore"
	"github.com/0xsoniclabs/apitester/logger"
	"github.com/0xsoniclabs/apitester/tuple"
	"github.com/cockroachdb/errors"
)

// PageSize is the number of versionstamped values checked per read transaction.
const PageSize = 100

// versionstampLen is the length of a committed versionstamp.
const versionstampLen = 10

var placeholder = bytes.Repeat([]byte("X"), versionstampLen)

// Store is the part of a store the validator reads from.
type Store interface {
	ReadTransact(ctx context.Context, fn func(kvstore.ReadTransaction) error) error
}

// VersionstampValidator checks that every versionstamped value has a
// versionstamped key carrying the same stamp and pointing back at its tag.
type VersionstampValidator struct {
	values   tuple.Subspace
	keys     tuple.Subspace
	log      logger.Logger
	pageSize int
}

func NewVersionstampValidator(layout apigen.Layout, log logger.Logger) *VersionstampValidator {
	return &VersionstampValidator{
		values:   layout.VersionstampedValues,
		keys:     layout.VersionstampedKeys,
		log:      log,
		pageSize: PageSize,
	}
}

// Validate scans all versionstamped values and returns one message if any
// of them has no matching key. Store failures are returned as error.
func (v *VersionstampValidator) Validate(ctx context.Context, store Store) ([]string, error) {
	begin, end := v.values.Range()
	failed := 0
	for begin != nil {
		next, mismatches, err := v.checkPage(ctx, store, begin, end)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot check versionstamps from %x", begin)
		}
		for _, m := range mismatches {
			v.log.Warningf("Versionstamp mismatch: %s", m)
		}
		failed += len(mismatches)
		begin = next
	}
	if failed > 0 {
		return []string{fmt.Sprintf("There were %d failed version stamp operations", failed)}, nil
	}
	return nil, nil
}

// checkPage checks up to pageSize values starting at begin. It returns the
// key to continue from, or nil once the subspace is exhausted.
func (v *VersionstampValidator) checkPage(ctx context.Context, store Store, begin, end []byte) ([]byte, []string, error) {
	var (
		next       []byte
		mismatches []string
	)
	err := store.ReadTransact(ctx, func(tx kvstore.ReadTransaction) error {
		next, mismatches = nil, nil
		page, err := tx.GetRange(begin, end, v.pageSize)
		if err != nil {
			return err
		}
		for _, kv := range page {
			next = append(append([]byte(nil), kv.Key...), 0x00)
			tag, err := v.tag(kv.Key)
			if err != nil {
				return err
			}
			key, ok := v.stampedKey(kv.Value)
			if !ok {
				mismatches = append(mismatches, fmt.Sprintf("value of %x is too short", kv.Key))
				continue
			}
			got, err := tx.Get(key)
			if err != nil {
				return err
			}
			switch {
			case got == nil:
				mismatches = append(mismatches, fmt.Sprintf("key %x is missing", key))
			case !bytes.Equal(got, tag):
				mismatches = append(mismatches, fmt.Sprintf("key %x holds %x, want %x", key, got, tag))
			}
		}
		return nil
	})
	return next, mismatches, err
}

func (v *VersionstampValidator) tag(key []byte) ([]byte, error) {
	t, err := v.values.Unpack(key)
	if err != nil {
		return nil, err
	}
	if len(t) == 0 {
		return nil, errors.Newf("versionstamped value key %x has no tag", key)
	}
	tag, ok := t[len(t)-1].([]byte)
	if !ok {
		return nil, errors.Newf("versionstamped value key %x has tag of type %T", key, t[len(t)-1])
	}
	return tag, nil
}

// stampedKey reconstructs the key that the matching versionstamped key
// operation must have written: the stamp at the front of the value replaces
// the first placeholder in the rest of it.
func (v *VersionstampValidator) stampedKey(value []byte) ([]byte, bool) {
	if len(value) < versionstampLen {
		return nil, false
	}
	stamp, body := value[:versionstampLen], value[versionstampLen:]
	return append(v.keys.Bytes(), bytes.Replace(body, placeholder, stamp, 1)...), true
}
