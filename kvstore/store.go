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

// Package kvstore provides the ordered transactional key-value stores that
// generated programs are inserted into and validated against.
package kvstore

import (
	"context"
	"fmt"
)

//go:generate mockgen -source store.go -destination store_mock.go -package kvstore

// KeyValue is a single entry returned by a range read.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// ReadTransaction is a consistent read-only view of the store.
type ReadTransaction interface {
	// Get returns the value of key, or nil if the key is absent.
	Get(key []byte) ([]byte, error)
	// GetRange returns the entries in [begin, end) in key order. A limit of
	// zero or less means no limit.
	GetRange(begin, end []byte, limit int) ([]KeyValue, error)
}

// Transaction is a read-write view; its writes become visible atomically on commit.
type Transaction interface {
	ReadTransaction
	Set(key, value []byte) error
	Clear(key []byte) error
	ClearRange(begin, end []byte) error
}

// Store runs transactional functions, retrying them on retryable errors.
type Store interface {
	ReadTransact(ctx context.Context, fn func(ReadTransaction) error) error
	Transact(ctx context.Context, fn func(Transaction) error) error
	Close() error
}

// Supported store implementations.
const (
	LevelDBImpl = "leveldb"
	PebbleImpl  = "pebble"
	MemoryImpl  = "memory"
)

// Open opens a store of the given implementation at path. The memory
// implementation ignores path; an empty path opens the store in memory.
func Open(impl string, path string) (Store, error) {
	switch impl {
	case LevelDBImpl:
		return OpenLevelDB(path)
	case PebbleImpl:
		return OpenPebble(path)
	case MemoryImpl:
		return OpenLevelDB("")
	}
	return nil, fmt.Errorf("unknown store implementation %q; use %s, %s or %s", impl, LevelDBImpl, PebbleImpl, MemoryImpl)
}
