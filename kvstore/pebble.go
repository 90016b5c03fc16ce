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
	"io"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// OpenPebble opens a pebble store at path, or on an in-memory file system if path is empty.
func OpenPebble(path string) (Store, error) {
	opts := &pebble.Options{}
	dir := path
	if path == "" {
		opts.FS = vfs.NewMem()
		dir = "apitester"
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open pebble at %q", path)
	}
	return &pebbleDB{db: db}, nil
}

type pebbleDB struct {
	db *pebble.DB
}

// pebbleReadable is implemented by both snapshots and indexed batches.
type pebbleReadable interface {
	Get(key []byte) ([]byte, io.Closer, error)
	NewIter(o *pebble.IterOptions) (*pebble.Iterator, error)
}

func (s *pebbleDB) ReadTransact(ctx context.Context, fn func(ReadTransaction) error) error {
	return retry(ctx, func() error {
		snap := s.db.NewSnapshot()
		defer snap.Close()
		return fn(pebbleReader{snap})
	})
}

func (s *pebbleDB) Transact(ctx context.Context, fn func(Transaction) error) error {
	return retry(ctx, func() error {
		batch := s.db.NewIndexedBatch()
		defer batch.Close()
		if err := fn(pebbleWriter{pebbleReader{batch}, batch}); err != nil {
			return err
		}
		return batch.Commit(pebble.Sync)
	})
}

func (s *pebbleDB) Close() error {
	return s.db.Close()
}

type pebbleReader struct {
	r pebbleReadable
}

func (p pebbleReader) Get(key []byte) ([]byte, error) {
	v, closer, err := p.r.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return append([]byte(nil), v...), nil
}

func (p pebbleReader) GetRange(begin, end []byte, limit int) (out []KeyValue, err error) {
	iter, err := p.r.NewIter(&pebble.IterOptions{LowerBound: begin, UpperBound: end})
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.CombineErrors(err, iter.Close())
	}()
	for iter.First(); iter.Valid(); iter.Next() {
		out = append(out, KeyValue{
			Key:   append([]byte(nil), iter.Key()...),
			Value: append([]byte(nil), iter.Value()...),
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, iter.Error()
}

type pebbleWriter struct {
	pebbleReader
	batch *pebble.Batch
}

func (p pebbleWriter) Set(key, value []byte) error {
	return p.batch.Set(key, value, nil)
}

func (p pebbleWriter) Clear(key []byte) error {
	return p.batch.Delete(key, nil)
}

func (p pebbleWriter) ClearRange(begin, end []byte) error {
	return p.batch.DeleteRange(begin, end, nil)
}
