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
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// OpenLevelDB opens a leveldb store at path, or in memory if path is empty.
func OpenLevelDB(path string) (Store, error) {
	var (
		db  *leveldb.DB
		err error
	)
	if path == "" {
		db, err = leveldb.Open(storage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, &opt.Options{})
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open leveldb at %q", path)
	}
	return &levelDB{db: db}, nil
}

type levelDB struct {
	db *leveldb.DB
}

// levelReadable is implemented by both snapshots and transactions.
type levelReadable interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

func (s *levelDB) ReadTransact(ctx context.Context, fn func(ReadTransaction) error) error {
	return retry(ctx, func() error {
		snap, err := s.db.GetSnapshot()
		if err != nil {
			return errors.Wrap(err, "cannot acquire snapshot")
		}
		defer snap.Release()
		return fn(levelReader{snap})
	})
}

func (s *levelDB) Transact(ctx context.Context, fn func(Transaction) error) error {
	return retry(ctx, func() error {
		tr, err := s.db.OpenTransaction()
		if err != nil {
			return errors.Wrap(err, "cannot open transaction")
		}
		if err = fn(levelWriter{levelReader{tr}, tr}); err != nil {
			tr.Discard()
			return err
		}
		return tr.Commit()
	})
}

func (s *levelDB) Close() error {
	return s.db.Close()
}

type levelReader struct {
	r levelReadable
}

func (l levelReader) Get(key []byte) ([]byte, error) {
	v, err := l.r.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func (l levelReader) GetRange(begin, end []byte, limit int) ([]KeyValue, error) {
	iter := l.r.NewIterator(&util.Range{Start: begin, Limit: end}, nil)
	defer iter.Release()
	var out []KeyValue
	for iter.Next() {
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

type levelWriter struct {
	levelReader
	tr *leveldb.Transaction
}

func (l levelWriter) Set(key, value []byte) error {
	return l.tr.Put(key, value, nil)
}

func (l levelWriter) Clear(key []byte) error {
	return l.tr.Delete(key, nil)
}

func (l levelWriter) ClearRange(begin, end []byte) error {
	entries, err := l.GetRange(begin, end, 0)
	if err != nil {
		return err
	}
	for _, kv := range entries {
		if err = l.tr.Delete(kv.Key, nil); err != nil {
			return err
		}
	}
	return nil
}
