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
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	stores := map[string]Store{}
	for name, open := range map[string]func() (Store, error){
		"leveldb-memory": func() (Store, error) { return Open(MemoryImpl, "") },
		"leveldb-disk":   func() (Store, error) { return Open(LevelDBImpl, filepath.Join(t.TempDir(), "ldb")) },
		"pebble-memory":  func() (Store, error) { return Open(PebbleImpl, "") },
		"pebble-disk":    func() (Store, error) { return Open(PebbleImpl, filepath.Join(t.TempDir(), "pdb")) },
	} {
		s, err := open()
		require.NoError(t, err, name)
		t.Cleanup(func() { _ = s.Close() })
		stores[name] = s
	}
	return stores
}

func write(t *testing.T, s Store, kvs ...string) {
	t.Helper()
	err := s.Transact(context.Background(), func(tr Transaction) error {
		for i := 0; i+1 < len(kvs); i += 2 {
			if err := tr.Set([]byte(kvs[i]), []byte(kvs[i+1])); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestStore_SetGetAndRange(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			write(t, s, "a", "1", "b", "2", "c", "3", "d", "4")
			err := s.ReadTransact(context.Background(), func(tr ReadTransaction) error {
				v, err := tr.Get([]byte("b"))
				require.NoError(t, err)
				assert.Equal(t, []byte("2"), v)

				missing, err := tr.Get([]byte("zz"))
				require.NoError(t, err)
				assert.Nil(t, missing)

				all, err := tr.GetRange([]byte("a"), []byte("d"), 0)
				require.NoError(t, err)
				assert.Equal(t, []KeyValue{
					{[]byte("a"), []byte("1")}, {[]byte("b"), []byte("2")}, {[]byte("c"), []byte("3")},
				}, all)

				limited, err := tr.GetRange([]byte("b"), []byte("z"), 2)
				require.NoError(t, err)
				require.Len(t, limited, 2)
				assert.Equal(t, []byte("c"), limited[1].Key)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestStore_ClearAndClearRange(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			write(t, s, "a", "1", "b", "2", "c", "3", "d", "4")
			err := s.Transact(context.Background(), func(tr Transaction) error {
				if err := tr.Clear([]byte("a")); err != nil {
					return err
				}
				return tr.ClearRange([]byte("b"), []byte("d"))
			})
			require.NoError(t, err)

			err = s.ReadTransact(context.Background(), func(tr ReadTransaction) error {
				rest, err := tr.GetRange([]byte{0x00}, []byte{0xff}, 0)
				require.NoError(t, err)
				assert.Equal(t, []KeyValue{{[]byte("d"), []byte("4")}}, rest)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestStore_TransactionReadsOwnWrites(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Transact(context.Background(), func(tr Transaction) error {
				require.NoError(t, tr.Set([]byte("k"), []byte("v")))
				v, err := tr.Get([]byte("k"))
				require.NoError(t, err)
				assert.Equal(t, []byte("v"), v)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestStore_FailedTransactionIsDiscarded(t *testing.T) {
	mockErr := errors.New("mock error")
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Transact(context.Background(), func(tr Transaction) error {
				require.NoError(t, tr.Set([]byte("k"), []byte("v")))
				return mockErr
			})
			require.ErrorIs(t, err, mockErr)

			err = s.ReadTransact(context.Background(), func(tr ReadTransaction) error {
				v, err := tr.Get([]byte("k"))
				assert.Nil(t, v)
				return err
			})
			require.NoError(t, err)
		})
	}
}

func TestStore_RetriesRetryableErrors(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			calls := 0
			err := s.ReadTransact(context.Background(), func(ReadTransaction) error {
				calls++
				if calls < 3 {
					return TransactionTooOld
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, 3, calls)
		})
	}
}

func TestRetry_Outcomes(t *testing.T) {
	mockErr := errors.New("mock error")
	tests := []struct {
		name      string
		err       error
		wantCalls int
		wantErr   error
	}{
		{"NonRetryable", mockErr, 1, mockErr},
		{"Exhausted", CommitUnknownResult, MaxRetries + 1, CommitUnknownResult},
		{"UnknownCode", ErrorCode(2000), 1, ErrorCode(2000)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			calls := 0
			err := retry(context.Background(), func() error {
				calls++
				return test.err
			})
			assert.ErrorIs(t, err, test.wantErr)
			assert.Equal(t, test.wantCalls, calls)
		})
	}
}

func TestRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retry(ctx, func() error {
		t.Fatal("must not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestErrorCode_Classification(t *testing.T) {
	assert.Equal(t, "transaction_too_old (1007)", TransactionTooOld.Error())
	assert.Equal(t, "store error 42", ErrorCode(42).Error())
	assert.True(t, IsRetryable(TransactionTimedOut))
	assert.True(t, IsRetryable(fmt.Errorf("commit: %w", NotCommitted)))
	assert.False(t, IsRetryable(ErrorCode(42)))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestOpen_UnknownImplementation(t *testing.T) {
	_, err := Open("rocksdb", "")
	assert.ErrorContains(t, err, "unknown store implementation")
}
