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

package program

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/0xsoniclabs/apitester/kvstore"
	"github.com/0xsoniclabs/apitester/tuple"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestProgram_InsertAndReadOperations(t *testing.T) {
	store, err := kvstore.Open(kvstore.MemoryImpl, "")
	require.NoError(t, err)
	defer store.Close()

	p := New()
	for i := 0; i < 2*InsertBatchSize+17; i++ {
		p.Push(int64(i))
		p.Append(fmt.Sprintf("OP_%d", i%7))
	}
	subspace := tuple.NewSubspace(tuple.Tuple{[]byte("test"), int64(0)})
	require.NoError(t, p.InsertOperations(context.Background(), store, subspace))

	got, err := ReadOperations(context.Background(), store, subspace)
	require.NoError(t, err)
	assert.Equal(t, p.Instructions(), got)
}

func TestProgram_InsertOperationsUsesOneTransactionPerBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := kvstore.NewMockStore(ctrl)
	tr := kvstore.NewMockTransaction(ctrl)

	p := New()
	for i := 0; i < InsertBatchSize+1; i++ {
		p.Append("GET")
	}
	run := func(_ context.Context, fn func(kvstore.Transaction) error) error {
		return fn(tr)
	}
	store.EXPECT().Transact(gomock.Any(), gomock.Any()).DoAndReturn(run).Times(2)
	tr.EXPECT().Set(gomock.Any(), NewOp("GET").Value()).Return(nil).Times(InsertBatchSize + 1)

	require.NoError(t, p.InsertOperations(context.Background(), store, tuple.FromBytes([]byte("s"))))
}

func TestProgram_InsertOperationsPropagatesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := kvstore.NewMockStore(ctrl)
	mockErr := errors.New("mock error")

	p := New()
	p.Append("GET")
	store.EXPECT().Transact(gomock.Any(), gomock.Any()).Return(mockErr)

	err := p.InsertOperations(context.Background(), store, tuple.FromBytes([]byte("s")))
	assert.ErrorIs(t, err, mockErr)
	assert.ErrorContains(t, err, "cannot insert instructions 0..0")
}

func TestReadOperations_RejectsInvalidValues(t *testing.T) {
	store, err := kvstore.Open(kvstore.MemoryImpl, "")
	require.NoError(t, err)
	defer store.Close()

	subspace := tuple.FromBytes([]byte("s"))
	err = store.Transact(context.Background(), func(tr kvstore.Transaction) error {
		return tr.Set(subspace.Pack(tuple.Tuple{int64(0)}), []byte{0x99})
	})
	require.NoError(t, err)

	_, err = ReadOperations(context.Background(), store, subspace)
	assert.ErrorContains(t, err, "invalid instruction")
}
