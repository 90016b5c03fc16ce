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

	"github.com/0xsoniclabs/apitester/kvstore"
	"github.com/0xsoniclabs/apitester/tuple"
	"github.com/cockroachdb/errors"
)

// InsertBatchSize is the number of instructions written per transaction.
const InsertBatchSize = 1000

// InsertOperations writes every instruction under subspace.Pack((index,)),
// one transaction per batch of InsertBatchSize instructions.
func (p *Program) InsertOperations(ctx context.Context, store kvstore.Store, subspace tuple.Subspace) error {
	for start := 0; start < len(p.instructions); start += InsertBatchSize {
		end := min(start+InsertBatchSize, len(p.instructions))
		err := store.Transact(ctx, func(tr kvstore.Transaction) error {
			for i := start; i < end; i++ {
				if err := tr.Set(subspace.Pack(tuple.Tuple{int64(i)}), p.instructions[i].Value()); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "cannot insert instructions %d..%d", start, end-1)
		}
	}
	return nil
}

// ReadOperations reads back the instructions inserted under subspace in index order.
func ReadOperations(ctx context.Context, store kvstore.Store, subspace tuple.Subspace) ([]Instruction, error) {
	var out []Instruction
	begin, end := subspace.Range()
	for {
		var page []kvstore.KeyValue
		err := store.ReadTransact(ctx, func(tr kvstore.ReadTransaction) error {
			var err error
			page, err = tr.GetRange(begin, end, InsertBatchSize)
			return err
		})
		if err != nil {
			return nil, errors.Wrap(err, "cannot read instructions")
		}
		for _, kv := range page {
			in, err := ParseInstruction(kv.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid instruction at key %x", kv.Key)
			}
			out = append(out, in)
		}
		if len(page) < InsertBatchSize {
			return out, nil
		}
		begin = append(page[len(page)-1].Key, 0x00)
	}
}
