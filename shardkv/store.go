//
// MIT License

// Copyright (c) 2026 eraft dev group

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package shardkv

import (
	"github.com/eraft-io/rdskv/pkg/common"
)

//
// ShardedStore is a fixed set of shards shared by every connection.
// The shard slice is never resized after MakeShardedStore returns, so a key
// always routes to the same shard while the process lives.
//
type ShardedStore struct {
	shards []*Shard
	hash   common.KeyHashFunc
}

//
// make a store with n empty shards, n < 1 is treated as 1 and a nil hash
// selects xxhash
//
func MakeShardedStore(n int, hash common.KeyHashFunc) *ShardedStore {
	if n < 1 {
		n = 1
	}
	if hash == nil {
		hash = common.XXHashKey
	}
	shards := make([]*Shard, n)
	for i := range shards {
		shards[i] = NewShard(i)
	}
	return &ShardedStore{shards: shards, hash: hash}
}

// Route returns the index of the shard owning key.
func (s *ShardedStore) Route(key string) int {
	return common.KeyToSlot(s.hash, key, len(s.shards))
}

func (s *ShardedStore) Get(key string) ([]byte, bool) {
	return s.shards[s.Route(key)].Get(key)
}

func (s *ShardedStore) Set(key string, value []byte) {
	s.shards[s.Route(key)].Set(key, value)
}

func (s *ShardedStore) ShardCount() int {
	return len(s.shards)
}

//
// number of keys in shard i, i must be in [0, ShardCount())
//
func (s *ShardedStore) ShardLen(i int) int {
	return s.shards[i].Len()
}

//
// total number of keys, shards are visited one at a time so the result is
// not a snapshot when writers are running
//
func (s *ShardedStore) Len() int {
	total := 0
	for _, sh := range s.shards {
		total += sh.Len()
	}
	return total
}
