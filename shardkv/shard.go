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

import "sync"

//
// a shard is one partition of the keyspace
//  it has an id, a map of key to value, and a mutex guarding the map
//
type Shard struct {
	ID  int
	mu  sync.Mutex
	kvs map[string][]byte
}

func NewShard(id int) *Shard {
	return &Shard{ID: id, kvs: make(map[string][]byte)}
}

//
// get a copy of the value stored under key
//
func (sh *Shard) Get(key string) ([]byte, bool) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	v, ok := sh.kvs[key]
	if !ok {
		return nil, false
	}
	return cloneBytes(v), true
}

//
// put key, value to the shard, an existing value is overwritten
//
func (sh *Shard) Set(key string, value []byte) {
	v := cloneBytes(value)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.kvs[key] = v
}

func (sh *Shard) Len() int {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return len(sh.kvs)
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
