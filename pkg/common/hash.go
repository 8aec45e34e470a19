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

package common

import (
	"hash/crc32"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

//
// KeyHashFunc maps a key to a 64 bit hash, it must return the same value
// for the same key for the whole life of the process
//
type KeyHashFunc func(key string) uint64

const (
	HashXXHash = "xxhash"
	HashCRC32  = "crc32"
)

var crc32q = crc32.MakeTable(0xD5828281)

func XXHashKey(key string) uint64 {
	return xxhash.Sum64String(key)
}

func CRC32KeyHash(key string) uint64 {
	return uint64(crc32.Checksum([]byte(key), crc32q))
}

//
// KeyToSlot calculate the slot of key in [0, n)
//
func KeyToSlot(hash KeyHashFunc, key string, n int) int {
	return int(hash(key) % uint64(n))
}

func ParseKeyHash(name string) (KeyHashFunc, error) {
	switch name {
	case HashXXHash, "":
		return XXHashKey, nil
	case HashCRC32:
		return CRC32KeyHash, nil
	}
	return nil, errors.Errorf("unknown key hash %q, want %s or %s", name, HashXXHash, HashCRC32)
}
