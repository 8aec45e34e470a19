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
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyToSlotStable(t *testing.T) {
	for _, hash := range []KeyHashFunc{XXHashKey, CRC32KeyHash} {
		for i := 0; i < 1000; i++ {
			key := "key-" + strconv.Itoa(i)
			slot := KeyToSlot(hash, key, 10)
			assert.GreaterOrEqual(t, slot, 0)
			assert.Less(t, slot, 10)
			assert.Equal(t, slot, KeyToSlot(hash, key, 10))
		}
	}
}

func TestKeyToSlotDistribution(t *testing.T) {
	const n, total = 8, 80000
	for name, hash := range map[string]KeyHashFunc{HashXXHash: XXHashKey, HashCRC32: CRC32KeyHash} {
		t.Run(name, func(t *testing.T) {
			counts := make([]int, n)
			for i := 0; i < total; i++ {
				counts[KeyToSlot(hash, "user:"+strconv.Itoa(i), n)]++
			}
			// every slot within 25% of the mean
			for slot, c := range counts {
				assert.InDelta(t, total/n, c, float64(total/n)/4, "slot %d", slot)
			}
		})
	}
}

func TestParseKeyHash(t *testing.T) {
	h, err := ParseKeyHash("")
	require.NoError(t, err)
	assert.Equal(t, XXHashKey("foo"), h("foo"))

	h, err = ParseKeyHash(HashCRC32)
	require.NoError(t, err)
	assert.Equal(t, CRC32KeyHash("foo"), h("foo"))

	_, err = ParseKeyHash("md5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown key hash "md5"`)
}
