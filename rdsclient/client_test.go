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

package rdsclient

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/resp"
)

// fakeServer answers each request read from conn with the next reply
func fakeServer(t *testing.T, conn net.Conn, replies ...string) <-chan []resp.Value {
	got := make(chan []resp.Value, len(replies))
	go func() {
		defer close(got)
		rd := resp.NewReader(conn)
		for _, r := range replies {
			v, _, err := rd.ReadValue()
			if err != nil {
				return
			}
			got <- v.Array()
			if _, err := conn.Write([]byte(r)); err != nil {
				return
			}
		}
	}()
	return got
}

func TestClientSet(t *testing.T) {
	c1, c2 := net.Pipe()
	defer c2.Close()
	got := fakeServer(t, c2, "+OK\r\n")
	cli := NewClient(c1)
	defer cli.Close()

	require.NoError(t, cli.Set("foo", []byte("bar")))
	args := <-got
	require.Len(t, args, 3)
	assert.Equal(t, "SET", args[0].String())
	assert.Equal(t, "foo", args[1].String())
	assert.Equal(t, []byte("bar"), args[2].Bytes())
}

func TestClientGet(t *testing.T) {
	c1, c2 := net.Pipe()
	defer c2.Close()
	fakeServer(t, c2, "$3\r\nbar\r\n", "$-1\r\n")
	cli := NewClient(c1)
	defer cli.Close()

	v, ok, err := cli.Get("foo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("bar"), v)

	v, ok, err = cli.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestClientErrorReply(t *testing.T) {
	c1, c2 := net.Pipe()
	defer c2.Close()
	fakeServer(t, c2, "-ERR unknown command 'PING'\r\n")
	cli := NewClient(c1)
	defer cli.Close()

	_, err := cli.Do("PING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestClientUnexpectedSetReply(t *testing.T) {
	c1, c2 := net.Pipe()
	defer c2.Close()
	fakeServer(t, c2, ":1\r\n")
	cli := NewClient(c1)
	defer cli.Close()

	assert.Error(t, cli.Set("k", []byte("v")))
}
