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
	"bufio"
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/resp"
)

//
// RdsClient is a single connection to an rds server, it is not safe for
// concurrent use
//
type RdsClient struct {
	conn net.Conn
	bw   *bufio.Writer
	wr   *resp.Writer
	rd   *resp.Reader
}

func Dial(addr string, timeout time.Duration) (*RdsClient, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", addr)
	}
	return NewClient(conn), nil
}

func NewClient(conn net.Conn) *RdsClient {
	bw := bufio.NewWriter(conn)
	return &RdsClient{conn: conn, bw: bw, wr: resp.NewWriter(bw), rd: resp.NewReader(conn)}
}

func (c *RdsClient) Set(key string, value []byte) error {
	v, err := c.Do("SET", key, value)
	if err != nil {
		return err
	}
	if v.Type() != resp.SimpleString || v.String() != "OK" {
		return errors.Errorf("unexpected SET reply %q", v.String())
	}
	return nil
}

//
// Get returns ok false when the key holds no value
//
func (c *RdsClient) Get(key string) ([]byte, bool, error) {
	v, err := c.Do("GET", key)
	if err != nil {
		return nil, false, err
	}
	if v.IsNull() {
		return nil, false, nil
	}
	if v.Type() != resp.BulkString {
		return nil, false, errors.Errorf("unexpected GET reply %q", v.String())
	}
	return v.Bytes(), true, nil
}

//
// Do sends one command and reads its reply, an error reply is returned as
// an error
//
func (c *RdsClient) Do(cmd string, args ...interface{}) (resp.Value, error) {
	if err := c.wr.WriteMultiBulk(cmd, args...); err != nil {
		return resp.Value{}, errors.Wrap(err, "write command")
	}
	if err := c.bw.Flush(); err != nil {
		return resp.Value{}, errors.Wrap(err, "flush command")
	}
	v, _, err := c.rd.ReadValue()
	if err != nil {
		return resp.Value{}, errors.Wrap(err, "read reply")
	}
	if v.Type() == resp.Error {
		return v, errors.New(v.String())
	}
	return v, nil
}

func (c *RdsClient) Close() error {
	return c.conn.Close()
}
