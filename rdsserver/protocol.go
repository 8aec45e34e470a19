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

package rdsserver

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/resp"
)

var (
	// ErrProtocol marks a request that is not valid RESP or has the wrong
	// arity for its command.
	ErrProtocol = errors.New("protocol error")
	// ErrUnsupportedCommand marks a well formed command the server does not
	// implement.
	ErrUnsupportedCommand = errors.New("unsupported command")
)

type Command interface {
	Name() string
}

type SetCommand struct {
	Key   string
	Value []byte
}

type GetCommand struct {
	Key string
}

type UnknownCommand struct {
	Cmd  string
	Args [][]byte
}

func (*SetCommand) Name() string       { return "SET" }
func (*GetCommand) Name() string       { return "GET" }
func (c *UnknownCommand) Name() string { return c.Cmd }

func (c *SetCommand) String() string { return fmt.Sprintf("SET %s <%d bytes>", c.Key, len(c.Value)) }
func (c *GetCommand) String() string { return "GET " + c.Key }
func (c *UnknownCommand) String() string {
	return fmt.Sprintf("%s <%d args>", c.Cmd, len(c.Args))
}

type Response interface {
	isResponse()
}

type AckResponse struct{}

type ValueResponse struct {
	Value []byte
}

type AbsentResponse struct{}

// ErrorResponse is only written on a best effort basis right before a
// faulted connection is closed.
type ErrorResponse struct {
	Msg string
}

func (AckResponse) isResponse()    {}
func (ValueResponse) isResponse()  {}
func (AbsentResponse) isResponse() {}
func (ErrorResponse) isResponse()  {}

//
// CommandReader yields the next decoded command of a connection, it returns
// io.EOF once the peer closed the stream between two commands
//
type CommandReader interface {
	ReadCommand() (Command, error)
}

//
// ResponseWriter encodes a response and sends it to the peer
//
type ResponseWriter interface {
	WriteResponse(Response) error
}

// InlineMaxSize bounds one inline (telnet) request line, as redis does.
const InlineMaxSize = 64 * 1024

//
// RespReader decodes requests from a stream. Inline lines are read from br
// up to InlineMaxSize, arrays go through rd which reads from the same br.
//
type RespReader struct {
	br *bufio.Reader
	rd *resp.Reader
}

func NewRespReader(r io.Reader) *RespReader {
	br := bufio.NewReaderSize(r, InlineMaxSize)
	return &RespReader{br: br, rd: resp.NewReader(br)}
}

func (r *RespReader) ReadCommand() (Command, error) {
	for {
		v, err := r.readRequest()
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			if errors.Is(err, ErrProtocol) {
				return nil, err
			}
			if isIOError(err) {
				return nil, errors.Wrap(err, "read frame")
			}
			return nil, errors.Wrap(ErrProtocol, err.Error())
		}
		args := v.Array()
		if len(args) == 0 {
			continue
		}
		return ParseCommand(args)
	}
}

func (r *RespReader) readRequest() (resp.Value, error) {
	b, err := r.br.Peek(1)
	if err != nil {
		return resp.Value{}, err
	}
	if b[0] == '*' {
		v, _, _, err := r.rd.ReadMultiBulk()
		return v, err
	}
	line, err := r.br.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		return resp.Value{}, errors.Wrapf(ErrProtocol, "too big inline request, over %d bytes", InlineMaxSize)
	}
	if err == io.EOF {
		return resp.Value{}, io.ErrUnexpectedEOF
	}
	if err != nil {
		return resp.Value{}, err
	}
	if len(bytes.TrimSpace(line)) == 0 {
		return resp.ArrayValue(nil), nil
	}
	line = append([]byte(nil), line...)
	v, _, _, err := resp.NewReader(bytes.NewReader(line)).ReadMultiBulk()
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return resp.Value{}, errors.Wrap(ErrProtocol, "unbalanced inline request")
	}
	return v, err
}

//
// ParseCommand turns the bulk strings of one request into a Command
//
func ParseCommand(args []resp.Value) (Command, error) {
	for _, a := range args {
		if a.Type() != resp.BulkString {
			return nil, errors.Wrapf(ErrProtocol, "expected bulk string, got %c", byte(a.Type()))
		}
		if a.IsNull() {
			return nil, errors.Wrap(ErrProtocol, "null bulk string in request")
		}
	}
	name := strings.ToUpper(args[0].String())
	switch name {
	case "SET":
		if len(args) != 3 {
			return nil, errors.Wrap(ErrProtocol, "wrong number of arguments for 'set' command")
		}
		return &SetCommand{Key: args[1].String(), Value: args[2].Bytes()}, nil
	case "GET":
		if len(args) != 2 {
			return nil, errors.Wrap(ErrProtocol, "wrong number of arguments for 'get' command")
		}
		return &GetCommand{Key: args[1].String()}, nil
	}
	rest := make([][]byte, 0, len(args)-1)
	for _, a := range args[1:] {
		rest = append(rest, a.Bytes())
	}
	return &UnknownCommand{Cmd: name, Args: rest}, nil
}

func isIOError(err error) bool {
	if err == io.ErrUnexpectedEOF || err == io.ErrClosedPipe {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

type RespWriter struct {
	bw *bufio.Writer
	wr *resp.Writer
}

func NewRespWriter(w io.Writer) *RespWriter {
	bw := bufio.NewWriter(w)
	return &RespWriter{bw: bw, wr: resp.NewWriter(bw)}
}

func (w *RespWriter) WriteResponse(r Response) error {
	var err error
	switch r := r.(type) {
	case AckResponse:
		err = w.wr.WriteSimpleString("OK")
	case ValueResponse:
		err = w.wr.WriteBytes(r.Value)
	case AbsentResponse:
		err = w.wr.WriteNull()
	case ErrorResponse:
		err = w.wr.WriteError(errors.New(r.Msg))
	default:
		return errors.Errorf("unknown response type %T", r)
	}
	if err != nil {
		return errors.Wrap(err, "encode response")
	}
	return errors.Wrap(w.bw.Flush(), "flush response")
}
