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
	"fmt"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStore mocks the shared store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(key string) ([]byte, bool) {
	args := m.Called(key)
	v, _ := args.Get(0).([]byte)
	return v, args.Bool(1)
}

func (m *MockStore) Set(key string, value []byte) {
	m.Called(key, value)
}

// fakeReader yields cmds, then err, then io.EOF
type fakeReader struct {
	cmds []Command
	err  error
}

func (r *fakeReader) ReadCommand() (Command, error) {
	if len(r.cmds) > 0 {
		c := r.cmds[0]
		r.cmds = r.cmds[1:]
		return c, nil
	}
	if r.err != nil {
		err := r.err
		r.err = nil
		return nil, err
	}
	return nil, io.EOF
}

type recordWriter struct {
	resps []Response
	err   error
}

func (w *recordWriter) WriteResponse(r Response) error {
	if w.err != nil {
		return w.err
	}
	w.resps = append(w.resps, r)
	return nil
}

func TestConnHandlerSetGet(t *testing.T) {
	store := new(MockStore)
	store.On("Set", "foo", []byte("bar")).Once()
	store.On("Get", "foo").Return([]byte("bar"), true).Once()
	store.On("Get", "missing").Return(nil, false).Once()

	rd := &fakeReader{cmds: []Command{
		&SetCommand{Key: "foo", Value: []byte("bar")},
		&GetCommand{Key: "foo"},
		&GetCommand{Key: "missing"},
	}}
	wr := &recordWriter{}

	err := NewConnHandler("t", store, rd, wr).Serve()
	assert.NoError(t, err)
	assert.Equal(t, []Response{
		AckResponse{},
		ValueResponse{Value: []byte("bar")},
		AbsentResponse{},
	}, wr.resps)
	store.AssertExpectations(t)
}

func TestConnHandlerCleanEOF(t *testing.T) {
	store := new(MockStore)
	wr := &recordWriter{}

	err := NewConnHandler("t", store, &fakeReader{}, wr).Serve()
	assert.NoError(t, err)
	assert.Empty(t, wr.resps)
	store.AssertNotCalled(t, "Get", mock.Anything)
}

func TestConnHandlerUnsupportedCommand(t *testing.T) {
	store := new(MockStore)
	store.On("Set", "a", []byte("1")).Once()

	rd := &fakeReader{cmds: []Command{
		&SetCommand{Key: "a", Value: []byte("1")},
		&UnknownCommand{Cmd: "PING"},
		&GetCommand{Key: "a"},
	}}
	wr := &recordWriter{}

	err := NewConnHandler("t", store, rd, wr).Serve()
	assert.True(t, errors.Is(err, ErrUnsupportedCommand))
	assert.Equal(t, []Response{
		AckResponse{},
		ErrorResponse{Msg: "ERR unknown command 'PING'"},
	}, wr.resps)
	// the GET after the fault is never processed
	store.AssertNotCalled(t, "Get", "a")
	store.AssertExpectations(t)
}

func TestConnHandlerDecodeError(t *testing.T) {
	t.Run("protocol error gets a reply", func(t *testing.T) {
		protoErr := errors.Wrap(ErrProtocol, "wrong number of arguments for 'get' command")
		wr := &recordWriter{}
		err := NewConnHandler("t", new(MockStore), &fakeReader{err: protoErr}, wr).Serve()
		assert.True(t, errors.Is(err, ErrProtocol))
		assert.Equal(t, []Response{ErrorResponse{Msg: "ERR " + protoErr.Error()}}, wr.resps)
	})

	t.Run("io error ends silently", func(t *testing.T) {
		ioErr := errors.Wrap(io.ErrUnexpectedEOF, "read frame")
		wr := &recordWriter{}
		err := NewConnHandler("t", new(MockStore), &fakeReader{err: ioErr}, wr).Serve()
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
		assert.Empty(t, wr.resps)
	})
}

func TestConnHandlerWriteError(t *testing.T) {
	store := new(MockStore)
	store.On("Set", "k", []byte("v")).Once()
	writeErr := errors.New("broken pipe")

	rd := &fakeReader{cmds: []Command{
		&SetCommand{Key: "k", Value: []byte("v")},
		&GetCommand{Key: "k"},
	}}
	err := NewConnHandler("t", store, rd, &recordWriter{err: writeErr}).Serve()
	assert.True(t, errors.Is(err, writeErr))
	// the set was applied before the reply failed, the get never ran
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Get", "k")
}

func TestCommandsMetricLabelsBounded(t *testing.T) {
	unknown := commandsTotal.WithLabelValues("unknown")
	before := testutil.ToFloat64(unknown)

	for i := 0; i < 200; i++ {
		rd := &fakeReader{cmds: []Command{&UnknownCommand{Cmd: fmt.Sprintf("X%d", i)}}}
		err := NewConnHandler("t", new(MockStore), rd, &recordWriter{}).Serve()
		assert.True(t, errors.Is(err, ErrUnsupportedCommand))
	}

	assert.Equal(t, before+200, testutil.ToFloat64(unknown))
	// at most SET, GET and unknown
	assert.LessOrEqual(t, testutil.CollectAndCount(commandsTotal), 3)
}

func TestCommandLabel(t *testing.T) {
	assert.Equal(t, "SET", commandLabel(&SetCommand{Key: "k"}))
	assert.Equal(t, "GET", commandLabel(&GetCommand{Key: "k"}))
	assert.Equal(t, "unknown", commandLabel(&UnknownCommand{Cmd: "FLUSHALL"}))
}
