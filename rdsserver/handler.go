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
	"io"

	"github.com/eraft-io/rdskv/pkg/log"
	"github.com/pkg/errors"
)

//
// Store is what a connection needs from the shared key value store
//
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

//
// ConnHandler drives the command stream of one client connection.
// It reads a command, applies it to the store and writes the response,
// strictly one command after another.
//
type ConnHandler struct {
	id    string
	store Store
	rd    CommandReader
	wr    ResponseWriter
}

func NewConnHandler(id string, store Store, rd CommandReader, wr ResponseWriter) *ConnHandler {
	return &ConnHandler{id: id, store: store, rd: rd, wr: wr}
}

//
// Serve runs until the peer closes the stream, which returns nil, or until
// a fault that ends this connection, which is returned.
//
func (h *ConnHandler) Serve() error {
	for {
		cmd, err := h.rd.ReadCommand()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if errors.Is(err, ErrProtocol) {
				h.replyFault("ERR " + err.Error())
			}
			return err
		}
		log.MainLogger.Debug().Msgf("conn %s got: %v", h.id, cmd)
		commandsTotal.WithLabelValues(commandLabel(cmd)).Inc()

		resp, err := h.dispatch(cmd)
		if err != nil {
			h.replyFault("ERR unknown command '" + cmd.Name() + "'")
			return err
		}
		if err := h.wr.WriteResponse(resp); err != nil {
			return errors.Wrap(err, "write response")
		}
	}
}

func (h *ConnHandler) dispatch(cmd Command) (Response, error) {
	switch c := cmd.(type) {
	case *SetCommand:
		h.store.Set(c.Key, c.Value)
		return AckResponse{}, nil
	case *GetCommand:
		if v, ok := h.store.Get(c.Key); ok {
			return ValueResponse{Value: v}, nil
		}
		return AbsentResponse{}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedCommand, "%s", cmd.Name())
	}
}

// names sent by clients never become label values, the label set stays fixed
func commandLabel(cmd Command) string {
	switch cmd.(type) {
	case *SetCommand, *GetCommand:
		return cmd.Name()
	}
	return "unknown"
}

// the connection is closed right after, a failed write changes nothing
func (h *ConnHandler) replyFault(msg string) {
	if err := h.wr.WriteResponse(ErrorResponse{Msg: msg}); err != nil {
		log.MainLogger.Debug().Msgf("conn %s fault reply not sent: %v", h.id, err)
	}
}
