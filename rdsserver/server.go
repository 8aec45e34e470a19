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
	"net"
	"sync"
	"time"

	"github.com/eraft-io/rdskv/pkg/common"
	"github.com/eraft-io/rdskv/pkg/consts"
	"github.com/eraft-io/rdskv/pkg/log"
	"github.com/eraft-io/rdskv/shardkv"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrServerClosed = errors.New("rds server closed")

type Config struct {
	Addr        string
	MonitorAddr string
	ShardNum    int
	KeyHash     string
	LogLevel    string
}

func DefaultConfig() Config {
	return Config{
		Addr:        consts.DEFAULT_RDS_ADDR,
		MonitorAddr: consts.DEFAULT_MONITOR_ADDR,
		ShardNum:    consts.DEFAULT_SHARD_NUM,
		KeyHash:     consts.DEFAULT_KEY_HASH,
		LogLevel:    consts.DEFAULT_LOG_LEVEL,
	}
}

func (c Config) MakeStore() (*shardkv.ShardedStore, error) {
	if c.ShardNum < 1 {
		return nil, errors.Errorf("shard num must be positive, got %d", c.ShardNum)
	}
	hash, err := common.ParseKeyHash(c.KeyHash)
	if err != nil {
		return nil, err
	}
	return shardkv.MakeShardedStore(c.ShardNum, hash), nil
}

//
// RdsServer accepts client connections and serves each one on its own
// goroutine against a single shared store
//
type RdsServer struct {
	store *shardkv.ShardedStore

	mu     sync.Mutex
	lis    net.Listener
	conns  map[net.Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

func MakeRdsServer(store *shardkv.ShardedStore) *RdsServer {
	return &RdsServer{
		store: store,
		conns: make(map[net.Conn]struct{}),
	}
}

func (s *RdsServer) Store() *shardkv.ShardedStore {
	return s.store
}

func (s *RdsServer) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	return s.Serve(lis)
}

//
// Serve accepts connections on lis until Close is called, then it returns
// ErrServerClosed
//
func (s *RdsServer) Serve(lis net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		lis.Close()
		return ErrServerClosed
	}
	s.lis = lis
	s.mu.Unlock()

	log.MainLogger.Info().Msgf("rds server success listen on: %s, shards: %d", lis.Addr(), s.store.ShardCount())
	var tempDelay time.Duration
	for {
		conn, err := lis.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else if tempDelay *= 2; tempDelay > time.Second {
					tempDelay = time.Second
				}
				log.MainLogger.Warn().Msgf("accept error: %v, retrying in %v", err, tempDelay)
				time.Sleep(tempDelay)
				continue
			}
			return errors.Wrap(err, "accept")
		}
		tempDelay = 0
		if !s.track(conn) {
			conn.Close()
			return ErrServerClosed
		}
		go s.handleConn(conn)
	}
}

func (s *RdsServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis == nil {
		return nil
	}
	return s.lis.Addr()
}

//
// Close stops accepting, closes every live connection and waits for their
// handlers to return
//
func (s *RdsServer) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	var err error
	if s.lis != nil {
		err = s.lis.Close()
	}
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return err
}

func (s *RdsServer) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *RdsServer) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *RdsServer) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	s.wg.Done()
}

func (s *RdsServer) handleConn(conn net.Conn) {
	id := uuid.New().String()
	connsAccepted.Inc()
	connsActive.Inc()
	defer func() {
		conn.Close()
		connsActive.Dec()
		s.untrack(conn)
	}()
	log.MainLogger.Debug().Msgf("conn %s accepted from %s", id, conn.RemoteAddr())

	h := NewConnHandler(id, s.store, NewRespReader(conn), NewRespWriter(conn))
	err := h.Serve()
	switch {
	case err == nil:
		log.MainLogger.Debug().Msgf("conn %s closed by client", id)
	case errors.Is(err, ErrUnsupportedCommand):
		connFaults.WithLabelValues("unsupported").Inc()
		log.MainLogger.Error().Msgf("conn %s dropped, %v", id, err)
	case errors.Is(err, ErrProtocol):
		connFaults.WithLabelValues("protocol").Inc()
		log.MainLogger.Warn().Msgf("conn %s dropped, %v", id, err)
	default:
		if s.isClosed() {
			return
		}
		connFaults.WithLabelValues("io").Inc()
		log.MainLogger.Warn().Msgf("conn %s dropped, %v", id, err)
	}
}
