package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/tapline-io/tapline-go/pkg/logging"
)

// Server errors.
var (
	ErrAlreadyRunning = errors.New("server already running")
	ErrNotRunning     = errors.New("server not running")
)

// ServerConfig configures a Server.
type ServerConfig struct {
	// Address to listen on (e.g., ":9000" or "127.0.0.1:9000").
	Address string

	// Channel configuration applied to every accepted connection.
	Channel Config

	// Initializer populates the pipeline of every accepted connection.
	Initializer PipelineInitializer
}

// Server accepts TCP connections and serves a channel for each.
type Server struct {
	config   ServerConfig
	listener net.Listener
	logger   logging.Logger

	conns   map[*Channel]struct{}
	connsMu sync.Mutex

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewServer creates a server. The address defaults to ":0".
func NewServer(config ServerConfig) *Server {
	if config.Address == "" {
		config.Address = ":0"
	}
	if config.Channel.MaxFrameSize == 0 {
		config.Channel = DefaultConfig()
	}
	return &Server{
		config: config,
		conns:  make(map[*Channel]struct{}),
	}
}

// Start begins accepting connections.
func (s *Server) Start(ctx context.Context) error {
	if s.running.Load() {
		return ErrAlreadyRunning
	}

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.listener = listener
	s.logger = logging.GetLogger("transport")
	s.running.Store(true)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener and every active channel, then waits for the
// serving goroutines to finish.
func (s *Server) Stop() error {
	if !s.running.Swap(false) {
		return ErrNotRunning
	}

	s.cancel()
	err := s.listener.Close()

	s.connsMu.Lock()
	for ch := range s.conns {
		ch.teardown()
	}
	s.connsMu.Unlock()

	s.wg.Wait()
	return err
}

// Addr returns the server's listen address.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ConnectionCount returns the number of active channels.
func (s *Server) ConnectionCount() int {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	return len(s.conns)
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.running.Load() {
				s.logger.LogCause(logging.SeverityWarn, "accept failed", err)
			}
			return
		}

		ch, err := NewChannel(conn, s.config.Channel, s.config.Initializer)
		if err != nil {
			s.logger.LogCause(logging.SeverityWarn, "rejecting connection", err)
			continue
		}

		s.connsMu.Lock()
		s.conns[ch] = struct{}{}
		s.connsMu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			_ = ch.Serve(s.ctx)

			s.connsMu.Lock()
			delete(s.conns, ch)
			s.connsMu.Unlock()
		}()
	}
}
