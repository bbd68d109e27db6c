package main

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// maxMessageSize bounds a single protocol message
const maxMessageSize = 64 << 20

// SocketClient connects to a running socket server
type SocketClient struct {
	conn net.Conn
	mu   sync.Mutex
}

// NewSocketClient connects to a running socket server
func NewSocketClient(socketPath string) (*SocketClient, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket server at %s: %w", socketPath, err)
	}

	return &SocketClient{conn: conn}, nil
}

// Close closes the connection to the socket server
func (sc *SocketClient) Close() error {
	if sc.conn != nil {
		return sc.conn.Close()
	}
	return nil
}

// Execute sends a command and returns the response
func (sc *SocketClient) Execute(cmd Command) (*Response, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if err := writeMessage(sc.conn, data); err != nil {
		return nil, err
	}
	reply, err := readMessage(sc.conn)
	if err != nil {
		return nil, err
	}

	var response Response
	if err := json.Unmarshal(reply, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &response, nil
}

// SocketServer serves a TextUtilsCore on a Unix domain socket
type SocketServer struct {
	socketPath string
	core       *TextUtilsCore
	logger     *slog.Logger
	listener   net.Listener
	done       chan struct{}
	stopped    chan struct{} // Closed when server has fully shut down
	stopOnce   sync.Once
	clients    sync.WaitGroup
}

// NewSocketServer creates a new socket server instance
func NewSocketServer(socketPath string, core *TextUtilsCore, logger *slog.Logger) *SocketServer {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	return &SocketServer{
		socketPath: socketPath,
		core:       core,
		logger:     logger,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Start begins listening on the Unix domain socket
func (ss *SocketServer) Start() error {
	// Remove existing socket file if it exists
	if err := os.Remove(ss.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", ss.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket %s: %w", ss.socketPath, err)
	}
	ss.listener = listener
	ss.logger.Info("socket server listening", "socket", ss.socketPath)

	go ss.acceptConnections()

	return nil
}

// HandleSignals stops the server on SIGINT or SIGTERM
func (ss *SocketServer) HandleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			ss.logger.Info("shutting down", "signal", sig.String())
			ss.Stop()
		case <-ss.done:
		}
	}()
}

// acceptConnections accepts incoming connections (multiple clients supported)
func (ss *SocketServer) acceptConnections() {
	for {
		conn, err := ss.listener.Accept()
		if err != nil {
			select {
			case <-ss.done:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			ss.logger.Error("accept failed", "error", err)
			continue
		}

		select {
		case <-ss.done:
			conn.Close()
			return
		default:
		}
		ss.clients.Add(1)
		go func() {
			defer ss.clients.Done()
			ss.handleClient(conn)
		}()
	}
}

// handleClient serves one connection until the client disconnects
func (ss *SocketServer) handleClient(conn net.Conn) {
	defer conn.Close()

	logger := ss.logger.With("conn", uuid.NewString())
	logger.Debug("client connected")

	// unblock reads when the server stops
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ss.done:
			conn.Close()
		case <-finished:
		}
	}()

	for {
		data, err := readMessage(conn)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				logger.Debug("client disconnected")
				return
			}
			logger.Warn("read failed", "error", err)
			return
		}

		start := time.Now()
		var resp Response
		cmd, err := DecodeCommand(data)
		if err != nil {
			resp = Response{Error: "Invalid JSON: " + err.Error()}
		} else {
			resp = ss.core.Dispatch(cmd)
		}

		attrs := []any{
			"action", cmd.Action,
			"duration", time.Since(start),
		}
		if op := getStr(cmd.Params, "operation", ""); op != "" {
			attrs = append(attrs, "operation", op)
		}
		if resp.Success {
			logger.Info("command", attrs...)
		} else {
			attrs = append(attrs, "error", resp.Error)
			if resp.ErrorKind != "" {
				attrs = append(attrs, "error_kind", string(resp.ErrorKind))
			}
			logger.Warn("command failed", attrs...)
		}

		reply, err := json.Marshal(resp)
		if err != nil {
			reply, _ = json.Marshal(Response{Error: "Could not encode the response: " + err.Error()})
		}
		if err := writeMessage(conn, reply); err != nil {
			logger.Warn("write failed", "error", err)
			return
		}
	}
}

// Stop gracefully shuts down the socket server
func (ss *SocketServer) Stop() error {
	ss.stopOnce.Do(func() {
		close(ss.done)

		if ss.listener != nil {
			ss.listener.Close()
		}
		ss.clients.Wait()

		// Remove socket file
		os.Remove(ss.socketPath)

		close(ss.stopped)
	})
	return nil
}

// Wait blocks until the server is fully shut down
func (ss *SocketServer) Wait() {
	<-ss.stopped
}

// ============================================================================
// Length-Prefixed Protocol Implementation
// ============================================================================

// readMessage reads a single message: a 4-byte big-endian length and the data
func readMessage(r io.Reader) ([]byte, error) {
	lengthBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, lengthBuf); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint32(lengthBuf)
	if length > maxMessageSize {
		return nil, fmt.Errorf("message of %d bytes exceeds the %d byte limit", length, maxMessageSize)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// writeMessage writes a single length-prefixed message
func writeMessage(w io.Writer, data []byte) error {
	if len(data) > maxMessageSize {
		return fmt.Errorf("message of %d bytes exceeds the %d byte limit", len(data), maxMessageSize)
	}
	buf := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(buf, uint32(len(data)))
	copy(buf[4:], data)

	_, err := w.Write(buf)
	return err
}
