package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/google/uuid"

	"github.com/leengari/gridtable/internal/catalog"
	"github.com/leengari/gridtable/internal/engine"
)

type Request struct {
	Query string `json:"query"`
}

// Start listens on port and serves until ctx is cancelled.
func Start(ctx context.Context, port int, c *catalog.Catalog) error {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", port, err)
	}
	slog.Info("Running on port", slog.Int("port", port))
	return Serve(ctx, listener, c)
}

// Serve accepts connections on listener until ctx is cancelled. Each connection
// is a session with its own engine over the shared catalog.
func Serve(ctx context.Context, listener net.Listener, c *catalog.Catalog) error {
	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				slog.Info("Server stopped", slog.String("addr", listener.Addr().String()))
				return nil
			}
			slog.Error("Failed to accept connection", slog.Any("error", err))
			continue
		}
		go handleConnection(ctx, conn, c)
	}
}

func handleConnection(ctx context.Context, conn net.Conn, c *catalog.Catalog) {
	defer conn.Close()

	sessionID := uuid.New().String()
	logger := slog.With(slog.String("session_id", sessionID))
	logger.Debug("Session opened", slog.String("remote", conn.RemoteAddr().String()))
	defer logger.Debug("Session closed")

	dbEngine := engine.New(c)

	// Register logging observer for lifecycle tracing
	loggingObserver := engine.NewLoggingObserver(logger)
	dbEngine.AddObserver(loggingObserver)

	// Use Decoder instead of Scanner for network streams
	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		// Decode directly from the connection
		if err := decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return // Connection closed gracefully
			}
			logger.Error("decode error", slog.Any("error", err))

			// Send error back to client
			errResult := &engine.Result{
				Error: fmt.Sprintf("Invalid request format: %v", err),
			}
			_ = encoder.Encode(errResult)
			return
		}

		if req.Query == "exit" || req.Query == "\\q" {
			return
		}

		result, err := dbEngine.Execute(ctx, req.Query)
		if err != nil {
			// Return error as a Result object
			errResult := &engine.Result{
				Error: err.Error(),
			}
			if err := encoder.Encode(errResult); err != nil {
				logger.Error("encode error", slog.Any("error", err))
				return
			}
			continue
		}

		if err := encoder.Encode(result); err != nil {
			logger.Error("encode error", slog.Any("error", err))
			return
		}
	}
}
