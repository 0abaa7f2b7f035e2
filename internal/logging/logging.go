package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	slogseq "github.com/sokkalf/slog-seq"

	"github.com/leengari/gridtable/internal/config"
)

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	// Enable if any handler is enabled for this level
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// NewConsoleHandler returns a tint handler writing to w. Color follows color
// when set and otherwise whether w is a terminal.
func NewConsoleHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
		w = colorable.NewColorable(f)
	}
	if cfg.Color != nil {
		noColor = !*cfg.Color
	}

	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  cfg.Source,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	})
}

// Setup initializes the global logger and returns a cleanup function.
// Records go to stderr and, when a Seq URL is configured, to Seq as well.
func Setup(cfg config.LogConfig) (*slog.Logger, func()) {
	consoleHandler := NewConsoleHandler(os.Stderr, cfg)

	if cfg.SeqURL == "" {
		logger := slog.New(consoleHandler)
		slog.SetDefault(logger)
		return logger, func() {}
	}

	level, _ := config.ParseLevel(cfg.Level)

	// Seq handler
	_, seqHandler := slogseq.NewLogger(
		cfg.SeqURL,
		slogseq.WithBatchSize(1),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(&slog.HandlerOptions{
			Level:     level,
			AddSource: cfg.Source,
		}),
	)

	// If Seq is not available, use console only
	if seqHandler == nil {
		logger := slog.New(consoleHandler)
		slog.SetDefault(logger)
		return logger, func() {}
	}

	// Combine both handlers
	multi := &multiHandler{
		handlers: []slog.Handler{consoleHandler, seqHandler},
	}

	logger := slog.New(multi)
	slog.SetDefault(logger)

	closeFn := func() {
		seqHandler.Close()
	}

	return logger, closeFn
}
