package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leengari/gridtable/internal/catalog"
	"github.com/leengari/gridtable/internal/config"
	"github.com/leengari/gridtable/internal/engine"
)

// Session runs the lines typed into one shell against an engine.
type Session struct {
	eng *engine.Engine
	out io.Writer
}

// NewSession creates a session writing its output to out.
func NewSession(eng *engine.Engine, out io.Writer) *Session {
	return &Session{eng: eng, out: out}
}

// Start runs an interactive shell on the terminal until EOF, interrupt or exit.
func Start(ctx context.Context, c *catalog.Catalog, cfg config.REPLConfig) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cfg.Prompt,
		HistoryFile:       cfg.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	eng := engine.New(c)
	s := NewSession(eng, rl.Stdout())

	fmt.Fprintln(rl.Stdout(), "Welcome to gridtable")
	fmt.Fprintln(rl.Stdout(), "Type '.help' for commands, 'exit' or '\\q' to quit.")

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}
		if s.Handle(ctx, line) {
			return nil
		}
	}
}

// Handle runs one input line and reports whether the shell should quit.
func (s *Session) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	switch line {
	case "exit", "\\q", ".quit":
		return true
	case ".help":
		s.help()
		return false
	case "ls", "list", ".tables":
		line = "SHOW TABLES"
	}

	if cmd, arg, ok := strings.Cut(line, " "); ok || strings.HasPrefix(line, ".") {
		switch cmd {
		case ".load":
			s.report(s.eng.Catalog().Load(strings.TrimSpace(arg)), "Loaded %s", arg)
			return false
		case ".save":
			s.save(strings.TrimSpace(arg))
			return false
		case ".drop":
			s.report(s.eng.Catalog().Drop(strings.TrimSpace(arg)), "Dropped %s", arg)
			return false
		}
		if strings.HasPrefix(cmd, ".") {
			fmt.Fprintf(s.out, "Unknown command %s. Type '.help' for commands.\n", cmd)
			return false
		}
	}

	// Execute using Engine
	result, err := s.eng.Execute(ctx, line)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return false
	}

	// Print Result
	PrintResult(s.out, result)
	return false
}

func (s *Session) save(name string) {
	if name == "" {
		s.report(s.eng.Catalog().SaveAll(), "Saved %d tables", s.eng.Catalog().Len())
		return
	}
	s.report(s.eng.Catalog().Save(name), "Saved %s", name)
}

func (s *Session) report(err error, format string, args ...any) {
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *Session) help() {
	fmt.Fprintln(s.out, "Statements:")
	fmt.Fprintln(s.out, "  SELECT [DISTINCT] cols|* FROM t [, u] [JOIN u ON t.a = u.b [AND ...]]")
	fmt.Fprintln(s.out, "         [WHERE t.a = value [AND ...]] [ORDER BY t.a [ASC|DESC], ...]")
	fmt.Fprintln(s.out, "  SHOW TABLES")
	fmt.Fprintln(s.out, "  DESCRIBE t")
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  .tables         list tables")
	fmt.Fprintln(s.out, "  .load NAME      load NAME from the data directory")
	fmt.Fprintln(s.out, "  .save [NAME]    save NAME, or every table")
	fmt.Fprintln(s.out, "  .drop NAME      forget NAME")
	fmt.Fprintln(s.out, "  exit, \\q        quit")
}

// PrintResult renders res as a table followed by a row count.
func PrintResult(w io.Writer, res *engine.Result) {
	if res.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", res.Error)
		return
	}

	if res.Message != "" {
		fmt.Fprintln(w, res.Message)
	}

	if len(res.Columns) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false

	header := make(table.Row, len(res.Columns))
	for i, col := range res.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range res.Rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			if v == nil {
				r[i] = "NULL"
			} else {
				r[i] = v
			}
		}
		t.AppendRow(r)
	}
	t.Render()

	noun := "rows"
	if len(res.Rows) == 1 {
		noun = "row"
	}
	fmt.Fprintf(w, "(%d %s)\n", len(res.Rows), noun)
}
