// Package interchange renders tables as delimited text and reads them back.
//
// The format is one line per row with elements separated by a delimiter.
// Nothing is quoted or escaped: an element containing the delimiter or a line
// break does not survive a round trip.
package interchange

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/leengari/gridtable/internal/grid"
)

// DefaultDelimiter separates columns unless configured otherwise.
const DefaultDelimiter = ";"

// Writer renders a table row by row.
type Writer struct {
	Delimiter string // column separator, DefaultDelimiter when empty
	Header    bool   // write column titles as the first line
	Null      string // rendering of nil elements
}

// NewWriter returns a writer using the default delimiter and no header.
func NewWriter() *Writer {
	return &Writer{Delimiter: DefaultDelimiter}
}

// Write renders t to out. Every line carries ColumnCount fields.
func (w *Writer) Write(out io.Writer, t *grid.Table) error {
	bw := bufio.NewWriter(out)
	n := t.ColumnCount()

	if w.Header {
		titles := t.Columns().Titles()
		for i, title := range titles {
			if title == nil {
				titles[i] = "" // never the Null marker
			}
		}
		if err := w.line(bw, titles); err != nil {
			return err
		}
	}
	for _, row := range t.Rows().All() {
		if err := w.line(bw, row.ValuesTo(n)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String renders t into a string.
func (w *Writer) String(t *grid.Table) string {
	var b strings.Builder
	_ = w.Write(&b, t)
	return b.String()
}

func (w *Writer) line(bw *bufio.Writer, values []any) error {
	delim := w.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}
	for i, v := range values {
		if i > 0 {
			if _, err := bw.WriteString(delim); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(w.format(v)); err != nil {
			return err
		}
	}
	return bw.WriteByte('\n')
}

func (w *Writer) format(v any) string {
	switch x := v.(type) {
	case nil:
		return w.Null
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	}
	return fmt.Sprint(v)
}

// Reader parses delimited text into a table.
type Reader struct {
	Delimiter  string // column separator, DefaultDelimiter when empty
	Header     bool   // the first line holds column titles
	InferTypes bool   // turn integer, float and boolean fields into int64, float64 and bool
}

// NewReader returns a reader using the default delimiter, no header and type
// inference switched on.
func NewReader() *Reader {
	return &Reader{Delimiter: DefaultDelimiter, InferTypes: true}
}

// Read parses in into a new table called name. Empty fields become nil
// elements and empty header fields leave the column untitled. Rows shorter than
// the widest row are padded with nils.
func (r *Reader) Read(in io.Reader, name string) (*grid.Table, error) {
	delim := r.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	t := grid.New(name)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		fields := strings.Split(text, delim)

		if r.Header && lineNo == 1 {
			for len(fields) > t.ColumnCount() {
				t.AppendColumn()
			}
			for i, f := range fields {
				if f != "" {
					t.Column(i).SetTitle(norm.NFC.String(f))
				}
			}
			continue
		}

		values := make([]any, len(fields))
		for i, f := range fields {
			values[i] = r.parse(f)
		}
		t.AppendRow(values...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s line %d: %w", name, lineNo+1, err)
	}

	slog.Debug("Table read",
		slog.String("table", name),
		slog.Int("rows", t.RowCount()),
		slog.Int("columns", t.ColumnCount()),
	)
	return t, nil
}

func (r *Reader) parse(field string) any {
	if field == "" {
		return nil
	}
	if !r.InferTypes {
		return field
	}
	if i, err := strconv.ParseInt(field, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(field, 64); err == nil && strings.ContainsAny(field, ".eE") {
		return f
	}
	if b, err := strconv.ParseBool(field); err == nil && (field == "true" || field == "false") {
		return b
	}
	return field
}
