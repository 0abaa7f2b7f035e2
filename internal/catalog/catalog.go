// Package catalog keeps the named tables a process works with and moves them
// to and from delimited text files.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/leengari/gridtable/internal/grid"
	"github.com/leengari/gridtable/internal/interchange"
)

// Extension is the file suffix of stored tables.
const Extension = ".tbl"

var (
	ErrTableNotFound = errors.New("table not found")
	ErrNoDirectory   = errors.New("catalog has no data directory")
	ErrInvalidName   = errors.New("invalid table name")
)

// Catalog manages loaded tables in a thread-safe way. Tables themselves take
// no locks, so every access to a table obtained from the catalog must happen
// inside View or Update.
type Catalog struct {
	mu        sync.RWMutex
	tables    map[string]*grid.Table
	dir       string
	delimiter string
}

// New creates an empty catalog storing its files under dir. An empty dir
// keeps the catalog in memory only; an empty delimiter selects the default.
func New(dir, delimiter string) *Catalog {
	if delimiter == "" {
		delimiter = interchange.DefaultDelimiter
	}
	return &Catalog{
		tables:    make(map[string]*grid.Table),
		dir:       dir,
		delimiter: delimiter,
	}
}

// Dir returns the data directory.
func (c *Catalog) Dir() string { return c.dir }

// Snapshot is the catalog contents as seen inside View or Update.
type Snapshot struct {
	tables map[string]*grid.Table
}

// Table returns the named table or nil.
func (s *Snapshot) Table(name string) *grid.Table { return s.tables[name] }

// Names returns the table names in sorted order.
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// View runs fn with shared access. fn must not modify any table.
func (c *Catalog) View(fn func(*Snapshot) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fn(&Snapshot{tables: c.tables})
}

// Update runs fn with exclusive access.
func (c *Catalog) Update(fn func(*Snapshot) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(&Snapshot{tables: c.tables})
}

// Put registers t under its name, replacing any table of the same name.
func (c *Catalog) Put(t *grid.Table) error {
	if err := validName(t.Name()); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables[t.Name()] = t
	return nil
}

// Get returns the named table.
func (c *Catalog) Get(name string) (*grid.Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrTableNotFound)
	}
	return t, nil
}

// Drop forgets the named table. Its file, if any, is left alone.
func (c *Catalog) Drop(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[name]; !ok {
		return fmt.Errorf("%s: %w", name, ErrTableNotFound)
	}
	delete(c.tables, name)
	return nil
}

// Names returns the table names in sorted order.
func (c *Catalog) Names() []string {
	var names []string
	_ = c.View(func(s *Snapshot) error {
		names = s.Names()
		return nil
	})
	return names
}

// Len returns the number of tables.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

// Load reads the named table from the data directory, replacing any loaded
// table of that name.
func (c *Catalog) Load(name string) error {
	if c.dir == "" {
		return ErrNoDirectory
	}
	if err := validName(name); err != nil {
		return err
	}
	t, err := c.read(filepath.Join(c.dir, name+Extension), name)
	if err != nil {
		return err
	}
	return c.Put(t)
}

// LoadDir reads every table file of the data directory. Files that fail to
// load are skipped and their errors combined in the result.
func (c *Catalog) LoadDir() (int, error) {
	if c.dir == "" {
		return 0, ErrNoDirectory
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read data directory %s: %w", c.dir, err)
	}

	var errs error
	loaded := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Extension {
			continue
		}
		name := strings.TrimSuffix(e.Name(), Extension)
		if err := c.Load(name); err != nil {
			slog.Warn("Skipping table file", slog.String("file", e.Name()), slog.Any("error", err))
			errs = multierr.Append(errs, err)
			continue
		}
		loaded++
	}

	slog.Info("Catalog loaded",
		slog.String("dir", c.dir),
		slog.Int("tables", loaded),
		slog.Int("failed", len(multierr.Errors(errs))),
	)
	return loaded, errs
}

// Save writes the named table to the data directory.
func (c *Catalog) Save(name string) error {
	if c.dir == "" {
		return ErrNoDirectory
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrTableNotFound)
	}
	return c.write(t)
}

// SaveAll writes every table, continuing past failures.
func (c *Catalog) SaveAll() error {
	if c.dir == "" {
		return ErrNoDirectory
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", c.dir, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var errs error
	for _, name := range (&Snapshot{tables: c.tables}).Names() {
		if err := c.write(c.tables[name]); err != nil {
			slog.Error("failed to save table", slog.String("table", name), slog.Any("error", err))
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (c *Catalog) read(path, name string) (*grid.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", name, err)
	}
	defer f.Close()

	r := &interchange.Reader{Delimiter: c.delimiter, Header: true, InferTypes: true}
	t, err := r.Read(f, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	return t, nil
}

// write stores t using a temp file and an atomic rename.
func (c *Catalog) write(t *grid.Table) error {
	path := filepath.Join(c.dir, t.Name()+Extension)
	tmpPath := path + ".tmp"

	w := &interchange.Writer{Delimiter: c.delimiter, Header: true}
	if err := os.WriteFile(tmpPath, []byte(w.String(t)), 0o644); err != nil {
		return fmt.Errorf("failed to write temp file for table %s: %w", t.Name(), err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file for table %s: %w", t.Name(), err)
	}

	slog.Debug("Table saved", slog.String("table", t.Name()), slog.Int("rows", t.RowCount()))
	return nil
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}
