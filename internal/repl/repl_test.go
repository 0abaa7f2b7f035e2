package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/leengari/gridtable/internal/catalog"
	"github.com/leengari/gridtable/internal/engine"
	"github.com/leengari/gridtable/internal/testutil"
)

func TestPrintResult_Golden(t *testing.T) {
	res := &engine.Result{
		Columns: []string{"id", "username", "email"},
		Rows: [][]any{
			{int64(1), "alice", nil},
			{int64(2), "bob", "bob@example.com"},
		},
	}

	var buf bytes.Buffer
	PrintResult(&buf, res)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "print_result", buf.Bytes())
}

func TestPrintResult_ErrorAndMessage(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, &engine.Result{Error: "boom"})
	assert.Equal(t, buf.String(), "Error: boom\n")

	buf.Reset()
	PrintResult(&buf, &engine.Result{Message: "done"})
	assert.Equal(t, buf.String(), "done\n")
}

func newSession(t *testing.T, dir string) (*Session, *bytes.Buffer) {
	t.Helper()
	c := catalog.New(dir, "")
	assert.NilError(t, c.Put(testutil.CreateUsersTable()))
	var out bytes.Buffer
	return NewSession(engine.New(c), &out), &out
}

func TestSession_Handle(t *testing.T) {
	s, out := newSession(t, "")
	ctx := context.Background()

	assert.Assert(t, !s.Handle(ctx, "   "))
	assert.Equal(t, out.Len(), 0)

	assert.Assert(t, !s.Handle(ctx, "SELECT username FROM users WHERE id = 1"))
	assert.Assert(t, is.Contains(out.String(), "alice"))
	assert.Assert(t, is.Contains(out.String(), "(1 row)"))

	out.Reset()
	assert.Assert(t, !s.Handle(ctx, ".tables"))
	assert.Assert(t, is.Contains(out.String(), "users"))

	out.Reset()
	assert.Assert(t, !s.Handle(ctx, "SELECT * FROM nowhere"))
	assert.Assert(t, is.Contains(out.String(), "Error: "))

	out.Reset()
	assert.Assert(t, !s.Handle(ctx, ".bogus"))
	assert.Assert(t, is.Contains(out.String(), "Unknown command .bogus"))

	assert.Assert(t, s.Handle(ctx, "exit"))
	assert.Assert(t, s.Handle(ctx, "\\q"))
}

func TestSession_SaveLoadDrop(t *testing.T) {
	dir := t.TempDir()
	s, out := newSession(t, dir)
	ctx := context.Background()

	s.Handle(ctx, ".save")
	assert.Assert(t, is.Contains(out.String(), "Saved 1 tables"))
	_, err := os.Stat(filepath.Join(dir, "users"+catalog.Extension))
	assert.NilError(t, err)

	out.Reset()
	s.Handle(ctx, ".drop users")
	assert.Assert(t, is.Contains(out.String(), "Dropped users"))

	out.Reset()
	s.Handle(ctx, ".load users")
	assert.Assert(t, is.Contains(out.String(), "Loaded users"))

	out.Reset()
	s.Handle(ctx, "SELECT users.email FROM users WHERE users.id = 3")
	assert.Assert(t, is.Contains(out.String(), "charlie@example.com"))
}
