package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/gridtable/internal/catalog"
	"github.com/leengari/gridtable/internal/engine"
	"github.com/leengari/gridtable/internal/testutil"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "gridtable", cmd.Use)
	assert.Contains(t, cmd.Long, "joins")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"init", "query", "show", "import", "repl", "serve"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	dataFlag := cmd.PersistentFlags().Lookup("data")
	require.NotNil(t, dataFlag)
	assert.Equal(t, "d", dataFlag.Shorthand)
	assert.Equal(t, "", dataFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "table", formatFlag.DefValue)

	traceFlag := cmd.PersistentFlags().Lookup("trace")
	require.NotNil(t, traceFlag)
	assert.Equal(t, "false", traceFlag.DefValue)
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	portFlag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, portFlag)
	assert.Equal(t, "p", portFlag.Shorthand)
	assert.Equal(t, "4444", portFlag.DefValue)
}

// seedDataDir saves the users and orders fixtures into a temp data directory.
func seedDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	c := catalog.New(dir, "")
	require.NoError(t, c.Put(testutil.CreateUsersTable()))
	require.NoError(t, c.Put(testutil.CreateOrdersTable()))
	require.NoError(t, c.SaveAll())
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestQuery_JSON(t *testing.T) {
	dir := seedDataDir(t)

	out, err := execute(t, "-d", dir, "--format", "json",
		"query", "SELECT users.username, orders.product FROM users JOIN orders ON users.id = orders.user_id ORDER BY orders.product")
	require.NoError(t, err)

	var res engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"username", "product"}, res.Columns)
	assert.Equal(t, [][]any{
		{"bob", "Keyboard"},
		{"alice", "Laptop"},
		{"alice", "Mouse"},
	}, res.Rows)
	assert.NotEmpty(t, res.ID)
}

func TestQuery_Table(t *testing.T) {
	dir := seedDataDir(t)

	out, err := execute(t, "-d", dir, "query", "SELECT username FROM users WHERE id = 2")
	require.NoError(t, err)
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "(1 row)")
}

func TestQuery_Text(t *testing.T) {
	dir := seedDataDir(t)

	out, err := execute(t, "-d", dir, "--format", "text", "--delimiter", ";",
		"query", "SELECT users.id, users.username FROM users WHERE users.id = 3")
	require.NoError(t, err)
	assert.Equal(t, "id;username\n3;charlie\n", out)
}

func TestQuery_OutFile(t *testing.T) {
	dir := seedDataDir(t)
	target := filepath.Join(t.TempDir(), "result.tbl")

	out, err := execute(t, "-d", dir, "query", "--out", target, "SELECT orders.product FROM orders WHERE orders.user_id = 1")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 rows")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "product\nLaptop\nMouse\n", string(data))
}

func TestQuery_Errors(t *testing.T) {
	dir := seedDataDir(t)

	_, err := execute(t, "-d", dir, "query", "SELECT * FROM nowhere")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "cannot resolve table nowhere")

	_, err = execute(t, "-d", dir, "--format", "xml", "query", "SELECT * FROM users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	_, err = execute(t, "-d", dir, "--config", filepath.Join(dir, "missing.yaml"), "query", "SELECT * FROM users")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestQuery_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	c := catalog.New(dir, "|")
	require.NoError(t, c.Put(testutil.CreateUsersTable()))
	require.NoError(t, c.SaveAll())

	cfgPath := filepath.Join(t.TempDir(), "gridtable.yaml")
	cfg := "data:\n  dir: " + dir + "\ninterchange:\n  delimiter: \"|\"\n  header: false\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	out, err := execute(t, "--config", cfgPath, "--format", "text", "query", "SELECT email FROM users WHERE username = 'alice'")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com\n", out)
}

func TestShow(t *testing.T) {
	dir := seedDataDir(t)

	out, err := execute(t, "-d", dir, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "orders")
	assert.Contains(t, out, "users")

	out, err = execute(t, "-d", dir, "show", "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "user_id")
	assert.Contains(t, out, "(4 rows)")
}

func TestImport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	src := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(src, []byte("id,name\n1,ann\n2,ben\n"), 0o644))

	out, err := execute(t, "-d", dir, "--delimiter", ",", "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported people: 2 rows, 2 columns")

	_, err = os.Stat(filepath.Join(dir, "people"+catalog.Extension))
	require.NoError(t, err)

	out, err = execute(t, "-d", dir, "--delimiter", ",", "--format", "json", "query", "SELECT name FROM people WHERE id = 2")
	require.NoError(t, err)
	var res engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, [][]any{{"ben"}}, res.Rows)
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	out, err := execute(t, "-d", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "orders.tbl, users.tbl")

	out, err = execute(t, "-d", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to do")

	out, err = execute(t, "-d", dir, "--format", "json",
		"query", "SELECT users.username, orders.product FROM users JOIN orders ON users.id = orders.user_id ORDER BY orders.product DESC")
	require.NoError(t, err)
	var res engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, [][]any{
		{"alice", "Mouse"},
		{"dana", "Monitor"},
		{"alice", "Laptop"},
		{"bob", "Keyboard"},
	}, res.Rows)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ExitFailure, GetExitCode(os.ErrNotExist))

	wrapped := WrapExitError(ExitFailure, "query failed", os.ErrNotExist)
	assert.ErrorIs(t, wrapped, os.ErrNotExist)
	assert.Equal(t, "query failed: file does not exist", wrapped.Error())
}
