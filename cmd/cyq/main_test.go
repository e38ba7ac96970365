package main

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/gopher-graph/src/cypher"
	"github.com/seuros/gopher-graph/src/driver"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// unsetURL clears CYQ_URL for the test and restores it afterwards.
func unsetURL(t *testing.T) {
	t.Setenv(urlEnv, "")
	require.NoError(t, os.Unsetenv(urlEnv))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := newRootCommand(&rootOptions{})

	for _, name := range []string{"build", "lint", "fmt", "run", "ping", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootPersistentFlags(t *testing.T) {
	cmd := newRootCommand(&rootOptions{})

	flags := map[string]string{
		"url":       "",
		"log-level": "off",
		"log-json":  "false",
		"telemetry": "false",
		"env-file":  "",
	}
	for name, def := range flags {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, def, flag.DefValue, name)
	}
}

func TestRunCommandFlags(t *testing.T) {
	cmd := newRootCommand(&rootOptions{})
	run, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	assert.Equal(t, "table", run.Flags().Lookup("format").DefValue)
	assert.Equal(t, "0s", run.Flags().Lookup("timeout").DefValue)
	assert.NotNil(t, run.Flags().Lookup("doc"))
	assert.NotNil(t, run.Flags().Lookup("read"))
}

func TestBuildCommand(t *testing.T) {
	code, out, stderr := runCLI(t, "build", "testdata/friends.yaml")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t,
		"MATCH (you:Person {name: \"You\"}) CREATE (you)-[:friend]->(them:Person {name: \"Them\"}) RETURN you, them;\n",
		out)
}

func TestBuildCommandMissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, "build", "testdata/nope.yaml")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Cannot read testdata/nope.yaml")
}

func TestLoadDocumentKeepsCause(t *testing.T) {
	_, err := loadDocument(nil, "testdata/nope.yaml")

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.code)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestBuildCommandInvalidDocument(t *testing.T) {
	path := writeFile(t, "bad.yaml", "query:\n  - match: []\n    create: []\n")
	code, _, stderr := runCLI(t, "build", path)
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stderr)
}

func TestLintCommand(t *testing.T) {
	good := writeFile(t, "good.cypher", "MATCH (n:User) RETURN n.name;")
	code, out, _ := runCLI(t, "lint", good)
	assert.Equal(t, 0, code)
	assert.Equal(t, good+": OK\n", out)

	bad := writeFile(t, "bad.cypher", "MATCH (n:User RETURN n")
	code, _, stderr := runCLI(t, "lint", bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Syntax error in "+bad)
}

func TestLintRequiresOneArgument(t *testing.T) {
	code, _, _ := runCLI(t, "lint")
	assert.Equal(t, 1, code)
}

func TestFmtCommand(t *testing.T) {
	path := writeFile(t, "q.cypher", "match (n:User) where n.age >= 30 return n")

	code, out, stderr := runCLI(t, "fmt", path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "MATCH (n:User) WHERE n.age >= 30 RETURN n;\n", out)

	code, out, _ = runCLI(t, "fmt", "--inspect", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "1. MATCH\n")
	assert.Contains(t, out, "2. WHERE\n")
	assert.Contains(t, out, "3. RETURN\n")
}

func TestRunRequiresURL(t *testing.T) {
	unsetURL(t)

	code, _, stderr := runCLI(t, "run", "--query", "RETURN 1;")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Missing --url")
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"run", "--format", "xml", "--query", "RETURN 1;"}, "Unknown --format"},
		{"two sources", []string{"run", "--query", "RETURN 1;", "--doc", "testdata/friends.yaml"}, "only one of"},
		{"empty query", []string{"run", "--query", " ; "}, "Query is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestEnvFileSuppliesURL(t *testing.T) {
	unsetURL(t)
	env := writeFile(t, ".env", "CYQ_URL=ftp://localhost:21\n")

	code, _, stderr := runCLI(t, "--env-file", env, "ping")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unable to resolve connection url")
}

func TestMissingEnvFile(t *testing.T) {
	code, _, stderr := runCLI(t, "--env-file", "/nonexistent/.env", "version")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Cannot load env file")
}

func TestVersionCommand(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "cyq version "+driver.Version())
	assert.Contains(t, out, driver.UserAgent())
}

func TestDriverConfigFromFlags(t *testing.T) {
	var buf bytes.Buffer

	silent := (&rootOptions{LogLevel: "off"}).driverConfig()
	assert.IsType(t, &driver.NoOpLogger{}, silent.Logging.Logger)
	assert.False(t, silent.Observability.EnableTracing)

	jsonCfg := (&rootOptions{LogLevel: "debug", LogJSON: true, Telemetry: true, stderr: &buf}).driverConfig()
	assert.IsType(t, &driver.JSONLogger{}, jsonCfg.Logging.Logger)
	assert.True(t, jsonCfg.Observability.EnableMetrics)

	console := (&rootOptions{LogLevel: "info", stderr: &buf}).driverConfig()
	console.Logging.Logger.Info("hello")
	assert.Contains(t, buf.String(), "INFO [gopher-graph] hello")
}

func TestWriteTable(t *testing.T) {
	records := []cypher.Record{
		{"n": cypher.NodeValue{ElementID: "4:db:1", Labels: []string{"Person"}, Props: map[string]interface{}{"name": "You"}}, "count": int64(2)},
		{"n": nil, "count": int64(0)},
	}

	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, columns(nil, records), records))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "count  n", lines[0])
	assert.Equal(t, `2      (4:db:1:Person {"name":"You"})`, lines[1])
	assert.Equal(t, "0      null", lines[2])
}

func TestColumnsPreferServerOrder(t *testing.T) {
	records := []cypher.Record{{"a": 1, "b": 2}}
	assert.Equal(t, []string{"b", "a"}, columns([]string{"b", "a"}, records))
	assert.Equal(t, []string{"a", "b"}, columns(nil, records))
	assert.Empty(t, columns(nil, nil))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONArray(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	records := []cypher.Record{{"n": int64(1)}, {"n": int64(2)}}
	require.NoError(t, writeJSONLines(&buf, records))
	assert.Equal(t, "{\"n\":1}\n{\"n\":2}\n", buf.String())
}

func TestStringifyValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, "null"},
		{"text", "text"},
		{true, "true"},
		{int64(3), "3"},
		{[]interface{}{"a", int64(1)}, `["a",1]`},
		{cypher.NodeValue{ElementID: "4:db:2"}, "(4:db:2)"},
		{cypher.RelationshipValue{ElementID: "5:db:1", Type: "KNOWS"}, "[5:db:1:KNOWS]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stringifyValue(tt.in))
	}
}
