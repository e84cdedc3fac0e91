package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/tinydfa/dfa"
)

func runApp(t *testing.T, cfg Config) (string, error) {
	t.Helper()
	cfg.LogLevel = "debug"
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	err = NewApp(out, &bytes.Buffer{}, config).Run(context.Background())
	return out.String(), err
}

func TestApp_CountLimit(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, Config{Command: CommandCount, Regex: ".*A.*", Alphabet: "AB", Limit: 5, Modulus: 1_000_000_007})
	require.NoError(t, err)
	require.Equal(t, "0\t0\n1\t1\n2\t3\n3\t7\n4\t15\n", out)
}

func TestApp_CountLength(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, Config{
		Command:   CommandCount,
		Regex:     "(BB?)?(AA?BB?)*AAA+(BB?A+)*(BB?)?",
		Alphabet:  "AB",
		Length:    10_000_000,
		HasLength: true,
		Modulus:   1_000_000_007,
	})
	require.NoError(t, err)
	require.Equal(t, "10000000\t302889810\n", out)
}

func TestApp_CountLengthWideDFA(t *testing.T) {
	t.Parallel()

	base := Config{Command: CommandCount, Regex: ".*A..........", Alphabet: "AB", Modulus: 1_000_000_007}

	exact := base
	exact.Length, exact.HasLength = 20, true
	out, err := runApp(t, exact)
	require.NoError(t, err)
	require.Equal(t, "20\t524288\n", out)

	table := base
	table.Limit = 21
	all, err := runApp(t, table)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(all, "\n"+out), "last line of %q", all)
}

func TestApp_CountExact(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, Config{Command: CommandCount, Regex: "(A|B)*", Alphabet: "AB", Length: 100, HasLength: true})
	require.NoError(t, err)
	require.Equal(t, "100\t1267650600228229401496703205376\n", out)

	out, err = runApp(t, Config{Command: CommandCount, Regex: "(A|B)*", Alphabet: "AB", Limit: 3})
	require.NoError(t, err)
	require.Equal(t, "0\t1\n1\t2\n2\t4\n", out)
}

func TestApp_Match(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, Config{Command: CommandMatch, Regex: "(.A*.)*", Alphabet: "AB", Texts: []string{"AABAAB"}})
	require.NoError(t, err)
	require.Equal(t, "AABAAB\ttrue\n", out)

	out, err = runApp(t, Config{Command: CommandMatch, Regex: ".*AAA.*", Alphabet: "AB", Texts: []string{"AABAAB", "AAA"}})
	require.ErrorIs(t, err, ErrRejected)
	require.Equal(t, "AABAAB\tfalse\nAAA\ttrue\n", out)

	_, err = runApp(t, Config{Command: CommandMatch, Regex: "A*", Alphabet: "A", Texts: []string{"AB"}})
	require.ErrorIs(t, err, dfa.ErrInvalidInput)
}

func TestApp_EmptyPattern(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, Config{Command: CommandMatch, HasPattern: true, Texts: []string{""}})
	require.NoError(t, err)
	require.Equal(t, "\ttrue\n", out)

	out, err = runApp(t, Config{Command: CommandCount, HasPattern: true, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, "0\t1\n1\t0\n", out)
}

func TestApp_CompileError(t *testing.T) {
	t.Parallel()

	_, err := runApp(t, Config{Command: CommandMatch, Regex: "(A", Alphabet: "A"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unmatched '('")

	_, err = runApp(t, Config{Command: CommandCount, Regex: ".*A.....", Alphabet: "AB", Limit: 1, MaxStates: 8})
	require.ErrorIs(t, err, dfa.ErrStateLimitExceeded)
}

func TestApp_CompileAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "no_bbb.tdfa")
	_, err := runApp(t, Config{
		Command:  CommandCompile,
		Regex:    "(BB?)?(AA?BB?)*AAA+(BB?A+)*(BB?)?",
		Alphabet: "AB",
		Output:   path,
	})
	require.NoError(t, err)

	out, err := runApp(t, Config{Command: CommandCount, DFAPath: path, Length: 10, HasLength: true, Modulus: 1_000_000_007})
	require.NoError(t, err)
	require.Equal(t, "10\t326\n", out)

	_, err = runApp(t, Config{Command: CommandCount, DFAPath: filepath.Join(t.TempDir(), "missing"), Limit: 1})
	require.Error(t, err)
}

func TestApp_RunJob(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "job.hcl")
	src := `
modulus = 1000000007

pattern "scenario" {
  regex    = "A+B*C+|D*"
  alphabet = "ABCDE"
  lengths  = [5]
  texts    = ["ABC", "E"]
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0600))

	out, err := runApp(t, Config{Command: CommandRun, JobPath: path, Format: "json"})
	require.NoError(t, err)
	require.Contains(t, out, `"count": "11"`)
	require.Contains(t, out, `"text": "E"`)

	bad := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(bad, []byte(`pattern "x" {
  regex    = "(A"
  alphabet = "A"
}
`), 0600))
	_, err = runApp(t, Config{Command: CommandRun, JobPath: bad})
	require.ErrorIs(t, err, ErrRejected)
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{Command: "explode"})
	require.Error(t, err)

	_, err = NewConfig(Config{Command: CommandRun, JobPath: "j.hcl", MaxStates: -1})
	require.Error(t, err)

	cfg, err := NewConfig(Config{Command: CommandCompile, Regex: "A", Alphabet: "A", Output: "a.tdfa"})
	require.NoError(t, err)
	require.Equal(t, "a.tdfa", cfg.Output)
}
