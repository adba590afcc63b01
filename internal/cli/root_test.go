package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeList writes one name per line to a .txt list file.
func writeList(t *testing.T, dir, name string, rows ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	var buf bytes.Buffer
	for _, r := range rows {
		buf.WriteString(r + "\n")
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "parrainage", cmd.Use)
	assert.Contains(t, cmd.Long, "mentors")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"programs"},
		{"derive"},
		{"generate"},
		{"sessions", "list"},
		{"sessions", "show"},
		{"sessions", "delete"},
		{"stats"},
		{"files", "list"},
		{"files", "delete"},
		{"test"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestGenerateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	genCmd, _, err := cmd.Find([]string{"generate"})
	require.NoError(t, err)

	for _, name := range []string{"mentors", "mentees", "program", "db", "out", "seed", "no-reports"} {
		assert.NotNil(t, genCmd.Flags().Lookup(name), "flag --%s", name)
	}
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "programs", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestConfigLoadFailure(t *testing.T) {
	_, _, err := execute(t, "programs", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestProgramsCommand(t *testing.T) {
	stdout, _, err := execute(t, "programs")
	require.NoError(t, err)

	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "EAIN")
	assert.Contains(t, stdout, "etta")
	assert.Contains(t, stdout, "Domain: istc.ci")
}

func TestProgramsCommand_ConfigJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parrainage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
domain: example.edu
programs:
  - code: info
    name: INFO
    full_name: Informatique
`), 0644))

	stdout, _, err := execute(t, "programs", "--config", path, "--format", "json")
	require.NoError(t, err)

	assert.Contains(t, stdout, `"status": "ok"`)
	assert.Contains(t, stdout, `"domain": "example.edu"`)
	assert.Contains(t, stdout, `"code": "info"`)
	assert.NotContains(t, stdout, "EAIN")
}
