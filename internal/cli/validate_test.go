package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestValidate_ValidDocument(t *testing.T) {
	path := writeFile(t, "ok.yaml", `version: 1
tracks:
  - clips:
      - asset: {type: image, src: a.png}
        start: 0
        length: 2
`)

	out, _, err := runCommand(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "1 tracks, 1 clips")
}

func TestValidate_JSONOutput(t *testing.T) {
	path := writeFile(t, "ok.yaml", `version: 1
tracks:
  - clips:
      - asset: {type: image, src: a.png}
        start: 0
        length: 2
`)

	out, _, err := runCommand(t, "--format", "json", "validate", path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidate_SchemaViolationFails(t *testing.T) {
	path := writeFile(t, "bad.yaml", `version: 1
tracks:
  - clips:
      - asset: {type: hologram}
        start: 0
        length: 2
`)

	out, _, err := runCommand(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "DOC_SCHEMA")
}

func TestValidate_MissingFileIsCommandError(t *testing.T) {
	_, _, err := runCommand(t, "validate", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestProjectSaveAndList(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "session.db")
	path := writeFile(t, "teaser.yaml", `version: 1
name: teaser
tracks:
  - clips:
      - asset: {type: image, src: a.png}
        start: 0
        length: 2
`)

	out, _, err := runCommand(t, "project", "save", path, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, `saved project "teaser"`)

	out, _, err = runCommand(t, "project", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "teaser")

	exported := filepath.Join(dir, "out.json")
	_, _, err = runCommand(t, "project", "export", "teaser", exported, "--db", db)
	require.NoError(t, err)
	assert.FileExists(t, exported)

	_, _, err = runCommand(t, "project", "delete", "teaser", "--db", db)
	require.NoError(t, err)

	out, _, err = runCommand(t, "project", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "no saved projects")
}
