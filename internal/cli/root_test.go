package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/morphdict/internal/cli/config"
	"github.com/leapstack-labs/morphdict/internal/testutil"
)

type project struct {
	src   string
	out   string
	state string
}

func newProject(t *testing.T) project {
	t.Helper()
	root := t.TempDir()
	p := project{
		src:   filepath.Join(root, "dict"),
		out:   filepath.Join(root, "build"),
		state: filepath.Join(root, ".morphdict", "catalog.db"),
	}
	testutil.WriteDictionary(t, p.src)
	return p
}

// run executes the CLI with the project's paths and returns stdout.
func (p project) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	cfgFile = ""

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args,
		"--source-dir", p.src,
		"--output-dir", p.out,
		"--state", p.state,
		"--unknown-encoding", "utf-8",
	))
	err := cmd.Execute()
	t.Log(stderr.String())
	return stdout.String(), err
}

func TestRoot_BuildInspectHistory(t *testing.T) {
	p := newProject(t)

	out, err := p.run(t, "build", "--output", "json")
	require.NoError(t, err)

	var summary struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Counts struct {
			LexiconEntries  int `json:"lexicon_entries"`
			UnknownEntries  int `json:"unknown_entries"`
			DiagnosticCount int `json:"diagnostic_count"`
		} `json:"counts"`
		Diagnostics []struct {
			Artifact string `json:"artifact"`
			Line     int    `json:"line"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "completed", summary.Status)
	assert.Equal(t, 3, summary.Counts.LexiconEntries)
	assert.Equal(t, 3, summary.Counts.UnknownEntries)
	require.Len(t, summary.Diagnostics, 1)
	assert.Equal(t, "connection", summary.Diagnostics[0].Artifact)
	assert.Equal(t, 4, summary.Diagnostics[0].Line)

	t.Run("inspect manifest", func(t *testing.T) {
		out, err := p.run(t, "inspect", "--output", "markdown")
		require.NoError(t, err)
		assert.Contains(t, out, "# Manifest")
		assert.Contains(t, out, summary.ID)
		assert.Contains(t, out, "| dialect | ipadic |")
	})

	t.Run("inspect lookup", func(t *testing.T) {
		out, err := p.run(t, "inspect", "もも", "--output", "json")
		require.NoError(t, err)

		var records []struct {
			Surface  string   `json:"surface"`
			Cost     int      `json:"cost"`
			Features []string `json:"features"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &records))
		require.Len(t, records, 1)
		assert.Equal(t, 7219, records[0].Cost)
		assert.Equal(t, "名詞", records[0].Features[0])
	})

	t.Run("inspect unknown category", func(t *testing.T) {
		out, err := p.run(t, "inspect", "--category", "ALPHA", "--output", "markdown")
		require.NoError(t, err)
		assert.Contains(t, out, "13398")
	})

	t.Run("classify", func(t *testing.T) {
		out, err := p.run(t, "classify", "a漢", "--output", "json")
		require.NoError(t, err)

		var chars []struct {
			CodePoint string `json:"code_point"`
			Category  string `json:"category"`
			Invoke    bool   `json:"invoke"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &chars))
		require.Len(t, chars, 2)
		assert.Equal(t, "U+0061", chars[0].CodePoint)
		assert.Equal(t, "ALPHA", chars[0].Category)
		assert.True(t, chars[0].Invoke)
		assert.Equal(t, "DEFAULT", chars[1].Category)
	})

	t.Run("history", func(t *testing.T) {
		out, err := p.run(t, "history", "--output", "markdown")
		require.NoError(t, err)
		assert.Contains(t, out, summary.ID)
		assert.Contains(t, out, "completed")

		out, err = p.run(t, "history", summary.ID, "--output", "markdown")
		require.NoError(t, err)
		assert.Contains(t, out, "## Diagnostics")
		assert.Contains(t, out, "matrix.def:4")
	})
}

func TestRoot_BuildFailure(t *testing.T) {
	p := newProject(t)
	testutil.WriteFile(t, p.src, "matrix.def", "not a header")

	out, err := p.run(t, "build", "--output", "markdown")
	require.Error(t, err)
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "error (format)")
}

func TestRoot_InvalidConfig(t *testing.T) {
	p := newProject(t)

	_, err := p.run(t, "build", "--dialect", "jumandic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dialect")
}

func TestRoot_InspectWithoutBuild(t *testing.T) {
	p := newProject(t)

	_, err := p.run(t, "inspect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "morphdict build")
}

func TestRoot_Version(t *testing.T) {
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "morphdict v"+Version)
}

func TestRoot_Completion(t *testing.T) {
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"completion", "bash"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "morphdict")
}
