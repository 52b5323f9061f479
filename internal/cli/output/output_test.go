package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want Mode
	}{
		{mode: "", want: ModeMarkdown},
		{mode: ModeAuto, want: ModeMarkdown},
		{mode: ModeText, want: ModeText},
		{mode: ModeJSON, want: ModeJSON},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_Table(t *testing.T) {
	header := []string{"category", "invoke"}
	rows := [][]any{{"KANJI", false}, {"ALPHA", true}}

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		NewRenderer(&buf, &buf, ModeMarkdown).Table(header, rows)
		out := buf.String()
		assert.Contains(t, out, "| category | invoke |")
		assert.Contains(t, out, "| KANJI | false |")
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		NewRenderer(&buf, &buf, ModeText).Table(header, rows)
		out := buf.String()
		assert.Contains(t, out, "CATEGORY")
		assert.Contains(t, out, "ALPHA")
		assert.Contains(t, out, "┌")
	})
}

func TestRenderer_HeaderAndJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeMarkdown)
	r.Header(2, "Manifest")
	assert.Contains(t, buf.String(), "## Manifest")

	buf.Reset()
	r = NewRenderer(&buf, &buf, ModeJSON)
	r.Header(1, "ignored")
	require.NoError(t, r.JSON(map[string]int{"entries": 3}))
	assert.NotContains(t, buf.String(), "ignored")
	assert.JSONEq(t, `{"entries": 3}`, buf.String())
}

func TestRenderer_Warn(t *testing.T) {
	var out, errOut bytes.Buffer
	NewRenderer(&out, &errOut, ModeText).Warn("%d lines skipped", 2)
	assert.Empty(t, out.String())
	assert.Equal(t, "warning: 2 lines skipped\n", errOut.String())
}
