package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRendererRender(t *testing.T) {
	data := Dataset{
		Title:   "ignored in csv",
		Headers: []string{"Name", "Value"},
		Rows: [][]string{
			{"Ada", "80.0"},
			{"Bob", "N/A"},
		},
	}

	out, err := NewCSVRenderer().Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Value", lines[0])
	assert.Equal(t, "Ada,80.0", lines[1])
	assert.NotContains(t, string(out), "ignored in csv")
}

func TestCSVRendererQuoting(t *testing.T) {
	data := Dataset{
		Headers: []string{"Name", "Notes"},
		Rows:    [][]string{{"Ada", `said "hello", left early`}},
	}

	out, err := NewCSVRenderer().Render(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"said ""hello"", left early"`)
}

func TestCSVRendererRequiresHeaders(t *testing.T) {
	_, err := NewCSVRenderer().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFRendererRender(t *testing.T) {
	data := Dataset{
		Title:   "Class Attendance Report",
		Headers: []string{"Name", "Value"},
		Rows:    [][]string{{"Ada", "80.0"}},
	}

	out, err := NewPDFRenderer().Render(data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
