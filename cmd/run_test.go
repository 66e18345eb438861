package cmd

import (
	"strings"
	"testing"

	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestReadTurnFile_YAML(t *testing.T) {
	input := `
turn_id: t1
calls:
  - tool: read_file
    args:
      file_path: main.go
  - id: w1
    tool: query
    server: db
    args: {sql: "select 1"}
`
	turnID, reqs, err := readTurnFile(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "t1", turnID)
	require.Len(t, reqs, 2)

	assert.Equal(t, "call_1", reqs[0].ID)
	assert.Equal(t, "read_file", reqs[0].ToolName)
	assert.Equal(t, "main.go", reqs[0].Args["file_path"])
	assert.Equal(t, 1, reqs[0].Sequence)
	assert.Equal(t, "t1", reqs[0].TurnID)

	assert.Equal(t, "w1", reqs[1].ID)
	assert.Equal(t, "db/query", reqs[1].QualifiedName())
	assert.Equal(t, 2, reqs[1].Sequence)
}

func TestReadTurnFile_JSON(t *testing.T) {
	turnID, reqs, err := readTurnFile(strings.NewReader(`{"calls": [{"tool": "list_directory", "args": {"path": "."}}]}`))
	require.NoError(t, err)
	assert.NotEmpty(t, turnID)
	require.Len(t, reqs, 1)
	assert.Equal(t, turnID, reqs[0].TurnID)
	assert.Equal(t, ".", reqs[0].Args["path"])
}

func TestReadTurnFile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no calls", input: "calls: []\n"},
		{name: "missing tool", input: "calls:\n  - args: {path: .}\n"},
		{name: "malformed", input: "calls: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := readTurnFile(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "0123456789ab", shortHash("0123456789abcdef"))
	assert.Equal(t, "abc", shortHash("abc"))
}
