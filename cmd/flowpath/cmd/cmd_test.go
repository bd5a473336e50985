package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/flowpath/internal/domain"
	"github.com/vanshika/flowpath/internal/flowfile"
	"github.com/vanshika/flowpath/internal/pathfinder"
)

func writeFlow(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, flowfile.WriteFile(path, []domain.Element{
		domain.NodeElement("n1", "Start"),
		domain.NodeElement("n2", "Mid"),
		domain.NodeElement("n3", "End"),
		domain.EdgeElement("e1", "n1", "n2", 2),
		domain.EdgeElement("e2", "n2", "n3", 3),
		domain.EdgeElement("e3", "n1", "n3", 10),
	}))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPathCommand_Text(t *testing.T) {
	flow := writeFlow(t, "flow.json")

	out, err := run(t, "path", "--flow", flow, "--from", "n1", "--to", "n3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2, out)
	assert.Regexp(t, `Start\s*->\s*Mid\s*->\s*End`, lines[0])
	assert.Contains(t, lines[1], "distance 5, 2 hops")
}

func TestPathCommand_JSONFromYAML(t *testing.T) {
	flow := writeFlow(t, "flow.yaml")

	out, err := run(t, "path", "-f", flow, "--from", "n1", "--to", "n3", "-o", "json")
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "found", payload["status"])
	assert.Equal(t, []any{"Start", "Mid", "End"}, payload["path"])
	assert.Equal(t, 5.0, payload["distance"])
}

func TestPathCommand_UnreachableIsNotAnError(t *testing.T) {
	flow := writeFlow(t, "flow.json")

	out, err := run(t, "path", "--flow", flow, "--from", "n3", "--to", "n1")
	require.NoError(t, err)
	assert.Equal(t, "No path found", strings.TrimSpace(out))

	out, err = run(t, "path", "--flow", flow, "--from", "n3", "--to", "n1", "-o", "json")
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, map[string]any{"status": "unreachable", "message": "No path found"}, payload)
}

func TestPathCommand_Errors(t *testing.T) {
	flow := writeFlow(t, "flow.json")

	_, err := run(t, "path", "--flow", flow, "--from", "default", "--to", "n1")
	require.ErrorIs(t, err, pathfinder.ErrInvalidSelection)

	_, err = run(t, "path", "--from", "n1", "--to", "n3")
	require.Error(t, err)

	_, err = run(t, "path", "--flow", flow, "--from", "n1")
	require.Error(t, err)

	_, err = run(t, "path", "--flow", flow, "--from", "n1", "--to", "n3", "-o", "xml")
	require.Error(t, err)
}

func TestNodesCommand(t *testing.T) {
	flow := writeFlow(t, "flow.json")

	out, err := run(t, "nodes", "--flow", flow)
	require.NoError(t, err)
	assert.Contains(t, out, "Start (n1)")
	assert.Contains(t, out, "Choose a starting node (default)")
	assert.Contains(t, out, "Choose an ending node (default)")

	out, err = run(t, "nodes", "--flow", flow, "--output", "json")
	require.NoError(t, err)
	var payload optionsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Start, 4)
	assert.Equal(t, optionJSON{Value: "n2", Text: "Mid"}, payload.Start[1])
}

func TestRenderPath_SelfPath(t *testing.T) {
	var buf bytes.Buffer
	outcome := domain.PathOutcome{
		Status: domain.PathFound,
		Nodes:  []domain.PathNode{{ID: "a", Label: "Only"}},
	}
	require.NoError(t, renderPath(&buf, outputText, outcome))
	assert.NotContains(t, buf.String(), "->")
	assert.Contains(t, buf.String(), "distance 0, 0 hops")

	buf.Reset()
	require.NoError(t, renderPath(&buf, outputJSON, outcome))
	var payload map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, 0.0, payload["distance"])
	assert.Equal(t, 0.0, payload["hops"])
	assert.Equal(t, []any{"Only"}, payload["path"])
}
