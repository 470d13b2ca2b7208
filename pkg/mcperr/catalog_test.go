package mcperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestResultWirePrefix(t *testing.T) {
	res := Result(Newf(UnknownColumn, "column '%s' not found in dataset", "X"))
	require.True(t, res.IsError)
	require.Equal(t, "Error: column 'X' not found in dataset", resultText(t, res))
}

func TestErrorFallsBackToCatalogMessage(t *testing.T) {
	err := &Error{Code: NotLoaded}
	require.Equal(t, "no dataset loaded", err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(RenderFailed, "", cause)
	require.Equal(t, "disk on fire", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, MissingArguments, CodeOf(New(MissingArguments, "")))
	require.Equal(t, UnknownTool, CodeOf(fmt.Errorf("outer: %w", New(UnknownTool, ""))))
	require.Equal(t, Validation, CodeOf(errors.New("untyped")))
}
