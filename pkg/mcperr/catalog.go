package mcperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Code defines a canonical tool error code used across the dispatcher.
type Code string

const (
	// Input
	MissingArguments Code = "MISSING_ARGUMENTS"
	UnknownTool      Code = "UNKNOWN_TOOL"
	Validation       Code = "VALIDATION"
	UnknownColumn    Code = "UNKNOWN_COLUMN"
	InvalidPlotKind  Code = "INVALID_PLOT_KIND"

	// Dataset state
	NotLoaded Code = "NOT_LOADED"

	// Computation
	NoNumericData  Code = "NO_NUMERIC_DATA"
	AnalysisFailed Code = "ANALYSIS_FAILED"
	RenderFailed   Code = "RENDER_FAILED"
)

// catalog maps codes to fallback messages used when an error carries none.
var catalog = map[Code]string{
	MissingArguments: "missing arguments",
	UnknownTool:      "unknown tool",
	Validation:       "invalid inputs",
	UnknownColumn:    "column not found in dataset",
	InvalidPlotKind:  "unsupported plot type",
	NotLoaded:        "no dataset loaded",
	NoNumericData:    "no numeric data",
	AnalysisFailed:   "analysis failed",
	RenderFailed:     "failed to render plot",
}

// Error is the typed failure carried across the dispatcher's internal
// boundary. Conversion to the user-visible "Error: ..." text form happens
// once, at the transport edge (see Result).
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = catalog[e.Code]
	}
	if msg == "" {
		msg = string(e.Code)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a typed tool error for the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf formats a message and returns a typed tool error for the code.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause to a typed tool error. An empty message
// falls back to the cause's text so library failures stay visible verbatim.
func Wrap(code Code, message string, err error) *Error {
	if message == "" && err != nil {
		message = err.Error()
	}
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the canonical code from an error chain, or Validation when
// the error is untyped.
func CodeOf(err error) Code {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return Validation
}

// Result converts any dispatcher failure into the single text error item the
// protocol contract requires. The session-facing form is always
// "Error: {message}"; raw faults never reach the transport layer.
func Result(err error) *mcp.CallToolResult {
	msg := "unknown error"
	if err != nil {
		msg = strings.TrimSpace(err.Error())
	}
	return mcp.NewToolResultError("Error: " + msg)
}
