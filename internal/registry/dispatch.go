package registry

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/vinodismyname/mcpframe/internal/dataset"
	"github.com/vinodismyname/mcpframe/internal/plotting"
	"github.com/vinodismyname/mcpframe/internal/stats"
	"github.com/vinodismyname/mcpframe/pkg/mcperr"
	"github.com/vinodismyname/mcpframe/pkg/validation"
)

// ToolKind is the closed set of callable operations. Dispatch switches on
// the kind, not the wire name, so the compiler checks the branch set.
type ToolKind int

const (
	ToolPlot ToolKind = iota
	ToolAverage
)

// toolKinds maps wire names to variants at the registry boundary.
var toolKinds = map[string]ToolKind{
	"plot":    ToolPlot,
	"average": ToolAverage,
}

// KindForTool resolves a wire tool name to its variant.
func KindForTool(name string) (ToolKind, bool) {
	k, ok := toolKinds[name]
	return k, ok
}

// PlotInput declares the plot tool's argument contract. Kind's value set is
// enforced by plotting.ParseKind, not a validator tag, so the chart package
// stays the single authority on which kinds exist.
type PlotInput struct {
	Kind  string `json:"kind" validate:"required"`
	X     string `json:"x,omitempty"`
	Y     string `json:"y,omitempty"`
	Title string `json:"title,omitempty"`
}

// AverageInput declares the average tool's argument contract.
type AverageInput struct {
	Column string `json:"column" validate:"required"`
}

// Output is a tool result before transport encoding: display text plus an
// optional rendered chart.
type Output struct {
	Text string
	PNG  []byte
}

// Dispatcher validates tool arguments, runs the corresponding computation
// against the table, and packages results as typed content items. Every
// failure inside a call becomes a single "Error: ..." text item; raw faults
// never reach the transport layer.
type Dispatcher struct {
	store  *dataset.Store
	logger zerolog.Logger
}

// NewDispatcher constructs a Dispatcher bound to the table store.
func NewDispatcher(store *dataset.Store, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{store: store, logger: logger}
}

// Call is the transport edge of the dispatcher.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	out, err := d.call(ctx, name, args)
	if err != nil {
		d.logger.Debug().
			Str("tool", name).
			Str("code", string(mcperr.CodeOf(err))).
			Err(err).
			Msg("tool call failed")
		return mcperr.Result(err)
	}
	if out.PNG != nil {
		return mcp.NewToolResultImage(out.Text, base64.StdEncoding.EncodeToString(out.PNG), "image/png")
	}
	return mcp.NewToolResultText(out.Text)
}

// call is the typed internal boundary: a result or a *mcperr.Error.
func (d *Dispatcher) call(ctx context.Context, name string, args map[string]any) (*Output, error) {
	if len(args) == 0 {
		return nil, mcperr.New(mcperr.MissingArguments, "missing arguments")
	}
	kind, ok := KindForTool(name)
	if !ok {
		return nil, mcperr.Newf(mcperr.UnknownTool, "unknown tool: %s", name)
	}
	tbl, err := d.store.Get()
	if err != nil {
		return nil, mcperr.Wrap(mcperr.NotLoaded, "no dataset loaded", err)
	}

	switch kind {
	case ToolPlot:
		return d.plot(ctx, tbl, args)
	case ToolAverage:
		return d.average(tbl, args)
	}
	return nil, mcperr.Newf(mcperr.UnknownTool, "unknown tool: %s", name)
}

func (d *Dispatcher) average(tbl *dataset.Table, args map[string]any) (*Output, error) {
	var in AverageInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, mcperr.Wrap(mcperr.Validation, "invalid arguments", err)
	}
	if msg := validation.ValidateStruct(in); msg != "" {
		return nil, mcperr.New(mcperr.Validation, msg)
	}
	if !tbl.HasColumn(in.Column) {
		return nil, mcperr.Newf(mcperr.UnknownColumn, "column '%s' not found in dataset", in.Column)
	}
	mean, err := stats.ColumnMean(tbl, in.Column)
	if err != nil {
		code := mcperr.AnalysisFailed
		if errors.Is(err, stats.ErrNoNumericData) {
			code = mcperr.NoNumericData
		}
		return nil, mcperr.Wrap(code, "", err)
	}
	return &Output{Text: fmt.Sprintf("Average of %s: %s", in.Column, stats.FormatMean(mean))}, nil
}

func (d *Dispatcher) plot(ctx context.Context, tbl *dataset.Table, args map[string]any) (*Output, error) {
	var in PlotInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, mcperr.Wrap(mcperr.Validation, "invalid arguments", err)
	}
	if msg := validation.ValidateStruct(in); msg != "" {
		return nil, mcperr.New(mcperr.Validation, msg)
	}
	kind, err := plotting.ParseKind(in.Kind)
	if err != nil {
		return nil, mcperr.Newf(mcperr.InvalidPlotKind, "unsupported plot type: %s", in.Kind)
	}
	for _, col := range []string{in.X, in.Y} {
		if col != "" && !tbl.HasColumn(col) {
			return nil, mcperr.Newf(mcperr.UnknownColumn, "column '%s' not found in dataset", col)
		}
	}
	title := in.Title
	if title == "" {
		title = "Plot"
	}

	// A slow render blocks the call; the runtime middleware bounds it.
	select {
	case <-ctx.Done():
		return nil, mcperr.Wrap(mcperr.RenderFailed, "render cancelled", ctx.Err())
	default:
	}

	png, err := plotting.Render(tbl, plotting.Options{Kind: kind, X: in.X, Y: in.Y, Title: title})
	if err != nil {
		return nil, mcperr.Wrap(mcperr.RenderFailed, "", err)
	}
	return &Output{Text: fmt.Sprintf("Generated %s plot", in.Kind), PNG: png}, nil
}

// decodeArgs maps the raw argument object onto a typed input struct.
func decodeArgs(args map[string]any, dst any) error {
	b, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
