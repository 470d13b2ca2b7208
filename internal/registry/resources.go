package registry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vinodismyname/mcpframe/internal/dataset"
)

// ResourceScheme is the reserved URI scheme for dataset resources.
const ResourceScheme = "memo"

// ShapeResourceURI addresses the single defined resource: the table's shape.
const ShapeResourceURI = "memo://shape"

// ErrUnsupportedScheme indicates a resource URI outside the memo scheme.
var ErrUnsupportedScheme = errors.New("unsupported URI scheme")

// ErrUnknownResource indicates a memo path with no registered resource.
var ErrUnknownResource = errors.New("unknown resource path")

// ShapeResource returns the static descriptor for the shape resource.
func ShapeResource() mcp.Resource {
	return mcp.NewResource(
		ShapeResourceURI,
		"Dataset Shape",
		mcp.WithResourceDescription("The shape of the loaded dataset"),
		mcp.WithMIMEType("text/plain"),
	)
}

// ReadShape resolves a resource URI against the store and renders the
// table's (rows, cols) pair. Unlike tool calls, failures here propagate to
// the transport as protocol-level errors rather than text items.
func ReadShape(store *dataset.Store, uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri)
	}
	if u.Scheme != ResourceScheme {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	path := strings.Trim(u.Host+u.Path, "/")
	if path != "shape" {
		return "", fmt.Errorf("%w: %s", ErrUnknownResource, path)
	}
	tbl, err := store.Get()
	if err != nil {
		return "", err
	}
	rows, cols := tbl.Shape()
	return fmt.Sprintf("(%d, %d)", rows, cols), nil
}

// RegisterShapeResource exposes the shape resource on the MCP server.
func RegisterShapeResource(s *server.MCPServer, store *dataset.Store) {
	s.AddResource(ShapeResource(), func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := ReadShape(store, req.Params.URI)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     text,
			},
		}, nil
	})
}
