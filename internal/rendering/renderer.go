// Package rendering turns templ components and gomponents nodes into HTML
// for echo.
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// node is the render method of a gomponents node.
type node interface {
	Render(w io.Writer) error
}

// UniversalRenderer is the echo.Renderer of the application. Handlers pass
// the component as the data argument of c.Render; the template name is
// ignored.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a new UniversalRenderer instance.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

// Write renders component to w. Templ components receive ctx; gomponents
// nodes render without one.
func (r *UniversalRenderer) Write(ctx context.Context, w io.Writer, component any) error {
	switch v := component.(type) {
	case templ.Component:
		return v.Render(ctx, w)
	case node:
		return v.Render(w)
	default:
		return fmt.Errorf("unsupported component type %T", component)
	}
}

// Bytes renders component outside of a response.
func (r *UniversalRenderer) Bytes(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(ctx, &buf, component); err != nil {
		return nil, fmt.Errorf("render component: %w", err)
	}
	return buf.Bytes(), nil
}

// Render implements echo.Renderer. echo buffers the output and only
// commits the response when rendering succeeded.
func (r *UniversalRenderer) Render(w io.Writer, _ string, data any, c echo.Context) error {
	ctx := c.Request().Context()
	if err := r.Write(ctx, w, data); err != nil {
		slog.ErrorContext(ctx, "Failed to render component", "path", c.Request().URL.Path, "error", err)
		return err
	}
	return nil
}
