package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
)

// Component lifts a gomponents node into a templ.Component so page content
// can be handed to the layouts.
func Component(node cmp.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return node.Render(w)
	})
}

// Node embeds a templ component in a gomponents tree. gomponents renders
// without a context, so the render context is bound here.
func Node(ctx context.Context, c templ.Component) cmp.Node {
	return cmp.NodeFunc(func(w io.Writer) error {
		return c.Render(ctx, w)
	})
}
