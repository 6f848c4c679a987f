package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/dcapal/dcapal-web/internal/session"
	"github.com/dcapal/dcapal-web/internal/view"
	"github.com/dcapal/dcapal-web/web/src/templates/components"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the application shell. The navigation bar
// reflects the session carried by the render context.
func Base(title string, flashes view.FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body := view.Node(ctx, content)
		return document(title, session.From(ctx).Valid(), view.FromFlashes(flashes), body).Render(w)
	})
}

func document(title string, signedIn bool, notes []view.Notification, body cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(CalculateTitle(title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
				g.Script(g.Src(htmxScript), g.Defer()),
				g.Script(g.Src("/static/js/session.js"), g.Defer()),
			),
			g.Body(
				components.Nav(signedIn),
				components.Notifications(notes),
				g.Main(g.Class("container"), body),
			),
		),
	)
}
