package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// DemoContent introduces a demo portfolio before it is opened in the
// allocator.
func DemoContent(id, title string) cmp.Node {
	return g.Div(
		g.Class("card"),
		cmp.Attr("data-demo", id),
		g.H1(cmp.Textf("Demo: %s", title)),
		g.P(cmp.Text("This is a sample portfolio. Open it in the allocator to see how DCA-Pal splits a new contribution across its assets.")),
		g.P(g.A(g.Class("btn"), g.Href("/allocate?demo="+id), cmp.Text("Open in allocator"))),
	)
}
