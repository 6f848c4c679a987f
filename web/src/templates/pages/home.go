package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/dcapal/dcapal-web/internal/routes"
)

// HomeContent is the landing page.
func HomeContent() cmp.Node {
	return g.Div(
		g.Class("card"),
		g.H1(cmp.Text("Dollar cost averaging made easy")),
		g.P(cmp.Text("Build your portfolio, set your target allocation and let DCA-Pal tell you what to buy with your next contribution.")),
		g.P(g.A(g.Class("btn"), g.Href("/allocate"), cmp.Text("Start allocating"))),
		g.H2(cmp.Text("Try a demo portfolio")),
		g.Ul(cmp.Map(routes.DemoPortfolios, func(id string) cmp.Node {
			return g.Li(g.A(g.Href(routes.DemoPath(id)), cmp.Text(routes.DemoTitle(id))))
		})),
	)
}
