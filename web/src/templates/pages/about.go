package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// AboutContent is the main content of the About page.
func AboutContent() cmp.Node {
	return g.Div(
		g.Class("card"),
		g.H1(cmp.Text("About DCA-Pal")),
		g.P(cmp.Text("DCA-Pal helps long-term investors keep a portfolio on target. Describe the assets you hold and the weights you want, tell it how much you are about to invest, and it suggests how to split the money so every purchase moves the portfolio closer to its target allocation.")),
		g.Div(
			g.H2(cmp.Text("Dollar cost averaging")),
			g.P(cmp.Text("Investing a fixed amount at regular intervals smooths out the price you pay over time. Rebalancing with new money instead of selling keeps fees and taxes down.")),
		),
		g.Div(
			g.H2(cmp.Text("Your data")),
			g.P(cmp.Text("Portfolios live in your browser unless you sign in. Signed in users keep their profile on the DCA-Pal backend and can edit it from the Profile page.")),
		),
		g.P(g.Class("hint"), cmp.Text("DCA-Pal is open source and free to use.")),
	)
}
