package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// UnderConstructionContent stands in for screens that are not built yet.
func UnderConstructionContent() cmp.Node {
	return g.Div(
		g.Class("card"),
		g.H1(cmp.Text("Under construction")),
		g.P(cmp.Text("We are working hard on this page. Come back soon!")),
		g.P(g.A(g.Href("/"), cmp.Text("Back to home"))),
	)
}

// NotFoundContent is rendered for paths no route matches.
func NotFoundContent(path string) cmp.Node {
	return g.Div(
		g.Class("card"),
		g.H1(cmp.Text("Page not found")),
		g.P(cmp.Textf("There is nothing at %s.", path)),
		g.P(g.A(g.Href("/"), cmp.Text("Back to home"))),
	)
}

// ErrorContent is the fallback rendered when a screen fails.
func ErrorContent(message string) cmp.Node {
	return g.Div(
		g.Class("card"),
		g.Role("alert"),
		g.H1(cmp.Text("Oops!")),
		g.P(cmp.Text("Sorry, an unexpected error has occurred.")),
		cmp.If(message != "", g.P(g.Class("hint"), g.Em(cmp.Text(message)))),
		g.P(g.A(g.Href("/"), cmp.Text("Back to home"))),
	)
}
