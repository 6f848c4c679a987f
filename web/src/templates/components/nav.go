package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Nav is the top navigation bar.
func Nav(signedIn bool) cmp.Node {
	return g.Nav(
		g.Class("nav"),
		g.A(g.Class("brand"), g.Href("/"), cmp.Text("DCA-Pal")),
		g.A(g.Href("/allocate"), cmp.Text("Allocate")),
		g.A(g.Href("/docs"), cmp.Text("Docs")),
		g.A(g.Href("/about"), cmp.Text("About")),
		cmp.If(signedIn, cmp.Group{
			g.A(g.Href("/dashboard"), cmp.Text("Dashboard")),
			g.A(g.Href("/profile"), cmp.Text("Profile")),
			g.Form(
				g.Method("post"), g.Action("/logout"),
				g.Button(g.Class("btn secondary"), g.Type("submit"), cmp.Text("Logout")),
			),
		}),
		cmp.If(!signedIn, cmp.Group{
			g.A(g.Href("/login"), cmp.Text("Login")),
			g.A(g.Class("btn"), g.Href("/signup"), cmp.Text("Sign up")),
		}),
	)
}

// PersonalDataMenu switches between the screens of the account area.
func PersonalDataMenu(active string) cmp.Node {
	item := func(href, label string) cmp.Node {
		return g.Li(
			g.A(
				g.Href(href),
				cmp.If(href == active, g.Aria("current", "page")),
				cmp.Text(label),
			),
		)
	}
	return g.Details(
		g.Class("menu"),
		g.Summary(cmp.Text("Personal Data")),
		g.Ul(
			item("/profile", "Profile"),
			item("/investment-settings", "Investment Settings"),
		),
	)
}
