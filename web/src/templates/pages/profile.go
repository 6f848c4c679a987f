package pages

import (
	"net/url"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/dcapal/dcapal-web/internal/profile"
	"github.com/dcapal/dcapal-web/web/src/templates/components"
)

var fieldLabels = map[string]string{
	profile.FieldName:      "Full name",
	profile.FieldBirthDate: "Birth Date",
	profile.FieldEmail:     "Email",
}

var fieldTypes = map[string]string{
	profile.FieldName:      "text",
	profile.FieldBirthDate: "date",
	profile.FieldEmail:     "email",
}

// Profile is the profile screen of a signed in user.
func Profile(screen *profile.Screen, loadFailed bool) cmp.Node {
	return g.Div(
		g.Class("card"),
		components.PersonalDataMenu("/profile"),
		cmp.If(loadFailed, g.P(g.Class("hint"), g.Role("alert"), cmp.Text("We could not load your profile. Try again later."))),
		ProfileCard(screen),
	)
}

// ProfileCard is the profile form. htmx swaps it in place after every
// interaction; without JavaScript the buttons post the whole form.
func ProfileCard(screen *profile.Screen) cmp.Node {
	editing := screen.State.Editing
	return g.Form(
		g.ID("profile-card"),
		g.Method("post"), g.Action("/profile/save"),
		hx.Post("/profile/save"), hx.Target("this"), hx.Swap("outerHTML"),
		cmp.Attr("data-editing", boolString(editing)),
		cmp.Map(profile.Fields, func(field string) cmp.Node {
			return profileField(field, screen.Value(field), editing)
		}),
		g.Div(
			g.Class("actions"),
			cmp.If(editing, cmp.Group{
				g.Button(g.Class("btn secondary"), g.Type("submit"),
					cmp.Attr("formaction", "/profile/cancel"), hx.Post("/profile/cancel"),
					cmp.Text("Cancel")),
				g.Button(g.Class("btn"), g.Type("submit"), cmp.Text("Confirm")),
			}),
			cmp.If(!editing,
				g.Button(g.Class("btn"), g.Type("submit"),
					cmp.Attr("formaction", "/profile/edit"), hx.Post("/profile/edit"),
					cmp.Text("Edit")),
			),
		),
	)
}

func profileField(field, value string, editing bool) cmp.Node {
	id := "profile-" + field
	return g.Div(
		g.Class("field"),
		g.Label(g.For(id), cmp.Text(fieldLabels[field])),
		g.Input(
			g.ID(id), g.Name(field), g.Type(fieldTypes[field]), g.Value(value),
			cmp.If(!editing, g.ReadOnly()),
			cmp.If(editing, cmp.Group{
				hx.Post("/profile/field"), hx.Trigger("change"), hx.Swap("none"), hx.Include("this"),
			}),
		),
	)
}

// LoginPrompt replaces account screens for anonymous visitors.
func LoginPrompt(next string) cmp.Node {
	return g.Div(
		g.Class("card"),
		g.H1(cmp.Text("Sign in required")),
		g.P(cmp.Text("You need to be signed in to see this page.")),
		g.P(g.A(g.Class("btn"), g.Href("/login?next="+url.QueryEscape(next)), cmp.Text("Sign in"))),
	)
}

// InvestmentSettings is the sibling screen of the profile in the account
// area.
func InvestmentSettings() cmp.Node {
	return g.Div(
		g.Class("card"),
		components.PersonalDataMenu("/investment-settings"),
		g.H2(cmp.Text("Investment Settings")),
		g.P(cmp.Text("Investment preferences such as risk tolerance and investment horizon will be configurable here.")),
		g.P(g.Class("hint"), cmp.Text("Under construction.")),
	)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
