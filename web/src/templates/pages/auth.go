package pages

import (
	"net/url"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/dcapal/dcapal-web/internal/view/dto/auth"
)

// Login renders the sign-in page.
func Login(data auth.LoginData) cmp.Node {
	return g.Div(
		g.Class("card"),
		g.H1(cmp.Text("Sign in")),
		providerButtons(data.Providers, data.Next),
		g.Form(
			g.Method("post"), g.Action("/login"),
			cmp.If(data.Next != "", g.Input(g.Type("hidden"), g.Name("next"), g.Value(data.Next))),
			emailField(data.Email),
			passwordField("password", "Password", "current-password"),
			g.Div(g.Class("actions"),
				g.Button(g.Class("btn"), g.Type("submit"), cmp.Text("Sign in")),
			),
		),
		g.P(g.Class("hint"),
			g.A(g.Href("/reset-password"), cmp.Text("Forgot your password?")),
			cmp.Text(" · "),
			g.A(g.Href("/signup"), cmp.Text("Don't have an account? Sign up")),
		),
	)
}

// SignUp renders the registration page.
func SignUp(data auth.SignUpData) cmp.Node {
	return g.Div(
		g.Class("card"),
		g.H1(cmp.Text("Sign up")),
		providerButtons(data.Providers, ""),
		g.Form(
			g.Method("post"), g.Action("/signup"),
			emailField(data.Email),
			passwordField("password", "Password", "new-password"),
			passwordField("password_confirm", "Confirm password", "new-password"),
			g.Div(g.Class("actions"),
				g.Button(g.Class("btn"), g.Type("submit"), cmp.Text("Sign up")),
			),
		),
		g.P(g.Class("hint"), g.A(g.Href("/login"), cmp.Text("Already have an account? Sign in"))),
	)
}

// ResetPassword renders the password recovery page in one of its three
// states.
func ResetPassword(data auth.ResetPasswordData) cmp.Node {
	w := data.Widget
	style := "--brand:" + w.BrandColor + ";--brand-accent:" + w.BrandAccent + ";--radius:" + w.ButtonRadius

	var body cmp.Node
	switch {
	case data.Verified:
		body = g.Form(
			g.Method("post"), g.Action("/reset-password/update"),
			passwordField("password", "New password", "new-password"),
			g.Div(g.Class("actions"),
				g.Button(g.Class("btn"), g.Type("submit"), cmp.Text("Update password")),
			),
		)
	case data.Sent:
		body = g.P(cmp.Text("Check your email for the password reset link."))
	default:
		body = cmp.Group{
			g.Form(
				g.Method("post"), g.Action("/reset-password"),
				emailField(data.Email),
				g.Div(g.Class("actions"),
					g.Button(g.Class("btn"), g.Type("submit"), cmp.Text("Send reset password instructions")),
				),
			),
			cmp.If(w.ShowLinks, g.P(g.Class("hint"), g.A(g.Href("/login"), cmp.Text("Already have an account? Sign in")))),
		}
	}

	return g.Div(
		g.Class("card"),
		g.Style(style),
		cmp.Attr("data-view", w.View),
		g.H1(cmp.Text("Forgot Your Password?")),
		cmp.If(!data.Verified, g.P(g.Class("hint"), cmp.Text("Enter your email address to receive a password reset link."))),
		body,
	)
}

func providerButtons(providers []string, next string) cmp.Node {
	if len(providers) == 0 {
		return nil
	}
	title := cases.Title(language.English)
	return g.Div(
		cmp.Map(providers, func(p string) cmp.Node {
			href := "/auth/" + p
			if next != "" {
				href += "?next=" + url.QueryEscape(next)
			}
			return g.A(g.Class("btn provider"), g.Href(href), cmp.Textf("Sign in with %s", title.String(p)))
		}),
		g.Hr(),
	)
}

func emailField(value string) cmp.Node {
	return g.Div(
		g.Class("field"),
		g.Label(g.For("email"), cmp.Text("Email address")),
		g.Input(g.ID("email"), g.Type("email"), g.Name("email"), g.Value(value), g.Required(), g.AutoComplete("email")),
	)
}

func passwordField(name, label, autocomplete string) cmp.Node {
	return g.Div(
		g.Class("field"),
		g.Label(g.For(name), cmp.Text(label)),
		g.Input(g.ID(name), g.Type("password"), g.Name(name), g.Required(), g.AutoComplete(autocomplete)),
	)
}
