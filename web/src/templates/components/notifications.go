package components

import (
	"strconv"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/dcapal/dcapal-web/internal/view"
)

// Notifications renders the toast container of a full page.
func Notifications(notes []view.Notification) cmp.Node {
	return g.Div(
		g.ID("notifications"),
		g.Aria("live", "polite"),
		cmp.Map(notes, Toast),
	)
}

// NotificationsOOB appends toasts to the page's container from an htmx
// response.
func NotificationsOOB(notes ...view.Notification) cmp.Node {
	return g.Div(
		g.ID("notifications"),
		hx.SwapOOB("beforeend"),
		cmp.Map(notes, Toast),
	)
}

// Toast renders a single notification.
func Toast(n view.Notification) cmp.Node {
	return g.Div(
		g.Class("toast "+string(n.Status)),
		g.Role("status"),
		cmp.Attr("data-duration", strconv.FormatInt(n.Duration.Milliseconds(), 10)),
		cmp.If(n.Closable, g.Button(g.Class("close"), g.Type("button"), g.Aria("label", "Close"), cmp.Text("×"))),
		g.Strong(cmp.Text(n.Title)),
		cmp.If(n.Description != "", g.P(cmp.Text(n.Description))),
	)
}
