package pages

import (
	"fmt"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// PortfolioAsset is one row of a portfolio summary.
type PortfolioAsset struct {
	Symbol       string
	Name         string
	Qty          float64
	TargetWeight float64
}

// PortfolioSummary is the part of a portfolio the allocator screen shows
// before the allocator engine takes over in the browser.
type PortfolioSummary struct {
	Name     string
	QuoteCcy string
	Assets   []PortfolioAsset
}

// AllocateContent is the allocator screen. A nil portfolio shows the empty
// state.
func AllocateContent(pf *PortfolioSummary) cmp.Node {
	return g.Div(
		g.Class("card"),
		g.ID("allocator"),
		g.H1(cmp.Text("Allocate")),
		cmp.If(pf == nil, g.P(
			cmp.Text("Start from an empty portfolio or pick a "),
			g.A(g.Href("/"), cmp.Text("demo portfolio")),
			cmp.Text("."),
		)),
		cmp.Iff(pf != nil, func() cmp.Node { return portfolioTable(*pf) }),
	)
}

func portfolioTable(pf PortfolioSummary) cmp.Node {
	return g.Section(
		g.H2(cmp.Text(pf.Name)),
		cmp.If(pf.QuoteCcy != "", g.P(g.Class("hint"), cmp.Textf("Quote currency: %s", pf.QuoteCcy))),
		g.Table(
			g.THead(g.Tr(
				g.Th(cmp.Text("Symbol")),
				g.Th(cmp.Text("Name")),
				g.Th(cmp.Text("Quantity")),
				g.Th(cmp.Text("Target weight")),
			)),
			g.TBody(cmp.Map(pf.Assets, func(a PortfolioAsset) cmp.Node {
				return g.Tr(
					g.Td(cmp.Text(a.Symbol)),
					g.Td(cmp.Text(a.Name)),
					g.Td(cmp.Text(fmt.Sprintf("%g", a.Qty))),
					g.Td(cmp.Textf("%g%%", a.TargetWeight)),
				)
			})),
		),
	)
}
