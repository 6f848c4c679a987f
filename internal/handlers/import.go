package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/dcapal/dcapal-web/internal/api"
	"github.com/dcapal/dcapal-web/internal/domain"
	"github.com/dcapal/dcapal-web/internal/middleware"
	"github.com/dcapal/dcapal-web/internal/routes"
	"github.com/dcapal/dcapal-web/internal/view"
	"github.com/dcapal/dcapal-web/web/src/templates/pages"
)

// flashKeyImported carries the id of a freshly imported portfolio from
// /import to /allocate.
const flashKeyImported = "imported_portfolio"

// PortfolioHandler serves the allocator screen and the import flow.
type PortfolioHandler struct {
	importer domain.PortfolioImporter
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(importer domain.PortfolioImporter) *PortfolioHandler {
	return &PortfolioHandler{importer: importer}
}

// ImportGet fetches the portfolio named by ?p= and hands it to the
// allocator.
func (h *PortfolioHandler) ImportGet(c echo.Context) error {
	id := c.QueryParam("p")
	if id == "" {
		return c.Redirect(http.StatusSeeOther, "/allocate")
	}

	pf, err := h.importer.GetImportedPortfolio(c.Request().Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			view.SetNotification(c, view.Failure("Portfolio not found", "The imported portfolio does not exist or has expired."))
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return fmt.Errorf("import portfolio %s: %w", id, err)
	}

	summary, err := summarize(pf.Document)
	if err != nil {
		view.SetNotification(c, view.Failure("Invalid portfolio", err.Error()))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	view.SetFlashValue(c, flashKeyImported, id)
	view.SetNotification(c, view.Success("Portfolio imported", summary.Name))
	return c.Redirect(http.StatusSeeOther, "/allocate")
}

// AllocateGet renders the allocator, showing the portfolio imported just
// before, if any.
func (h *PortfolioHandler) AllocateGet(c echo.Context) error {
	ctx := c.Request().Context()
	title := "Allocate"
	var summary *pages.PortfolioSummary

	if id, ok := view.TakeFlashValue(c, flashKeyImported); ok {
		pf, err := h.importer.GetImportedPortfolio(ctx, id)
		if err == nil {
			summary, err = summarize(pf.Document)
		}
		if err != nil {
			middleware.FromContext(ctx).Warn("Failed to load imported portfolio", "id", id, "error", err)
		}
	}
	if demo := c.QueryParam("demo"); summary == nil && slices.Contains(routes.DemoPortfolios, demo) {
		summary = &pages.PortfolioSummary{Name: routes.DemoTitle(demo)}
		title = routes.DemoTitle(demo)
	}

	return renderPage(c, http.StatusOK, title, pages.AllocateContent(summary))
}

type portfolioDocument struct {
	Name     string `json:"name"`
	QuoteCcy string `json:"quoteCcy"`
	Assets   []struct {
		Symbol       string  `json:"symbol"`
		Name         string  `json:"name"`
		Qty          float64 `json:"qty"`
		TargetWeight float64 `json:"targetWeight"`
	} `json:"assets"`
}

func summarize(doc []byte) (*pages.PortfolioSummary, error) {
	var d portfolioDocument
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("malformed portfolio: %w", err)
	}

	s := &pages.PortfolioSummary{Name: d.Name, QuoteCcy: d.QuoteCcy}
	if s.Name == "" {
		s.Name = "Imported portfolio"
	}
	for _, a := range d.Assets {
		s.Assets = append(s.Assets, pages.PortfolioAsset{
			Symbol:       a.Symbol,
			Name:         a.Name,
			Qty:          a.Qty,
			TargetWeight: a.TargetWeight,
		})
	}
	return s, nil
}
