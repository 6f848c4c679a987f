package routes

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DemoPortfolios are the ids of the demo portfolios shipped with the app.
var DemoPortfolios = []string{"60-40", "all-seasons", "mr-rip", "hodlx"}

var demoTitles = map[string]string{
	"60-40":  "60/40",
	"mr-rip": "Mr. RIP",
	"hodlx":  "HODLX",
}

// DemoPath returns the route of the demo portfolio id.
func DemoPath(id string) string {
	return "/demo/" + id
}

// DemoTitle returns a display title for a demo portfolio id. Unknown ids
// are title-cased word by word.
func DemoTitle(id string) string {
	if t, ok := demoTitles[id]; ok {
		return t
	}
	return cases.Title(language.English).String(strings.ReplaceAll(id, "-", " "))
}
