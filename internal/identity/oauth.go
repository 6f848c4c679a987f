package identity

import (
	"slices"

	"golang.org/x/oauth2"

	"github.com/dcapal/dcapal-web/internal/domain"
)

// Providers lists the external sign-in providers enabled for the app.
var Providers = []string{"google", "github"}

// NewVerifier returns a fresh PKCE code verifier.
func NewVerifier() string {
	return oauth2.GenerateVerifier()
}

// AuthorizeURL returns the address that starts an external provider
// sign-in. The provider redirects back to redirectTo with a code that
// ExchangeCode trades, together with verifier, for a session.
func (c *Client) AuthorizeURL(provider, redirectTo, verifier string) (string, error) {
	if !slices.Contains(Providers, provider) {
		return "", domain.ErrUnknownProvider
	}

	cfg := oauth2.Config{
		Endpoint: oauth2.Endpoint{AuthURL: c.rest.BaseURL() + "/authorize"},
	}
	return cfg.AuthCodeURL("",
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("provider", provider),
		oauth2.SetAuthURLParam("redirect_to", redirectTo),
	), nil
}
