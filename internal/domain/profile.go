package domain

import "context"

// Profile is the user record owned by the DCA-Pal backend.
// BirthDate is an ISO date (YYYY-MM-DD) kept as text, exactly as sent.
type Profile struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	Email     string `json:"email"`
}

// ProfileService reads and writes the profile of the session's user.
type ProfileService interface {
	GetProfile(ctx context.Context, accessToken string) (*Profile, error)
	UpdateProfile(ctx context.Context, accessToken string, p Profile) error
}

// ImportedPortfolio is a portfolio uploaded through the backend import API.
// The document is kept opaque; the allocator screen owns its shape.
type ImportedPortfolio struct {
	ID       string
	Document []byte
}

// PortfolioImporter fetches portfolios previously stored with the import API.
type PortfolioImporter interface {
	GetImportedPortfolio(ctx context.Context, id string) (*ImportedPortfolio, error)
}
