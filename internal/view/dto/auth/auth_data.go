package auth

// LoginData is a View Model (DTO) used specifically for the login template.
// It carries a previously submitted email and where to go after signing in.
type LoginData struct {
	Email     string
	Next      string
	Providers []string
}

// SignUpData is used to transfer data (like the pre-filled email) to the sign-up template.
type SignUpData struct {
	Email     string
	Providers []string
}

// ResetPasswordData drives the three states of the reset password page:
// asking for an email, confirming the link was sent, and choosing a new
// password once a recovery link was verified.
type ResetPasswordData struct {
	Widget   WidgetConfig
	Email    string
	Sent     bool
	Verified bool
}

// WidgetConfig mirrors the options of the hosted authentication widget the
// page stands in for.
type WidgetConfig struct {
	Providers    []string
	BrandColor   string
	BrandAccent  string
	ButtonRadius string
	View         string
	MagicLink    bool
	ShowLinks    bool
}
