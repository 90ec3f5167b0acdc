package auth

import (
	"golang.org/x/oauth2"
)

// ProviderConfig parameterizes one named OpenID Connect provider.
type ProviderConfig struct {
	Issuer           string
	AuthorizationURL string
	TokenURL         string
	UserInfoURL      string
	ClientID         string
	ClientSecret     string
	CallbackURL      string
	Scopes           []string
}

func (p ProviderConfig) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  p.CallbackURL,
		Scopes:       p.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  p.AuthorizationURL,
			TokenURL: p.TokenURL,
		},
	}
}

// GoogleProvider returns the Google OIDC endpoints with the given
// client credentials.
func GoogleProvider(clientID, clientSecret, callbackURL string) ProviderConfig {
	return ProviderConfig{
		Issuer:           "https://accounts.google.com",
		AuthorizationURL: "https://accounts.google.com/o/oauth2/v2/auth",
		TokenURL:         "https://oauth2.googleapis.com/token",
		UserInfoURL:      "https://openidconnect.googleapis.com/v1/userinfo",
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		CallbackURL:      callbackURL,
		Scopes:           []string{"openid", "profile", "email"},
	}
}
