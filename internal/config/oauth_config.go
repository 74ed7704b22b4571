package config

import "strings"

type OAuthConfig interface {
	GetIssuer() string
	GetAuthorizationURL() string
	GetTokenURL() string
	GetLogoutURL() string
	GetClientID() string
	GetScopes() []string
	GetCallbackURL() string
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

// GetIssuer returns the OIDC issuer of the identity backend. When set, the
// authorization/token endpoints are taken from the issuer's discovery
// document and the explicit endpoint variables are ignored.
func (OAuth) GetIssuer() string {
	return GetEnv("OAUTH_ISSUER", "")
}

func (OAuth) GetAuthorizationURL() string {
	return GetEnv("OAUTH_AUTHORIZE_URL", "")
}

func (OAuth) GetTokenURL() string {
	return GetEnv("OAUTH_TOKEN_URL", "")
}

func (OAuth) GetLogoutURL() string {
	return GetEnv("OAUTH_LOGOUT_URL", "")
}

func (OAuth) GetClientID() string {
	return GetEnv("OAUTH_CLIENT_ID", "identity-console")
}

func (OAuth) GetScopes() []string {
	scopes := GetEnv("OAUTH_SCOPES", "openid profile email")
	return strings.Fields(scopes)
}

func (o OAuth) GetCallbackURL() string {
	callback := GetEnv("OAUTH_CALLBACK_URL", "")
	if callback != "" {
		return callback
	}
	return EnvVars{}.GetBaseURL() + "/auth/callback"
}
