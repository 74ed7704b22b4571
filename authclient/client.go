// Package authclient implements the authorization-code-with-PKCE login flow
// against the identity backend and manages the resulting session.
package authclient

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-identity-console/authclient/flowrepo"
	"github.com/jrsteele09/go-identity-console/authclient/sessionrepo"
)

// Session is the authenticated operator session.
type Session = sessionrepo.Session

// Config holds the OAuth2/OIDC settings for the console's relying-party flow.
// When Issuer is set, the authorization and token endpoints (and the JWKS used
// for ID token verification) come from OIDC discovery; otherwise
// AuthorizationURL and TokenURL must be set explicitly.
type Config struct {
	Issuer           string
	AuthorizationURL string
	TokenURL         string
	LogoutURL        string
	ClientID         string
	CallbackURL      string
	Scopes           []string
}

type flowPhase int

const (
	phaseIdle flowPhase = iota
	phaseAwaitingCallback
	phaseAuthenticated
)

// Client drives the PKCE login flow: BeginLogin hands out the authorization
// URL, CompleteLogin validates the callback and exchanges the code, and the
// session accessors mirror the durable session store.
type Client struct {
	cfg        Config
	oauth      *oauth2.Config
	verifier   *oidc.IDTokenVerifier
	logoutURL  string
	flows      flowrepo.Repo
	sessions   sessionrepo.Repo
	httpClient *http.Client
	log        zerolog.Logger

	mu           sync.Mutex
	phase        flowPhase
	pendingState string
	session      *Session
	hydrated     bool
}

type Option func(*Client)

// WithHTTPClient sets the HTTP client used for token exchange and discovery
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for non-fatal flow diagnostics
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(ctx context.Context, cfg Config, flows flowrepo.Repo, sessions sessionrepo.Repo, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("[authclient New] client ID is required")
	}
	if cfg.CallbackURL == "" {
		return nil, errors.New("[authclient New] callback URL is required")
	}

	c := &Client{
		cfg:       cfg,
		flows:     flows,
		sessions:  sessions,
		logoutURL: cfg.LogoutURL,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	endpoint := oauth2.Endpoint{
		AuthURL:  cfg.AuthorizationURL,
		TokenURL: cfg.TokenURL,
	}

	if cfg.Issuer != "" {
		discoveryCtx := ctx
		if c.httpClient != nil {
			discoveryCtx = oidc.ClientContext(ctx, c.httpClient)
		}
		provider, err := oidc.NewProvider(discoveryCtx, cfg.Issuer)
		if err != nil {
			return nil, fmt.Errorf("[authclient New] failed to create OIDC provider: %w", err)
		}
		endpoint = provider.Endpoint()
		c.verifier = provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

		if c.logoutURL == "" {
			var claims struct {
				EndSessionEndpoint string `json:"end_session_endpoint"`
			}
			if err := provider.Claims(&claims); err == nil {
				c.logoutURL = claims.EndSessionEndpoint
			}
		}
	} else if endpoint.AuthURL == "" || endpoint.TokenURL == "" {
		return nil, errors.New("[authclient New] either issuer or authorization and token URLs are required")
	}

	c.oauth = &oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.CallbackURL,
		Scopes:      cfg.Scopes,
		Endpoint:    endpoint,
	}

	return c, nil
}

// BeginLogin prepares a login attempt and returns the authorization URL the
// user agent must be redirected to. An existing unconsumed (verifier, state)
// pair is reused only if the stored challenge is still derivable from the
// stored verifier; anything else forces a fresh pair.
func (c *Client) BeginLogin() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var verifier, state string
	if c.pendingState != "" {
		flow, err := c.flows.Get(c.pendingState)
		if err == nil && flow != nil && validVerifier(flow.CodeVerifier) &&
			generateCodeChallenge(flow.CodeVerifier) == flow.CodeChallenge {
			verifier, state = flow.CodeVerifier, flow.State
		} else {
			_ = c.flows.Delete(c.pendingState)
		}
	}

	if verifier == "" || state == "" {
		verifier = generateRandomString(verifierLength)
		state = generateRandomString(stateLength)
		flow := &flowrepo.FlowState{
			State:         state,
			CodeVerifier:  verifier,
			CodeChallenge: generateCodeChallenge(verifier),
			CreatedAt:     time.Now(),
		}
		if err := c.flows.Upsert(state, flow); err != nil {
			return "", fmt.Errorf("[BeginLogin] failed to store flow state: %w", err)
		}
	}

	c.pendingState = state
	c.phase = phaseAwaitingCallback

	authURL := c.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", generateCodeChallenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", codeChallengeMethodS256),
	)
	return authURL, nil
}

// CompleteLogin validates the authorization callback and exchanges the code
// for tokens. The stored flow state is consumed before the network exchange,
// so a re-entrant invocation for the same callback cannot exchange the code a
// second time. On success the session is persisted and returned.
func (c *Client) CompleteLogin(ctx context.Context, callbackURL string) (*Session, error) {
	u, err := url.Parse(callbackURL)
	if err != nil {
		return nil, fmt.Errorf("[CompleteLogin] invalid callback URL: %w", err)
	}
	query := u.Query()

	if errParam := query.Get("error"); errParam != "" {
		c.resetFlow()
		if desc := query.Get("error_description"); desc != "" {
			return nil, fmt.Errorf("%w: %s - %s", ErrAuthorizationDenied, errParam, desc)
		}
		return nil, fmt.Errorf("%w: %s", ErrAuthorizationDenied, errParam)
	}

	code := query.Get("code")
	if code == "" {
		return nil, ErrMissingCode
	}

	returnedState := query.Get("state")

	// Consume the flow under lock before any network call. A second caller
	// racing on the same callback finds nothing stored and fails fast.
	c.mu.Lock()
	storedState := c.pendingState
	if storedState == "" ||
		subtle.ConstantTimeCompare([]byte(returnedState), []byte(storedState)) != 1 {
		c.mu.Unlock()
		return nil, ErrStateMismatch
	}
	flow, flowErr := c.flows.Get(storedState)
	c.pendingState = ""
	c.phase = phaseIdle
	_ = c.flows.Delete(storedState)
	c.mu.Unlock()

	if flowErr != nil || flow == nil || flow.CodeVerifier == "" {
		return nil, ErrMissingVerifier
	}

	token, err := c.oauth.Exchange(c.requestContext(ctx), code,
		oauth2.SetAuthURLParam("code_verifier", flow.CodeVerifier))
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			exchangeErr := &TokenExchangeError{
				Code:        retrieveErr.ErrorCode,
				Description: retrieveErr.ErrorDescription,
			}
			if retrieveErr.Response != nil {
				exchangeErr.StatusCode = retrieveErr.Response.StatusCode
			}
			return nil, exchangeErr
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenExchangeFailed, err)
	}

	session, err := c.buildSession(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("[CompleteLogin] failed to persist session: %w", err)
	}

	c.mu.Lock()
	c.session = session
	c.hydrated = true
	c.phase = phaseAuthenticated
	c.mu.Unlock()

	return session, nil
}

func (c *Client) buildSession(ctx context.Context, token *oauth2.Token) (*Session, error) {
	session := &Session{
		ID:          uuid.New().String(),
		AccessToken: token.AccessToken,
		TokenType:   token.Type(),
		CreatedAt:   time.Now(),
	}
	if !token.Expiry.IsZero() {
		session.ExpiresIn = int(time.Until(token.Expiry).Seconds())
	}
	if scope, ok := token.Extra("scope").(string); ok {
		session.Scope = scope
	}

	// Identity claims: prefer a verified ID token, fall back to the access
	// token's own claims when the backend issues JWTs without openid scope.
	if rawIDToken, ok := token.Extra("id_token").(string); ok && c.verifier != nil {
		idToken, err := c.verifier.Verify(ctx, rawIDToken)
		if err != nil {
			return nil, fmt.Errorf("[CompleteLogin] ID token verification failed: %w", err)
		}
		var claims struct {
			Sub   string `json:"sub"`
			Email string `json:"email"`
		}
		if err := idToken.Claims(&claims); err != nil {
			return nil, fmt.Errorf("[CompleteLogin] failed to extract ID token claims: %w", err)
		}
		session.SubjectID = claims.Sub
		session.Email = claims.Email
		return session, nil
	}

	session.SubjectID, session.Email = claimsFromAccessToken(token.AccessToken)
	return session, nil
}

// claimsFromAccessToken best-effort extracts identity claims from a JWT access
// token without verifying it. The token was just received directly from the
// token endpoint over TLS; the console never accepts it from a third party.
func claimsFromAccessToken(raw string) (subject, email string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", ""
	}
	subject, _ = claims.GetSubject()
	email, _ = claims["email"].(string)
	return subject, email
}

// Session returns the current session, lazily hydrating from the durable
// store on first call. Corrupt stored data is cleared and reported as absent.
func (c *Client) Session(ctx context.Context) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return c.session, true
	}
	if c.hydrated {
		return nil, false
	}
	c.hydrated = true

	session, err := c.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, sessionrepo.ErrCorrupt) {
			c.log.Warn().Err(err).Msg("Clearing corrupt stored session")
			_ = c.sessions.Delete(ctx)
		}
		return nil, false
	}

	c.session = session
	c.phase = phaseAuthenticated
	return session, true
}

// IsAuthenticated reports whether a session with a non-empty access token
// exists. Token expiry is deliberately not checked here; callers that enforce
// it use Session().Expired().
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	session, ok := c.Session(ctx)
	return ok && session.AccessToken != ""
}

// Logout clears the session and any residual flow state, and returns the
// remote logout URL the user agent should be sent to ("" when none is
// configured or discovered).
func (c *Client) Logout(ctx context.Context) (string, error) {
	if err := c.ClearSession(ctx); err != nil {
		return "", err
	}
	return c.logoutURL, nil
}

// ClearSession clears the in-memory and durable session plus residual
// verifier/state without navigating. Used on callback failure.
func (c *Client) ClearSession(ctx context.Context) error {
	c.mu.Lock()
	if c.pendingState != "" {
		_ = c.flows.Delete(c.pendingState)
		c.pendingState = ""
	}
	c.session = nil
	c.hydrated = true
	c.phase = phaseIdle
	c.mu.Unlock()

	if err := c.sessions.Delete(ctx); err != nil {
		return fmt.Errorf("[ClearSession] failed to delete stored session: %w", err)
	}
	return nil
}

// resetFlow drops any pending flow state after a failed callback.
func (c *Client) resetFlow() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingState != "" {
		_ = c.flows.Delete(c.pendingState)
		c.pendingState = ""
	}
	c.phase = phaseIdle
}

// requestContext injects the configured HTTP client for oauth2/oidc calls
func (c *Client) requestContext(ctx context.Context) context.Context {
	if c.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}
