package authclient_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-identity-console/authclient"
	"github.com/jrsteele09/go-identity-console/authclient/flowrepo"
	"github.com/jrsteele09/go-identity-console/authclient/sessionrepo"
)

const testCallbackURL = "http://localhost:3000/auth/callback"

type clientFixture struct {
	flows      *flowrepo.InMemoryRepo
	sessions   sessionrepo.Repo
	tokenSrv   *httptest.Server
	tokenCalls atomic.Int32
	client     *authclient.Client
}

func setupClientFixture(t *testing.T, tokenHandler http.HandlerFunc) *clientFixture {
	t.Helper()

	f := &clientFixture{
		flows:    flowrepo.NewInMemoryRepo(),
		sessions: sessionrepo.NewInMemoryRepo(),
	}
	if tokenHandler == nil {
		tokenHandler = tokenEndpoint("tok1", "")
	}
	f.tokenSrv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		tokenHandler(w, r)
	}))
	t.Cleanup(f.tokenSrv.Close)

	client, err := authclient.New(context.Background(), authclient.Config{
		AuthorizationURL: "https://auth.example.com/authorize",
		TokenURL:         f.tokenSrv.URL,
		LogoutURL:        "https://auth.example.com/logout",
		ClientID:         "console-test",
		CallbackURL:      testCallbackURL,
		Scopes:           []string{"openid", "email"},
	}, f.flows, f.sessions)
	require.NoError(t, err)
	f.client = client
	return f
}

// tokenEndpoint returns a handler issuing a fixed access token, optionally
// alongside extra JSON fields.
func tokenEndpoint(accessToken, extra string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := `{"access_token":"` + accessToken + `","token_type":"Bearer","expires_in":3600,"scope":"openid email"`
		if extra != "" {
			body += "," + extra
		}
		body += "}"
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

// beginLogin starts a flow and returns the state from the authorization URL.
func (f *clientFixture) beginLogin(t *testing.T) (state string, authURL *url.URL) {
	t.Helper()
	rawURL, err := f.client.BeginLogin()
	require.NoError(t, err)
	authURL, err = url.Parse(rawURL)
	require.NoError(t, err)
	state = authURL.Query().Get("state")
	require.NotEmpty(t, state)
	return state, authURL
}

func callbackWith(code, state string) string {
	return testCallbackURL + "?code=" + url.QueryEscape(code) + "&state=" + url.QueryEscape(state)
}

func TestBeginLoginAuthorizationURL(t *testing.T) {
	f := setupClientFixture(t, nil)

	state, authURL := f.beginLogin(t)
	query := authURL.Query()

	require.Equal(t, "console-test", query.Get("client_id"))
	require.Equal(t, testCallbackURL, query.Get("redirect_uri"))
	require.Equal(t, "code", query.Get("response_type"))
	require.Equal(t, "openid email", query.Get("scope"))
	require.Equal(t, "S256", query.Get("code_challenge_method"))
	require.Len(t, state, 32)

	flow, err := f.flows.Get(state)
	require.NoError(t, err)
	require.Len(t, flow.CodeVerifier, 128)

	hash := sha256.Sum256([]byte(flow.CodeVerifier))
	require.Equal(t, base64.RawURLEncoding.EncodeToString(hash[:]), query.Get("code_challenge"))
}

func TestBeginLoginReusesPendingFlow(t *testing.T) {
	f := setupClientFixture(t, nil)

	firstState, firstURL := f.beginLogin(t)
	secondState, secondURL := f.beginLogin(t)

	require.Equal(t, firstState, secondState)
	require.Equal(t, firstURL.Query().Get("code_challenge"), secondURL.Query().Get("code_challenge"))
}

func TestBeginLoginReplacesTamperedFlow(t *testing.T) {
	f := setupClientFixture(t, nil)

	firstState, _ := f.beginLogin(t)
	flow, err := f.flows.Get(firstState)
	require.NoError(t, err)
	flow.CodeChallenge = "tampered"
	require.NoError(t, f.flows.Upsert(firstState, flow))

	secondState, _ := f.beginLogin(t)
	require.NotEqual(t, firstState, secondState)
}

func TestCompleteLoginHappyPath(t *testing.T) {
	ctx := context.Background()
	f := setupClientFixture(t, nil)

	state, _ := f.beginLogin(t)
	session, err := f.client.CompleteLogin(ctx, callbackWith("auth-code", state))
	require.NoError(t, err)

	require.Equal(t, "tok1", session.AccessToken)
	require.Equal(t, "Bearer", session.TokenType)
	require.Equal(t, "openid email", session.Scope)
	require.InDelta(t, 3600, session.ExpiresIn, 5)
	require.NotEmpty(t, session.ID)

	require.True(t, f.client.IsAuthenticated(ctx))
	require.Equal(t, int32(1), f.tokenCalls.Load())

	// The flow state is consumed.
	_, err = f.flows.Get(state)
	require.Error(t, err)
}

func TestCompleteLoginSendsStoredVerifier(t *testing.T) {
	ctx := context.Background()
	var sentVerifier atomic.Value
	f := setupClientFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		sentVerifier.Store(r.FormValue("code_verifier"))
		tokenEndpoint("tok1", "")(w, r)
	})

	state, _ := f.beginLogin(t)
	flow, err := f.flows.Get(state)
	require.NoError(t, err)

	_, err = f.client.CompleteLogin(ctx, callbackWith("auth-code", state))
	require.NoError(t, err)
	require.Equal(t, flow.CodeVerifier, sentVerifier.Load())
}

func TestCompleteLoginIdentityClaimsFromAccessToken(t *testing.T) {
	ctx := context.Background()
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-42",
		"email": "operator@example.com",
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	f := setupClientFixture(t, tokenEndpoint(accessToken, ""))

	state, _ := f.beginLogin(t)
	session, err := f.client.CompleteLogin(ctx, callbackWith("auth-code", state))
	require.NoError(t, err)
	require.Equal(t, "user-42", session.SubjectID)
	require.Equal(t, "operator@example.com", session.Email)
}

func TestCompleteLoginStateMismatch(t *testing.T) {
	ctx := context.Background()
	f := setupClientFixture(t, nil)

	f.beginLogin(t)
	_, err := f.client.CompleteLogin(ctx, callbackWith("auth-code", "forged-state"))
	require.ErrorIs(t, err, authclient.ErrStateMismatch)

	// Validation fails before any network call.
	require.Equal(t, int32(0), f.tokenCalls.Load())
}

func TestCompleteLoginWithoutPendingFlow(t *testing.T) {
	ctx := context.Background()
	f := setupClientFixture(t, nil)

	_, err := f.client.CompleteLogin(ctx, callbackWith("auth-code", "some-state"))
	require.ErrorIs(t, err, authclient.ErrStateMismatch)
	require.Equal(t, int32(0), f.tokenCalls.Load())
}

func TestCompleteLoginMissingCode(t *testing.T) {
	ctx := context.Background()
	f := setupClientFixture(t, nil)

	state, _ := f.beginLogin(t)
	_, err := f.client.CompleteLogin(ctx, testCallbackURL+"?state="+state)
	require.ErrorIs(t, err, authclient.ErrMissingCode)
	require.Equal(t, int32(0), f.tokenCalls.Load())
}

func TestCompleteLoginAuthorizationDenied(t *testing.T) {
	ctx := context.Background()
	f := setupClientFixture(t, nil)

	state, _ := f.beginLogin(t)
	_, err := f.client.CompleteLogin(ctx,
		testCallbackURL+"?error=access_denied&error_description=user+cancelled&state="+state)
	require.ErrorIs(t, err, authclient.ErrAuthorizationDenied)
	require.Contains(t, err.Error(), "access_denied")
	require.Equal(t, int32(0), f.tokenCalls.Load())

	// The pending flow is discarded; a later forged callback cannot use it.
	_, err = f.client.CompleteLogin(ctx, callbackWith("auth-code", state))
	require.ErrorIs(t, err, authclient.ErrStateMismatch)
}

func TestCompleteLoginMissingVerifier(t *testing.T) {
	ctx := context.Background()
	f := setupClientFixture(t, nil)

	state, _ := f.beginLogin(t)
	require.NoError(t, f.flows.Delete(state))

	_, err := f.client.CompleteLogin(ctx, callbackWith("auth-code", state))
	require.ErrorIs(t, err, authclient.ErrMissingVerifier)
	require.Equal(t, int32(0), f.tokenCalls.Load())
}

func TestCompleteLoginExchangeFailure(t *testing.T) {
	ctx := context.Background()
	f := setupClientFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "authorization code expired",
		})
	})

	state, _ := f.beginLogin(t)
	_, err := f.client.CompleteLogin(ctx, callbackWith("auth-code", state))
	require.ErrorIs(t, err, authclient.ErrTokenExchangeFailed)

	var exchangeErr *authclient.TokenExchangeError
	require.ErrorAs(t, err, &exchangeErr)
	require.Equal(t, "invalid_grant", exchangeErr.Code)
	require.Equal(t, "authorization code expired", exchangeErr.Description)

	require.False(t, f.client.IsAuthenticated(ctx))
}

func TestCompleteLoginConcurrentDuplicateCallback(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	f := setupClientFixture(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		tokenEndpoint("tok1", "")(w, r)
	})

	state, _ := f.beginLogin(t)
	callback := callbackWith("auth-code", state)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.client.CompleteLogin(ctx, callback)
		}(i)
	}

	// Let the loser hit the consumed flow state while the winner is still
	// blocked in the exchange.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), f.tokenCalls.Load(), "authorization code must be exchanged at most once")

	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, authclient.ErrStateMismatch)
			failed++
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, failed)
}

func TestSessionHydratesFromStore(t *testing.T) {
	ctx := context.Background()
	sessions := sessionrepo.NewInMemoryRepo()
	stored := &sessionrepo.Session{
		ID:          "session-1",
		SubjectID:   "user-1",
		AccessToken: "tok-stored",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, sessions.Save(ctx, stored))

	client, err := authclient.New(ctx, authclient.Config{
		AuthorizationURL: "https://auth.example.com/authorize",
		TokenURL:         "https://auth.example.com/token",
		ClientID:         "console-test",
		CallbackURL:      testCallbackURL,
	}, flowrepo.NewInMemoryRepo(), sessions)
	require.NoError(t, err)

	session, ok := client.Session(ctx)
	require.True(t, ok)
	require.Equal(t, "tok-stored", session.AccessToken)
	require.True(t, client.IsAuthenticated(ctx))
}

func TestLogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	f := setupClientFixture(t, nil)

	state, _ := f.beginLogin(t)
	_, err := f.client.CompleteLogin(ctx, callbackWith("auth-code", state))
	require.NoError(t, err)
	require.True(t, f.client.IsAuthenticated(ctx))

	logoutURL, err := f.client.Logout(ctx)
	require.NoError(t, err)
	require.Equal(t, "https://auth.example.com/logout", logoutURL)
	require.False(t, f.client.IsAuthenticated(ctx))

	_, err = f.sessions.Load(ctx)
	require.ErrorIs(t, err, sessionrepo.ErrNotFound)
}

func TestClearSessionDropsPendingFlow(t *testing.T) {
	ctx := context.Background()
	f := setupClientFixture(t, nil)

	state, _ := f.beginLogin(t)
	require.NoError(t, f.client.ClearSession(ctx))

	_, err := f.flows.Get(state)
	require.Error(t, err)
	_, err = f.client.CompleteLogin(ctx, callbackWith("auth-code", state))
	require.ErrorIs(t, err, authclient.ErrStateMismatch)
}

func TestNewValidation(t *testing.T) {
	ctx := context.Background()
	flows := flowrepo.NewInMemoryRepo()
	sessions := sessionrepo.NewInMemoryRepo()

	_, err := authclient.New(ctx, authclient.Config{CallbackURL: testCallbackURL}, flows, sessions)
	require.Error(t, err)

	_, err = authclient.New(ctx, authclient.Config{ClientID: "c"}, flows, sessions)
	require.Error(t, err)

	_, err = authclient.New(ctx, authclient.Config{
		ClientID:    "c",
		CallbackURL: testCallbackURL,
	}, flows, sessions)
	require.Error(t, err, "issuer or explicit endpoints are required")
}
