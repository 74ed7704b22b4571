package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-identity-console/apiclient"
	"github.com/jrsteele09/go-identity-console/authclient"
	"github.com/jrsteele09/go-identity-console/authclient/flowrepo"
	"github.com/jrsteele09/go-identity-console/authclient/sessionrepo"
	"github.com/jrsteele09/go-identity-console/internal/config"
	apperrors "github.com/jrsteele09/go-identity-console/internal/errors"
	"github.com/jrsteele09/go-identity-console/logship"
	"github.com/jrsteele09/go-identity-console/server"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ship := logship.New(logship.Config{
		Endpoint:       c.GetLogEndpoint(),
		Service:        c.GetServiceName(),
		Environment:    c.GetEnv(),
		BatchSize:      c.GetLogBatchSize(),
		FlushInterval:  c.GetLogFlushInterval(),
		RequestTimeout: c.GetLogRequestTimeout(),
		Enabled:        c.GetLoggingEnabled(),
	})
	defer ship.Close()

	ctx := context.Background()

	sessions, err := newSessionRepo(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}

	auth, err := authclient.New(ctx, authclient.Config{
		Issuer:           c.GetIssuer(),
		AuthorizationURL: c.GetAuthorizationURL(),
		TokenURL:         c.GetTokenURL(),
		LogoutURL:        c.GetLogoutURL(),
		ClientID:         c.GetClientID(),
		CallbackURL:      c.GetCallbackURL(),
		Scopes:           c.GetScopes(),
	}, flowrepo.NewInMemoryRepo(), sessions, authclient.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create auth client: %w", err)
	}

	api := apiclient.New(c.GetAPIBaseURL(), bearerTokenSource(auth),
		apiclient.WithLogger(logger),
		apiclient.WithHTTPClient(&http.Client{Timeout: c.GetAPITimeout()}),
	)

	srv := &http.Server{Addr: c.GetPort(), Handler: server.New(c, auth, api, ship, logger)}
	go listenAndServe(srv)
	waitForStopSignal()
	returnError = shutdown(srv)
	return returnError
}

// bearerTokenSource feeds the current session's access token to the API client
func bearerTokenSource(auth *authclient.Client) apiclient.TokenSource {
	return func(ctx context.Context) (string, error) {
		session, ok := auth.Session(ctx)
		if !ok {
			return "", errors.New("no authenticated session")
		}
		return session.AccessToken, nil
	}
}

func newSessionRepo(ctx context.Context, c config.Config) (sessionrepo.Repo, error) {
	switch store := c.GetSessionStore(); store {
	case "memory":
		return sessionrepo.NewInMemoryRepo(), nil
	case "redis":
		return sessionrepo.NewRedisRepo(ctx, c.GetRedisAddr(), "")
	case "file", "":
		return sessionrepo.NewFileRepo(c.GetDataFolder())
	default:
		return nil, apperrors.Wrapf(apperrors.ErrUnsupported, "session store %q", store)
	}
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
