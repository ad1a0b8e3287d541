package strava

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"stravaytd/internal/log"
)

const callbackPath = "/strava-token"

// BrowserFlow obtains an authorization code by parking an ephemeral HTTP
// listener on localhost and sending the operator through the provider's
// consent page.
type BrowserFlow struct {
	logger *log.Logger

	// Announce receives the authorization URL the operator must visit.
	// Defaults to printing on stderr.
	Announce func(authURL string)
	// Timeout bounds the wait for the redirect; zero waits forever.
	Timeout time.Duration
}

var _ CodeSource = (*BrowserFlow)(nil)

func NewBrowserFlow(logger *log.Logger) *BrowserFlow {
	return &BrowserFlow{logger: logger.WithComponent(log.ComponentAuthFlow)}
}

type flowResult struct {
	code string
	err  error
}

// ObtainCode blocks until the operator completes or declines the consent
// redirect. The listener is bound to an OS-assigned port and released
// exactly once, whichever branch settles first. Requests to other paths
// leave the listener open; only the first terminal callback counts.
func (f *BrowserFlow) ObtainCode(ctx context.Context, oc *oauth2.Config) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("bind callback listener: %w", err)
	}

	cfg := *oc
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%d%s", ln.Addr().(*net.TCPAddr).Port, callbackPath)

	results := make(chan flowResult, 1)
	var once sync.Once
	settle := func(r flowResult) {
		once.Do(func() { results <- r })
	}

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		switch {
		case query.Get("error") == "access_denied":
			respond(w, http.StatusBadRequest, "Permission denied, click back to try again")
			settle(flowResult{err: ErrAuthorizationDenied})
		case query.Get("error") != "":
			respond(w, http.StatusInternalServerError, "Unexpected error from Strava: "+query.Get("error"))
			settle(flowResult{err: &AuthorizationFailedError{Reason: query.Get("error")}})
		default:
			respond(w, http.StatusOK, "Complete, you may now close this window")
			settle(flowResult{code: query.Get("code")})
		}
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/favicon.ico" {
			f.logger.Debug("Ignoring request", log.FieldPath, r.URL.Path)
		}
	})

	srv := &http.Server{Handler: mux}
	defer srv.Close()
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			settle(flowResult{err: fmt.Errorf("callback listener: %w", err)})
		}
	}()

	authURL := cfg.AuthCodeURL("", oauth2.SetAuthURLParam("approval_prompt", "auto"))
	announce := f.Announce
	if announce == nil {
		announce = func(u string) {
			fmt.Fprintln(os.Stderr, "To authorize this tool, please visit:")
			fmt.Fprintln(os.Stderr, u)
		}
	}
	announce(authURL)

	var timeout <-chan time.Time
	if f.Timeout > 0 {
		timer := time.NewTimer(f.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case r := <-results:
		return r.code, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timeout:
		return "", fmt.Errorf("authorization timed out after %s", f.Timeout)
	}
}

func respond(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	fmt.Fprintln(w, message)
}
