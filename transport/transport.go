package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-client/apperrors"
	"storefront-client/auth"
)

const (
	// RetryHeader marks a request replayed after a token refresh. A 401 on a
	// marked request is terminal: it never triggers a second refresh.
	RetryHeader = "X-Refresh-Retry"

	requestIDHeader = "X-Request-ID"

	refreshTimeout = 15 * time.Second
)

// AuthTransport is an http.RoundTripper that attaches the stored bearer token
// to API-bound requests and coordinates token refresh on 401 responses. At
// most one refresh call is in flight at a time; concurrent 401s wait for the
// shared outcome and replay with the same refreshed token.
type AuthTransport struct {
	base    http.RoundTripper
	apiBase string
	tokens  *auth.TokenStore
	logger  *zap.Logger

	mu       sync.Mutex
	inflight *refreshCall
}

// refreshCall is one refresh cycle. done is closed exactly once after token
// and err are set, broadcasting the outcome to every waiter.
type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

type Option func(*AuthTransport)

// WithBase overrides the underlying round tripper (primarily for tests).
func WithBase(base http.RoundTripper) Option {
	return func(t *AuthTransport) {
		t.base = base
	}
}

func New(apiBaseURL string, tokens *auth.TokenStore, logger *zap.Logger, opts ...Option) *AuthTransport {
	t := &AuthTransport{
		base:    http.DefaultTransport,
		apiBase: strings.TrimSuffix(apiBaseURL, "/"),
		tokens:  tokens,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Client returns an http.Client routed through the transport.
func (t *AuthTransport) Client(timeout time.Duration) *http.Client {
	return &http.Client{Transport: t, Timeout: timeout}
}

func (t *AuthTransport) isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.String(), t.apiBase)
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.isAPIRequest(req) {
		return t.base.RoundTrip(req)
	}

	out := req.Clone(req.Context())
	if out.Header.Get(requestIDHeader) == "" {
		out.Header.Set(requestIDHeader, uuid.NewString())
	}
	if token := t.tokens.AccessToken(req.Context()); token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	return t.handleUnauthorized(req, resp)
}

// handleUnauthorized runs the refresh state machine for one failed request.
func (t *AuthTransport) handleUnauthorized(req *http.Request, resp *http.Response) (*http.Response, error) {
	drain(resp)
	ctx := req.Context()

	// A request that already carries the retry marker was replayed once; the
	// refreshed token got rejected too, so another refresh cannot help.
	if req.Header.Get(RetryHeader) != "" {
		return nil, t.authFailure()
	}

	if t.tokens.RefreshToken(ctx) == "" {
		return nil, t.authFailure()
	}

	token, err := t.awaitRefresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Caller gave up; leave the shared refresh outcome to the others.
			return nil, ctx.Err()
		}
		return nil, t.authFailure()
	}
	return t.replay(req, token)
}

// awaitRefresh joins the in-flight refresh cycle, starting one if none
// exists. Every caller receives the same outcome.
func (t *AuthTransport) awaitRefresh(ctx context.Context) (string, error) {
	t.mu.Lock()
	call := t.inflight
	if call == nil {
		call = &refreshCall{done: make(chan struct{})}
		t.inflight = call
		t.mu.Unlock()
		// The cycle runs detached from any single request, so a cancelled
		// leader cannot strand the followers.
		go t.runRefresh(call)
	} else {
		t.mu.Unlock()
	}

	select {
	case <-call.done:
		return call.token, call.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (t *AuthTransport) runRefresh(call *refreshCall) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	token, err := auth.RefreshTokens(ctx, &http.Client{Transport: t.base}, t.apiBase, t.tokens)
	if err != nil {
		t.logger.Warn("token refresh failed", zap.Error(err))
	} else {
		t.logger.Debug("token refreshed")
	}

	t.mu.Lock()
	t.inflight = nil
	t.mu.Unlock()

	call.token, call.err = token, err
	close(call.done)
}

// replay re-sends the original request with the refreshed token and the retry
// marker set.
func (t *AuthTransport) replay(req *http.Request, token string) (*http.Response, error) {
	retry := req.Clone(req.Context())
	if req.Body != nil {
		if req.GetBody == nil {
			return nil, fmt.Errorf("cannot replay request with unrewindable body")
		}
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewind request body: %w", err)
		}
		retry.Body = body
	}
	if retry.Header.Get(requestIDHeader) == "" {
		retry.Header.Set(requestIDHeader, uuid.NewString())
	}
	retry.Header.Set("Authorization", "Bearer "+token)
	retry.Header.Set(RetryHeader, "true")

	resp, err := t.base.RoundTrip(retry)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		return nil, t.authFailure()
	}
	return resp, nil
}

// authFailure is terminal for the request: all stored auth state goes away
// and the caller sees an unauthorized error. Redirecting is the UI's job.
func (t *AuthTransport) authFailure() error {
	if err := t.tokens.Clear(context.Background()); err != nil {
		t.logger.Warn("clear auth state", zap.Error(err))
	}
	return apperrors.ErrUnauthorized
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
