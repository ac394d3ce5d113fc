// Package hibp implements the Lookup Client for the Have I Been Pwned
// breach-notification API (v3 "breachedaccount" endpoint shape).
//
// The client is deliberately small: it performs exactly one synchronous
// GET per Lookup call, interprets the HTTP status code, and returns either
// a fully valid model.LookupResult or a classified error. There are no
// retries, no caching, and no shared state between lookups.
package hibp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/mmr-tortoise/breachwatch/internal/model"
)

// DefaultBaseURL is the production endpoint of the breach API.
// Tests and proxies override it via Config.BaseURL.
const DefaultBaseURL = "https://haveibeenpwned.com/api/v3"

// DefaultTimeout bounds the single network call. The API's own rate-limit
// window is far shorter than this, so a slower response means something is
// wrong on the wire.
const DefaultTimeout = 10 * time.Second

// defaultUserAgent identifies the tool to the API, which rejects requests
// without a User-Agent header.
const defaultUserAgent = "breachwatch/1.0"

// maxErrorBodyBytes caps how much of a non-200 body is drained before the
// connection is released back to the pool.
const maxErrorBodyBytes = 8 * 1024

// apiKeyHeader is the authentication header name the API expects.
const apiKeyHeader = "hibp-api-key"

// Sentinel errors classifying every way a lookup can fail. Each one is
// wrapped in a model.CLIError carrying the matching exit code, so callers
// can use errors.Is for branching while the CLI layer reads the code.
var (
	// ErrInvalidInput: the email failed the syntactic sanity check.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingAPIKey: no API key was configured; detected at client
	// construction, before any request is sent.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrAuth: the API rejected the key (HTTP 401 or 403).
	ErrAuth = errors.New("authentication failed")

	// ErrRateLimited: the API returned HTTP 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout: the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrParse: a 200 response carried a body that is not a valid breach
	// array (malformed JSON or a record without a Name).
	ErrParse = errors.New("malformed response body")

	// ErrUnexpectedStatus: the API returned a status outside the
	// documented 200/404/401/403/429 set.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Config holds everything the Lookup Client needs. It is passed explicitly
// into NewClient — there is no ambient global configuration.
type Config struct {
	// APIKey authenticates requests via the hibp-api-key header.
	// Required; an empty key fails NewClient before any request.
	APIKey string

	// BaseURL is the API root (no trailing slash). Defaults to
	// DefaultBaseURL when empty.
	BaseURL string

	// UserAgent overrides the User-Agent header. Defaults to
	// defaultUserAgent when empty.
	UserAgent string

	// Timeout bounds the whole request including body read.
	// Defaults to DefaultTimeout when zero.
	Timeout time.Duration

	// HTTPClient optionally supplies a pre-built client (used by tests).
	// When nil, NewClient builds one with a tuned transport.
	HTTPClient *http.Client
}

// Client performs single-address breach lookups against the configured API.
//
// Usage:
//
//	c, err := hibp.NewClient(hibp.Config{APIKey: key})
//	if err != nil { /* missing key */ }
//	result, err := c.Lookup(ctx, "user@example.com")
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	timeout   time.Duration
	http      *http.Client
}

// NewClient validates the configuration and returns a ready Client.
//
// A missing API key is an authentication failure detected here, before any
// request is sent. This mirrors the CLI contract: the process must exit
// with the auth code without touching the network when no key is available.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, model.WrapCLIError(model.ExitAuthFailure,
			"no API key configured (set BREACH_API_KEY, --api-key, or the config file)",
			ErrMissingAPIKey)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// One request per process: the pool sizing barely matters, but a
		// tuned transport keeps TLS handshakes bounded independently of
		// the overall timeout.
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   5 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		}
	}

	return &Client{
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		userAgent: userAgent,
		timeout:   timeout,
		http:      httpClient,
	}, nil
}

// Lookup checks one email address against the breach API and returns the
// result. The email is validated before any request is constructed; an
// invalid address never reaches the network.
//
// The returned error, when non-nil, is always a *model.CLIError wrapping
// one of the package sentinels, so both errors.Is classification and exit
// code translation work on it.
func (c *Client) Lookup(ctx context.Context, email string) (*model.LookupResult, error) {
	req, err := model.NewLookupRequest(email)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidInput, err.Error(), ErrInvalidInput)
	}

	// Step 1: Construct the request. The email becomes a path segment, so
	// it must be path-escaped ("+" and "/" are legal in local parts).
	endpoint := fmt.Sprintf("%s/breachedaccount/%s", c.baseURL, url.PathEscape(req.Email))

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to build request for %q", req.Email), err)
	}
	httpReq.Header.Set(apiKeyHeader, c.apiKey)
	httpReq.Header.Set("User-Agent", c.userAgent)

	// Step 2: Send it. This is the single suspension point of the whole
	// process; transport failures split into timeout vs. everything else.
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, model.WrapCLIError(model.ExitNetworkFailure,
				fmt.Sprintf("request to %s timed out after %s", c.baseURL, c.timeout),
				ErrTimeout)
		}
		return nil, model.WrapCLIError(model.ExitNetworkFailure,
			"request failed", err)
	}
	defer resp.Body.Close()

	// Step 3: Interpret the status code.
	switch resp.StatusCode {
	case http.StatusOK:
		return c.parseBreaches(req.Email, resp)

	case http.StatusNotFound:
		// Not found is the clean outcome, not an error: the address does
		// not appear in any known breach.
		drain(resp.Body)
		return &model.LookupResult{
			QueriedAddress: req.Email,
			Breached:       false,
			BreachNames:    []string{},
			RawStatusCode:  resp.StatusCode,
		}, nil

	case http.StatusUnauthorized, http.StatusForbidden:
		drain(resp.Body)
		return nil, model.WrapCLIError(model.ExitAuthFailure,
			fmt.Sprintf("API rejected the key (status=%d)", resp.StatusCode),
			ErrAuth)

	case http.StatusTooManyRequests:
		drain(resp.Body)
		msg := "rate limit exceeded, wait before retrying"
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			msg = fmt.Sprintf("rate limit exceeded, retry after %ss", retryAfter)
		}
		return nil, model.WrapCLIError(model.ExitRateLimited, msg, ErrRateLimited)

	default:
		drain(resp.Body)
		return nil, model.WrapCLIError(model.ExitUnexpectedResponse,
			fmt.Sprintf("unexpected API response (status=%d)", resp.StatusCode),
			ErrUnexpectedStatus)
	}
}

// parseBreaches decodes a 200 body into breach records and builds the
// result. The body must be a JSON array; every record must carry a Name.
// Anything else is a parse error — partial results are never returned.
func (c *Client) parseBreaches(email string, resp *http.Response) (*model.LookupResult, error) {
	var breaches []model.Breach
	if err := json.NewDecoder(resp.Body).Decode(&breaches); err != nil {
		return nil, model.WrapCLIError(model.ExitUnexpectedResponse,
			"failed to parse breach response", ErrParse)
	}

	names := make([]string, 0, len(breaches))
	for i := range breaches {
		if breaches[i].Name == "" {
			return nil, model.WrapCLIError(model.ExitUnexpectedResponse,
				fmt.Sprintf("breach record %d has no name", i), ErrParse)
		}
		names = append(names, breaches[i].Name)
	}

	return &model.LookupResult{
		QueriedAddress: email,
		Breached:       len(breaches) > 0,
		BreachNames:    names,
		RawStatusCode:  resp.StatusCode,
		Breaches:       breaches,
	}, nil
}

// isTimeout reports whether a transport error was caused by the deadline,
// distinguishing ErrTimeout from generic network failures.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// drain discards a bounded amount of an unneeded response body so the
// underlying connection can be reused.
func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxErrorBodyBytes))
}
