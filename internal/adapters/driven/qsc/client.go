package qsc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = domain.DefaultTimeout

	// MaxBodySize caps how much of a response body is read.
	MaxBodySize = 8 << 20

	// HeaderRequestID correlates a request with backend logs.
	HeaderRequestID = "X-Request-ID"
)

// Verify interface compliance.
var _ driven.SearchBackend = (*Client)(nil)

// Config configures a Client.
type Config struct {
	Endpoint        string
	SuggestEndpoint string
	ResultKey       string
	Timeout         time.Duration
	RateLimit       float64
	APIToken        string
	UserAgent       string

	// HTTPClient overrides the transport. Timeout and APIToken are ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings maps backend settings to a client config.
func ConfigFromSettings(s domain.BackendSettings) Config {
	return Config{
		Endpoint:        s.Endpoint,
		SuggestEndpoint: s.SuggestEndpoint,
		ResultKey:       s.ResultKey,
		Timeout:         s.Timeout,
		RateLimit:       s.RateLimit,
		APIToken:        s.APIToken,
	}
}

// Client talks to the results and suggestion endpoints.
type Client struct {
	http      *http.Client
	endpoint  *url.URL
	suggest   *url.URL
	resultKey string
	userAgent string
	limiter   *RateLimiter
}

// NewClient creates a client. The results endpoint and result key are required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", domain.ErrNotConfigured)
	}
	if cfg.ResultKey == "" {
		return nil, fmt.Errorf("%w: result key is required", domain.ErrNotConfigured)
	}
	endpoint, err := parseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	c := &Client{
		http:      cfg.HTTPClient,
		endpoint:  endpoint,
		resultKey: cfg.ResultKey,
		userAgent: cfg.UserAgent,
		limiter:   NewRateLimiter(cfg.RateLimit),
	}
	if cfg.SuggestEndpoint != "" {
		if c.suggest, err = parseEndpoint(cfg.SuggestEndpoint); err != nil {
			return nil, err
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	// One Retry-After hint holds requests back for at most one timeout.
	c.limiter.SetMaxBackoff(timeout)

	if c.http == nil {
		if cfg.APIToken != "" {
			ts := oauth2.StaticTokenSource(
				&oauth2.Token{AccessToken: cfg.APIToken},
			)
			c.http = oauth2.NewClient(context.Background(), ts)
		} else {
			c.http = &http.Client{}
		}
		c.http.Timeout = timeout
	}
	return c, nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: endpoint %q: %v", domain.ErrInvalidInput, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: endpoint %q must be http or https", domain.ErrInvalidInput, raw)
	}
	return u, nil
}

// Search queries the results endpoint.
func (c *Client) Search(ctx context.Context, params url.Values) (*domain.ResultPage, error) {
	body, err := c.get(ctx, c.endpoint, params)
	if err != nil {
		return nil, err
	}
	return decodeResultPage(body, c.resultKey)
}

// Suggest queries the suggestion endpoint.
func (c *Client) Suggest(ctx context.Context, params url.Values) ([]domain.Suggestion, error) {
	if c.suggest == nil {
		return nil, fmt.Errorf("%w: suggest endpoint", domain.ErrNotConfigured)
	}
	body, err := c.get(ctx, c.suggest, params)
	if err != nil {
		return nil, err
	}
	return decodeSuggestions(body)
}

// get issues a GET to endpoint with params merged over its own query.
func (c *Client) get(ctx context.Context, endpoint *url.URL, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if errors.Is(err, ErrBackingOff) {
			return nil, &domain.FetchError{Kind: domain.ErrBadResponse, Err: err}
		}
		return nil, &domain.FetchError{Kind: domain.ErrNetworkFailure, Err: err}
	}

	u := *endpoint
	query := u.Query()
	for k, vs := range params {
		query[k] = append([]string(nil), vs...)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.ErrNetworkFailure, Err: err}
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger.Debug("GET %s request_id=%s", u.Redacted(), requestID)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.ErrNetworkFailure, Err: err}
	}
	defer resp.Body.Close()

	c.limiter.Observe(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodySize))
		return nil, &domain.FetchError{Kind: domain.ErrBadResponse, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.ErrNetworkFailure, Status: resp.StatusCode, Err: err}
	}
	return body, nil
}
