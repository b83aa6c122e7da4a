package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/orgbase/orgcore/cache"
	"github.com/orgbase/orgcore/config"
	"github.com/orgbase/orgcore/fault"
	"github.com/orgbase/orgcore/logging"
	"github.com/orgbase/orgcore/query"
)

const (
	headerClientKey = "Org-Client-Key"
	headerRequestID = "X-Request-Id"
)

// cachedResponse is one cached GET response, revalidated by ETag.
type cachedResponse struct {
	ETag    string           `json:"etag"`
	Items   []map[string]any `json:"items"`
	HasMore *bool            `json:"hasMore,omitempty"`
}

// Client is the HTTP Fetcher. All requests are scoped to the configured
// org; responses are decoded from the backend's envelope format and
// backend faults surface as *fault.Fault errors.
type Client struct {
	http    *http.Client
	cfg     *config.Config
	session *Session
	log     *logging.Logger
	breaker *gobreaker.CircuitBreaker
	cache   cache.Store[cachedResponse]
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithSession attaches a bearer session to all requests.
func WithSession(s *Session) ClientOption {
	return func(c *Client) { c.session = s }
}

// WithResponseCache caches GET responses in the store and revalidates
// them with If-None-Match.
func WithResponseCache(store cache.Store[cachedResponse]) ClientOption {
	return func(c *Client) { c.cache = store }
}

// NewClient creates the HTTP fetcher for an org.
func NewClient(cfg *config.Config, log *logging.Logger, opts ...ClientOption) (*Client, error) {
	if cfg == nil || cfg.API == nil || cfg.API.BaseURL == "" {
		return nil, fault.InvalidArgument("transport: missing API base URL")
	}
	if cfg.API.OrgCode == "" {
		return nil, fault.InvalidArgument("transport: missing org code")
	}
	if log == nil {
		log = logging.Discard()
	}
	c := &Client{
		http: &http.Client{Timeout: cfg.API.Timeout},
		cfg:  cfg,
		log:  log,
	}
	if cfg.API.SessionToken != "" {
		c.session = NewSession(cfg.API.SessionToken)
	}
	if bc := cfg.Breaker; bc != nil && bc.Enabled {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "orgcore-" + cfg.API.OrgCode,
			MaxRequests: bc.MaxRequests,
			Interval:    bc.Interval,
			Timeout:     bc.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= bc.MaxFailures
			},
		})
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch implements Fetcher.
func (c *Client) Fetch(ctx context.Context, target Target, params *query.Parameters) (*Page, error) {
	u, err := c.requestURL(target, params)
	if err != nil {
		return nil, fault.FromError(err)
	}

	var cached *cachedResponse
	if c.cache != nil {
		if entry, err := c.cache.Get(ctx, u); err == nil {
			cached = entry
		} else if !errors.Is(err, cache.ErrMiss) {
			c.log.WithComponent("transport").WithError(err).Warn("response cache get failed")
		}
	}

	page, err := c.do(ctx, u, cached)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (c *Client) requestURL(target Target, params *query.Parameters) (string, error) {
	base, err := url.Parse(c.cfg.API.BaseURL)
	if err != nil {
		return "", fmt.Errorf("transport: bad base URL: %w", err)
	}
	route := target.RoutePath()
	if route == "" {
		return "", fault.InvalidArgument("transport: empty target")
	}
	base.Path = strings.TrimRight(base.Path, "/") + "/" + c.cfg.API.OrgCode + "/" + route
	if !params.IsEmpty() {
		base.RawQuery = params.Encode().Encode()
	}
	return base.String(), nil
}

func (c *Client) do(ctx context.Context, u string, cached *cachedResponse) (*Page, error) {
	requestID := uuid.NewString()
	log := c.log.WithComponent("transport").
		WithField("request_id", requestID).
		WithField("url", u)

	run := func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set(headerRequestID, requestID)
		if c.cfg.API.ClientKey != "" {
			req.Header.Set(headerClientKey, c.cfg.API.ClientKey)
		}
		if c.session != nil {
			req.Header.Set("Authorization", "Bearer "+c.session.Token)
		}
		if cached != nil && cached.ETag != "" {
			req.Header.Set("If-None-Match", cached.ETag)
		}
		return c.http.Do(req)
	}

	var (
		res any
		err error
	)
	if c.breaker != nil {
		res, err = c.breaker.Execute(run)
	} else {
		res, err = run()
	}
	if err != nil {
		log.WithError(err).Warn("request failed")
		return nil, fault.FromError(err)
	}
	resp := res.(*http.Response)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && cached != nil {
		log.Debug("served from cache")
		return &Page{Items: cached.Items, HasMore: cached.HasMore}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fault.FromError(err)
	}

	page, f := decodeEnvelope(body, resp.StatusCode)
	if f != nil {
		log.WithField("code", f.Code).WithField("status", f.Status).Debug("backend fault")
		return nil, f
	}

	if c.cache != nil {
		if etag := resp.Header.Get("ETag"); etag != "" {
			entry := &cachedResponse{ETag: etag, Items: page.Items, HasMore: page.HasMore}
			if err := c.cache.Set(ctx, u, entry, c.cacheTTL()); err != nil {
				log.WithError(err).Warn("response cache set failed")
			}
		}
	}
	return page, nil
}

func (c *Client) cacheTTL() (ttl time.Duration) {
	if c.cfg.Cache != nil {
		ttl = c.cfg.Cache.TTL
	}
	return ttl
}

// decodeEnvelope unpacks the backend's response envelope: a fault object,
// a list envelope with data and hasMore, or a single object.
func decodeEnvelope(body []byte, status int) (*Page, *fault.Fault) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		if status >= 400 {
			return nil, &fault.Fault{
				Name: "fault", Code: fault.CodeRequestFailed,
				Message: http.StatusText(status), Status: status,
			}
		}
		return nil, fault.New(fault.CodeInvalidResponse, "malformed response body")
	}

	if f := fault.FromAttributes(payload); f != nil {
		if f.Status == 0 {
			f.Status = status
		}
		return nil, f
	}
	if status >= 400 {
		return nil, &fault.Fault{
			Name: "fault", Code: fault.CodeRequestFailed,
			Message: http.StatusText(status), Status: status,
		}
	}

	if payload["object"] == "list" {
		page := &Page{}
		if raw, ok := payload["data"].([]any); ok {
			page.Items = make([]map[string]any, 0, len(raw))
			for _, item := range raw {
				if attrs, ok := item.(map[string]any); ok {
					page.Items = append(page.Items, attrs)
				}
			}
		}
		if hasMore, ok := payload["hasMore"].(bool); ok {
			page.HasMore = &hasMore
		}
		return page, nil
	}

	return &Page{Items: []map[string]any{payload}}, nil
}
