package kaltura

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"flavorcheck/internal/logging"
	"flavorcheck/internal/services"
)

const (
	DefaultServiceURL = "https://www.kaltura.com"
	defaultUserAgent  = "flavorcheck/dev"
	defaultTimeout    = 30 * time.Second
	DefaultPageSize   = 500
	defaultExpiry     = 24 * time.Hour
	defaultRPS        = 5
	defaultRetries    = 3
	sessionTypeAdmin  = 2
	clientTag         = "flavorcheck"
	maxResponseBytes  = 32 << 20
	component         = "kaltura"
)

// Config describes the Kaltura client configuration.
type Config struct {
	ServiceURL        string
	PartnerID         int
	AdminSecret       string
	AdminUserID       string
	SessionExpiry     time.Duration
	PageSize          int
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	Timeout           time.Duration
	UserAgent         string
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// Client wraps the Kaltura api_v3 JSON endpoints needed to inspect an entry.
// It is safe for concurrent use, though the inspector calls it sequentially.
type Client struct {
	baseURL    *url.URL
	partnerID  int
	secret     string
	userID     string
	expiry     time.Duration
	pageSize   int
	maxRetries int
	userAgent  string
	http       *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	params     *cache.Cache

	mu sync.Mutex
	ks string
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	if cfg.PartnerID <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client", "partner id must be positive", nil)
	}
	secret := strings.TrimSpace(cfg.AdminSecret)
	if secret == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client", "admin secret is required", nil)
	}
	base := strings.TrimSpace(cfg.ServiceURL)
	if base == "" {
		base = DefaultServiceURL
	}
	baseURL, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client", fmt.Sprintf("invalid service url %q", base), err)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	expiry := cfg.SessionExpiry
	if expiry <= 0 {
		expiry = defaultExpiry
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > DefaultPageSize {
		pageSize = DefaultPageSize
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = max(1, int(rps))
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	} else if retries == 0 {
		retries = defaultRetries
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    baseURL,
		partnerID:  cfg.PartnerID,
		secret:     secret,
		userID:     strings.TrimSpace(cfg.AdminUserID),
		expiry:     expiry,
		pageSize:   pageSize,
		maxRetries: retries,
		userAgent:  userAgent,
		http:       httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		logger:     logging.NewComponentLogger(cfg.Logger, component),
		params:     cache.New(cache.NoExpiration, 0),
	}, nil
}

// PartnerID returns the partner the client authenticates as.
func (c *Client) PartnerID() int {
	return c.partnerID
}

// call performs one service action. The response body is decoded into out
// unless it is a KalturaAPIException, which is returned as *APIError wrapped
// with the matching run error marker.
func (c *Client) call(ctx context.Context, service, action string, params url.Values, out any) error {
	if c == nil {
		return errors.New("kaltura: client is nil")
	}
	form := url.Values{}
	for k, v := range params {
		form[k] = append([]string(nil), v...)
	}
	form.Set("format", "1")
	form.Set("clientTag", clientTag)
	if service != "session" {
		ks, err := c.session(ctx)
		if err != nil {
			return err
		}
		form.Set("ks", ks)
	}
	endpoint := c.baseURL.JoinPath("api_v3", "service", service, "action", action).String()
	op := service + "." + action
	logger := logging.WithContext(ctx, c.logger)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoff(attempt)
			logger.Debug("retrying api call",
				logging.String(logging.FieldService, service),
				logging.String(logging.FieldAction, action),
				logging.Int("attempt", attempt),
				logging.Duration("delay", delay),
				logging.Error(lastErr),
			)
			if err := sleepWithContext(ctx, delay); err != nil {
				return services.Wrap(services.ErrAPICall, component, op, "interrupted", err)
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return services.Wrap(services.ErrAPICall, component, op, "rate limiter", err)
		}
		started := time.Now()
		body, err := c.post(ctx, endpoint, form)
		logger.Debug("api call",
			logging.String(logging.FieldService, service),
			logging.String(logging.FieldAction, action),
			logging.Duration("elapsed", time.Since(started)),
			logging.Bool("ok", err == nil),
		)
		if err == nil {
			return decodeResponse(service, action, body, out)
		}
		lastErr = err
		if ctx.Err() != nil || !isRetriable(err) {
			break
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return services.Wrap(services.ErrAPICall, component, op, "interrupted", ctxErr)
	}
	return wrapTransport(op, lastErr)
}

func (c *Client) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &statusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(snippet))}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

type exceptionProbe struct {
	ObjectType string `json:"objectType"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func decodeResponse(service, action string, body []byte, out any) error {
	op := service + "." + action
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe exceptionProbe
		if err := json.Unmarshal(trimmed, &probe); err == nil && probe.ObjectType == "KalturaAPIException" {
			apiErr := &APIError{Service: service, Action: action, Code: probe.Code, Message: strings.TrimSpace(probe.Message)}
			return services.Wrap(apiErr.Marker(), component, op, probe.Code, apiErr)
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return services.Wrap(services.ErrAPICall, component, op, "decode response", err)
	}
	return nil
}

func wrapTransport(op string, err error) error {
	var status *statusError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return services.Wrap(services.ErrAPICall, component, op, "interrupted", err)
	case errors.Is(err, context.DeadlineExceeded):
		return services.Wrap(services.ErrTimeout, component, op, "request timed out", err)
	case errors.As(err, &status):
		return services.Wrap(status.marker(), component, op, "unexpected http status", err)
	default:
		return services.Wrap(services.ErrAPICall, component, op, "request failed", err)
	}
}

// StartSession opens an admin session and caches the KS for later calls.
func (c *Client) StartSession(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("secret", c.secret)
	params.Set("partnerId", strconv.Itoa(c.partnerID))
	params.Set("type", strconv.Itoa(sessionTypeAdmin))
	params.Set("expiry", strconv.Itoa(int(c.expiry.Seconds())))
	if c.userID != "" {
		params.Set("userId", c.userID)
	}
	var ks string
	if err := c.call(ctx, "session", "start", params, &ks); err != nil {
		// Any failure to open a session is an authentication failure, including
		// transport errors from a wrong service url.
		if errors.Is(err, context.Canceled) || errors.Is(err, services.ErrAuthentication) {
			return "", err
		}
		msg := "session not started"
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Code
		}
		return "", services.Wrap(services.ErrAuthentication, component, "session.start", msg, err)
	}
	ks = strings.TrimSpace(ks)
	if ks == "" {
		return "", services.Wrap(services.ErrAuthentication, component, "session.start", "empty session returned", nil)
	}
	c.mu.Lock()
	c.ks = ks
	c.mu.Unlock()
	return ks, nil
}

func (c *Client) session(ctx context.Context) (string, error) {
	c.mu.Lock()
	ks := c.ks
	c.mu.Unlock()
	if ks != "" {
		return ks, nil
	}
	return c.StartSession(ctx)
}
