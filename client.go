package bungie

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/lieuweberg/bungie-go/logger"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Client talks to the Bungie.net Platform. It is safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	log     *zap.Logger
	spam    *logger.Spamless
	metrics *metrics
}

type Option func(*Client)

// WithHTTPClient replaces the default cookie-jar client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRegisterer registers the client's request metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) { c.metrics = newMetrics(reg) }
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg: cfg,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = newMetrics(nil)
	}
	c.spam = logger.NewSpamless(c.log)

	if c.http == nil {
		// The platform hands out load balancer cookies; without them
		// consecutive calls may hit different, slightly stale, nodes.
		jar, err := cookiejar.New(nil)
		if err != nil {
			c.log.Warn("Couldn't create cookie jar, using an http client without one", zap.Error(err))
			c.http = &http.Client{Timeout: cfg.Timeout}
		} else {
			c.http = &http.Client{Jar: jar, Timeout: cfg.Timeout}
		}
	}

	return c, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.cfg
}

// Spamless is the repetition-suppressing logger the client reports through.
// Packages building on the client log via it to share its muting state.
func (c *Client) Spamless() *logger.Spamless {
	return c.spam
}

// Get issues one GET for endpoint, which must start with a '/', below
// Config.BaseURL and returns the raw body. Non-2xx responses are reported as
// *StatusError, everything else that keeps a body from arriving as
// *TransportError.
func (c *Client) Get(ctx context.Context, endpoint string) ([]byte, error) {
	url := c.cfg.BaseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Op: "building request", URL: url, Err: err}
	}
	c.addHeaders(req, true)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "GET", URL: url, Err: err}
	}
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		return nil, &TransportError{Op: "reading body of", URL: url, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, newStatusError(res.StatusCode, url, body)
	}
	return body, nil
}

// Download opens a content file, such as a world database, below
// Config.RootURL. These are plain files, not envelopes. The caller closes the
// returned body.
func (c *Client) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	url := c.cfg.RootURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Op: "building request", URL: url, Err: err}
	}
	c.addHeaders(req, false)

	// Content files are large; the per-request timeout is left to ctx.
	hc := *c.http
	hc.Timeout = 0
	res, err := hc.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "GET", URL: url, Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, &StatusError{StatusCode: res.StatusCode, URL: url}
	}
	return res.Body, nil
}

// Call fetches endpoint and decodes it into an Envelope[T]. A non-success
// ErrorCode is not an error here; check IsSuccess and ShouldThrottle.
func Call[T any](ctx context.Context, c *Client, endpoint string) (*Envelope[T], error) {
	return call[T](ctx, c, "other", endpoint)
}

// call is Call with a low-cardinality name for metrics and logs.
func call[T any](ctx context.Context, c *Client, name, endpoint string) (*Envelope[T], error) {
	start := time.Now()
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		outcome := outcomeTransportError
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			outcome = outcomeStatusError
		}
		c.metrics.observe(name, outcome, time.Since(start))
		c.spam.ErrorIfNoSpam(logger.OriginTransport, "Request to the Bungie.net Platform failed", "endpoint", name, "error", err)
		return nil, err
	}
	c.spam.Resolve(logger.OriginTransport)

	env, err := Decode[T](body)
	if err != nil {
		c.metrics.observe(name, outcomeDecodeError, time.Since(start))
		c.spam.ErrorIfNoSpam(logger.OriginDecode, "Couldn't decode a platform response", "endpoint", name, "error", err)
		return nil, err
	}
	outcome := outcomeSuccess
	if !env.IsSuccess() {
		outcome = outcomePlatformError
	}
	c.metrics.observe(name, outcome, time.Since(start))
	c.metrics.throttle.WithLabelValues(name).Set(float64(env.ShouldThrottle() / time.Second))

	c.log.Debug("Platform call finished",
		zap.String("endpoint", endpoint),
		zap.Stringer("errorCode", env.ErrorCode),
		zap.Int("throttleSeconds", env.ThrottleSeconds),
		zap.Duration("took", time.Since(start)),
	)
	if !env.IsSuccess() {
		c.spam.WarnIfNoSpam(logger.OriginPlatform, "Bungie returned an error status", "endpoint", name, "errorStatus", env.ErrorStatus, "message", env.Message)
	} else {
		c.spam.Resolve(logger.OriginPlatform)
	}
	if d := env.ShouldThrottle(); d > 0 {
		c.spam.WarnIfNoSpam(logger.OriginThrottle, "Bungie asked to back off", "endpoint", name, "wait", d)
	}

	return env, nil
}

func (c *Client) addHeaders(req *http.Request, platform bool) {
	req.Header.Set("User-Agent", c.cfg.UserAgent())
	if !platform {
		return
	}
	req.Header.Set("X-API-Key", c.cfg.APIKey)
	if c.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}
}

func newStatusError(code int, url string, body []byte) *StatusError {
	serr := &StatusError{StatusCode: code, URL: url}
	// Most platform failures still carry an envelope; the payload is irrelevant here.
	if env, err := Decode[struct{}](body); err == nil {
		serr.ErrorCode = env.ErrorCode
		serr.ErrorStatus = env.ErrorStatus
		serr.Message = env.Message
	}
	return serr
}
