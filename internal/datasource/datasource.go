// Package datasource provides the upstream market-data adapters: NSE India,
// Twelve Data, Yahoo Finance, Frankfurter FX, MFAPI mutual funds and RSS
// headlines. Each adapter returns typed, nullable models and never panics;
// every failure comes back as an error value.
package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/seenimoa/finassist/pkg/models"
)

// Provider is the uniform market-data contract. Adapters that cannot serve
// an operation return ErrNotSupported.
type Provider interface {
	// Name returns the short provider name recorded in result "source" fields.
	Name() string

	Quote(ctx context.Context, id string) (*models.Quote, error)
	Profile(ctx context.Context, id string) (*models.Profile, error)
	Metrics(ctx context.Context, id string) (*models.Metrics, error)
	Candles(ctx context.Context, id string, w models.Window) ([]models.Candle, error)
	News(ctx context.Context, id string, limit int) ([]models.NewsArticle, error)
	Analyst(ctx context.Context, id string) (*models.AnalystRatings, error)
}

// --- Sentinel errors ---

// ErrNotSupported is returned when a data source does not support a method.
var ErrNotSupported = errors.New("operation not supported by this data source")

// ErrSymbolNotFound is returned when the upstream does not know the symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// ErrRateLimited is returned when a source rate-limits the request.
var ErrRateLimited = errors.New("rate limited by data source")

// ErrMissingAPIKey is returned by keyed adapters that were built without a key.
var ErrMissingAPIKey = errors.New("api key not set")

// ErrEmpty is returned when a response parsed but carried no usable data.
var ErrEmpty = errors.New("empty response")

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// --- Shared HTTP client helpers ---

// DefaultUserAgent is the user agent string used for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

const maxErrorBody = 1024

// maxBody caps a success body read into memory.
var maxBody int64 = 32 << 20

// client bundles the HTTP plumbing shared by every adapter.
type client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	headers map[string]string
}

// Option configures an adapter's HTTP client.
type Option func(*client)

// WithBaseURL points the adapter at a different host, e.g. an httptest server.
func WithBaseURL(u string) Option {
	return func(c *client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the adapter's HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// WithRateLimit caps outbound requests. A zero limit disables limiting.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *client) {
		if limit <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// PerMinute converts a requests-per-minute budget to a rate.Limit.
func PerMinute(n int) rate.Limit {
	if n <= 0 {
		return 0
	}
	return rate.Every(time.Minute / time.Duration(n))
}

func newClient(baseURL string, timeout time.Duration, opts []Option) *client {
	c := &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		headers: map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// get waits for the limiter and performs a GET, returning the body bytes.
func (c *client) get(ctx context.Context, path string, query url.Values, headers map[string]string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	merged := make(map[string]string, len(c.headers)+len(headers))
	for k, v := range c.headers {
		merged[k] = v
	}
	for k, v := range headers {
		merged[k] = v
	}

	body, _, err := doGet(ctx, c.http, c.endpoint(path, query), merged)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	data, err := io.ReadAll(io.LimitReader(body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > maxBody {
		return nil, fmt.Errorf("read %s: response exceeds %d bytes", path, maxBody)
	}
	return data, nil
}

// getJSON performs get and decodes the body into v.
func (c *client) getJSON(ctx context.Context, path string, query url.Values, headers map[string]string, v any) error {
	data, err := c.get(ctx, path, query, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// doGet performs a GET request with the given URL and headers, returning the response body.
// The caller is responsible for closing the returned ReadCloser.
// Errors never carry the query string, which may hold an API key.
func doGet(ctx context.Context, hc *http.Client, rawURL string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, errors.New("create request: invalid URL")
	}

	// Set default headers.
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json, text/html, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	// Override/add custom headers.
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, 0, fmt.Errorf("HTTP GET %s: %w", req.URL.Path, err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		httpErr := &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(body)),
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, resp.StatusCode, fmt.Errorf("%w: %w", ErrRateLimited, httpErr)
		}
		return nil, resp.StatusCode, httpErr
	}

	return resp.Body, resp.StatusCode, nil
}

// --- Lenient JSON numbers ---

// flexFloat decodes vendor numbers that may arrive as JSON numbers, numeric
// strings, "", "N/A", "None", null, or Yahoo-style {"raw": n, "fmt": "..."}
// objects. Anything unparsable leaves it unset.
type flexFloat struct {
	Val   float64
	Valid bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	*f = flexFloat{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '{':
		var obj struct {
			Raw flexFloat `json:"raw"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		*f = obj.Raw
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
		s = strings.TrimSuffix(s, "%")
		switch strings.ToLower(s) {
		case "", "n/a", "na", "none", "null", "-", "nan":
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !finite(v) {
			return nil
		}
		f.Val, f.Valid = v, true
		return nil
	default:
		v, err := strconv.ParseFloat(string(b), 64)
		if err != nil || !finite(v) {
			return nil
		}
		f.Val, f.Valid = v, true
		return nil
	}
}

func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

// Ptr returns the value or nil when unset.
func (f flexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Val
	return &v
}

// Positive returns the value when it is strictly positive, else nil.
func (f flexFloat) Positive() *float64 {
	if !f.Valid || f.Val <= 0 {
		return nil
	}
	v := f.Val
	return &v
}

// Percent returns the value scaled from a fraction to percent.
func (f flexFloat) Percent() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Val * 100
	return &v
}

// Int64 returns the value truncated to an integer, or nil when unset.
func (f flexFloat) Int64() *int64 {
	if !f.Valid {
		return nil
	}
	v := int64(f.Val)
	return &v
}

// firstNonEmpty returns the first non-blank string.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
