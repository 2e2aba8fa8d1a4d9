package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestFlexFloat(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{`12.5`, 12.5, true},
		{`"12.5"`, 12.5, true},
		{`"1,234.50"`, 1234.5, true},
		{`"3.2%"`, 3.2, true},
		{`{"raw": 0.25, "fmt": "25%"}`, 0.25, true},
		{`0`, 0, true},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"N/A"`, 0, false},
		{`"None"`, 0, false},
		{`"-"`, 0, false},
		{`{}`, 0, false},
		{`"abc"`, 0, false},
		{`"Infinity"`, 0, false},
		{`"inf"`, 0, false},
		{`"-Inf"`, 0, false},
		{`"NaN"`, 0, false},
		{`1e400`, 0, false},
	}
	for _, tt := range tests {
		var f flexFloat
		if err := json.Unmarshal([]byte(tt.in), &f); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", tt.in, err)
		}
		if f.Valid != tt.valid || f.Val != tt.want {
			t.Errorf("Unmarshal(%s) = {%v %v}, want {%v %v}", tt.in, f.Val, f.Valid, tt.want, tt.valid)
		}
	}
}

func TestFlexFloatInStruct(t *testing.T) {
	var v struct {
		A flexFloat `json:"a"`
		B flexFloat `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":"N/A","b":"7"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.A.Ptr() != nil {
		t.Errorf("a should be null")
	}
	if p := v.B.Ptr(); p == nil || *p != 7 {
		t.Errorf("b = %v, want 7", p)
	}
}

func TestFlexFloatHelpers(t *testing.T) {
	f := flexFloat{Val: 0.153, Valid: true}
	if p := f.Percent(); p == nil || math.Abs(*p-15.3) > 1e-9 {
		t.Errorf("Percent() = %v", p)
	}
	if (flexFloat{Val: -1, Valid: true}).Positive() != nil {
		t.Error("Positive() must drop negatives")
	}
	if (flexFloat{Val: 0, Valid: true}).Positive() != nil {
		t.Error("Positive() must drop zero")
	}
	if n := (flexFloat{Val: 1234.9, Valid: true}).Int64(); n == nil || *n != 1234 {
		t.Errorf("Int64() = %v, want 1234", n)
	}
	if (flexFloat{}).Int64() != nil {
		t.Error("Int64() of unset must be nil")
	}
}

func TestDoGetStatusMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/limited":
			http.Error(w, "slow down", http.StatusTooManyRequests)
		case "/broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	c := newClient(srv.URL, 0, nil)

	_, err := c.get(context.Background(), "/limited", nil, nil)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("429: got %v, want ErrRateLimited", err)
	}
	var httpErr *ErrHTTP
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("429 should also carry *ErrHTTP, got %v", err)
	}

	_, err = c.get(context.Background(), "/broken", nil, nil)
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("500: got %v, want *ErrHTTP 500", err)
	}
	if httpErr.Body != "boom" {
		t.Errorf("body = %q, want boom", httpErr.Body)
	}

	if _, err := c.get(context.Background(), "/ok", nil, nil); err != nil {
		t.Errorf("200: unexpected error %v", err)
	}
}

func TestClientHeadersAndLimiter(t *testing.T) {
	var gotUA, gotCustom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCustom = r.Header.Get("X-Test")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newClient("http://unused", 0, []Option{WithBaseURL(srv.URL + "/"), WithRateLimit(PerMinute(60), 1)})
	c.headers["X-Test"] = "yes"
	if _, err := c.get(context.Background(), "x", nil, nil); err != nil {
		t.Fatal(err)
	}
	if gotUA != DefaultUserAgent || gotCustom != "yes" {
		t.Errorf("headers = %q %q", gotUA, gotCustom)
	}
	if c.limiter == nil || c.limiter.Burst() != 1 {
		t.Error("expected limiter with burst 1")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.get(ctx, "x", nil, nil); err == nil {
		t.Error("expected error from limiter on cancelled context")
	}
}

func TestPerMinute(t *testing.T) {
	if PerMinute(0) != 0 {
		t.Error("PerMinute(0) should disable limiting")
	}
	if got := float64(PerMinute(8)); got < 0.13 || got > 0.14 {
		t.Errorf("PerMinute(8) = %v, want ~0.1333/s", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", "b", "c"); got != "b" {
		t.Errorf("got %q, want b", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestFlexFloatNonFiniteMarshals(t *testing.T) {
	var v struct {
		A flexFloat `json:"a"`
	}
	if err := json.Unmarshal([]byte(`{"a":"Infinity"}`), &v); err != nil {
		t.Fatal(err)
	}
	if _, err := json.Marshal(map[string]*float64{"a": v.A.Ptr()}); err != nil {
		t.Errorf("Marshal after non-finite input: %v", err)
	}
}

func TestClientGetTransportErrorHidesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := newClient(base, time.Second, nil)
	_, err := c.get(context.Background(), "/quote", url.Values{"apikey": {"SECRETKEY123"}, "symbol": {"AAPL"}}, nil)
	if err == nil {
		t.Fatal("expected a connection error")
	}
	if strings.Contains(err.Error(), "SECRETKEY123") || strings.Contains(err.Error(), "apikey") {
		t.Errorf("error leaks the query string: %v", err)
	}
	if !strings.Contains(err.Error(), "/quote") {
		t.Errorf("error should name the path: %v", err)
	}
}

func TestClientGetCapsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	old := maxBody
	maxBody = 16
	defer func() { maxBody = old }()

	c := newClient(srv.URL, time.Second, nil)
	if _, err := c.get(context.Background(), "/big", nil, nil); err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("got %v, want size error", err)
	}

	maxBody = 64
	data, err := c.get(context.Background(), "/big", nil, nil)
	if err != nil || len(data) != 64 {
		t.Errorf("got %d bytes, %v; want 64 bytes", len(data), err)
	}
}
