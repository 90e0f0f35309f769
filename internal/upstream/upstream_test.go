package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ctchen222/Crypto-Tracker/internal/api/response"
	"ctchen222/Crypto-Tracker/internal/config"
)

func testConfig(baseURL string) config.UpstreamConfig {
	return config.UpstreamConfig{
		CoinGeckoBaseURL: baseURL,
		CoinGeckoAPIKey:  "cg-test-key",
		NewsBaseURL:      baseURL,
		NewsAPIKey:       "news-test-key",
		Timeout:          2 * time.Second,
	}
}

func TestCoinGecko_Markets(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("x-cg-demo-api-key")
		w.Write([]byte(`[{"id":"bitcoin"}]`))
	}))
	defer srv.Close()

	cg := NewCoinGecko(testConfig(srv.URL))
	payload, err := cg.Markets(context.Background(), "usd", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(payload) != `[{"id":"bitcoin"}]` {
		t.Errorf("unexpected payload: %s", payload)
	}
	if gotPath != "/coins/markets" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	for _, want := range []string{"vs_currency=usd", "page=2", "per_page=50", "order=market_cap_desc"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("expected query to contain %s, got %s", want, gotQuery)
		}
	}
	if gotKey != "cg-test-key" {
		t.Errorf("expected API key header, got %q", gotKey)
	}
}

func TestCoinGecko_Coin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"bitcoin"}`))
	}))
	defer srv.Close()

	cg := NewCoinGecko(testConfig(srv.URL))
	payload, err := cg.Coin(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `{"id":"bitcoin"}` {
		t.Errorf("unexpected payload: %s", payload)
	}
}

func TestCoinGecko_Chart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin/market_chart" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("days"); got != "7" {
			t.Errorf("expected days=7, got %s", got)
		}
		w.Write([]byte(`{"prices":[]}`))
	}))
	defer srv.Close()

	cg := NewCoinGecko(testConfig(srv.URL))
	if _, err := cg.Chart(context.Background(), "bitcoin", "usd", "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCoinGecko_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cg := NewCoinGecko(testConfig(srv.URL))
	_, err := cg.Coin(context.Background(), "bitcoin")
	if !errors.Is(err, response.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected error to carry upstream status, got %v", err)
	}
}

func TestCoinGecko_TransportError(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Timeout = 200 * time.Millisecond

	cg := NewCoinGecko(cfg)
	_, err := cg.Markets(context.Background(), "usd", 1)
	if !errors.Is(err, response.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestNews_Articles(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		if r.URL.Path != "/everything" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"ok","articles":[{"title":"BTC up"}]}`))
	}))
	defer srv.Close()

	n := NewNews(testConfig(srv.URL))
	articles, err := n.Articles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(articles) != `[{"title":"BTC up"}]` {
		t.Errorf("expected unwrapped articles array, got %s", articles)
	}
	if gotKey != "news-test-key" {
		t.Errorf("expected API key header, got %q", gotKey)
	}
}

func TestNews_ErrorDoesNotLeakKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewNews(testConfig(srv.URL))
	_, err := n.Articles(context.Background())
	if !errors.Is(err, response.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if strings.Contains(err.Error(), "news-test-key") {
		t.Error("error text must not contain the provider API key")
	}
}

func TestNews_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	n := NewNews(testConfig(srv.URL))
	if _, err := n.Articles(context.Background()); !errors.Is(err, response.ErrUpstream) {
		t.Fatalf("expected ErrUpstream for missing articles, got %v", err)
	}
}
