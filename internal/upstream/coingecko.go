package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"ctchen222/Crypto-Tracker/internal/config"

	"go.opentelemetry.io/otel/attribute"
)

// CoinGecko fetches market data from the CoinGecko REST API.
type CoinGecko struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewCoinGecko creates a CoinGecko client with the configured base URL, API
// key and timeout.
func NewCoinGecko(cfg config.UpstreamConfig) *CoinGecko {
	return &CoinGecko{
		baseURL: cfg.CoinGeckoBaseURL,
		apiKey:  cfg.CoinGeckoAPIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *CoinGecko) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"x-cg-demo-api-key": c.apiKey}
}

// Markets returns one page of coin market listings for a currency.
func (c *CoinGecko) Markets(ctx context.Context, vsCurrency string, page int) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "CoinGecko.Markets")
	defer span.End()
	span.SetAttributes(attribute.String("markets.vs_currency", vsCurrency), attribute.Int("markets.page", page))

	params := url.Values{}
	params.Set("vs_currency", vsCurrency)
	params.Set("order", "market_cap_desc")
	params.Set("per_page", "50")
	params.Set("page", strconv.Itoa(page))
	params.Set("price_change_percentage", "24h")
	params.Set("sparkline", "true")

	return fetch(ctx, c.client, c.baseURL+"/coins/markets?"+params.Encode(), c.headers())
}

// Coin returns the full detail object for one coin.
func (c *CoinGecko) Coin(ctx context.Context, id string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "CoinGecko.Coin")
	defer span.End()
	span.SetAttributes(attribute.String("coin.id", id))

	return fetch(ctx, c.client, fmt.Sprintf("%s/coins/%s", c.baseURL, url.PathEscape(id)), c.headers())
}

// Chart returns historical market chart data for one coin.
func (c *CoinGecko) Chart(ctx context.Context, id, vsCurrency, days string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "CoinGecko.Chart")
	defer span.End()
	span.SetAttributes(attribute.String("coin.id", id))

	params := url.Values{}
	params.Set("vs_currency", vsCurrency)
	params.Set("days", days)

	return fetch(ctx, c.client, fmt.Sprintf("%s/coins/%s/market_chart?%s", c.baseURL, url.PathEscape(id), params.Encode()), c.headers())
}
