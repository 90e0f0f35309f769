package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"ctchen222/Crypto-Tracker/internal/api/response"
	"ctchen222/Crypto-Tracker/internal/config"
)

// News fetches crypto headlines from the NewsAPI "everything" endpoint.
type News struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewNews creates a News client. The API key is sent in the X-Api-Key
// header, keeping it out of URLs and therefore out of any error text.
func NewNews(cfg config.UpstreamConfig) *News {
	return &News{
		baseURL: cfg.NewsBaseURL,
		apiKey:  cfg.NewsAPIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Articles returns the latest crypto articles, unwrapped from the provider's
// envelope so callers see a bare JSON array.
func (n *News) Articles(ctx context.Context) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "News.Articles")
	defer span.End()

	params := url.Values{}
	params.Set("q", "crypto OR bitcoin OR ethereum")
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "10")

	body, err := fetch(ctx, n.client, n.baseURL+"/everything?"+params.Encode(), map[string]string{"X-Api-Key": n.apiKey})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Articles json.RawMessage `json:"articles"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Articles == nil {
		return nil, fmt.Errorf("%w: malformed news payload", response.ErrUpstream)
	}
	return envelope.Articles, nil
}
