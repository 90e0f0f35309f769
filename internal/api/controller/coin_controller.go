package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"ctchen222/Crypto-Tracker/internal/api/models"
	"ctchen222/Crypto-Tracker/internal/api/response"
	"ctchen222/Crypto-Tracker/internal/cache"
	"ctchen222/Crypto-Tracker/internal/validator"

	"github.com/gin-gonic/gin"
)

// MarketData is the slice of the CoinGecko client the coin routes need.
type MarketData interface {
	Markets(ctx context.Context, vsCurrency string, page int) (json.RawMessage, error)
	Coin(ctx context.Context, id string) (json.RawMessage, error)
	Chart(ctx context.Context, id, vsCurrency, days string) (json.RawMessage, error)
}

// NewsProvider is the slice of the news client the news route needs.
type NewsProvider interface {
	Articles(ctx context.Context) (json.RawMessage, error)
}

// CoinController proxies market-data and news requests through the response
// cache. Every route is cache-aside: consult the cache, fetch upstream on a
// miss, write the result back.
type CoinController struct {
	markets MarketData
	news    NewsProvider
	cache   cache.Store
}

// NewCoinController creates a new CoinController.
func NewCoinController(markets MarketData, news NewsProvider, store cache.Store) *CoinController {
	return &CoinController{markets: markets, news: news, cache: store}
}

// Markets handles GET /api/coins/markets?vs_currency&page.
func (cc *CoinController) Markets(c *gin.Context) {
	query := models.MarketsQuery{VsCurrency: "usd", Page: 1}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if err := validator.GetValidator().Struct(query); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	key := fmt.Sprintf("markets-%s-%d", query.VsCurrency, query.Page)
	if payload, ok := cc.cache.Get(c.Request.Context(), key); ok {
		response.Raw(c, payload)
		return
	}

	payload, err := cc.markets.Markets(c.Request.Context(), query.VsCurrency, query.Page)
	if err != nil {
		response.Error(c, err, "Failed to fetch market data")
		return
	}

	cc.cache.Set(c.Request.Context(), key, payload)
	response.Raw(c, payload)
}

// Coin handles GET /api/coins/:id.
func (cc *CoinController) Coin(c *gin.Context) {
	id := c.Param("id")

	key := "coin-" + id
	if payload, ok := cc.cache.Get(c.Request.Context(), key); ok {
		response.Raw(c, payload)
		return
	}

	payload, err := cc.markets.Coin(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, "Failed to fetch coin "+id)
		return
	}

	cc.cache.Set(c.Request.Context(), key, payload)
	response.Raw(c, payload)
}

// Chart handles GET /api/coins/chart/:id?vs_currency&days.
func (cc *CoinController) Chart(c *gin.Context) {
	id := c.Param("id")

	query := models.ChartQuery{VsCurrency: "usd", Days: "7"}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if err := validator.GetValidator().Struct(query); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	key := fmt.Sprintf("chart-%s-%s-%s", id, query.VsCurrency, query.Days)
	if payload, ok := cc.cache.Get(c.Request.Context(), key); ok {
		response.Raw(c, payload)
		return
	}

	payload, err := cc.markets.Chart(c.Request.Context(), id, query.VsCurrency, query.Days)
	if err != nil {
		response.Error(c, err, "Failed to fetch chart for "+id)
		return
	}

	cc.cache.Set(c.Request.Context(), key, payload)
	response.Raw(c, payload)
}

// News handles GET /api/coins/news.
func (cc *CoinController) News(c *gin.Context) {
	const key = "news"
	if payload, ok := cc.cache.Get(c.Request.Context(), key); ok {
		response.Raw(c, payload)
		return
	}

	payload, err := cc.news.Articles(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Failed to fetch news")
		return
	}

	cc.cache.Set(c.Request.Context(), key, payload)
	response.Raw(c, payload)
}
