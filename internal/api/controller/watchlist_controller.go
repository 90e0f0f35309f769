package controller

import (
	"errors"
	"net/http"

	"ctchen222/Crypto-Tracker/internal/api/models"
	"ctchen222/Crypto-Tracker/internal/api/response"
	"ctchen222/Crypto-Tracker/internal/api/service"
	"ctchen222/Crypto-Tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// WatchlistController handles the authenticated watchlist routes. The
// historical API exposes two prefixes: /api/watchlist answers mutations with
// a message, /api/user/watchlist answers them with the updated list.
type WatchlistController struct {
	watchlist service.WatchlistService
}

// NewWatchlistController creates a new WatchlistController.
func NewWatchlistController(watchlist service.WatchlistService) *WatchlistController {
	return &WatchlistController{watchlist: watchlist}
}

// Get handles GET /api/watchlist and GET /api/user/watchlist.
func (wc *WatchlistController) Get(c *gin.Context) {
	list, err := wc.watchlist.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		wc.fail(c, err, "Failed to fetch watchlist")
		return
	}
	response.OK(c, models.WatchlistResponse{Watchlist: list})
}

// Add handles POST /api/watchlist.
func (wc *WatchlistController) Add(c *gin.Context) {
	var req models.WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "coinId is required")
		return
	}

	if _, err := wc.watchlist.Add(c.Request.Context(), middleware.UserID(c), req.CoinID); err != nil {
		wc.fail(c, err, "Failed to add to watchlist")
		return
	}
	response.Message(c, http.StatusOK, "Added to watchlist")
}

// Remove handles DELETE /api/watchlist/:coinId.
func (wc *WatchlistController) Remove(c *gin.Context) {
	if _, err := wc.watchlist.Remove(c.Request.Context(), middleware.UserID(c), c.Param("coinId")); err != nil {
		wc.fail(c, err, "Failed to remove from watchlist")
		return
	}
	response.Message(c, http.StatusOK, "Removed from watchlist")
}

// UserAdd handles POST /api/user/watchlist, returning the updated list.
func (wc *WatchlistController) UserAdd(c *gin.Context) {
	var req models.WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "coinId is required")
		return
	}

	list, err := wc.watchlist.Add(c.Request.Context(), middleware.UserID(c), req.CoinID)
	if err != nil {
		wc.fail(c, err, "Failed to update watchlist")
		return
	}
	response.OK(c, models.WatchlistResponse{Watchlist: list})
}

// UserRemove handles POST /api/user/watchlist/remove, returning the updated
// list.
func (wc *WatchlistController) UserRemove(c *gin.Context) {
	var req models.WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "coinId is required")
		return
	}

	list, err := wc.watchlist.Remove(c.Request.Context(), middleware.UserID(c), req.CoinID)
	if err != nil {
		wc.fail(c, err, "Failed to remove coin from watchlist")
		return
	}
	response.OK(c, models.WatchlistResponse{Watchlist: list})
}

func (wc *WatchlistController) fail(c *gin.Context, err error, msg string) {
	if errors.Is(err, response.ErrNotFound) {
		response.Message(c, http.StatusNotFound, "User not found")
		return
	}
	response.Error(c, err, msg)
}
