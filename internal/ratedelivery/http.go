// Package ratedelivery manages delivery layer of exchange rates.
package ratedelivery

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/pkg/errorspkg"
	"github.com/go-petr/kantoor/pkg/web"
)

// Feed provides rate feed interface needed by rate delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ratedelivery
type Feed interface {
	Current() domain.RateTable
	UpdatedAt() time.Time
	Stats(code string) (domain.RateStats, error)
}

// Handler facilitates rate delivery layer logic.
type Handler struct {
	portfolio Feed
	ticker    Feed
}

// NewHandler returns rate handler serving the portfolio and ticker feeds.
func NewHandler(portfolio, ticker Feed) *Handler {
	return &Handler{
		portfolio: portfolio,
		ticker:    ticker,
	}
}

// Rates is a rate table together with the time it was produced.
type Rates struct {
	Rates     domain.RateTable `json:"rates"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type statsURI struct {
	Code string `uri:"code" binding:"required,currency"`
}

func snapshot(f Feed) Rates {
	return Rates{Rates: f.Current(), UpdatedAt: f.UpdatedAt()}
}

// GetRates handles http request to get the rates used for portfolio valuation.
func (h *Handler) GetRates(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, web.Response{Data: snapshot(h.portfolio)})
}

// GetTicker handles http request to get the fast moving ticker rates.
func (h *Handler) GetTicker(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, web.Response{Data: snapshot(h.ticker)})
}

// GetTickerStats handles http request to summarize recent ticker rates of a currency.
func (h *Handler) GetTickerStats(gctx *gin.Context) {
	l := zerolog.Ctx(gctx.Request.Context())

	var uri statsURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	stats, err := h.ticker.Stats(uri.Code)
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		}

		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: stats})
}
