// Package ledgerdelivery manages delivery layer of the portfolio ledger.
package ledgerdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/pkg/currencypkg"
	"github.com/go-petr/kantoor/pkg/errorspkg"
	"github.com/go-petr/kantoor/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Balances(ctx context.Context) []domain.CurrencyBalance
	GetBalance(ctx context.Context, code string) decimal.Decimal
	UpdateBalance(ctx context.Context, code string, amount decimal.Decimal)
	CalculateExchange(ctx context.Context, from, to string, amount decimal.Decimal) decimal.Decimal
	CalculateTotalValue(ctx context.Context) decimal.Decimal
	ExecuteExchange(ctx context.Context, from, to string, amount, rate decimal.Decimal) (domain.Transaction, error)
	Transactions(ctx context.Context) []domain.Transaction
	AddTransaction(ctx context.Context, arg domain.CreateTransactionParams) domain.Transaction
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) *Handler {
	return &Handler{
		service: ls,
	}
}

// Balance is a single balance as returned by GetBalance and UpdateBalance.
type Balance struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// PortfolioValue is the portfolio worth in the reference currency.
type PortfolioValue struct {
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
	Display  string          `json:"display"`
}

// Quote is the result of converting an amount at the current rates.
type Quote struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	FromAmount   decimal.Decimal `json:"fromAmount"`
	ToAmount     decimal.Decimal `json:"toAmount"`
}

type codeURI struct {
	Code string `uri:"code" binding:"required,currency"`
}

type updateBalanceRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type quoteRequest struct {
	FromCurrency string `json:"fromCurrency" binding:"required,currency"`
	ToCurrency   string `json:"toCurrency" binding:"required,currency"`
	Amount       string `json:"amount" binding:"required"`
}

type exchangeRequest struct {
	FromCurrency string `json:"fromCurrency" binding:"required,currency"`
	ToCurrency   string `json:"toCurrency" binding:"required,currency"`
	Amount       string `json:"amount" binding:"required"`
	// Rate is recorded on the transaction. Empty means the current rate.
	Rate string `json:"rate"`
}

type transactionRequest struct {
	Type         string `json:"type" binding:"required,oneof=buy sell exchange deposit withdrawal"`
	FromCurrency string `json:"fromCurrency" binding:"required,currency"`
	ToCurrency   string `json:"toCurrency" binding:"required,currency"`
	FromAmount   string `json:"fromAmount" binding:"required"`
	ToAmount     string `json:"toAmount" binding:"required"`
	Rate         string `json:"rate" binding:"required"`
	Status       string `json:"status" binding:"required,oneof=pending completed cancelled"`
}

// parseAmount parses a decimal string that must be greater than zero.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	if !d.IsPositive() {
		return decimal.Zero, domain.ErrNegativeAmount
	}

	return d, nil
}

// ListBalances handles http request to list all balances.
func (h *Handler) ListBalances(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	gctx.JSON(http.StatusOK, web.Response{Data: h.service.Balances(ctx)})
}

// GetBalance handles http request to get the amount held in a currency.
func (h *Handler) GetBalance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri codeURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	res := web.Response{
		Data: Balance{Code: uri.Code, Amount: h.service.GetBalance(ctx, uri.Code)},
	}

	gctx.JSON(http.StatusOK, res)
}

// UpdateBalance handles http request to overwrite the amount held in a currency.
func (h *Handler) UpdateBalance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri codeURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	var req updateBalanceRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	if amount.IsNegative() {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrNegativeAmount))

		return
	}

	h.service.UpdateBalance(ctx, uri.Code, amount)

	res := web.Response{
		Data: Balance{Code: uri.Code, Amount: h.service.GetBalance(ctx, uri.Code)},
	}

	gctx.JSON(http.StatusOK, res)
}

// GetPortfolioValue handles http request to value the whole portfolio.
func (h *Handler) GetPortfolioValue(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	total := h.service.CalculateTotalValue(ctx)

	res := web.Response{
		Data: PortfolioValue{
			Total:    total,
			Currency: currencypkg.Reference,
			Display:  currencypkg.Format(total, currencypkg.Reference),
		},
	}

	gctx.JSON(http.StatusOK, res)
}

// CreateQuote handles http request to price an exchange without executing it.
func (h *Handler) CreateQuote(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req quoteRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		l.Info().Err(err).Str("amount", req.Amount).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	res := web.Response{
		Data: Quote{
			FromCurrency: req.FromCurrency,
			ToCurrency:   req.ToCurrency,
			FromAmount:   amount,
			ToAmount:     h.service.CalculateExchange(ctx, req.FromCurrency, req.ToCurrency, amount),
		},
	}

	gctx.JSON(http.StatusOK, res)
}

// CreateExchange handles http request to exchange money between two balances.
func (h *Handler) CreateExchange(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req exchangeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		l.Info().Err(err).Str("amount", req.Amount).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var rate decimal.Decimal
	if req.Rate == "" {
		rate = h.service.CalculateExchange(ctx, req.FromCurrency, req.ToCurrency, decimal.NewFromInt(1))
	} else if rate, err = parseAmount(req.Rate); err != nil {
		l.Info().Err(err).Str("rate", req.Rate).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	t, err := h.service.ExecuteExchange(ctx, req.FromCurrency, req.ToCurrency, amount, rate)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: t})
}

// ListTransactions handles http request to list the transaction log, most recent first.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	gctx.JSON(http.StatusOK, web.Response{Data: h.service.Transactions(ctx)})
}

// CreateTransaction handles http request to record a transaction.
func (h *Handler) CreateTransaction(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transactionRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	var amounts [3]decimal.Decimal

	for i, s := range []string{req.FromAmount, req.ToAmount, req.Rate} {
		d, err := parseAmount(s)
		if err != nil {
			l.Info().Err(err).Str("value", s).Send()
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		amounts[i] = d
	}

	arg := domain.CreateTransactionParams{
		Type:         domain.TransactionType(req.Type),
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		FromAmount:   amounts[0],
		ToAmount:     amounts[1],
		Rate:         amounts[2],
		Status:       domain.TransactionStatus(req.Status),
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: h.service.AddTransaction(ctx, arg)})
}
